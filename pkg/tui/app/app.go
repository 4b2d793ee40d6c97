// Package app is the Bubble Tea root model for the gig tracker.
package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	ctrlpkg "tableflip.dev/gigs/pkg/app"
	"tableflip.dev/gigs/pkg/gig"
	"tableflip.dev/gigs/pkg/store"
	"tableflip.dev/gigs/pkg/tui/components/gigform"
	"tableflip.dev/gigs/pkg/tui/components/login"
	"tableflip.dev/gigs/pkg/tui/events"
	"tableflip.dev/gigs/pkg/tui/theme"
)

type mode int

const (
	modeBrowse mode = iota
	modeForm
	modeConfirm
)

// loginDoneMsg reports the outcome of a login attempt.
type loginDoneMsg struct{ err error }

// refreshDoneMsg reports the outcome of a manual refresh.
type refreshDoneMsg struct{ err error }

// Options configures the root model.
type Options struct {
	// Prefs, when set, is watched for changes made by other processes.
	Prefs *store.Prefs
}

// Model is the root UI model. It renders controller snapshots and turns
// key presses into controller intents.
type Model struct {
	ctx   context.Context
	ctrl  *ctrlpkg.Controller
	prefs *store.Prefs
	watch <-chan store.Event

	state     ctrlpkg.State
	changed   map[string]gig.Action
	unseen    []gig.HistoryEntry
	theme     theme.Theme
	mode      mode
	selected  int
	offset    int
	form      *gigform.Model
	login     *login.Model
	deleting  *gig.Gig
	width     int
	height    int
	now       time.Time
	lastError string
}

// New builds the root model for ctrl.
func New(ctx context.Context, ctrl *ctrlpkg.Controller, opts Options) *Model {
	m := &Model{
		ctx:   ctx,
		ctrl:  ctrl,
		prefs: opts.Prefs,
		now:   time.Now(),
	}
	m.sync()
	m.login = login.New(m.theme, m.state.User())
	return m
}

// Run launches the Bubble Tea program.
func Run(ctx context.Context, ctrl *ctrlpkg.Controller, opts Options) error {
	m := New(ctx, ctrl, opts)
	if opts.Prefs != nil {
		ch, err := opts.Prefs.Watch(ctx)
		if err == nil {
			m.watch = ch
		}
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// sync pulls a fresh snapshot and derived projections from the controller.
func (m *Model) sync() {
	m.state = m.ctrl.Snapshot()
	proj := m.ctrl.Projection()
	m.changed = proj.Changed
	m.unseen = proj.Unseen
	if m.theme.Name != m.state.Theme {
		m.theme = theme.For(m.state.Theme)
		if m.login != nil {
			m.login.SetTheme(m.theme)
		}
	}
	if n := len(m.ordered()); m.selected >= n {
		m.selected = max(0, n-1)
	}
}

// ordered is the gig order every browse view shows: upcoming then past.
func (m *Model) ordered() []gig.Gig {
	upcoming, past := gig.Partition(m.state.Gigs, m.now)
	return append(upcoming, past...)
}

func (m *Model) current() (gig.Gig, bool) {
	gigs := m.ordered()
	if m.selected < 0 || m.selected >= len(gigs) {
		return gig.Gig{}, false
	}
	return gigs[m.selected], true
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		events.WaitForState(m.ctrl.Events()),
		events.WaitForPrefs(m.watch),
		events.Tick(time.Second),
	}
	if !m.state.SignedIn() {
		cmds = append(cmds, m.login.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.form != nil {
			m.form.SetWidth(min(72, msg.Width-8))
		}
		return m, nil

	case events.StateMsg:
		wasSignedIn := m.state.SignedIn()
		m.sync()
		cmds := []tea.Cmd{events.WaitForState(m.ctrl.Events())}
		if wasSignedIn && !m.state.SignedIn() {
			m.mode = modeBrowse
			m.form = nil
			m.deleting = nil
			m.login = login.New(m.theme, "")
			cmds = append(cmds, m.login.Init())
		}
		if m.login != nil {
			m.login.Error = m.state.LoginError
		}
		return m, tea.Batch(cmds...)

	case events.PrefsMsg:
		m.ctrl.ReloadPrefs()
		return m, events.WaitForPrefs(m.watch)

	case events.TickMsg:
		m.now = time.Time(msg)
		return m, events.Tick(time.Second)

	case events.ClosedMsg:
		return m, nil

	case login.SubmitMsg:
		ctx, ctrl := m.ctx, m.ctrl
		return m, func() tea.Msg {
			return loginDoneMsg{err: ctrl.Login(ctx, msg.Name, msg.Password)}
		}

	case loginDoneMsg:
		m.login.Busy = false
		m.sync()
		if msg.err != nil {
			m.login.Error = m.state.LoginError
			if m.login.Error == "" {
				m.login.Error = msg.err.Error()
			}
			m.login.ClearPassword()
		}
		return m, nil

	case refreshDoneMsg:
		m.sync()
		return m, nil

	case gigform.SubmitMsg:
		m.submitForm(msg)
		m.mode = modeBrowse
		m.form = nil
		m.sync()
		return m, nil

	case gigform.CancelMsg:
		m.mode = modeBrowse
		m.form = nil
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.state.SignedIn() {
			_, cmd := m.login.Update(msg)
			return m, cmd
		}
		switch m.mode {
		case modeForm:
			_, cmd := m.form.Update(msg)
			return m, cmd
		case modeConfirm:
			return m, m.handleConfirmKey(msg)
		default:
			return m, m.handleBrowseKey(msg)
		}
	}

	// Non-key messages such as cursor blinks go to whichever input is live.
	switch {
	case !m.state.SignedIn():
		_, cmd := m.login.Update(msg)
		return m, cmd
	case m.mode == modeForm && m.form != nil:
		_, cmd := m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) submitForm(msg gigform.SubmitMsg) {
	for _, name := range msg.NewPeople {
		if err := m.ctrl.AddPerson(m.ctx, name); err != nil {
			m.lastError = err.Error()
		}
	}
	var err error
	if msg.Before == nil {
		_, err = m.ctrl.AddGig(m.ctx, msg.After)
	} else {
		err = m.ctrl.UpdateGig(m.ctx, msg.Before, msg.After)
	}
	if err != nil {
		m.lastError = err.Error()
	}
}

func (m *Model) handleBrowseKey(msg tea.KeyPressMsg) tea.Cmd {
	m.lastError = ""
	n := len(m.ordered())
	switch msg.String() {
	case "q":
		return tea.Quit
	case "j", "down":
		if m.selected < n-1 {
			m.selected++
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
	case "g", "home":
		m.selected = 0
	case "G", "end":
		m.selected = max(0, n-1)
	case "a":
		m.form = gigform.New(m.theme, nil, m.state.People)
		m.form.SetWidth(min(72, max(40, m.width-8)))
		m.mode = modeForm
		return m.form.Init()
	case "e", "enter":
		if m.state.View == ctrlpkg.ViewHistory {
			return nil
		}
		g, ok := m.current()
		if !ok {
			return nil
		}
		m.form = gigform.New(m.theme, &g, m.state.People)
		m.form.SetWidth(min(72, max(40, m.width-8)))
		m.mode = modeForm
		return m.form.Init()
	case "d", "x":
		if m.state.View == ctrlpkg.ViewHistory {
			return nil
		}
		if g, ok := m.current(); ok {
			m.deleting = &g
			m.mode = modeConfirm
		}
	case "v":
		m.setView(m.state.View.Next())
	case "h":
		m.setView(ctrlpkg.ViewHistory)
	case "r":
		ctx, ctrl := m.ctx, m.ctrl
		return func() tea.Msg {
			return refreshDoneMsg{err: ctrl.Refresh(ctx)}
		}
	case "t":
		if _, err := m.ctrl.ToggleTheme(); err != nil {
			m.lastError = err.Error()
		}
		m.sync()
	case "s":
		m.ctrl.SignOut()
		m.sync()
		m.login = login.New(m.theme, "")
		return m.login.Init()
	}
	return nil
}

func (m *Model) setView(v ctrlpkg.View) {
	if err := m.ctrl.SetView(v); err != nil {
		m.lastError = err.Error()
	}
	m.offset = 0
	m.sync()
}

func (m *Model) handleConfirmKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		if m.deleting != nil {
			if err := m.ctrl.DeleteGig(m.ctx, *m.deleting); err != nil {
				m.lastError = err.Error()
			}
		}
		m.deleting = nil
		m.mode = modeBrowse
		m.sync()
	case "n", "esc", "q":
		m.deleting = nil
		m.mode = modeBrowse
	}
	return nil
}
