// Package app holds the in-memory gig state shared by the CLI and the
// terminal UI and drives optimistic writes against the gateway.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/gigs/pkg/api"
	"tableflip.dev/gigs/pkg/changes"
	"tableflip.dev/gigs/pkg/gig"
	"tableflip.dev/gigs/pkg/logging"
	"tableflip.dev/gigs/pkg/store"
	"tableflip.dev/gigs/pkg/timeutil"
)

var (
	// ErrNoSession is returned by intents that need a signed-in user.
	ErrNoSession = errors.New("app: not signed in")
	// ErrGigNotFound is returned when no gig has the requested row index.
	ErrGigNotFound = errors.New("app: gig not found")
	// ErrUnknownView is returned for view names outside Views.
	ErrUnknownView = errors.New("app: unknown view")
)

// User-facing messages.
const (
	MsgIncorrectPassword = "Incorrect password"
	MsgCouldNotConnect   = "Could not connect. Check the script URL."
	MsgSessionExpired    = "Session expired. Please sign in again."
	MsgLoadFailed        = "Failed to load data"
	MsgSaveFailed        = "Failed to save - refreshing..."
	MsgDeleteFailed      = "Failed to delete - refreshing..."
	MsgPersonFailed      = "Failed to save person"
)

// Gateway is the remote data endpoint. *api.Client implements it.
type Gateway interface {
	CheckPassword(ctx context.Context, password string) (bool, error)
	FetchAll(ctx context.Context, password string) (api.Data, error)
	AddGig(ctx context.Context, password, user string, g gig.Gig) error
	UpdateGig(ctx context.Context, password, user string, g gig.Gig, summary string) error
	RemoveGig(ctx context.Context, password, user string, g gig.Gig) error
	AddPerson(ctx context.Context, password, name string) error
	LogEvent(password, user string, event gig.Action, summary string)
	LogVisitIfStale(store api.VisitStore, now time.Time, password, user string) bool
	Flush()
}

// Prefs persists the session and display preferences. *store.Prefs
// implements it.
type Prefs interface {
	api.VisitStore
	Session() *gig.Session
	SaveSession(s gig.Session) error
	ClearSession() error
	Theme() string
	SetTheme(theme string) error
	LastSeen() string
	SetLastSeen(ts string) error
}

// Config wires a Controller's collaborators.
type Config struct {
	Gateway Gateway
	Prefs   Prefs
	Logger  *logging.Logger
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Controller owns State. All methods are safe for concurrent use. Gateway
// writes run on background goroutines; Wait blocks until they settle.
type Controller struct {
	gw    Gateway
	prefs Prefs
	log   *logging.Logger
	now   func() time.Time

	mu    sync.Mutex
	state State

	inflight sync.WaitGroup
	eventCh  chan Event
}

// New builds a Controller seeded with the persisted theme and watermark.
func New(cfg Config) *Controller {
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Controller{
		gw:    cfg.Gateway,
		prefs: cfg.Prefs,
		log:   log,
		now:   clock,
		state: State{
			View:     ViewCards,
			Theme:    cfg.Prefs.Theme(),
			LastSeen: cfg.Prefs.LastSeen(),
		},
		eventCh: make(chan Event, 64),
	}
}

// Events delivers change notifications. Slow readers miss events but never
// block the controller; Snapshot always has the latest state.
func (c *Controller) Events() <-chan Event {
	return c.eventCh
}

func (c *Controller) emit(ev Event) {
	select {
	case c.eventCh <- ev:
	default:
	}
}

// Snapshot returns a deep copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// update applies fn to the state under the lock and notifies subscribers.
func (c *Controller) update(fn func(s *State)) {
	c.mu.Lock()
	fn(&c.state)
	c.mu.Unlock()
	c.emit(Event{Kind: EventStateChanged})
}

func (c *Controller) session() (gig.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.Session.Valid() {
		return gig.Session{}, ErrNoSession
	}
	return *c.state.Session, nil
}

func (c *Controller) toast(kind ToastKind, msg string) {
	c.update(func(s *State) {
		s.Toast = &Toast{Message: msg, Kind: kind, At: c.now()}
	})
	c.emit(Event{Kind: EventToast})
}

// async runs fn on a tracked goroutine detached from ctx's cancellation.
// Each run gets an operation id in its log fields.
func (c *Controller) async(ctx context.Context, op string, fn func(ctx context.Context, log *logging.Logger)) {
	log := c.log.With(map[string]interface{}{"op": op, "op_id": uuid.NewString()})
	detached := context.WithoutCancel(ctx)
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		log.Debug("started")
		fn(detached, log)
		log.Debug("settled")
	}()
}

// Wait blocks until every background gateway call and the resync it
// triggers has completed, including best-effort event logging.
func (c *Controller) Wait() {
	c.inflight.Wait()
	c.gw.Flush()
}

// Restore resumes the persisted session, logs a visit when the last one is
// stale and loads data. It returns ErrNoSession when nobody is signed in.
func (c *Controller) Restore(ctx context.Context) error {
	saved := c.prefs.Session()
	if !saved.Valid() {
		return ErrNoSession
	}
	c.update(func(s *State) {
		sess := *saved
		s.Session = &sess
	})
	c.gw.LogVisitIfStale(c.prefs, c.now(), saved.Password, saved.Name)
	return c.LoadAll(ctx, false)
}

// Login checks password with the gateway. On success the session is
// persisted and data is loaded; on failure only LoginError changes.
func (c *Controller) Login(ctx context.Context, name, password string) error {
	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return fmt.Errorf("%w: name and password are required", gig.ErrValidation)
	}
	c.update(func(s *State) { s.LoginError = "" })

	ok, err := c.gw.CheckPassword(ctx, password)
	if err != nil {
		c.log.Warn(err, "login failed")
		c.update(func(s *State) { s.LoginError = MsgCouldNotConnect })
		if errors.Is(err, api.ErrConnectivity) {
			return err
		}
		return fmt.Errorf("%w: %w", api.ErrConnectivity, err)
	}
	if !ok {
		c.update(func(s *State) { s.LoginError = MsgIncorrectPassword })
		return api.ErrAuthRejected
	}

	sess := gig.Session{Name: name, Password: password}
	if err := c.prefs.SaveSession(sess); err != nil {
		c.log.Warn(err, "could not persist session")
	}
	c.update(func(s *State) { s.Session = &sess })
	c.gw.LogEvent(password, name, gig.ActionLoggedIn, "")

	if err := c.LoadAll(ctx, false); err != nil {
		c.log.Warn(err, "initial load after login failed")
	}
	return nil
}

// SignOut forgets the session and all loaded data. It never calls the
// gateway.
func (c *Controller) SignOut() {
	c.signOut("")
}

func (c *Controller) signOut(loginError string) {
	if err := c.prefs.ClearSession(); err != nil {
		c.log.Warn(err, "could not clear persisted session")
	}
	c.update(func(s *State) {
		s.Session = nil
		s.Gigs = nil
		s.People = nil
		s.History = nil
		s.Loading = false
		s.Refreshing = false
		s.LoginError = loginError
	})
	c.emit(Event{Kind: EventSignedOut})
}

// LoadAll replaces gigs, people and history with the gateway's copy.
//
// A rejected password always signs the user out. Other failures are toasted
// unless silent, and returned either way.
func (c *Controller) LoadAll(ctx context.Context, silent bool) error {
	sess, err := c.session()
	if err != nil {
		return err
	}
	if !silent {
		c.update(func(s *State) { s.Loading = true })
		defer c.update(func(s *State) { s.Loading = false })
	}

	data, err := c.gw.FetchAll(ctx, sess.Password)
	if err != nil {
		if api.IsAuthInvalid(err) {
			c.log.Warn(err, "session rejected by gateway")
			c.signOut(MsgSessionExpired)
			return err
		}
		if silent {
			c.log.Warn(err, "background resync failed")
		} else {
			c.log.Error(err, "load failed")
			c.toast(ToastError, MsgLoadFailed)
		}
		return err
	}

	c.update(func(s *State) {
		// A sign-out or account switch while the request was out wins.
		if s.Session == nil || s.Session.Password != sess.Password {
			return
		}
		s.Gigs = data.Gigs
		s.People = data.People
		s.History = data.History
	})
	return nil
}

// Refresh runs a silent resync, flagging Refreshing while it is in flight.
func (c *Controller) Refresh(ctx context.Context) error {
	c.update(func(s *State) { s.Refreshing = true })
	defer c.update(func(s *State) { s.Refreshing = false })
	return c.LoadAll(ctx, true)
}

// AddGig appends g under a temporary row index and creates it remotely. A
// silent resync always follows to pick up the real row index, or to drop
// the gig if the gateway never stored it. It returns the optimistic copy.
func (c *Controller) AddGig(ctx context.Context, g gig.Gig) (gig.Gig, error) {
	sess, err := c.session()
	if err != nil {
		return gig.Gig{}, err
	}
	tmp := g.Clone()
	c.update(func(s *State) {
		tmp.RowIndex = c.tempRowIndex(s.Gigs)
		s.Gigs = append(s.Gigs, tmp.Clone())
	})
	c.toast(ToastInfo, fmt.Sprintf(`Added "%s"`, g.Band))

	c.async(ctx, "addGig", func(ctx context.Context, log *logging.Logger) {
		if err := c.gw.AddGig(ctx, sess.Password, sess.Name, g); err != nil {
			log.Error(err, "add failed")
			c.toast(ToastError, MsgSaveFailed)
		}
		_ = c.LoadAll(ctx, true)
	})
	return tmp, nil
}

// tempRowIndex derives an id from the clock that no loaded gig uses.
func (c *Controller) tempRowIndex(gigs []gig.Gig) int64 {
	id := c.now().UnixMilli()
	for {
		clash := false
		for _, g := range gigs {
			if g.RowIndex == id {
				clash = true
				break
			}
		}
		if !clash {
			return id
		}
		id++
	}
}

// UpdateGig replaces the gig with after.RowIndex and sends the change with
// a summary diffed against before, or "Updated" when before is nil. Only a
// failure triggers a resync; on success the local copy stands.
func (c *Controller) UpdateGig(ctx context.Context, before *gig.Gig, after gig.Gig) error {
	sess, err := c.session()
	if err != nil {
		return err
	}
	summary := "Updated"
	if before != nil {
		summary = api.BuildDiffSummary(*before, after)
	}
	next := after.Clone()
	c.update(func(s *State) {
		for i := range s.Gigs {
			if s.Gigs[i].RowIndex == next.RowIndex {
				s.Gigs[i] = next.Clone()
			}
		}
	})
	c.toast(ToastInfo, fmt.Sprintf(`Updated "%s"`, after.Band))

	c.async(ctx, "updateGig", func(ctx context.Context, log *logging.Logger) {
		if err := c.gw.UpdateGig(ctx, sess.Password, sess.Name, next, summary); err != nil {
			log.Error(err, "update failed")
			c.toast(ToastError, MsgSaveFailed)
			_ = c.LoadAll(ctx, true)
		}
	})
	return nil
}

// DeleteGig removes g locally and remotely. Deleting a spreadsheet row
// shifts the row index of every later gig, so a resync always follows.
func (c *Controller) DeleteGig(ctx context.Context, g gig.Gig) error {
	sess, err := c.session()
	if err != nil {
		return err
	}
	target := g.Clone()
	c.update(func(s *State) {
		kept := s.Gigs[:0:0]
		for _, existing := range s.Gigs {
			if existing.RowIndex != target.RowIndex {
				kept = append(kept, existing)
			}
		}
		s.Gigs = kept
	})
	c.toast(ToastInfo, fmt.Sprintf(`Deleted "%s"`, g.Band))

	c.async(ctx, "deleteGig", func(ctx context.Context, log *logging.Logger) {
		if err := c.gw.RemoveGig(ctx, sess.Password, sess.Name, target); err != nil {
			log.Error(err, "delete failed")
			c.toast(ToastError, MsgDeleteFailed)
		}
		_ = c.LoadAll(ctx, true)
	})
	return nil
}

// AddPerson adds name to the people list if it is new. A gateway failure is
// toasted but the local addition stays.
func (c *Controller) AddPerson(ctx context.Context, name string) error {
	sess, err := c.session()
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty name", gig.ErrValidation)
	}
	added := false
	c.update(func(s *State) {
		for _, p := range s.People {
			if p == name {
				return
			}
		}
		s.People = append(s.People, name)
		added = true
	})
	if !added {
		return nil
	}

	c.async(ctx, "addPerson", func(ctx context.Context, log *logging.Logger) {
		if err := c.gw.AddPerson(ctx, sess.Password, name); err != nil {
			log.Error(err, "add person failed")
			c.toast(ToastError, MsgPersonFailed)
		}
	})
	return nil
}

// SetView switches views. Entering history marks everything seen by moving
// the watermark to now.
func (c *Controller) SetView(view View) error {
	if _, err := ParseView(string(view)); err != nil {
		return err
	}
	if view == ViewHistory {
		c.MarkSeen()
	}
	c.update(func(s *State) { s.View = view })
	return nil
}

// MarkSeen advances and persists the history watermark.
func (c *Controller) MarkSeen() {
	mark := timeutil.Watermark(c.now())
	if err := c.prefs.SetLastSeen(mark); err != nil {
		c.log.Warn(err, "could not persist watermark")
	}
	c.update(func(s *State) { s.LastSeen = mark })
}

// SetTheme persists theme, light or dark.
func (c *Controller) SetTheme(theme string) error {
	if err := c.prefs.SetTheme(theme); err != nil {
		return err
	}
	c.update(func(s *State) { s.Theme = theme })
	return nil
}

// ToggleTheme flips between light and dark and returns the new theme.
func (c *Controller) ToggleTheme() (string, error) {
	next := store.ThemeLight
	if c.Snapshot().Theme == store.ThemeLight {
		next = store.ThemeDark
	}
	return next, c.SetTheme(next)
}

// ReloadPrefs rereads preferences changed by another process. A session
// removed elsewhere signs this controller out too.
func (c *Controller) ReloadPrefs() {
	theme, seen := c.prefs.Theme(), c.prefs.LastSeen()
	saved := c.prefs.Session()
	c.update(func(s *State) {
		s.Theme = theme
		s.LastSeen = seen
	})
	if s := c.Snapshot(); s.SignedIn() && !saved.Valid() {
		c.signOut("")
	}
}

// Projection derives unseen history and per-band highlights from the
// current state.
func (c *Controller) Projection() changes.Projection {
	s := c.Snapshot()
	return changes.Detect(s.History, s.User(), s.LastSeen)
}

// Unseen lists gig changes by other people since the watermark.
func (c *Controller) Unseen() []gig.HistoryEntry {
	return c.Projection().Unseen
}

// ChangedGigs maps band names to their latest unseen action.
func (c *Controller) ChangedGigs() map[string]gig.Action {
	return c.Projection().Changed
}

var (
	_ Gateway = (*api.Client)(nil)
	_ Prefs   = (*store.Prefs)(nil)
)
