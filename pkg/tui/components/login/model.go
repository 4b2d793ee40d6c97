// Package login is the sign-in screen.
package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/gigs/pkg/tui/theme"
)

// SubmitMsg asks the controller to sign in.
type SubmitMsg struct {
	Name     string
	Password string
}

// Model holds the name and password inputs.
type Model struct {
	theme    theme.Theme
	name     textinput.Model
	password textinput.Model
	focus    int

	// Error is shown under the inputs; the root model copies the
	// controller's login error here.
	Error string
	Busy  bool
}

// New builds a login screen, prefilled with name.
func New(th theme.Theme, name string) *Model {
	n := textinput.New()
	n.Prompt = ""
	n.Placeholder = "Your name"
	n.SetValue(name)
	n.SetWidth(28)

	p := textinput.New()
	p.Prompt = ""
	p.Placeholder = "Shared password"
	p.EchoMode = textinput.EchoPassword
	p.EchoCharacter = '•'
	p.SetWidth(28)

	m := &Model{theme: th, name: n, password: p}
	if name != "" {
		m.focus = 1
	}
	return m
}

// SetTheme swaps styles.
func (m *Model) SetTheme(th theme.Theme) {
	m.theme = th
}

func (m *Model) input(i int) *textinput.Model {
	if i == 0 {
		return &m.name
	}
	return &m.password
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.input(m.focus).Focus()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok && !m.Busy {
		switch key.String() {
		case "tab", "shift+tab", "up", "down":
			m.input(m.focus).Blur()
			m.focus = 1 - m.focus
			return m, m.input(m.focus).Focus()
		case "enter":
			name := strings.TrimSpace(m.name.Value())
			pw := m.password.Value()
			if name == "" || pw == "" {
				m.Error = "Enter your name and the shared password."
				return m, nil
			}
			m.Error = ""
			m.Busy = true
			return m, func() tea.Msg { return SubmitMsg{Name: name, Password: pw} }
		}
	}
	in := m.input(m.focus)
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return m, cmd
}

// ClearPassword empties the password field after a failed attempt.
func (m *Model) ClearPassword() {
	m.password.SetValue("")
}

// View implements tea.Model.
func (m *Model) View() (string, *tea.Cursor) {
	label := func(i int, text string) string {
		if i == m.focus {
			return m.theme.Modal.Focus.Width(10).Render(text)
		}
		return m.theme.Modal.Label.Width(10).Render(text)
	}
	lines := []string{
		m.theme.Header.Title.Render("Gig Tracker"),
		m.theme.Muted.Render("Sign in to see what everyone's going to."),
		"",
		label(0, "Name") + m.name.View(),
		label(1, "Password") + m.password.View(),
		"",
	}
	var cursor *tea.Cursor
	if c := m.input(m.focus).Cursor(); c != nil {
		clone := *c
		clone.Position.X += 10 + 3
		clone.Position.Y += 3 + m.focus + 2
		cursor = &clone
	}
	switch {
	case m.Busy:
		lines = append(lines, m.theme.Muted.Render("Signing in…"))
	case m.Error != "":
		lines = append(lines, m.theme.Modal.Error.Render(m.Error))
	default:
		lines = append(lines, m.theme.Footer.Render("enter sign in · tab switch · ctrl+c quit"))
	}
	return m.theme.Modal.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)), cursor
}
