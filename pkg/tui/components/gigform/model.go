// Package gigform is the add/edit gig overlay.
package gigform

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/gigs/pkg/gig"
	"tableflip.dev/gigs/pkg/tui/theme"
)

type field int

const (
	fieldBand field = iota
	fieldLocation
	fieldDate
	fieldPrice
	fieldLink
	fieldNotes
	fieldInterested
	fieldTickets
	fieldCount
)

var labels = [fieldCount]string{
	"Band *", "Venue *", "Date *", "Price", "Link", "Notes", "Interested", "Tickets",
}

var placeholders = [fieldCount]string{
	"Who's playing", "Where", "YYYY-MM-DD", "e.g. 12.50", "https://…", "", "comma separated names", "comma separated names",
}

// SubmitMsg carries a validated gig. Before is the snapshot taken when
// editing started, nil for new gigs. NewPeople lists names not yet known.
type SubmitMsg struct {
	Before    *gig.Gig
	After     gig.Gig
	NewPeople []string
}

// CancelMsg is sent when the form is dismissed.
type CancelMsg struct{}

// Model renders the gig form.
type Model struct {
	theme  theme.Theme
	before *gig.Gig
	people []string

	inputs [fieldCount]textinput.Model
	focus  field
	width  int

	errorMsg string
}

// New builds a form. A nil g starts an empty add form; otherwise the form
// edits a copy of g.
func New(th theme.Theme, g *gig.Gig, people []string) *Model {
	m := &Model{theme: th, people: append([]string(nil), people...)}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 512
		m.inputs[i] = ti
	}
	if g != nil {
		snap := g.Clone()
		m.before = &snap
		m.inputs[fieldBand].SetValue(g.Band)
		m.inputs[fieldLocation].SetValue(g.Location)
		m.inputs[fieldDate].SetValue(g.Date)
		m.inputs[fieldPrice].SetValue(g.Price.String())
		m.inputs[fieldLink].SetValue(g.Link)
		m.inputs[fieldNotes].SetValue(g.Notes)
		m.inputs[fieldInterested].SetValue(strings.Join(g.Interested, ", "))
		m.inputs[fieldTickets].SetValue(strings.Join(g.TicketsBought, ", "))
	}
	m.SetWidth(60)
	return m
}

// Editing reports whether the form edits an existing gig.
func (m *Model) Editing() bool {
	return m.before != nil
}

// SetWidth sizes the inputs.
func (m *Model) SetWidth(width int) {
	m.width = width
	inputWidth := width - 16
	if inputWidth < 12 {
		inputWidth = 12
	}
	for i := range m.inputs {
		m.inputs[i].SetWidth(inputWidth)
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.inputs[m.focus].Focus()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "esc":
			return m, func() tea.Msg { return CancelMsg{} }
		case "tab", "down":
			return m, m.move(1)
		case "shift+tab", "up":
			return m, m.move(-1)
		case "ctrl+s":
			return m, m.submit()
		case "enter":
			if m.focus == fieldCount-1 {
				return m, m.submit()
			}
			return m, m.move(1)
		}
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) move(delta int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = field((int(m.focus) + delta + int(fieldCount)) % int(fieldCount))
	return m.inputs[m.focus].Focus()
}

// Gig builds the gig described by the inputs, validating required fields
// and the price.
func (m *Model) Gig() (gig.Gig, error) {
	val := func(f field) string { return strings.TrimSpace(m.inputs[f].Value()) }

	g := gig.Gig{}
	if m.before != nil {
		g.RowIndex = m.before.RowIndex
	}
	g.Band = val(fieldBand)
	g.Location = val(fieldLocation)
	g.Date = val(fieldDate)
	g.Link = val(fieldLink)
	g.Notes = val(fieldNotes)
	g.Interested = orEmpty(gig.ParseNames(val(fieldInterested)))
	g.TicketsBought = orEmpty(gig.ParseNames(val(fieldTickets)))

	// An untouched price keeps its literal so editing other fields does not
	// report a price change.
	if m.before != nil && val(fieldPrice) == m.before.Price.String() {
		g.Price = m.before.Price
	} else {
		price, err := gig.ParsePrice(val(fieldPrice))
		if err != nil {
			return gig.Gig{}, err
		}
		g.Price = price
	}
	if err := g.Validate(); err != nil {
		return gig.Gig{}, err
	}
	return g, nil
}

func orEmpty(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}

func (m *Model) submit() tea.Cmd {
	g, err := m.Gig()
	if err != nil {
		if errors.Is(err, gig.ErrValidation) {
			m.errorMsg = strings.TrimPrefix(err.Error(), gig.ErrValidation.Error()+": ")
		} else {
			m.errorMsg = err.Error()
		}
		return nil
	}
	m.errorMsg = ""
	msg := SubmitMsg{Before: m.before, After: g, NewPeople: m.newPeople(g)}
	return func() tea.Msg { return msg }
}

// newPeople lists names on g that are not in the people list, in order.
func (m *Model) newPeople(g gig.Gig) []string {
	known := make(map[string]bool, len(m.people))
	for _, p := range m.people {
		known[p] = true
	}
	var out []string
	for _, name := range append(append([]string(nil), g.Interested...), g.TicketsBought...) {
		if !known[name] {
			known[name] = true
			out = append(out, name)
		}
	}
	return out
}

// View implements tea.Model.
func (m *Model) View() (string, *tea.Cursor) {
	title := "Add Gig"
	if m.Editing() {
		title = "Edit Gig"
	}
	lines := []string{m.theme.Modal.Title.Render(title), ""}
	var cursor *tea.Cursor
	const labelWidth = 12
	for i := range m.inputs {
		label := m.theme.Modal.Label
		marker := "  "
		if field(i) == m.focus {
			label = m.theme.Modal.Focus
			marker = "> "
			if c := m.inputs[i].Cursor(); c != nil {
				clone := *c
				clone.Position.X += len(marker) + labelWidth
				clone.Position.Y += len(lines)
				cursor = &clone
			}
		}
		row := marker + label.Width(labelWidth).Render(labels[i]) + m.inputs[i].View()
		lines = append(lines, row)
	}
	lines = append(lines, "")
	if m.errorMsg != "" {
		lines = append(lines, m.theme.Modal.Error.Render(m.errorMsg))
	} else if len(m.people) > 0 {
		lines = append(lines, m.theme.Muted.Render("People: "+strings.Join(m.people, ", ")))
	}
	lines = append(lines, m.theme.Footer.Render("tab/↑↓ move · enter next · ctrl+s save · esc cancel"))

	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	frame := m.theme.Modal.Frame
	if cursor != nil {
		// frame border plus padding
		cursor.Position.X += 3
		cursor.Position.Y += 2
	}
	return frame.Render(body), cursor
}
