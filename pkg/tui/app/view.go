package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	ctrlpkg "tableflip.dev/gigs/pkg/app"
	"tableflip.dev/gigs/pkg/gig"
	"tableflip.dev/gigs/pkg/timeutil"
)

// View implements tea.Model.
func (m *Model) View() (string, *tea.Cursor) {
	if !m.state.SignedIn() {
		body, cursor := m.login.View()
		return m.center(body, cursor)
	}
	switch m.mode {
	case modeForm:
		if m.form != nil {
			body, cursor := m.form.View()
			return m.center(body, cursor)
		}
	case modeConfirm:
		return m.center(m.confirmView(), nil)
	}

	header := m.headerView()
	footer := m.footerView()
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if m.height == 0 {
		bodyHeight = 1 << 20
	}
	body := m.bodyView(max(1, bodyHeight))
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer), nil
}

// center places a modal in the middle of the screen, shifting its cursor.
func (m *Model) center(body string, cursor *tea.Cursor) (string, *tea.Cursor) {
	if m.width == 0 || m.height == 0 {
		return body, cursor
	}
	w, h := lipgloss.Width(body), lipgloss.Height(body)
	x, y := max(0, (m.width-w)/2), max(0, (m.height-h)/2)
	if cursor != nil {
		clone := *cursor
		clone.Position.X += x
		clone.Position.Y += y
		cursor = &clone
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body), cursor
}

func (m *Model) headerView() string {
	t := m.theme
	parts := []string{t.Header.Title.Render("Gig Tracker")}
	parts = append(parts, t.Header.User.Render(m.state.User()))
	if n := len(m.unseen); n > 0 {
		parts = append(parts, t.Header.Badge.Render(fmt.Sprintf("%d new", n)))
	}
	status := string(m.state.View)
	switch {
	case m.state.Loading:
		status += " · loading…"
	case m.state.Refreshing:
		status += " · refreshing…"
	}
	parts = append(parts, t.Header.View.Render(status), t.Muted.Render(m.state.Theme))
	return strings.Join(parts, "  ") + "\n"
}

func (m *Model) footerView() string {
	if toast := m.state.Toast; toast.Active(m.now) {
		style := m.theme.Toast.Info
		if toast.Kind == ctrlpkg.ToastError {
			style = m.theme.Toast.Error
		}
		return "\n" + style.Render(toast.Message)
	}
	if m.lastError != "" {
		return "\n" + m.theme.Toast.Error.Render(m.lastError)
	}
	return "\n" + m.theme.Footer.Render(footerHelp())
}

func (m *Model) confirmView() string {
	t := m.theme
	g := m.deleting
	if g == nil {
		return ""
	}
	lines := []string{
		t.Modal.Title.Render("Delete gig?"),
		"",
		fmt.Sprintf("%s at %s on %s", t.Gig.Band.Render(g.Band), g.Location, gig.FormatDate(g.Date)),
		"",
		t.Footer.Render("y delete · n cancel"),
	}
	return t.Modal.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

// bodyView renders the active view clipped to height, scrolled so the
// selection stays visible.
func (m *Model) bodyView(height int) string {
	if m.state.View == ctrlpkg.ViewHistory {
		return clip(m.historyLines(), m.offset, height)
	}
	gigs := m.ordered()
	if len(gigs) == 0 {
		if m.state.Loading {
			return m.theme.Muted.Render("Loading gigs…")
		}
		return m.theme.Muted.Render("No gigs yet. Press a to add your first gig.")
	}

	var blocks []string
	switch m.state.View {
	case ctrlpkg.ViewTable:
		blocks = m.tableRows(gigs)
	case ctrlpkg.ViewList:
		blocks = m.listRows(gigs)
	default:
		blocks = m.cards(gigs)
	}
	m.scrollTo(blocks, height)

	var out []string
	used := 0
	for i := m.offset; i < len(blocks); i++ {
		h := lipgloss.Height(blocks[i])
		if used+h > height && used > 0 {
			break
		}
		out = append(out, blocks[i])
		used += h
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

// scrollTo moves offset so the selected block fits on screen.
func (m *Model) scrollTo(blocks []string, height int) {
	if m.selected < m.offset {
		m.offset = m.selected
	}
	for {
		used := 0
		for i := m.offset; i <= m.selected && i < len(blocks); i++ {
			used += lipgloss.Height(blocks[i])
		}
		if used <= height || m.offset >= m.selected {
			return
		}
		m.offset++
	}
}

func clip(lines []string, offset, height int) string {
	if offset > len(lines) {
		offset = len(lines)
	}
	end := min(len(lines), offset+height)
	return strings.Join(lines[offset:end], "\n")
}

// sectionBreak reports whether gig i is the first past gig.
func (m *Model) sectionBreak(gigs []gig.Gig, i int) bool {
	return !gigs[i].Upcoming(m.now) && (i == 0 || gigs[i-1].Upcoming(m.now))
}

func (m *Model) badge(band string) string {
	a, ok := m.changed[band]
	if !ok {
		return ""
	}
	return " " + m.theme.ActionStyle(string(a)).Render("● "+string(a))
}

func (m *Model) cards(gigs []gig.Gig) []string {
	t := m.theme
	width := min(m.contentWidth()-2, 78)
	out := make([]string, 0, len(gigs))
	for i, g := range gigs {
		past := !g.Upcoming(m.now)
		band := t.Gig.Band
		if past {
			band = t.Gig.Past
		}
		lines := []string{band.Render(g.Band) + m.badge(g.Band)}
		meta := g.Location + " · " + gig.FormatDate(g.Date)
		if p := gig.FormatPrice(g.Price); p != "" {
			meta += "  " + t.Gig.Price.Render(p)
		}
		if strings.TrimSpace(g.Link) != "" {
			meta += "  " + t.Muted.Render("link")
		}
		lines = append(lines, t.Gig.Meta.Render(meta))
		if notes := strings.TrimSpace(g.Notes); notes != "" {
			lines = append(lines, t.Muted.Render(wordwrap.String(notes, width-4)))
		}
		if len(g.Interested) > 0 {
			lines = append(lines, t.Gig.Interest.Render("Interested: "+strings.Join(g.Interested, ", ")))
		}
		if len(g.TicketsBought) > 0 {
			lines = append(lines, t.Gig.Ticket.Render("Tickets: "+strings.Join(g.TicketsBought, ", ")))
		}
		style := t.Gig.Card
		if i == m.selected {
			style = t.Gig.Selected
		}
		block := style.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
		if m.sectionBreak(gigs, i) {
			block = t.Gig.Section.Render("Past") + "\n" + block
		}
		out = append(out, block)
	}
	return out
}

func (m *Model) tableRows(gigs []gig.Gig) []string {
	t := m.theme
	cell := func(s string, w int) string {
		s = truncate.StringWithTail(s, uint(w), "…")
		return lipgloss.NewStyle().Width(w).Render(s)
	}
	head := t.Gig.TableHead.Render(cell("DATE", 12) + cell("BAND", 22) + cell("VENUE", 18) + cell("PRICE", 9) + cell("INTERESTED", 18) + "TICKETS")
	out := make([]string, 0, len(gigs))
	for i, g := range gigs {
		price := gig.FormatPrice(g.Price)
		if price == "" {
			price = "-"
		}
		row := cell(gig.FormatDate(g.Date), 12) + cell(g.Band, 22) + cell(g.Location, 18) + cell(price, 9) +
			cell(strings.Join(g.Interested, ", "), 18) + truncate.StringWithTail(strings.Join(g.TicketsBought, ", "), 18, "…") + m.badge(g.Band)
		row = m.rowStyle(i, g).Render(row)
		if i == 0 {
			row = head + "\n" + row
		}
		if m.sectionBreak(gigs, i) {
			row = t.Gig.Section.Render("Past") + "\n" + row
		}
		out = append(out, row)
	}
	return out
}

func (m *Model) listRows(gigs []gig.Gig) []string {
	out := make([]string, 0, len(gigs))
	for i, g := range gigs {
		line := fmt.Sprintf("%-11s %s @ %s", gig.FormatDate(g.Date), g.Band, g.Location)
		line = truncate.StringWithTail(line, uint(max(20, m.contentWidth()-30)), "…")
		line += m.theme.Muted.Render(fmt.Sprintf("  %d♥ %d🎟", len(g.Interested), len(g.TicketsBought))) + m.badge(g.Band)
		row := m.rowStyle(i, g).Render(line)
		if m.sectionBreak(gigs, i) {
			row = m.theme.Gig.Section.Render("Past") + "\n" + row
		}
		out = append(out, row)
	}
	return out
}

func (m *Model) rowStyle(i int, g gig.Gig) lipgloss.Style {
	style := lipgloss.NewStyle()
	if !g.Upcoming(m.now) {
		style = m.theme.Gig.Past
	}
	if i == m.selected {
		style = style.Reverse(true)
	}
	return style
}

func (m *Model) historyLines() []string {
	t := m.theme
	if len(m.state.History) == 0 {
		return []string{t.Muted.Render("No history yet. Changes will appear here as you add, edit, and delete gigs.")}
	}
	var lines []string
	width := m.contentWidth()
	for _, h := range m.state.History {
		head := t.ActionStyle(string(h.Action)).Render(fmt.Sprintf("%-9s", h.Action))
		if h.Band != "" {
			head += " " + t.Gig.Band.Render(h.Band)
		}
		head += t.Muted.Render(fmt.Sprintf("  %s · %s", h.User, timeutil.Display(h.Timestamp, m.now)))
		lines = append(lines, head)
		if s := strings.TrimSpace(h.Summary); s != "" {
			for _, l := range strings.Split(wordwrap.String(s, max(20, width-4)), "\n") {
				lines = append(lines, "    "+l)
			}
		}
	}
	return lines
}
