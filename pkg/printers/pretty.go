// Package printers renders gigs, people and history for the command line.
package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/gigs/pkg/gig"
	"tableflip.dev/gigs/pkg/timeutil"
)

// PrettyPrint writes colourised output. Changed maps band names to the
// latest unseen action so those gigs can be flagged.
type PrettyPrint struct {
	Out     io.Writer
	Now     time.Time
	Width   int
	Changed map[string]gig.Action
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) now() time.Time {
	if pp.Now.IsZero() {
		return time.Now()
	}
	return pp.Now
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return 80
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " %d\n", count)
}

func (pp *PrettyPrint) none(msg string) {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintf(pp.out(), " %s\n\n", msg)
}

// badge renders the unseen-change marker for band, empty when unchanged.
func (pp *PrettyPrint) badge(band string) string {
	a, ok := pp.Changed[band]
	if !ok {
		return ""
	}
	return ActionColor(a).Sprintf("● %s", a)
}

// ActionColor picks the colour used for a history action.
func ActionColor(a gig.Action) *color.Color {
	switch a {
	case gig.ActionAdded:
		return color.New(color.FgCyan)
	case gig.ActionDeleted:
		return color.New(color.FgRed)
	case gig.ActionEdited:
		return color.New(color.FgYellow)
	default:
		return color.New(color.Faint)
	}
}

// Gigs prints gigs in the given view, split into upcoming and past.
func (pp *PrettyPrint) Gigs(view string, gigs []gig.Gig) {
	if len(gigs) == 0 {
		pp.none("No gigs yet. Add your first gig with `gigs add`.")
		return
	}
	upcoming, past := gig.Partition(gigs, pp.now())
	sections := []struct {
		title string
		gigs  []gig.Gig
	}{{"Upcoming", upcoming}, {"Past", past}}

	for _, s := range sections {
		if len(s.gigs) == 0 {
			continue
		}
		pp.TitleWithCount(s.title, len(s.gigs))
		switch view {
		case "table":
			pp.Table(s.gigs)
		case "list":
			pp.List(s.gigs)
		default:
			pp.Cards(s.gigs)
		}
		pp.NewLine()
	}
}

// Cards prints one block per gig.
func (pp *PrettyPrint) Cards(gigs []gig.Gig) {
	w := pp.out()
	band := color.New(color.Bold)
	faint := color.New(color.Faint)
	price := color.New(color.FgGreen)
	label := color.New(color.Faint, color.Italic)
	ticket := color.New(color.FgHiMagenta)

	for _, g := range gigs {
		_, _ = band.Fprint(w, g.Band)
		if b := pp.badge(g.Band); b != "" {
			_, _ = fmt.Fprint(w, "  ", b)
		}
		_, _ = faint.Fprintf(w, "  #%d\n", g.RowIndex)

		_, _ = fmt.Fprintf(w, "  %s · %s", g.Location, gig.FormatDate(g.Date))
		if p := gig.FormatPrice(g.Price); p != "" {
			_, _ = price.Fprintf(w, "  %s", p)
		}
		_, _ = fmt.Fprintln(w)

		if link := strings.TrimSpace(g.Link); link != "" {
			_, _ = faint.Fprintf(w, "  %s\n", link)
		}
		if notes := strings.TrimSpace(g.Notes); notes != "" {
			_, _ = fmt.Fprintln(w, indent.String(wordwrap.String(notes, pp.width()-4), 2))
		}
		if len(g.Interested) > 0 {
			_, _ = label.Fprint(w, "  Interested ")
			_, _ = fmt.Fprintln(w, strings.Join(g.Interested, ", "))
		}
		if len(g.TicketsBought) > 0 {
			_, _ = label.Fprint(w, "  Tickets    ")
			_, _ = ticket.Fprintln(w, strings.Join(g.TicketsBought, ", "))
		}
		_, _ = fmt.Fprintln(w)
	}
}

// Table prints gigs as aligned columns, truncating long cells.
func (pp *PrettyPrint) Table(gigs []gig.Gig) {
	bold := color.New(color.Bold)
	cell := func(s string, n uint) string {
		return truncate.StringWithTail(s, n, "…")
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ROW"), bold.Sprint("DATE"), bold.Sprint("BAND"), bold.Sprint("VENUE"),
		bold.Sprint("PRICE"), bold.Sprint("INTERESTED"), bold.Sprint("TICKETS"), "")
	for _, g := range gigs {
		p := gig.FormatPrice(g.Price)
		if p == "" {
			p = "-"
		}
		tbl.AddRow(
			g.RowIndex,
			gig.FormatDate(g.Date),
			cell(g.Band, 24),
			cell(g.Location, 20),
			p,
			cell(strings.Join(g.Interested, ", "), 20),
			cell(strings.Join(g.TicketsBought, ", "), 20),
			pp.badge(g.Band),
		)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// List prints one compact line per gig.
func (pp *PrettyPrint) List(gigs []gig.Gig) {
	w := pp.out()
	faint := color.New(color.Faint)
	for _, g := range gigs {
		line := fmt.Sprintf("%-11s %s @ %s", gig.FormatDate(g.Date), g.Band, g.Location)
		_, _ = fmt.Fprint(w, truncate.StringWithTail(line, uint(pp.width()-24), "…"))
		_, _ = faint.Fprintf(w, "  (%d interested, %d tickets)", len(g.Interested), len(g.TicketsBought))
		if b := pp.badge(g.Band); b != "" {
			_, _ = fmt.Fprint(w, "  ", b)
		}
		_, _ = fmt.Fprintln(w)
	}
}

// History prints entries newest first, flagging those after watermark.
func (pp *PrettyPrint) History(entries []gig.HistoryEntry, unseen []gig.HistoryEntry) {
	if len(entries) == 0 {
		pp.none("No history yet. Changes will appear here as you add, edit, and delete gigs.")
		return
	}
	isNew := make(map[gig.HistoryEntry]bool, len(unseen))
	for _, u := range unseen {
		isNew[u] = true
	}

	w := pp.out()
	faint := color.New(color.Faint)
	band := color.New(color.Bold)
	fresh := color.New(color.FgHiYellow, color.Bold)
	for _, h := range entries {
		if isNew[h] {
			_, _ = fresh.Fprint(w, "* ")
		} else {
			_, _ = fmt.Fprint(w, "  ")
		}
		_, _ = ActionColor(h.Action).Fprintf(w, "%-9s ", h.Action)
		if h.Band != "" {
			_, _ = band.Fprint(w, h.Band, " ")
		}
		_, _ = faint.Fprintf(w, "by %s, %s\n", h.User, timeutil.Display(h.Timestamp, pp.now()))
		if s := strings.TrimSpace(h.Summary); s != "" {
			_, _ = fmt.Fprintln(w, indent.String(wordwrap.String(s, pp.width()-4), 4))
		}
	}
}

// People prints the shared people list with how many gigs each is into.
func (pp *PrettyPrint) People(people []string, gigs []gig.Gig) {
	if len(people) == 0 {
		pp.none("No people yet.")
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("NAME"), bold.Sprint("INTERESTED"), bold.Sprint("TICKETS"))
	for _, name := range people {
		interested, tickets := 0, 0
		for _, g := range gigs {
			if g.HasInterest(name) {
				interested++
			}
			if g.HasTicket(name) {
				tickets++
			}
		}
		tbl.AddRow(name, interested, tickets)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
