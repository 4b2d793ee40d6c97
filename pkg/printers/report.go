package printers

import (
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/gigs/pkg/app"
)

// Report prints gig activity grouped by band.
func (pp *PrettyPrint) Report(res app.ReportResult) {
	w := pp.out()
	faint := color.New(color.Faint)
	_, _ = faint.Fprintf(w, "%s → %s\n\n", res.Since.Local().Format("Mon 2 Jan 15:04"), res.Until.Local().Format("Mon 2 Jan 15:04"))
	if res.Total == 0 {
		pp.none("Nothing changed in this window.")
		return
	}
	for _, s := range res.Sections {
		title := s.Band
		if title == "" {
			title = "(no band)"
		}
		pp.TitleWithCount(title, len(s.Entries))
		pp.History(s.Entries, nil)
		pp.NewLine()
	}
	_, _ = fmt.Fprintf(w, "%d changes\n", res.Total)
}
