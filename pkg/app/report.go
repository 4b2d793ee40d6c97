package app

import (
	"sort"
	"time"

	"tableflip.dev/gigs/pkg/gig"
	"tableflip.dev/gigs/pkg/timeutil"
)

// ReportSection groups the history of one band.
type ReportSection struct {
	Band    string
	Entries []gig.HistoryEntry
}

// ReportResult summarises gig activity between two instants.
type ReportResult struct {
	Since    time.Time
	Until    time.Time
	Sections []ReportSection
	Total    int
}

// Report groups gig actions in history with timestamps inside [since,
// until] by band. Sections are ordered by their newest entry; entries keep
// the gateway's newest-first order. Unparseable timestamps are skipped.
func Report(history []gig.HistoryEntry, since, until time.Time) ReportResult {
	if since.After(until) {
		since, until = until, since
	}
	index := make(map[string]int)
	var sections []ReportSection
	total := 0
	for _, h := range history {
		if !h.Action.IsGigAction() {
			continue
		}
		at, err := timeutil.Parse(h.Timestamp)
		if err != nil || at.Before(since) || at.After(until) {
			continue
		}
		i, ok := index[h.Band]
		if !ok {
			i = len(sections)
			index[h.Band] = i
			sections = append(sections, ReportSection{Band: h.Band})
		}
		sections[i].Entries = append(sections[i].Entries, h)
		total++
	}
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Entries[0].Timestamp > sections[j].Entries[0].Timestamp
	})
	return ReportResult{Since: since, Until: until, Sections: sections, Total: total}
}
