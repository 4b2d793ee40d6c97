// Package changes derives which gigs other people touched since the history
// view was last opened.
package changes

import (
	"strings"

	"tableflip.dev/gigs/pkg/gig"
)

// Projection is the derived view of history used for the unseen badge and
// per-gig highlights.
type Projection struct {
	Unseen  []gig.HistoryEntry
	Changed map[string]gig.Action
}

// Count is the unseen badge number.
func (p Projection) Count() int {
	return len(p.Unseen)
}

// ActionFor returns the most recent unseen action for band, if any.
func (p Projection) ActionFor(band string) (gig.Action, bool) {
	a, ok := p.Changed[band]
	return a, ok
}

// Detect computes both projections for user against watermark.
func Detect(history []gig.HistoryEntry, user, watermark string) Projection {
	unseen := Unseen(history, user, watermark)
	return Projection{Unseen: unseen, Changed: ChangeMap(unseen)}
}

// Unseen filters history to gig actions by someone other than user with a
// timestamp after watermark. Timestamps compare as strings, which orders
// ISO-8601 values correctly. History order is preserved.
func Unseen(history []gig.HistoryEntry, user, watermark string) []gig.HistoryEntry {
	if user == "" {
		return nil
	}
	if watermark == "" {
		watermark = gig.DefaultWatermark
	}
	var out []gig.HistoryEntry
	for _, h := range history {
		if !h.Action.IsGigAction() {
			continue
		}
		if strings.EqualFold(h.User, user) {
			continue
		}
		if h.Timestamp == "" || h.Timestamp <= watermark {
			continue
		}
		out = append(out, h)
	}
	return out
}

// ChangeMap maps each band to the action of its first entry in unseen. The
// gateway sends history newest first, so that is the latest change.
func ChangeMap(unseen []gig.HistoryEntry) map[string]gig.Action {
	m := make(map[string]gig.Action, len(unseen))
	for _, h := range unseen {
		if h.Band == "" {
			continue
		}
		if _, seen := m[h.Band]; seen {
			continue
		}
		m[h.Band] = h.Action
	}
	return m
}
