package api

import (
	"time"

	"tableflip.dev/gigs/pkg/gig"
)

// VisitInterval is the minimum gap between two logged visits.
const VisitInterval = time.Hour

// VisitStore persists the time of the last logged visit.
type VisitStore interface {
	// LastVisit returns epoch milliseconds, zero when never recorded.
	LastVisit() int64
	SetLastVisit(ms int64) error
}

// LogVisitIfStale logs a Visited event when more than VisitInterval has
// passed since the last one. The watermark is advanced before the event is
// sent so concurrent restores do not double count. It reports whether a
// visit was logged.
func (c *Client) LogVisitIfStale(store VisitStore, now time.Time, password, user string) bool {
	ms := now.UnixMilli()
	if ms-store.LastVisit() <= VisitInterval.Milliseconds() {
		return false
	}
	if err := store.SetLastVisit(ms); err != nil {
		c.log.Warn(err, "could not persist last visit")
	}
	c.LogEvent(password, user, gig.ActionVisited, "")
	return true
}
