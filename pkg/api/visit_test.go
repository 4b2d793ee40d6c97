package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memVisits struct {
	last int64
}

func (m *memVisits) LastVisit() int64 { return m.last }

func (m *memVisits) SetLastVisit(ms int64) error {
	m.last = ms
	return nil
}

func TestLogVisitIfStaleThrottles(t *testing.T) {
	gw := &fakeGateway{}
	c := newTestClient(t, gw)
	store := &memVisits{}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, c.LogVisitIfStale(store, now, "pw", "Alice"))
	assert.Equal(t, now.UnixMilli(), store.last)

	assert.False(t, c.LogVisitIfStale(store, now.Add(30*time.Minute), "pw", "Alice"))
	assert.False(t, c.LogVisitIfStale(store, now.Add(time.Hour), "pw", "Alice"))
	assert.True(t, c.LogVisitIfStale(store, now.Add(time.Hour+time.Millisecond), "pw", "Alice"))

	c.Flush()
	calls := gw.Calls()
	require.Len(t, calls, 2)
	for _, call := range calls {
		assert.Equal(t, "logEvent", call.Action)
		assert.Equal(t, "Visited", call.Body["eventType"])
	}
}
