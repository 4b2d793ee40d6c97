package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"tableflip.dev/gigs/pkg/api"
	"tableflip.dev/gigs/pkg/gig"
)

// fakeGateway is an in-memory spreadsheet. Row indexes are assigned on add
// and shift down on delete, like the real sheet.
type fakeGateway struct {
	mu       sync.Mutex
	password string
	gigs     []gig.Gig
	people   []string
	history  []gig.HistoryEntry

	authErr   error
	fetchErr  error
	addErr    error
	updateErr error
	deleteErr error
	personErr error

	// release, when set, holds writes until closed.
	release chan struct{}

	fetches int
	events  []gig.Action
	visits  int
}

func newFakeGateway(password string, gigs ...gig.Gig) *fakeGateway {
	f := &fakeGateway{password: password}
	for _, g := range gigs {
		f.appendLocked(g)
	}
	return f
}

func (f *fakeGateway) appendLocked(g gig.Gig) {
	g.RowIndex = int64(len(f.gigs) + 2)
	f.gigs = append(f.gigs, g)
}

func (f *fakeGateway) wait() {
	f.mu.Lock()
	ch := f.release
	f.mu.Unlock()
	if ch != nil {
		<-ch
	}
}

func (f *fakeGateway) CheckPassword(_ context.Context, password string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.authErr != nil {
		return false, f.authErr
	}
	return password == f.password, nil
}

func (f *fakeGateway) FetchAll(_ context.Context, password string) (api.Data, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.fetchErr != nil {
		return api.Data{}, f.fetchErr
	}
	if password != f.password {
		return api.Data{}, api.ErrAuthInvalid
	}
	out := api.Data{
		People:  append([]string(nil), f.people...),
		History: append([]gig.HistoryEntry(nil), f.history...),
	}
	for _, g := range f.gigs {
		out.Gigs = append(out.Gigs, g.Clone())
	}
	return out, nil
}

func (f *fakeGateway) AddGig(_ context.Context, _, user string, g gig.Gig) error {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return f.addErr
	}
	f.appendLocked(g.Clone())
	f.history = append([]gig.HistoryEntry{{Action: gig.ActionAdded, Band: g.Band, User: user}}, f.history...)
	return nil
}

func (f *fakeGateway) UpdateGig(_ context.Context, _, user string, g gig.Gig, summary string) error {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.gigs {
		if f.gigs[i].RowIndex == g.RowIndex {
			f.gigs[i] = g.Clone()
		}
	}
	f.history = append([]gig.HistoryEntry{{Action: gig.ActionEdited, Band: g.Band, User: user, Summary: summary}}, f.history...)
	return nil
}

func (f *fakeGateway) RemoveGig(_ context.Context, _, user string, g gig.Gig) error {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	remaining := f.gigs
	f.gigs = nil
	for _, existing := range remaining {
		if existing.RowIndex != g.RowIndex {
			f.appendLocked(existing)
		}
	}
	return nil
}

func (f *fakeGateway) AddPerson(_ context.Context, _, name string) error {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.personErr != nil {
		return f.personErr
	}
	f.people = append(f.people, name)
	return nil
}

func (f *fakeGateway) LogEvent(_, _ string, event gig.Action, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeGateway) LogVisitIfStale(store api.VisitStore, now time.Time, _, _ string) bool {
	if now.UnixMilli()-store.LastVisit() <= api.VisitInterval.Milliseconds() {
		return false
	}
	_ = store.SetLastVisit(now.UnixMilli())
	f.mu.Lock()
	f.visits++
	f.mu.Unlock()
	return true
}

func (f *fakeGateway) Flush() {}

func (f *fakeGateway) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

type memoryPrefs struct {
	mu        sync.Mutex
	session   *gig.Session
	theme     string
	lastSeen  string
	lastVisit int64
	saves     int
}

func (m *memoryPrefs) Session() *gig.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil
	}
	s := *m.session
	return &s
}

func (m *memoryPrefs) SaveSession(s gig.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	m.session = &s
	return nil
}

func (m *memoryPrefs) ClearSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

func (m *memoryPrefs) Theme() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.theme == "" {
		return "dark"
	}
	return m.theme
}

func (m *memoryPrefs) SetTheme(theme string) error {
	if theme != "light" && theme != "dark" {
		return errors.New("bad theme")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.theme = theme
	return nil
}

func (m *memoryPrefs) LastSeen() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lastSeen == "" {
		return gig.DefaultWatermark
	}
	return m.lastSeen
}

func (m *memoryPrefs) SetLastSeen(ts string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSeen = ts
	return nil
}

func (m *memoryPrefs) LastVisit() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastVisit
}

func (m *memoryPrefs) SetLastVisit(ms int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastVisit = ms
	return nil
}

type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
