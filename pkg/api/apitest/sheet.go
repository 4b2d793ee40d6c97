// Package apitest serves an in-memory spreadsheet over the gateway's JSON
// protocol for tests of code built on api.Client.
package apitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"tableflip.dev/gigs/pkg/api"
	"tableflip.dev/gigs/pkg/gig"
)

// Sheet is a fake gateway. Rows start at 2 and shift up on delete, like the
// real sheet. History is kept newest first.
type Sheet struct {
	Password string

	mu      sync.Mutex
	gigs    []gig.Gig
	people  []string
	history []gig.HistoryEntry
	actions []string
	delays  map[string]time.Duration
	now     func() time.Time
}

// NewSheet builds a sheet guarded by password and seeded with gigs.
func NewSheet(password string, gigs ...gig.Gig) *Sheet {
	s := &Sheet{Password: password, now: time.Now}
	for _, g := range gigs {
		s.appendLocked(g)
	}
	return s
}

// Serve starts an httptest server for the sheet and returns a client for
// it. The server is closed when the test ends.
func (s *Sheet) Serve(t testing.TB) *api.Client {
	t.Helper()
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	return api.New(api.Options{ScriptURL: srv.URL})
}

// AddPeople seeds the people list.
func (s *Sheet) AddPeople(names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.people = append(s.people, names...)
}

// AddHistory prepends entries, newest first.
func (s *Sheet) AddHistory(entries ...gig.HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(append([]gig.HistoryEntry(nil), entries...), s.history...)
}

// Delay makes the sheet wait d before answering action.
func (s *Sheet) Delay(action string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.delays == nil {
		s.delays = map[string]time.Duration{}
	}
	s.delays[action] = d
}

// Gigs returns a copy of the current rows.
func (s *Sheet) Gigs() []gig.Gig {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]gig.Gig, len(s.gigs))
	for i, g := range s.gigs {
		out[i] = g.Clone()
	}
	return out
}

// People returns a copy of the people list.
func (s *Sheet) People() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.people...)
}

// History returns a copy of the history, newest first.
func (s *Sheet) History() []gig.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]gig.HistoryEntry(nil), s.history...)
}

// Actions lists every action received, in order.
func (s *Sheet) Actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.actions...)
}

func (s *Sheet) appendLocked(g gig.Gig) {
	g.RowIndex = int64(len(s.gigs) + 2)
	s.gigs = append(s.gigs, g)
}

func (s *Sheet) recordLocked(action gig.Action, band, user, summary string) {
	entry := gig.HistoryEntry{
		Action:    action,
		Band:      band,
		User:      user,
		Summary:   summary,
		Timestamp: s.now().UTC().Format("2006-01-02T15:04:05.000Z"),
	}
	s.history = append([]gig.HistoryEntry{entry}, s.history...)
}

type request struct {
	Action    string   `json:"action"`
	Password  string   `json:"password"`
	User      string   `json:"user"`
	Gig       *gig.Gig `json:"gig"`
	RowIndex  int64    `json:"rowIndex"`
	Band      string   `json:"band"`
	Summary   string   `json:"summary"`
	Name      string   `json:"name"`
	EventType string   `json:"eventType"`
}

type reply struct {
	OK      bool               `json:"ok"`
	Error   string             `json:"error,omitempty"`
	Gigs    []gig.Gig          `json:"gigs,omitempty"`
	People  []string           `json:"people,omitempty"`
	History []gig.HistoryEntry `json:"history,omitempty"`
}

// ServeHTTP implements http.Handler.
func (s *Sheet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var req request
	if err := json.Unmarshal(raw, &req); err != nil {
		s.write(w, reply{Error: "Bad request"})
		return
	}

	s.mu.Lock()
	d := s.delays[req.Action]
	s.mu.Unlock()
	time.Sleep(d)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, req.Action)

	if req.Password != s.Password {
		s.write(w, reply{Error: "Invalid password"})
		return
	}

	switch req.Action {
	case "auth":
		s.write(w, reply{OK: true})
	case "getAll":
		s.write(w, reply{OK: true, Gigs: s.gigs, People: s.people, History: s.history})
	case "addGig":
		if req.Gig == nil {
			s.write(w, reply{Error: "Missing gig"})
			return
		}
		s.appendLocked(*req.Gig)
		s.recordLocked(gig.ActionAdded, req.Gig.Band, req.User, "")
		s.write(w, reply{OK: true})
	case "updateGig":
		if req.Gig == nil {
			s.write(w, reply{Error: "Missing gig"})
			return
		}
		for i := range s.gigs {
			if s.gigs[i].RowIndex == req.Gig.RowIndex {
				s.gigs[i] = *req.Gig
				s.recordLocked(gig.ActionEdited, req.Gig.Band, req.User, req.Summary)
				s.write(w, reply{OK: true})
				return
			}
		}
		s.write(w, reply{Error: "Gig not found"})
	case "deleteGig":
		for i := range s.gigs {
			if s.gigs[i].RowIndex == req.RowIndex {
				s.gigs = append(s.gigs[:i], s.gigs[i+1:]...)
				for j := i; j < len(s.gigs); j++ {
					s.gigs[j].RowIndex--
				}
				s.recordLocked(gig.ActionDeleted, req.Band, req.User, req.Summary)
				s.write(w, reply{OK: true})
				return
			}
		}
		s.write(w, reply{Error: "Gig not found"})
	case "addPerson":
		s.people = append(s.people, req.Name)
		s.write(w, reply{OK: true})
	case "logEvent":
		s.recordLocked(gig.Action(req.EventType), "", req.User, req.Summary)
		s.write(w, reply{OK: true})
	default:
		s.write(w, reply{Error: "Unknown action"})
	}
}

func (s *Sheet) write(w http.ResponseWriter, r reply) {
	w.Header().Set("Content-Type", "text/plain")
	_ = json.NewEncoder(w).Encode(r)
}
