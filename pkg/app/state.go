package app

import (
	"fmt"
	"time"

	"tableflip.dev/gigs/pkg/gig"
)

// View is one of the ways the gig list can be shown.
type View string

const (
	ViewCards   View = "cards"
	ViewTable   View = "table"
	ViewList    View = "list"
	ViewHistory View = "history"
)

// Views lists every view in cycling order.
var Views = []View{ViewCards, ViewTable, ViewList, ViewHistory}

// ParseView validates a view name.
func ParseView(s string) (View, error) {
	for _, v := range Views {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
}

// Next returns the view after v, wrapping around.
func (v View) Next() View {
	for i, candidate := range Views {
		if candidate == v {
			return Views[(i+1)%len(Views)]
		}
	}
	return ViewCards
}

// ToastKind distinguishes informational toasts from failures.
type ToastKind string

const (
	ToastInfo  ToastKind = "info"
	ToastError ToastKind = "error"
)

// ToastLifetime is how long a toast stays visible.
const ToastLifetime = 3 * time.Second

// Toast is a short-lived status message. A newer toast replaces the last.
type Toast struct {
	Message string
	Kind    ToastKind
	At      time.Time
}

// Active reports whether the toast should still be shown at now.
func (t *Toast) Active(now time.Time) bool {
	return t != nil && now.Sub(t.At) < ToastLifetime
}

// State is everything the presentation layer renders.
type State struct {
	Session *gig.Session
	Gigs    []gig.Gig
	People  []string
	History []gig.HistoryEntry

	View     View
	Theme    string
	LastSeen string

	Loading    bool
	Refreshing bool
	LoginError string
	Toast      *Toast
}

// SignedIn reports whether a session is active.
func (s State) SignedIn() bool {
	return s.Session.Valid()
}

// User is the session name, empty when signed out.
func (s State) User() string {
	if s.Session == nil {
		return ""
	}
	return s.Session.Name
}

// Gig finds a gig by row index.
func (s State) Gig(rowIndex int64) (gig.Gig, bool) {
	for _, g := range s.Gigs {
		if g.RowIndex == rowIndex {
			return g.Clone(), true
		}
	}
	return gig.Gig{}, false
}

func (s State) clone() State {
	out := s
	if s.Session != nil {
		sess := *s.Session
		out.Session = &sess
	}
	if s.Gigs != nil {
		out.Gigs = make([]gig.Gig, len(s.Gigs))
		for i, g := range s.Gigs {
			out.Gigs[i] = g.Clone()
		}
	}
	out.People = append([]string(nil), s.People...)
	out.History = append([]gig.HistoryEntry(nil), s.History...)
	if s.Toast != nil {
		t := *s.Toast
		out.Toast = &t
	}
	return out
}

// EventKind says what changed.
type EventKind int

const (
	// EventStateChanged is sent after any state mutation.
	EventStateChanged EventKind = iota
	// EventToast is sent when a new toast is shown.
	EventToast
	// EventSignedOut is sent when the session ends, voluntarily or not.
	EventSignedOut
)

// Event notifies subscribers that the controller state moved on.
type Event struct {
	Kind EventKind
}
