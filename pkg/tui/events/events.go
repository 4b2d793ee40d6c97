// Package events defines the messages that bridge controller and store
// notifications into the Bubble Tea loop.
package events

import (
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/gigs/pkg/app"
	"tableflip.dev/gigs/pkg/store"
)

// StateMsg is delivered when the controller state changed.
type StateMsg struct {
	Event app.Event
}

// PrefsMsg is delivered when a preference changed on disk.
type PrefsMsg struct {
	Key string
}

// TickMsg drives toast expiry.
type TickMsg time.Time

// ClosedMsg is delivered when an event source closes.
type ClosedMsg struct{}

// WaitForState blocks on the next controller event.
func WaitForState(ch <-chan app.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return ClosedMsg{}
		}
		return StateMsg{Event: ev}
	}
}

// WaitForPrefs blocks on the next preference change.
func WaitForPrefs(ch <-chan store.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return ClosedMsg{}
		}
		return PrefsMsg{Key: ev.Key}
	}
}

// Tick schedules a TickMsg after d.
func Tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg(t) })
}
