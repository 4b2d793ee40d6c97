package ui

import (
	"context"

	"tableflip.dev/gigs/pkg/app"
	"tableflip.dev/gigs/pkg/store"
	tuiapp "tableflip.dev/gigs/pkg/tui/app"
)

// UI opens the terminal interface, resuming a saved session when present.
type UI struct {
	Controller *app.Controller
	Prefs      *store.Prefs
}

func (d *UI) Do(ctx context.Context) error {
	// Without a session the UI opens on the login screen; load failures
	// surface as a toast.
	_ = d.Controller.Restore(ctx)
	defer d.Controller.Wait()
	return tuiapp.Run(ctx, d.Controller, tuiapp.Options{Prefs: d.Prefs})
}
