// Package apptest wires a Controller to an in-memory gateway and a
// temporary preference store.
package apptest

import (
	"testing"

	"tableflip.dev/gigs/pkg/api/apitest"
	"tableflip.dev/gigs/pkg/app"
	"tableflip.dev/gigs/pkg/gig"
	"tableflip.dev/gigs/pkg/store"
)

type dirConfig string

func (d dirConfig) BasePath() string { return string(d) }

// Env is a wired controller and its collaborators.
type Env struct {
	Sheet      *apitest.Sheet
	Prefs      *store.Prefs
	Controller *app.Controller
}

// New serves sheet and builds a controller over it. When user is not empty
// a session for user with the sheet's password is saved first.
func New(t testing.TB, sheet *apitest.Sheet, user string) *Env {
	t.Helper()
	prefs, err := store.Open(dirConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("open prefs: %v", err)
	}
	if user != "" {
		if err := prefs.SaveSession(gig.Session{Name: user, Password: sheet.Password}); err != nil {
			t.Fatalf("save session: %v", err)
		}
	}
	ctrl := app.New(app.Config{Gateway: sheet.Serve(t), Prefs: prefs})
	t.Cleanup(ctrl.Wait)
	return &Env{Sheet: sheet, Prefs: prefs, Controller: ctrl}
}
