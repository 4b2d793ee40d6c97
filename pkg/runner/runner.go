// Package runner holds helpers shared by the command runners.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/gigs/pkg/app"
)

// ErrNotSignedIn is returned by runners that need a saved session.
var ErrNotSignedIn = errors.New("not signed in, run `gigs login` first")

// Resume restores the saved session and loads data. Restore may log a visit
// in the background, so callers defer ctrl.Wait.
func Resume(ctx context.Context, ctrl *app.Controller) error {
	err := ctrl.Restore(ctx)
	switch {
	case errors.Is(err, app.ErrNoSession):
		return ErrNotSignedIn
	case err != nil:
		if s := ctrl.Snapshot(); !s.SignedIn() && s.LoginError != "" {
			return fmt.Errorf("%s: %w", s.LoginError, err)
		}
		return err
	}
	return nil
}

// Settle waits for background writes and reports a failure toast raised by
// them as an error.
func Settle(ctrl *app.Controller) error {
	ctrl.Wait()
	if t := ctrl.Snapshot().Toast; t != nil && t.Kind == app.ToastError {
		return errors.New(t.Message)
	}
	return nil
}

// Output defaults w to color.Output.
func Output(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}
