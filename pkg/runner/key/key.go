// Package key prints the terminal UI key bindings and the history legend.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/gigs/pkg/gig"
	"tableflip.dev/gigs/pkg/printers"
	"tableflip.dev/gigs/pkg/runner"
	tuiapp "tableflip.dev/gigs/pkg/tui/app"
)

// Key prints the legend.
type Key struct {
	Out io.Writer
}

// Do renders the key bindings and history actions.
func (k *Key) Do(_ context.Context) error {
	out := runner.Output(k.Out)
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Keys"), bold.Sprint("Action"))
	for _, b := range tuiapp.Bindings {
		tbl.AddRow(b.Keys, b.Help)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(out, "")
	_, _ = fmt.Fprintln(out, tbl)

	actions := []struct {
		action  gig.Action
		meaning string
	}{
		{gig.ActionAdded, "a gig was added"},
		{gig.ActionEdited, "a gig was changed; the summary lists what"},
		{gig.ActionDeleted, "a gig was removed"},
		{gig.ActionVisited, "someone opened the tracker"},
		{gig.ActionLoggedIn, "someone signed in"},
	}
	tbl = uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("History"), bold.Sprint("Meaning"))
	for _, a := range actions {
		tbl.AddRow(printers.ActionColor(a.action).Sprint(string(a.action)), a.meaning)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(out, "")
	_, _ = fmt.Fprintln(out, tbl)
	_, _ = fmt.Fprintln(out, "")
	_, _ = fmt.Fprintln(out, "* marks history from other people you have not seen yet.")
	return nil
}
