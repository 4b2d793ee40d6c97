package edit

import (
	"context"
	"fmt"
	"io"

	"tableflip.dev/gigs/pkg/app"
	"tableflip.dev/gigs/pkg/gig"
	"tableflip.dev/gigs/pkg/runner"
	"tableflip.dev/gigs/pkg/runner/add"
)

// Edit changes the gig at RowIndex. Apply mutates a copy of the current
// gig; the history summary is diffed against the original.
type Edit struct {
	Controller *app.Controller
	RowIndex   int64
	Apply      func(g *gig.Gig) error
	Out        io.Writer
}

func (n *Edit) Do(ctx context.Context) error {
	defer n.Controller.Wait()
	if err := runner.Resume(ctx, n.Controller); err != nil {
		return err
	}
	before, ok := n.Controller.Snapshot().Gig(n.RowIndex)
	if !ok {
		return fmt.Errorf("%w: row %d", app.ErrGigNotFound, n.RowIndex)
	}
	after := before.Clone()
	if n.Apply != nil {
		if err := n.Apply(&after); err != nil {
			return err
		}
	}
	if err := after.Validate(); err != nil {
		return err
	}
	if err := add.AddNewPeople(ctx, n.Controller, after); err != nil {
		return err
	}
	if err := n.Controller.UpdateGig(ctx, &before, after); err != nil {
		return err
	}
	if err := runner.Settle(n.Controller); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(runner.Output(n.Out), "Updated %q\n", after.Band)
	return nil
}
