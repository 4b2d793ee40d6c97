package remove

import (
	"context"
	"fmt"
	"io"

	"tableflip.dev/gigs/pkg/app"
	"tableflip.dev/gigs/pkg/runner"
)

// Remove deletes the gig at RowIndex.
type Remove struct {
	Controller *app.Controller
	RowIndex   int64
	Out        io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	defer n.Controller.Wait()
	if err := runner.Resume(ctx, n.Controller); err != nil {
		return err
	}
	g, ok := n.Controller.Snapshot().Gig(n.RowIndex)
	if !ok {
		return fmt.Errorf("%w: row %d", app.ErrGigNotFound, n.RowIndex)
	}
	if err := n.Controller.DeleteGig(ctx, g); err != nil {
		return err
	}
	if err := runner.Settle(n.Controller); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(runner.Output(n.Out), "Deleted %q\n", g.Band)
	return nil
}
