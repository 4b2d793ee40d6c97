package add

import (
	"context"
	"fmt"
	"io"

	"tableflip.dev/gigs/pkg/app"
	"tableflip.dev/gigs/pkg/gig"
	"tableflip.dev/gigs/pkg/runner"
)

// Add creates a gig and records any names it introduces as people.
type Add struct {
	Controller *app.Controller
	Gig        gig.Gig
	Out        io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if err := n.Gig.Validate(); err != nil {
		return err
	}
	defer n.Controller.Wait()
	if err := runner.Resume(ctx, n.Controller); err != nil {
		return err
	}
	if err := AddNewPeople(ctx, n.Controller, n.Gig); err != nil {
		return err
	}
	if _, err := n.Controller.AddGig(ctx, n.Gig); err != nil {
		return err
	}
	if err := runner.Settle(n.Controller); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(runner.Output(n.Out), "Added %q at %s on %s\n", n.Gig.Band, n.Gig.Location, gig.FormatDate(n.Gig.Date))
	return nil
}

// AddNewPeople adds every interested or ticket holder name that is not yet
// in the people list.
func AddNewPeople(ctx context.Context, ctrl *app.Controller, g gig.Gig) error {
	known := map[string]bool{}
	for _, p := range ctrl.Snapshot().People {
		known[p] = true
	}
	names := append(append([]string(nil), g.Interested...), g.TicketsBought...)
	for _, name := range names {
		if known[name] {
			continue
		}
		known[name] = true
		if err := ctrl.AddPerson(ctx, name); err != nil {
			return err
		}
	}
	return nil
}
