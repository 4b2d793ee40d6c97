package get

import (
	"context"
	"encoding/json"
	"io"

	"tableflip.dev/gigs/pkg/app"
	"tableflip.dev/gigs/pkg/gig"
	"tableflip.dev/gigs/pkg/printers"
	"tableflip.dev/gigs/pkg/runner"
)

// Get prints the gig list.
type Get struct {
	Controller *app.Controller
	View       app.View
	// ChangedOnly keeps gigs other people touched since history was last
	// opened.
	ChangedOnly bool
	JSON        bool
	Width       int
	Out         io.Writer
}

func (n *Get) Do(ctx context.Context) error {
	// Restore may queue a visit event; it must reach the gateway before exit.
	defer n.Controller.Wait()
	if err := runner.Resume(ctx, n.Controller); err != nil {
		return err
	}
	state := n.Controller.Snapshot()
	changed := n.Controller.ChangedGigs()

	gigs := state.Gigs
	if n.ChangedOnly {
		gigs = make([]gig.Gig, 0, len(changed))
		for _, g := range state.Gigs {
			if _, ok := changed[g.Band]; ok {
				gigs = append(gigs, g)
			}
		}
	}

	out := runner.Output(n.Out)
	if n.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(gigs)
	}

	view := n.View
	if view == "" {
		view = state.View
	}
	pp := printers.PrettyPrint{Out: out, Width: n.Width, Changed: changed}
	pp.NewLine()
	pp.Gigs(string(view), gigs)
	return nil
}
