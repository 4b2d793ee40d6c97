package people

import (
	"context"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/gigs/pkg/app"
	"tableflip.dev/gigs/pkg/printers"
	"tableflip.dev/gigs/pkg/runner"
)

// People lists the shared people list, or adds Add to it.
type People struct {
	Controller *app.Controller
	Add        string
	Out        io.Writer
}

func (n *People) Do(ctx context.Context) error {
	defer n.Controller.Wait()
	if err := runner.Resume(ctx, n.Controller); err != nil {
		return err
	}
	out := runner.Output(n.Out)

	if name := strings.TrimSpace(n.Add); name != "" {
		for _, p := range n.Controller.Snapshot().People {
			if p == name {
				_, _ = fmt.Fprintf(out, "%s is already listed\n", name)
				return nil
			}
		}
		if err := n.Controller.AddPerson(ctx, name); err != nil {
			return err
		}
		if err := runner.Settle(n.Controller); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Added %s\n", name)
		return nil
	}

	state := n.Controller.Snapshot()
	pp := printers.PrettyPrint{Out: out}
	pp.People(state.People, state.Gigs)
	return nil
}
