package history

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"tableflip.dev/gigs/pkg/app"
	"tableflip.dev/gigs/pkg/printers"
	"tableflip.dev/gigs/pkg/runner"
	"tableflip.dev/gigs/pkg/timeutil"
)

// History prints the edit history, newest first. With Since set it prints
// a per-band report of gig changes inside that window instead.
type History struct {
	Controller *app.Controller
	// MarkSeen advances the watermark once the history is shown.
	MarkSeen bool
	// Since is a window such as "7d" or "1w2d".
	Since string
	JSON  bool
	Now   time.Time
	Out   io.Writer
}

func (n *History) Do(ctx context.Context) error {
	var window time.Duration
	if n.Since != "" {
		var err error
		if window, err = timeutil.ParseWindow(n.Since); err != nil {
			return err
		}
	}
	defer n.Controller.Wait()
	if err := runner.Resume(ctx, n.Controller); err != nil {
		return err
	}
	now := n.Now
	if now.IsZero() {
		now = time.Now()
	}

	state := n.Controller.Snapshot()
	out := runner.Output(n.Out)
	pp := printers.PrettyPrint{Out: out, Now: now}

	switch {
	case n.Since != "":
		report := app.Report(state.History, now.Add(-window), now)
		if n.JSON {
			if err := encode(out, report); err != nil {
				return err
			}
		} else {
			pp.Report(report)
		}
	case n.JSON:
		if err := encode(out, state.History); err != nil {
			return err
		}
	default:
		pp.History(state.History, n.Controller.Unseen())
	}

	if n.MarkSeen {
		n.Controller.MarkSeen()
	}
	return nil
}

func encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
