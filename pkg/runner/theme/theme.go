package theme

import (
	"context"
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"tableflip.dev/gigs/pkg/app"
	"tableflip.dev/gigs/pkg/runner"
	"tableflip.dev/gigs/pkg/store"
)

// Choices accepted by Theme.
const (
	Auto   = "auto"
	Toggle = "toggle"
)

// Theme shows or changes the colour theme. Auto picks from the terminal
// background.
type Theme struct {
	Controller *app.Controller
	Choice     string
	// DarkBackground reports the terminal background; defaults to termenv.
	DarkBackground func() bool
	Out            io.Writer
}

func (n *Theme) Do(_ context.Context) error {
	out := runner.Output(n.Out)
	var (
		next string
		err  error
	)
	switch n.Choice {
	case "":
		_, _ = fmt.Fprintln(out, n.Controller.Snapshot().Theme)
		return nil
	case Toggle:
		next, err = n.Controller.ToggleTheme()
	case Auto:
		dark := n.DarkBackground
		if dark == nil {
			dark = termenv.HasDarkBackground
		}
		next = store.ThemeLight
		if dark() {
			next = store.ThemeDark
		}
		err = n.Controller.SetTheme(next)
	default:
		next = n.Choice
		err = n.Controller.SetTheme(next)
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Theme set to %s\n", next)
	return nil
}
