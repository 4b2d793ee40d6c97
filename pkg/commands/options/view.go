package options

import (
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/gigs/pkg/app"
)

// ViewOptions selects how gigs are printed.
type ViewOptions struct {
	View    string
	Changed bool
}

func AddViewArgs(cmd *cobra.Command, o *ViewOptions) {
	names := make([]string, 0, len(app.Views))
	for _, v := range app.Views {
		if v != app.ViewHistory {
			names = append(names, string(v))
		}
	}
	cmd.Flags().StringVar(&o.View, "view", "",
		base.Wrap80("Layout, one of "+strings.Join(names, ", ")+". Defaults to cards."))
	cmd.Flags().BoolVar(&o.Changed, "changed", false,
		base.Wrap80("Only show gigs other people changed since history was last viewed."))
	_ = cmd.RegisterFlagCompletionFunc("view", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

// GetView validates the --view flag.
func (o *ViewOptions) GetView() (app.View, error) {
	if o.View == "" {
		return "", nil
	}
	return app.ParseView(o.View)
}
