package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/gigs/pkg/commands/options"
	"tableflip.dev/gigs/pkg/runner/history"
)

func addHistory(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	var (
		markSeen bool
		since    string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show who added, edited and deleted gigs.",
		Example: `
gigs history
gigs history --mark-seen
gigs history --since 1w
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.Close()
			s := history.History{
				Controller: e.Controller,
				MarkSeen:   markSeen,
				Since:      since,
				JSON:       oo.JSON,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	cmd.Flags().BoolVar(&markSeen, "mark-seen", false,
		base.Wrap80("Clear the new-changes markers after showing the history."))
	cmd.Flags().StringVar(&since, "since", "",
		base.Wrap80(`Summarise gig changes per band over a window, example: --since="1w2d".`))
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
