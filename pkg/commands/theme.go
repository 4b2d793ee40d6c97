package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/gigs/pkg/runner/theme"
	"tableflip.dev/gigs/pkg/store"
)

func addTheme(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "theme [light|dark|auto|toggle]",
		Short: "Show or change the colour theme.",
		Example: `
gigs theme
gigs theme light
gigs theme auto
`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{store.ThemeLight, store.ThemeDark, theme.Auto, theme.Toggle},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()
			s := theme.Theme{Controller: e.Controller}
			if len(args) == 1 {
				s.Choice = args[0]
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}
