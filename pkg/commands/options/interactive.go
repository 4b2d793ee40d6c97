package options

import (
	"github.com/spf13/cobra"
)

// InteractiveOptions makes add and edit prompt for the gig fields left off
// the command line.
type InteractiveOptions struct {
	Interactive bool
}

func InteractiveArgs(cmd *cobra.Command, o *InteractiveOptions) {
	cmd.Flags().BoolVarP(&o.Interactive, "interactive", "i", false,
		`Prompt for gig fields not given as flags.`)
}
