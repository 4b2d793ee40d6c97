package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/gigs/pkg/runner/people"
)

func addPeople(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "people",
		Short: "List people and what they are going to.",
		Example: `
gigs people
gigs people add Alice
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()
			s := people.People{Controller: e.Controller}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	addPeopleAdd(cmd)

	topLevel.AddCommand(cmd)
}

func addPeopleAdd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a person to the shared list.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()
			s := people.People{Controller: e.Controller, Add: args[0]}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	parent.AddCommand(cmd)
}
