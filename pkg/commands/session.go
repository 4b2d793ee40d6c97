package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/gigs/pkg/runner/login"
)

func addLogin(topLevel *cobra.Command) {
	var name, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with your name and the shared password.",
		Example: `
gigs login --name Alice
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()
			l := login.Login{
				Controller: e.Controller,
				Name:       name,
				Password:   password,
				In:         cmd.InOrStdin(),
			}
			return l.Do(context.Background())
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Your name, shown in the history.")
	cmd.Flags().StringVar(&password, "password", "", "The shared password. Prompted for when omitted.")

	topLevel.AddCommand(cmd)
}

func addLogout(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()
			l := login.Logout{Controller: e.Controller}
			return l.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
