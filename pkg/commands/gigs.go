package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tableflip.dev/gigs/pkg/commands/options"
	"tableflip.dev/gigs/pkg/gig"
	"tableflip.dev/gigs/pkg/runner/add"
	"tableflip.dev/gigs/pkg/runner/edit"
	"tableflip.dev/gigs/pkg/runner/get"
	"tableflip.dev/gigs/pkg/runner/remove"
	"tableflip.dev/gigs/pkg/snake"
)

func addList(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "get"},
		Short:   "List gigs, upcoming first.",
		Example: `
gigs list
gigs list --view table
gigs list --changed
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			view, err := vo.GetView()
			if err != nil {
				return oo.HandleError(err)
			}
			e, err := loadEnv(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.Close()
			s := get.Get{
				Controller:  e.Controller,
				View:        view,
				ChangedOnly: vo.Changed,
				JSON:        oo.JSON,
				Width:       terminalWidth(),
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddViewArgs(cmd, vo)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addAdd(topLevel *cobra.Command) {
	o := &options.GigOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a gig.",
		Example: `
gigs add --band "The Band" --location "The Venue" --date 2024-05-01
gigs add -b "The Band" -l "The Venue" -d 2024-05-01 -p 25 --interested "Alice, Bob"
gigs add -i
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if i.Interactive {
				if err := snake.PromptFlags(cmd, o.Fields(nil), snake.Ask(cmd)); err != nil {
					return err
				}
			}
			g := gig.Gig{Interested: []string{}, TicketsBought: []string{}}
			if err := o.Apply(cmd, &g); err != nil {
				return output.HandleError(err)
			}
			e, err := loadEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()
			s := add.Add{Controller: e.Controller, Gig: g}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddGigArgs(cmd, o)
	options.InteractiveArgs(cmd, i)

	topLevel.AddCommand(cmd)
}

func addEdit(topLevel *cobra.Command) {
	o := &options.GigOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "edit <row>",
		Short: "Change fields of a gig. Only the flags given are changed.",
		Example: `
gigs edit 4 --price 30
gigs edit 4 --tickets "Alice, Bob"
gigs edit 4 -i
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			row, err := parseRow(args[0])
			if err != nil {
				return err
			}
			e, err := loadEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()
			s := edit.Edit{
				Controller: e.Controller,
				RowIndex:   row,
				Apply: func(g *gig.Gig) error {
					if i.Interactive {
						if err := snake.PromptFlags(cmd, o.Fields(g), snake.Ask(cmd)); err != nil {
							return err
						}
					}
					return o.Apply(cmd, g)
				},
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddGigArgs(cmd, o)
	options.InteractiveArgs(cmd, i)

	topLevel.AddCommand(cmd)
}

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete <row>",
		Aliases: []string{"rm"},
		Short:   "Delete a gig.",
		Example: `
gigs delete 4
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			row, err := parseRow(args[0])
			if err != nil {
				return err
			}
			e, err := loadEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()
			s := remove.Remove{Controller: e.Controller, RowIndex: row}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}

// parseRow reads a row index as shown by `gigs list --view table`.
func parseRow(arg string) (int64, error) {
	row, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("row must be a number, got %q", arg)
	}
	return row, nil
}

func terminalWidth() int {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(int(fd))
	if err != nil {
		return 0
	}
	return w
}
