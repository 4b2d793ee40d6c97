// Package snake fills in command flags by prompting for them.
package snake

import (
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// Field is one flag to ask for.
type Field struct {
	Flag     string
	Label    string
	Default  string
	Required bool
}

// Asker returns the answer for f.
type Asker func(f Field) (string, error)

// PromptFlags asks for every field whose flag was not given on the command
// line and sets the answers on cmd. A blank answer, or one equal to the
// default, leaves the flag unset.
func PromptFlags(cmd *cobra.Command, fields []Field, ask Asker) error {
	flags := cmd.Flags()
	for _, f := range fields {
		if flags.Changed(f.Flag) {
			continue
		}
		answer, err := ask(f)
		if err != nil {
			return err
		}
		if answer == "" || answer == f.Default {
			continue
		}
		if err := flags.Set(f.Flag, answer); err != nil {
			return fmt.Errorf("--%s: %w", f.Flag, err)
		}
	}
	return nil
}

// Ask prompts on cmd's input and output with promptui.
func Ask(cmd *cobra.Command) Asker {
	return func(f Field) (string, error) {
		templates := &promptui.PromptTemplates{
			Prompt:  "{{ . }}: ",
			Valid:   "{{ . | green }}: ",
			Invalid: "{{ . | red }}: ",
			Success: "{{ . | bold }}: ",
		}
		prompt := promptui.Prompt{
			Label:     f.Label,
			Default:   f.Default,
			AllowEdit: true,
			Templates: templates,
			Validate: func(input string) error {
				if f.Required && input == "" && f.Default == "" {
					return errors.New("required")
				}
				return nil
			},
			Stdin:  io.NopCloser(cmd.InOrStdin()),
			Stdout: nopWriteCloser{cmd.OutOrStdout()},
		}
		return prompt.Run()
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
