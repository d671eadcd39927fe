package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pillziy/internal/tui"
	"pillziy/pkg/logger"
)

func newInputCmd(opts *options, resolve resolveFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "input",
		Short: "Interactive phone field",
		Long: `Open an interactive terminal phone field.

Pick a country from the list (press / to filter), then type a number. Every
edit is formatted for the selected country; characters other than digits,
spaces, ( ) + and - and digits past the country's maximum length are dropped.
The composed value is printed on exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := resolve(cmd)
			if err != nil {
				return err
			}

			// The TUI owns the terminal, so it gets a silent logger.
			model, err := tui.New(tui.Config{
				Countries: deps.Countries,
				Country:   opts.country,
				Engine:    deps.Engine,
				Log:       logger.Discard(),
			})
			if err != nil {
				return err
			}

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("TUI error: %w", err)
			}

			if m, ok := final.(tui.Model); ok && m.Value() != "" {
				fmt.Fprintln(cmd.OutOrStdout(), m.Value())
			}
			return nil
		},
	}
}
