// Package cli implements the phonectl command tree.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"pillziy/pkg/locale"
	"pillziy/pkg/logger"
	"pillziy/pkg/numberplan"
	"pillziy/pkg/phoneinput"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

type options struct {
	output   string
	country  string
	logLevel string
	server   string
}

// Deps are the collaborators shared by every command. Zero fields fall back
// to the built-in country table and the libphonenumber engine.
type Deps struct {
	Countries *locale.Table
	Engine    phoneinput.Engine
	Log       *logger.Logger
}

func (d Deps) withDefaults(opts *options, stderr io.Writer) Deps {
	if d.Countries == nil {
		d.Countries = locale.Countries()
	}
	if d.Engine == nil {
		d.Engine = numberplan.New()
	}
	if d.Log == nil {
		d.Log = logger.New(logger.Config{
			Level:   opts.logLevel,
			Format:  logger.TEXT,
			Service: "phonectl",
			Output:  stderr,
		})
	}
	return d
}

// NewRootCommand builds a fresh command tree so tests can run commands in
// isolation.
func NewRootCommand(deps Deps) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "phonectl",
		Short: "Country-aware phone number input for the PILLziy site",
		Long: `Command-line tools around the PILLziy phone input.

phonectl lists the supported countries, runs numbers through the same
formatter the site uses, and opens an interactive terminal field that
formats the number as you type.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", outputTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.country, "country", "", "ISO 3166-1 alpha-2 country code (default: table default)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&opts.server, "server", "", "phone input API base URL; format runs remotely when set")

	resolve := func(cmd *cobra.Command) (Deps, error) {
		switch opts.output {
		case outputTable, outputJSON, outputYAML:
		default:
			return Deps{}, fmt.Errorf("unsupported output format %q", opts.output)
		}
		return deps.withDefaults(opts, cmd.ErrOrStderr()), nil
	}

	rootCmd.AddCommand(
		newCountriesCmd(opts, resolve),
		newFormatCmd(opts, resolve),
		newInputCmd(opts, resolve),
		newLeadCmd(opts, resolve),
	)

	return rootCmd
}

// Execute runs phonectl with the process arguments.
func Execute() error {
	return NewRootCommand(Deps{}).Execute()
}

type resolveFunc func(cmd *cobra.Command) (Deps, error)

func lookupCountry(table *locale.Table, code string) (locale.Country, error) {
	if code == "" {
		return table.Default(), nil
	}
	c, ok := table.Lookup(strings.ToUpper(code))
	if !ok {
		return locale.Country{}, fmt.Errorf("unknown country %q", code)
	}
	return c, nil
}
