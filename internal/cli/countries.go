package cli

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"pillziy/pkg/locale"
)

type countryRow struct {
	Code     string `json:"code" yaml:"code"`
	Name     string `json:"name" yaml:"name"`
	DialCode string `json:"dial_code" yaml:"dial_code"`
	Flag     string `json:"flag" yaml:"flag"`
}

func newCountriesCmd(opts *options, resolve resolveFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "countries [query]",
		Short: "List supported countries",
		Long: `List the countries offered by the phone input.

An optional query filters by country name, ISO code or dial code. Matching
ignores case and accents, so "cote" finds Côte d'Ivoire and "+44" finds the
United Kingdom.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := resolve(cmd)
			if err != nil {
				return err
			}

			countries := deps.Countries.All()
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				countries = deps.Countries.Search(args[0])
			}

			rows := make([]countryRow, 0, len(countries))
			for _, c := range countries {
				rows = append(rows, countryRow{
					Code:     c.Code,
					Name:     c.Name,
					DialCode: c.DialCode,
					Flag:     locale.FlagFor(c.Code),
				})
			}

			return render(cmd.OutOrStdout(), opts.output, rows, func(table *tablewriter.Table) error {
				table.Header("Code", "Country", "Dial code", "Flag")
				for _, r := range rows {
					if err := table.Append(r.Code, r.Name, r.DialCode, r.Flag); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
