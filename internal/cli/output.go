package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// render writes v in the requested format. Table output is delegated to rows.
func render(w io.Writer, format string, v any, rows func(table *tablewriter.Table) error) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	case outputTable:
		table := tablewriter.NewWriter(w)
		if err := rows(table); err != nil {
			return err
		}
		return table.Render()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
