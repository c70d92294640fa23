package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// outputFormat returns the selected output format.
func outputFormat() string {
	format := viper.GetString("output")
	if format == "" {
		return OutputFormatTable
	}

	return format
}

// renderOutput writes data as JSON or YAML, or as a table built by fill.
func renderOutput(w io.Writer, format string, data interface{}, header []string, fill func(table *tablewriter.Table)) error {
	switch format {
	case OutputFormatJSON:
		return renderJSON(w, data)
	case OutputFormatYAML:
		return renderYAML(w, data)
	case OutputFormatTable, "":
		table := tablewriter.NewWriter(w)
		table.Header(toAny(header)...)
		fill(table)

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidOutputFormat, format)
	}
}

func renderJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

func renderYAML(w io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(defaultYAMLIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return encoder.Close()
}

func toAny(values []string) []any {
	res := make([]any, len(values))
	for i, v := range values {
		res[i] = v
	}

	return res
}
