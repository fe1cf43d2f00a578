package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatCSV   = "csv"
)

func parseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case FormatTable, FormatJSON, FormatYAML, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json, yaml or csv)", s)
	}
}

// Table is one named block of command output.
type Table struct {
	Name    string   `json:"name" yaml:"name"`
	Columns []string `json:"columns" yaml:"columns"`
	Rows    [][]any  `json:"rows" yaml:"rows"`
}

// AddRow appends one row in column order.
func (t *Table) AddRow(values ...any) {
	t.Rows = append(t.Rows, values)
}

// records keys each row by column name for the structured encoders.
func (t Table) records() []map[string]any {
	out := make([]map[string]any, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]any, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) {
				rec[col] = row[i]
			}
		}

		out = append(out, rec)
	}

	return out
}

// Render writes tables to w in the given format.
func Render(w io.Writer, format string, tables ...Table) error {
	f, err := parseFormat(format)
	if err != nil {
		return err
	}

	switch f {
	case FormatJSON:
		return renderJSON(w, tables)
	case FormatYAML:
		return renderYAML(w, tables)
	case FormatCSV:
		return renderCSV(w, tables)
	default:
		return renderTable(w, tables)
	}
}

func structured(tables []Table) map[string][]map[string]any {
	doc := make(map[string][]map[string]any, len(tables))
	for _, t := range tables {
		doc[t.Name] = t.records()
	}

	return doc
}

func renderJSON(w io.Writer, tables []Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(structured(tables))
}

func renderYAML(w io.Writer, tables []Table) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(structured(tables)); err != nil {
		return err
	}

	return enc.Close()
}

func renderCSV(w io.Writer, tables []Table) error {
	cw := csv.NewWriter(w)

	for _, t := range tables {
		if err := cw.Write(append([]string{"table"}, t.Columns...)); err != nil {
			return err
		}

		for _, row := range t.Rows {
			rec := make([]string, 0, len(row)+1)
			rec = append(rec, t.Name)

			for _, v := range row {
				rec = append(rec, formatCell(v))
			}

			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}

	cw.Flush()

	return cw.Error()
}

func renderTable(w io.Writer, tables []Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(tw)
		}

		fmt.Fprintf(tw, "# %s\n", t.Name)
		fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))

		for _, row := range t.Rows {
			cells := make([]string, len(row))
			for j, v := range row {
				cells[j] = formatCell(v)
			}

			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
	}

	return tw.Flush()
}

func formatCell(v any) string {
	switch x := v.(type) {
	case float64:
		return fmt.Sprintf("%.6g", x)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
