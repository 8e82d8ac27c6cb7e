package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/NicolleP16/vrisa-mobile/pkg/sdk"
)

// Format selects how command results are rendered.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (expected table, json or yaml)", s)
	}
}

// Column describes one table column. Value overrides the default lookup of Key.
type Column struct {
	Header string
	Key    string
	Value  func(sdk.Record) string
}

// Printer renders records and payloads in the selected format.
type Printer struct {
	w      io.Writer
	format Format
}

// NewPrinter returns a printer writing to w.
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{w: w, format: format}
}

// Format returns the selected format.
func (p *Printer) Format() Format {
	return p.format
}

// Structured reports whether output is machine readable, in which case commands
// should avoid decorative console output.
func (p *Printer) Structured() bool {
	return p.format == FormatJSON || p.format == FormatYAML
}

// Records renders a list. Tables use the given columns.
func (p *Printer) Records(records []sdk.Record, columns ...Column) error {
	if p.format != FormatTable {
		if records == nil {
			records = []sdk.Record{}
		}
		return p.encode(records)
	}

	w := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Header
	}
	fmt.Fprintln(w, strings.Join(headers, "\t"))

	for _, rec := range records {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = cellValue(rec, col)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	return w.Flush()
}

// Record renders a single record. Tables list every field as KEY VALUE rows in
// key order.
func (p *Printer) Record(rec sdk.Record) error {
	if p.format != FormatTable {
		return p.encode(rec)
	}

	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%s\n", k, FormatValue(rec[k]))
	}
	return w.Flush()
}

// Value renders an arbitrary payload. Tables fall back to YAML, which stays
// readable for nested data.
func (p *Printer) Value(v any) error {
	if p.format == FormatJSON {
		return p.encode(v)
	}
	return p.encodeYAML(v)
}

func (p *Printer) encode(v any) error {
	if p.format == FormatYAML {
		return p.encodeYAML(v)
	}
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Printer) encodeYAML(v any) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func cellValue(rec sdk.Record, col Column) string {
	if col.Value != nil {
		return orDash(col.Value(rec))
	}
	return orDash(FormatValue(rec[col.Key]))
}

// FormatValue renders one payload value for a table cell.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	case map[string]any, []any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	default:
		return fmt.Sprint(val)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// ToRecord converts a JSON-tagged struct into a Record so it renders with the
// same field names in every format.
func ToRecord(v any) (sdk.Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	rec := sdk.Record{}
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}
