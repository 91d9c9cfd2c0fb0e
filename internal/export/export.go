// Package export writes a normalized trend list as CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/abelbrown/siadash/internal/trend"
)

// Header is the CSV column order.
var Header = []string{"title", "summary", "source", "category", "url", "traffic", "score"}

// Format selects an output encoding.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
)

// FormatFor picks a format from a file extension, defaulting to JSON.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return CSV
	}
	return JSON
}

func indicatorCell(i trend.Indicator) string {
	if i.IsZero() {
		return ""
	}
	if f, ok := i.Number(); ok {
		return fmt.Sprint(f)
	}
	return i.String()
}

// WriteCSV writes list with a header row. Indicators are written raw,
// without display separators.
func WriteCSV(w io.Writer, list []trend.Trend) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, t := range list {
		row := []string{t.Title, t.Summary, t.Source, t.Category, t.URL, indicatorCell(t.Traffic), indicatorCell(t.Score)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes list as an indented JSON array. A nil list is written
// as [].
func WriteJSON(w io.Writer, list []trend.Trend) error {
	if list == nil {
		list = []trend.Trend{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(list); err != nil {
		return fmt.Errorf("encode trends: %w", err)
	}
	return nil
}

// Write writes list in format f.
func Write(w io.Writer, f Format, list []trend.Trend) error {
	switch f {
	case CSV:
		return WriteCSV(w, list)
	case JSON:
		return WriteJSON(w, list)
	}
	return fmt.Errorf("export: unknown format %q", f)
}

// File writes list to path, choosing the format from its extension.
func File(path string, list []trend.Trend) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	if err := Write(f, FormatFor(path), list); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
