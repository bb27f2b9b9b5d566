// Package export writes result tables to CSV and JSON files and renders
// them for the console.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/herdscout/herdscout/models"
)

// Supported export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ValidFormat reports whether the format string names a supported export.
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatCSV, FormatJSON:
		return true
	}
	return false
}

// Exporter writes tables to disk. Auto-generated filenames land in Dir and
// carry Prefix plus a timestamp.
type Exporter struct {
	Dir    string
	Prefix string
}

// Write exports the table in the given format. filename may be empty, in
// which case one is generated; either way the path actually written is
// returned. An empty table still produces a valid file (header-only CSV,
// empty JSON array) so downstream tooling never sees a missing file.
func (e *Exporter) Write(table *models.Table, format, filename string) (string, error) {
	format = strings.ToLower(format)
	if !ValidFormat(format) {
		return "", models.NewSearchError(models.ErrCodeInvalidInput,
			fmt.Sprintf("unsupported export format %q (want csv or json)", format), nil)
	}

	path := e.resolvePath(format, filename)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", exportErr(path, "create output dir", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", exportErr(path, "create file", err)
	}
	defer f.Close()

	switch format {
	case FormatCSV:
		err = writeCSV(f, table)
	case FormatJSON:
		err = writeJSON(f, table)
	}
	if err != nil {
		return "", exportErr(path, "write", err)
	}
	return path, nil
}

func writeCSV(f *os.File, table *models.Table) error {
	// csv.Writer handles quoting, embedded commas and line endings.
	w := csv.NewWriter(f)

	if err := w.Write(table.Columns); err != nil {
		return err
	}
	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, col := range table.Columns {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(f *os.File, table *models.Table) error {
	rows := table.Rows
	if rows == nil {
		rows = []models.Row{}
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(rows)
}

// resolvePath sanitizes a user-supplied filename or generates a timestamped
// one, and guarantees the right extension.
func (e *Exporter) resolvePath(format, filename string) string {
	ext := "." + format
	if filename == "" {
		prefix := e.Prefix
		if prefix == "" {
			prefix = "herdscout"
		}
		stamp := time.Now().Format("20060102_150405")
		return filepath.Join(dirOrDot(e.Dir), prefix+"_"+stamp+ext)
	}

	filename = Sanitize(filename)
	if !strings.HasSuffix(strings.ToLower(filename), ext) {
		filename += ext
	}
	if filepath.IsAbs(filename) || strings.ContainsRune(filename, os.PathSeparator) {
		return filename
	}
	return filepath.Join(dirOrDot(e.Dir), filename)
}

func dirOrDot(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

// Sanitize replaces characters that are unsafe in filenames. Path
// separators are kept so callers can still point at a subdirectory.
func Sanitize(filename string) string {
	const invalid = `<>:"|?*`
	out := strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalid, r) {
			return '_'
		}
		return r
	}, filename)
	out = strings.Trim(out, ". ")
	if out == "" {
		out = "herdscout"
	}
	return out
}

func exportErr(path, what string, err error) error {
	return models.NewSearchError(models.ErrCodeExportFailed,
		fmt.Sprintf("failed to %s for %q", what, path), err)
}
