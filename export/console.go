package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/herdscout/herdscout/models"
	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderTable formats a result table for the terminal. Wide tables are
// still printed in full; the terminal can wrap.
func RenderTable(t *models.Table) string {
	if t.Len() == 0 {
		return "No results found."
	}

	w := table.NewWriter()
	w.SetStyle(table.StyleLight)

	header := make(table.Row, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	w.AppendHeader(header)

	for _, row := range t.Rows {
		r := make(table.Row, len(t.Columns))
		for i, col := range t.Columns {
			r[i] = row[col]
		}
		w.AppendRow(r)
	}

	return w.Render()
}

// Summarize produces the quick aggregate view printed under a result table:
// total count plus the most frequent states, cities and herd prefixes when
// those columns exist.
func Summarize(t *models.Table) string {
	if t.Len() == 0 {
		return "No data to summarize."
	}

	lines := []string{fmt.Sprintf("Total results: %d", t.Len())}
	for _, agg := range []struct{ column, label string }{
		{"state", "Top states"},
		{"city", "Top cities"},
		{"herd_prefix", "Top herd prefixes"},
		{"name", "Most common names"},
	} {
		if top := topValues(t, agg.column, 5); top != "" {
			lines = append(lines, agg.label+": "+top)
		}
	}
	return strings.Join(lines, "\n")
}

// topValues counts the non-empty values of one column and formats the n
// most frequent as "value(count)". Ties order alphabetically so the output
// is stable.
func topValues(t *models.Table, column string, n int) string {
	counts := map[string]int{}
	for _, row := range t.Rows {
		if v := row[column]; v != "" {
			counts[v]++
		}
	}
	if len(counts) == 0 {
		return ""
	}

	type entry struct {
		value string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for v, c := range counts {
		entries = append(entries, entry{v, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].value < entries[j].value
	})

	if n > len(entries) {
		n = len(entries)
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprintf("%s(%d)", entries[i].value, entries[i].count)
	}
	return strings.Join(parts, ", ")
}
