package models

// Row is one scraped result record, keyed by column name. The column set is
// whatever the site's results table carried on this run; nothing is fixed
// ahead of time.
type Row map[string]string

// Table is an ordered sequence of result rows plus the column order observed
// on the page. Row maps may be sparse; missing cells export as empty strings.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewTable creates an empty table with the given column order.
func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Append adds a row, extending the column order with any keys not seen yet.
// New columns keep their first-seen order so exports stay stable within a run.
func (t *Table) Append(row Row) {
	for _, col := range sortedNewKeys(t, row) {
		t.Columns = append(t.Columns, col)
	}
	t.Rows = append(t.Rows, row)
}

// Merge appends every row of other, used when pagination yields one table
// per page.
func (t *Table) Merge(other *Table) {
	if other == nil {
		return
	}
	for _, col := range other.Columns {
		if !t.hasColumn(col) {
			t.Columns = append(t.Columns, col)
		}
	}
	t.Rows = append(t.Rows, other.Rows...)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

func (t *Table) hasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// sortedNewKeys returns row keys absent from t.Columns. Within a single row
// map the iteration order is random, so unseen keys are ordered
// lexicographically to keep Append deterministic.
func sortedNewKeys(t *Table, row Row) []string {
	var fresh []string
	for k := range row {
		if !t.hasColumn(k) {
			fresh = append(fresh, k)
		}
	}
	for i := 1; i < len(fresh); i++ {
		for j := i; j > 0 && fresh[j] < fresh[j-1]; j-- {
			fresh[j], fresh[j-1] = fresh[j-1], fresh[j]
		}
	}
	return fresh
}
