package extract

import (
	"testing"

	"github.com/herdscout/herdscout/form"
)

const ranchResultsHTML = `
<div id="dvSearchResults">
<table>
<tr><td>Type</td><td>Member ID</td><td>Prefix</td><td>Name</td><td>DBA</td><td>City</td><td>State</td></tr>
<tr><td colspan="7">2 Profiles Match Your Search Criteria</td></tr>
<tr id="tr_1"><td>ACTIVE</td><td>12345</td><td>XYZ</td><td>PLAINS CATTLE CO</td><td></td><td>AMARILLO</td><td>TX</td></tr>
<tr id="tr_2"><td>ACTIVE</td><td>67890</td><td>ABC</td><td>RED RIVER RANCH</td><td>RRR</td><td>DURANT</td><td>OK</td></tr>
<tr><td></td><td></td><td></td></tr>
</table>
</div>`

const ranchHeaderedResultsHTML = `
<div id="dvSearchResults">
<table>
<tr><th>Type</th><th>Member Name</th><th>Herd Prefix</th></tr>
<tr><td>ACTIVE</td><td>PLAINS CATTLE CO</td><td>XYZ</td></tr>
</table>
</div>`

const animalResultsHTML = `
<div id="dvSearchResults">
<table>
<tr id="tr_1">
	<td><a href="/reg/animal.aspx?id=4321">4321</a></td>
	<td>XYZ 12A</td>
	<td>PLAINS DUKE 12A</td>
	<td>01/15/2022</td>
</tr>
<tr id="tr_2">
	<td><a href="javascript:void(0)">9999</a></td>
	<td>ABC 9Z</td>
	<td>PLACEHOLDER</td>
	<td>02/02/2022</td>
</tr>
<tr id="tr_3">
	<td><a href="#">8888</a></td>
	<td>DEF 1B</td>
	<td>STUB</td>
	<td>03/03/2022</td>
</tr>
</table>
</div>`

func epdCell(epd, change, acc, rank string) string {
	return `<td style="border-left:thin solid black"><table>` +
		`<tr><td>` + epd + `</td></tr>` +
		`<tr><td>` + change + `</td></tr>` +
		`<tr><td>` + acc + `</td></tr>` +
		`<tr><td>` + rank + `</td></tr>` +
		`</table></td>`
}

func TestResults_RanchPositional(t *testing.T) {
	table, err := Results(ranchResultsHTML, form.KindRanch)
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("got %d rows, want 2 (header and banner rows must be skipped)", table.Len())
	}

	row := table.Rows[0]
	want := map[string]string{
		"type":        "ACTIVE",
		"member_id":   "12345",
		"herd_prefix": "XYZ",
		"member_name": "PLAINS CATTLE CO",
		"dba":         "",
		"city":        "AMARILLO",
		"state":       "TX",
	}
	for col, val := range want {
		if row[col] != val {
			t.Errorf("row[%q] = %q, want %q", col, row[col], val)
		}
	}
	if table.Rows[1]["dba"] != "RRR" {
		t.Errorf("second row dba = %q, want RRR", table.Rows[1]["dba"])
	}
}

func TestResults_RanchHeaderDriven(t *testing.T) {
	table, err := Results(ranchHeaderedResultsHTML, form.KindRanch)
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	wantCols := []string{"type", "member_name", "herd_prefix"}
	if len(table.Columns) != len(wantCols) {
		t.Fatalf("columns = %v, want %v", table.Columns, wantCols)
	}
	for i, c := range wantCols {
		if table.Columns[i] != c {
			t.Errorf("Columns[%d] = %q, want %q", i, table.Columns[i], c)
		}
	}
	if table.Len() != 1 {
		t.Fatalf("got %d rows, want 1", table.Len())
	}
	if table.Rows[0]["member_name"] != "PLAINS CATTLE CO" {
		t.Errorf("member_name = %q", table.Rows[0]["member_name"])
	}
}

func TestResults_AnimalSkipsStubLinks(t *testing.T) {
	table, err := Results(animalResultsHTML, form.KindAnimal)
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("got %d rows, want 1 (javascript: and # links are stubs)", table.Len())
	}

	row := table.Rows[0]
	if row["registration"] != "4321" {
		t.Errorf("registration = %q, want 4321", row["registration"])
	}
	if row["registration_url"] != "/reg/animal.aspx?id=4321" {
		t.Errorf("registration_url = %q", row["registration_url"])
	}
	if row["prefix_tattoo"] != "XYZ 12A" {
		t.Errorf("prefix_tattoo = %q", row["prefix_tattoo"])
	}
	if row["name"] != "PLAINS DUKE 12A" {
		t.Errorf("name = %q", row["name"])
	}
	if row["birthdate"] != "01/15/2022" {
		t.Errorf("birthdate = %q", row["birthdate"])
	}
}

func TestResults_EPDTraitGrid(t *testing.T) {
	htmlStr := `<div id="dvSearchResults"><table><tr id="tr_1">` +
		`<td><a href="/reg/animal.aspx?id=4321">4321</a>` +
		`<table><tr><td>4321</td></tr><tr><td>XYZ 12A</td></tr><tr><td>PLAINS DUKE 12A</td></tr></table></td>` +
		epdCell("12.1", "+0.3", "0.45", "15") +
		epdCell("-1.2", "-0.1", "0.52", "20") +
		epdCell("65.4", "+1.1", "0.48", "10") +
		`</tr></table></div>`

	table, err := Results(htmlStr, form.KindEPD)
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("got %d rows, want 1", table.Len())
	}

	row := table.Rows[0]
	if row["registration"] != "4321" {
		t.Errorf("registration = %q, want 4321", row["registration"])
	}
	if row["tattoo"] != "XYZ 12A" {
		t.Errorf("tattoo = %q", row["tattoo"])
	}
	if row["name"] != "PLAINS DUKE 12A" {
		t.Errorf("name = %q", row["name"])
	}

	// Trait cells map onto the display order: CED, BW, WW.
	checks := map[string]string{
		"CED_epd": "12.1", "CED_change": "+0.3", "CED_acc": "0.45", "CED_rank": "15",
		"BW_epd": "-1.2", "BW_acc": "0.52",
		"WW_epd": "65.4", "WW_rank": "10",
	}
	for col, val := range checks {
		if row[col] != val {
			t.Errorf("row[%q] = %q, want %q", col, row[col], val)
		}
	}
}

func TestResults_MissingContainer(t *testing.T) {
	table, err := Results("<html><body><p>nothing here</p></body></html>", form.KindRanch)
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("got %d rows, want 0", table.Len())
	}
}

func TestResults_EmptyContainer(t *testing.T) {
	table, err := Results(`<div id="dvSearchResults"></div>`, form.KindAnimal)
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("got %d rows, want 0", table.Len())
	}
}

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Member Name", "member_name"},
		{"Herd Prefix", "herd_prefix"},
		{"Reg #", "reg"},
		{"$CEZ", "$cez"},
		{"  City  ", "city"},
	}
	for _, tt := range tests {
		if got := snakeCase(tt.in); got != tt.want {
			t.Errorf("snakeCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
