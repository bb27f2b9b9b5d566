// Package extract turns the registry's result pages into tables. The column
// set is never hardcoded: header rows are read when present, and the known
// positional layouts are used only where the site renders headerless rows.
package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/herdscout/herdscout/form"
	"github.com/herdscout/herdscout/models"
)

// containerID is where the site renders every search's results.
const containerID = "dvSearchResults"

// Results parses one results page into a table. A present-but-empty
// container (the site's "no matches" rendering) yields an empty table, not
// an error.
func Results(htmlStr string, kind form.Kind) (*models.Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, models.NewSearchError(models.ErrCodeInternal,
			"failed to parse results HTML", err)
	}

	container := doc.Find("#" + containerID)
	if container.Length() == 0 {
		return models.NewTable(), nil
	}

	switch kind {
	case form.KindAnimal:
		return animalRows(container), nil
	case form.KindEPD:
		return epdRows(container), nil
	default:
		return ranchRows(container), nil
	}
}

// ranchRows reads the ranch results. The site renders these rows without a
// usable header, so a header row is preferred when one exists and the known
// positional layout is the fallback.
func ranchRows(container *goquery.Selection) *models.Table {
	if headers := headerColumns(container); len(headers) > 0 {
		return headerRows(container, headers)
	}

	positional := []string{"type", "member_id", "herd_prefix", "member_name", "dba", "city", "state"}
	table := models.NewTable()

	container.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < 3 {
			return
		}
		first := cellText(cells.Eq(0))
		if first == "" || first == "Type" || strings.Contains(first, "Profiles Match") {
			return
		}

		row := models.Row{}
		cells.Each(func(i int, td *goquery.Selection) {
			key := "column_" + strconv.Itoa(i)
			if i < len(positional) {
				key = positional[i]
			}
			row[key] = cellText(td)
		})
		if row["type"] != "" {
			table.Append(row)
		}
	})

	return table
}

// animalRows reads the animal results: registration (with its profile link),
// prefix/tattoo, name and birthdate. Rows whose registration link is missing
// or is a javascript: stub are placeholders and get skipped.
func animalRows(container *goquery.Selection) *models.Table {
	table := models.NewTable("registration", "registration_url", "prefix_tattoo", "name", "birthdate")

	container.Find(`tr[id^="tr_"]`).Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < 4 {
			return
		}

		regCell := cells.Eq(0)
		reg := cellText(regCell)
		regURL := ""
		if link := regCell.Find("a").First(); link.Length() > 0 {
			reg = cellText(link)
			regURL, _ = link.Attr("href")
		}
		if regURL == "" || regURL == "#" || strings.Contains(regURL, "javascript:") {
			return
		}

		table.Append(models.Row{
			"registration":     reg,
			"registration_url": regURL,
			"prefix_tattoo":    cellText(cells.Eq(1)),
			"name":             cellText(cells.Eq(2)),
			"birthdate":        cellText(cells.Eq(3)),
		})
	})

	return table
}

// epdTraitOrder is the display order of the trait columns in the EPD
// results grid. TM is derived by the site and has no search input, but it
// still shows up between MK and CEM.
var epdTraitOrder = []string{
	"CED", "BW", "WW", "YW", "MK", "TM", "CEM", "ST", "YG",
	"CW", "REA", "FAT", "MB", "$CEZ", "$BMI", "$CPI", "$F",
}

// epdRows reads the EPD results grid. Each trait cell holds a nested
// four-row table: the EPD value, the change since last evaluation, the
// accuracy, and the percentile rank.
func epdRows(container *goquery.Selection) *models.Table {
	table := models.NewTable("registration", "registration_url", "tattoo", "name")

	container.Find(`tr[id^="tr_"]`).Each(func(_ int, tr *goquery.Selection) {
		row := models.Row{}

		firstCell := tr.Find("td").First()
		if link := firstCell.Find("a").First(); link.Length() > 0 {
			row["registration"] = cellText(link)
			if href, ok := link.Attr("href"); ok {
				row["registration_url"] = href
			}
		}
		if nested := firstCell.Find("table").First(); nested.Length() > 0 {
			nestedRows := nested.Find("tr")
			if nestedRows.Length() > 1 {
				row["tattoo"] = cellText(nestedRows.Eq(1).Find("td").First())
			}
			if nestedRows.Length() > 2 {
				row["name"] = cellText(nestedRows.Eq(2).Find("td").First())
			}
		}

		traitCells := tr.Find(`td[style*="border-left:thin"]`)
		traitCells.Each(func(i int, td *goquery.Selection) {
			if i >= len(epdTraitOrder) {
				return
			}
			trait := epdTraitOrder[i]
			nested := td.Find("table").First()
			if nested.Length() == 0 {
				return
			}
			nestedRows := nested.Find("tr")
			if nestedRows.Length() < 4 {
				return
			}
			row[trait+"_epd"] = cellText(nestedRows.Eq(0).Find("td").First())
			row[trait+"_change"] = cellText(nestedRows.Eq(1).Find("td").First())
			row[trait+"_acc"] = cellText(nestedRows.Eq(2).Find("td").First())
			row[trait+"_rank"] = cellText(nestedRows.Eq(3).Find("td").First())
		})

		if len(row) > 0 {
			table.Append(row)
		}
	})

	return table
}

// headerColumns reads th cells from the container's first header row into
// snake_case column names. Empty when the results render headerless.
func headerColumns(container *goquery.Selection) []string {
	var headers []string
	container.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		ths := tr.Find("th")
		if ths.Length() == 0 {
			return true
		}
		ths.Each(func(_ int, th *goquery.Selection) {
			headers = append(headers, snakeCase(cellText(th)))
		})
		return false
	})
	return headers
}

// headerRows reads body rows using a previously discovered header order.
// Rows with more cells than headers spill into column_N keys.
func headerRows(container *goquery.Selection, headers []string) *models.Table {
	table := models.NewTable(headers...)

	container.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.Find("th").Length() > 0 {
			return
		}
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}
		row := models.Row{}
		cells.Each(func(i int, td *goquery.Selection) {
			key := "column_" + strconv.Itoa(i)
			if i < len(headers) {
				key = headers[i]
			}
			row[key] = cellText(td)
		})
		table.Append(row)
	})

	return table
}

func cellText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

// snakeCase turns a header label into a column name: "Member Name" becomes
// "member_name".
func snakeCase(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	var out []string
	for _, f := range fields {
		var b strings.Builder
		for _, r := range f {
			if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '$' {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			out = append(out, b.String())
		}
	}
	return strings.Join(out, "_")
}

