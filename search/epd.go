package search

import (
	"fmt"
	"strings"

	"github.com/herdscout/herdscout/models"
)

// Trait describes one EPD trait: the short key users type, the label shown
// in console output, the form input ids for its min/max/accuracy bounds, and
// the sort radio value when the results can be ordered by it.
type Trait struct {
	Key      string
	Label    string
	MinField string
	MaxField string
	AccField string
	SortVal  string
}

// Traits is the registry of searchable EPD traits in the order the site's
// form lays them out. Input ids follow the site's min<key>/max<key>/
// min<key>acc convention; the dollar-indexes have no accuracy input.
var Traits = []Trait{
	{Key: "ced", Label: "CED", MinField: "minced", MaxField: "maxced", AccField: "mincedacc", SortVal: "epd_ce"},
	{Key: "bw", Label: "BW", MinField: "minbwt", MaxField: "maxbwt", AccField: "minbwtacc", SortVal: "epd_bw"},
	{Key: "ww", Label: "WW", MinField: "minwwt", MaxField: "maxwwt", AccField: "minwwtacc", SortVal: "epd_ww"},
	{Key: "yw", Label: "YW", MinField: "minywt", MaxField: "maxywt", AccField: "minywtacc", SortVal: "epd_yw"},
	{Key: "milk", Label: "MK", MinField: "minmilk", MaxField: "maxmilk", AccField: "minmilkacc", SortVal: "epd_milk"},
	{Key: "cem", Label: "CEM", MinField: "mincem", MaxField: "maxcem", AccField: "mincemacc", SortVal: "epd_cem"},
	{Key: "st", Label: "ST", MinField: "minst", MaxField: "maxst", AccField: "minstacc", SortVal: "epd_stay"},
	{Key: "yg", Label: "YG", MinField: "minyg", MaxField: "maxyg", AccField: "minygacc", SortVal: "epd_yg"},
	{Key: "cw", Label: "CW", MinField: "mincw", MaxField: "maxcw", AccField: "mincwacc", SortVal: "epd_cw"},
	{Key: "rea", Label: "REA", MinField: "minrea", MaxField: "maxrea", AccField: "minreaacc", SortVal: "epd_rea"},
	{Key: "fat", Label: "FAT", MinField: "minft", MaxField: "maxft", AccField: "minftacc", SortVal: "epd_bf"},
	{Key: "marb", Label: "MB", MinField: "minmarb", MaxField: "maxmarb", AccField: "minmarbacc", SortVal: "epd_ms"},
	{Key: "cez", Label: "$CEZ", MinField: "mincez", MaxField: "maxcez", SortVal: "cez_index"},
	{Key: "bmi", Label: "$BMI", MinField: "minbmi", MaxField: "maxbmi", SortVal: "bmi_index"},
	{Key: "cpi", Label: "$CPI", MinField: "mincpi", MaxField: "maxcpi", SortVal: "cpi_index"},
	{Key: "f", Label: "$F", MinField: "minf", MaxField: "maxf", SortVal: "f_index"},
}

// traitAliases maps alternative spellings to canonical trait keys.
var traitAliases = map[string]string{
	"mk":   "milk",
	"ft":   "fat",
	"mb":   "marb",
	"$cez": "cez",
	"$bmi": "bmi",
	"$cpi": "cpi",
	"$f":   "f",
}

// TraitByKey resolves a trait key or alias to its registry entry.
func TraitByKey(key string) (Trait, bool) {
	k := strings.ToLower(strings.TrimSpace(key))
	if canon, ok := traitAliases[k]; ok {
		k = canon
	}
	for _, t := range Traits {
		if t.Key == k {
			return t, true
		}
	}
	return Trait{}, false
}

// TraitKeys lists the canonical trait keys, for error messages and help.
func TraitKeys() []string {
	keys := make([]string, len(Traits))
	for i, t := range Traits {
		keys[i] = t.Key
	}
	return keys
}

// ResolveSort maps a sort spelling ("ww", "weaning weight", "epd_ww")
// to the sort radio value the form expects.
func ResolveSort(input string) (string, error) {
	k := strings.ToLower(strings.TrimSpace(input))
	for _, t := range Traits {
		if t.SortVal == k {
			return k, nil
		}
	}
	if canon, ok := sortAliases[k]; ok {
		k = canon
	}
	if t, ok := TraitByKey(k); ok {
		return t.SortVal, nil
	}
	return "", models.NewSearchError(models.ErrCodeInvalidInput,
		fmt.Sprintf("unknown sort field %q (want one of %s)", input, strings.Join(TraitKeys(), ", ")), nil)
}

// sortAliases maps long-form sort spellings to trait keys.
var sortAliases = map[string]string{
	"calving ease":          "ced",
	"calving ease direct":   "ced",
	"birth weight":          "bw",
	"weaning weight":        "ww",
	"yearling weight":       "yw",
	"maternal milk":         "milk",
	"calving ease maternal": "cem",
	"stayability":           "st",
	"yield grade":           "yg",
	"carcass weight":        "cw",
	"ribeye area":           "rea",
	"ribeye":                "rea",
	"marbling":              "marb",
	"backfat":               "fat",
	"feedlot":               "f",
}
