package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/herdscout/herdscout/models"
)

// fuzzyThreshold is the minimum Jaro-Winkler similarity for the fuzzy tier.
// Below this the input is considered unmatched rather than guessed at.
const fuzzyThreshold = 0.88

// MatchOption maps a free-text filter value onto one of the live dropdown
// options. The tie-break ladder is explicit and ordered; tiers never mix and
// the first qualifying option within a tier wins, in page option order:
//
//  1. exact value match (case-insensitive, whitespace-collapsed)
//  2. exact label match
//  3. substring containment in either direction
//  4. a purely numeric input selects by 1-based option index when in range;
//     a value or label that IS the number wins in the earlier tiers first
//  5. Jaro-Winkler similarity against labels, best score above threshold,
//     earlier option winning ties
//
// The returned option carries the underlying submitted value, never just the
// display label. No match yields a NO_OPTION_MATCH error naming the
// currently valid options.
func MatchOption(input string, opts []Option) (Option, error) {
	if len(opts) == 0 {
		return Option{}, models.NewSearchError(models.ErrCodeNoOptionMatch,
			"dropdown has no options to match against", nil)
	}

	norm := normalize(input)
	if norm == "" {
		return Option{}, models.NewSearchError(models.ErrCodeInvalidInput,
			"empty filter value", nil)
	}

	// Tier 1: exact value.
	for _, o := range opts {
		if normalize(o.Value) == norm {
			return o, nil
		}
	}

	// Tier 2: exact label.
	for _, o := range opts {
		if normalize(o.Label) == norm {
			return o, nil
		}
	}

	// Tier 3: substring containment either way, page order.
	for _, o := range opts {
		label := normalize(o.Label)
		if label == "" {
			continue
		}
		if strings.Contains(label, norm) || strings.Contains(norm, label) {
			return o, nil
		}
	}

	// Tier 4: numeric index, only once no option matched the number itself.
	if n, err := strconv.Atoi(norm); err == nil {
		if n >= 1 && n <= len(opts) {
			return opts[n-1], nil
		}
		return Option{}, noMatch(input, opts,
			fmt.Sprintf("index %d out of range 1..%d", n, len(opts)))
	}

	// Tier 5: fuzzy. Strictly better score wins, so ties keep the earlier
	// option, matching the page-order rule of the tiers above.
	best := -1
	bestScore := 0.0
	for i, o := range opts {
		score := matchr.JaroWinkler(norm, normalize(o.Label), true)
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	if best >= 0 && bestScore >= fuzzyThreshold {
		return opts[best], nil
	}

	return Option{}, noMatch(input, opts, "")
}

// MatchLocation resolves a location filter against the member-location
// dropdown. On top of the standard ladder it understands the site's
// "Country|ST" value format and common US state spellings, so "TX",
// "Texas" and "United States|TX" all land on the same option.
func MatchLocation(input string, opts []Option) (Option, error) {
	norm := normalize(input)

	// "Country|ST": try the full value first, then just the state code.
	if strings.Contains(norm, "|") {
		if o, err := MatchOption(norm, opts); err == nil {
			return o, nil
		}
		parts := strings.SplitN(norm, "|", 2)
		code := strings.TrimSpace(parts[1])
		for _, o := range opts {
			if strings.HasSuffix(normalize(o.Value), "|"+code) {
				return o, nil
			}
		}
	}

	// A bare two-letter state code matches the value suffix before the
	// generic ladder gets a chance to fuzzy-guess.
	if len(norm) == 2 {
		for _, o := range opts {
			if strings.HasSuffix(normalize(o.Value), "|"+norm) {
				return o, nil
			}
		}
	}

	if full, ok := stateAliases[strings.ToLower(norm)]; ok {
		if o, err := MatchOption(full, opts); err == nil {
			return o, nil
		}
	}

	return MatchOption(input, opts)
}

// SuggestOptions returns up to limit options ranked by Jaro-Winkler
// similarity to the input, for "did you mean" output.
func SuggestOptions(input string, opts []Option, limit int) []Option {
	type scored struct {
		opt   Option
		score float64
	}
	norm := normalize(input)
	ranked := make([]scored, 0, len(opts))
	for _, o := range opts {
		ranked = append(ranked, scored{o, matchr.JaroWinkler(norm, normalize(o.Label), true)})
	}
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].score > ranked[j-1].score; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	if limit > len(ranked) {
		limit = len(ranked)
	}
	out := make([]Option, 0, limit)
	for _, r := range ranked[:limit] {
		out = append(out, r.opt)
	}
	return out
}

func noMatch(input string, opts []Option, extra string) error {
	labels := make([]string, 0, len(opts))
	for _, o := range opts {
		if o.Label != "" {
			labels = append(labels, o.Label)
		} else {
			labels = append(labels, o.Value)
		}
	}
	msg := fmt.Sprintf("no option matches %q", input)
	if extra != "" {
		msg += " (" + extra + ")"
	}
	if sugg := SuggestOptions(input, opts, 3); len(sugg) > 0 {
		near := make([]string, 0, len(sugg))
		for _, o := range sugg {
			if o.Label != "" {
				near = append(near, o.Label)
			} else {
				near = append(near, o.Value)
			}
		}
		msg += "; did you mean " + strings.Join(near, ", ") + "?"
	}
	msg += " valid options: " + strings.Join(labels, ", ")
	return models.NewSearchError(models.ErrCodeNoOptionMatch, msg, nil)
}

// normalize collapses whitespace and uppercases for comparison. The site's
// own values are uppercase-ish ("United States|TX"), so comparisons are
// case-insensitive throughout.
func normalize(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

// stateAliases maps lowercase US state codes and names to the spelling the
// site's location labels use. Only states that appear in the registry's
// dropdown need entries; unknown inputs fall through to the fuzzy tier.
var stateAliases = map[string]string{
	"tx": "Texas", "texas": "Texas",
	"ca": "California", "california": "California",
	"ny": "New York", "new york": "New York",
	"fl": "Florida", "florida": "Florida",
	"il": "Illinois", "illinois": "Illinois",
	"pa": "Pennsylvania", "pennsylvania": "Pennsylvania",
	"oh": "Ohio", "ohio": "Ohio",
	"ga": "Georgia", "georgia": "Georgia",
	"nc": "North Carolina", "north carolina": "North Carolina",
	"mi": "Michigan", "michigan": "Michigan",
	"ok": "Oklahoma", "oklahoma": "Oklahoma",
	"ks": "Kansas", "kansas": "Kansas",
	"ne": "Nebraska", "nebraska": "Nebraska",
	"mo": "Missouri", "missouri": "Missouri",
	"ia": "Iowa", "iowa": "Iowa",
	"sd": "South Dakota", "south dakota": "South Dakota",
	"nd": "North Dakota", "north dakota": "North Dakota",
	"mt": "Montana", "montana": "Montana",
}
