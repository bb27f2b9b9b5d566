package query

import (
	"regexp"
	"strings"

	"github.com/herdscout/herdscout/models"
)

var (
	prefixRe   = regexp.MustCompile(`prefix\s+([a-z0-9*]+)`)
	namedRe    = regexp.MustCompile(`ranch(?:es)?\s+named\s+([a-z0-9*]+)`)
	cityRe     = regexp.MustCompile(`\bcity\s+([a-z ]+)`)
	memberIDRe = regexp.MustCompile(`member\s*id\s*([0-9]+)`)
	nearRe     = regexp.MustCompile(`\b(?:in|near|at)\s+([a-z ]+)`)

	eidRe    = regexp.MustCompile(`eid\s*([a-z0-9*]+)`)
	tattooRe = regexp.MustCompile(`tattoo\s*([a-z0-9*]+)`)
	regRe    = regexp.MustCompile(`reg(?:istration)?\s*#?\s*([a-z0-9*]+)`)
	nameRe   = regexp.MustCompile(`name\s+([a-z0-9*]+)`)

	sortByRe = regexp.MustCompile(`sort\s+by\s+([a-z $]+)`)
)

// ParseRanch extracts ranch filters from a free-text query. Location hints
// ("in texas", "near amarillo") pass through as raw text when they aren't a
// known state; the dropdown matcher resolves them against the live options.
func ParseRanch(q string) models.RanchFilter {
	norm := Normalize(q)
	var f models.RanchFilter

	if m := prefixRe.FindStringSubmatch(norm); m != nil {
		f.Prefix = strings.ToUpper(m[1])
	}
	if m := namedRe.FindStringSubmatch(norm); m != nil {
		f.Name = strings.ToUpper(m[1])
	}
	if m := cityRe.FindStringSubmatch(norm); m != nil {
		f.City = strings.ToUpper(strings.TrimSpace(m[1]))
	}
	if m := memberIDRe.FindStringSubmatch(norm); m != nil {
		f.MemberID = m[1]
	}

	for alias, value := range stateVocab {
		if containsToken(norm, alias) {
			f.Location = value
			break
		}
	}
	if f.Location == "" {
		if m := nearRe.FindStringSubmatch(norm); m != nil {
			f.Location = strings.TrimSpace(m[1])
		}
	}

	return f
}

// ParseAnimal extracts the animal search field, value and sex from a
// free-text query. "registered bulls reg 12345" selects the registration
// field; "cows named ..." selects the name field.
func ParseAnimal(q string) models.AnimalFilter {
	norm := Normalize(q)
	var f models.AnimalFilter

	for token, sex := range sexVocab {
		if containsToken(norm, token) {
			f.Sex = sex
			break
		}
	}

	switch {
	case strings.Contains(norm, "eid"):
		f.Field = models.AnimalFieldEID
		if m := eidRe.FindStringSubmatch(norm); m != nil {
			f.Value = strings.ToUpper(m[1])
		}
	case strings.Contains(norm, "tattoo"):
		f.Field = models.AnimalFieldTattoo
		if m := tattooRe.FindStringSubmatch(norm); m != nil {
			f.Value = strings.ToUpper(m[1])
		}
	case strings.Contains(norm, "reg"):
		f.Field = models.AnimalFieldRegistration
		if m := regRe.FindStringSubmatch(norm); m != nil {
			f.Value = strings.ToUpper(m[1])
		}
	case strings.Contains(norm, "name"):
		f.Field = models.AnimalFieldName
		if m := nameRe.FindStringSubmatch(norm); m != nil {
			f.Value = strings.ToUpper(m[1])
		}
	}

	return f
}

// ParseEPD extracts trait windows ("milk > 25", "ww >= 60"), sex and a sort
// hint from a free-text query. A bare "=" sets both bounds.
func ParseEPD(q string) models.EPDFilter {
	norm := Normalize(q)
	f := models.EPDFilter{Traits: map[string]models.TraitRange{}}

	for token, sex := range sexVocab {
		if containsToken(norm, token) {
			f.Sex = sex
			break
		}
	}

	for _, tv := range traitVocab {
		if !strings.Contains(norm, tv.Alias) {
			continue
		}
		if _, seen := f.Traits[tv.Key]; seen {
			continue
		}
		pat := regexp.MustCompile(regexp.QuoteMeta(tv.Alias) + `\s*(>=|<=|>|<|=)?\s*(\d+(?:\.\d+)?)`)
		m := pat.FindStringSubmatch(norm)
		if m == nil {
			continue
		}
		comp := m[1]
		if comp == "" {
			comp = ">="
		}
		var window models.TraitRange
		if comp == ">" || comp == ">=" || comp == "=" {
			window.Min = m[2]
		}
		if comp == "<" || comp == "<=" || comp == "=" {
			window.Max = m[2]
		}
		f.Traits[tv.Key] = window
	}

	if m := sortByRe.FindStringSubmatch(norm); m != nil {
		sortToken := strings.TrimSpace(m[1])
		for _, tv := range traitVocab {
			if sortToken == tv.Alias {
				f.Sort = tv.Key
				break
			}
		}
		if f.Sort == "" {
			f.Sort = sortToken
		}
	}

	return f
}
