// Package form discovers the registry site's search forms at run time and
// maps user-supplied filter values onto the fields that actually exist.
// Nothing about the form layout is assumed to be stable: field presence,
// dropdown contents and the submit mechanism are all read from the live
// page's HTML on every run.
package form

import (
	"fmt"
	"strings"

	"github.com/herdscout/herdscout/models"
)

// Kind identifies which of the site's search forms a schema describes.
type Kind string

const (
	KindRanch  Kind = "ranch"
	KindAnimal Kind = "animal"
	KindEPD    Kind = "epd"
)

// ParseKind resolves a user-facing kind string.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ranch", "ranches":
		return KindRanch, nil
	case "animal", "animals":
		return KindAnimal, nil
	case "epd", "epds":
		return KindEPD, nil
	}
	return "", models.NewSearchError(models.ErrCodeInvalidInput,
		fmt.Sprintf("unknown search kind %q (want ranch, animal or epd)", s), nil)
}

// Field types as discovered on the page.
const (
	TypeText   = "text"
	TypeSelect = "select"
	TypeRadio  = "radio"
	TypeHidden = "hidden"
)

// Option is one selectable choice of a dropdown or radio group, carrying the
// submitted value and the human-readable label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field is one discovered form control. For selects, Options holds the live
// option list in page order; for radio groups it holds one entry per radio
// with the label taken from surrounding text when available.
type Field struct {
	ID          string
	Name        string
	Type        string
	Value       string
	Placeholder string
	Options     []Option
}

// Submit describes how the search is triggered. FuncName is the site's
// native JavaScript entry point (preferred); ButtonSelector is the fallback
// clickable control.
type Submit struct {
	FuncName       string
	ButtonSelector string
	ButtonLabel    string
}

// Schema is the result of discovering one search form: which fields exist
// right now, their options, and the submit mechanism. It is rebuilt on every
// CLI run and cached only within a long-lived serve process.
type Schema struct {
	Kind        Kind
	Fields      map[string]Field // keyed by element id, or name for radios
	Order       []string         // field keys in page order
	Submit      Submit
	Fingerprint uint64 // structural fingerprint of the form region
}

// Field looks up a discovered field by id (or radio group name).
func (s *Schema) Field(key string) (Field, bool) {
	f, ok := s.Fields[key]
	return f, ok
}

// Has reports whether the field exists on the page right now.
func (s *Schema) Has(key string) bool {
	_, ok := s.Fields[key]
	return ok
}

// Dropdown returns the option list for a select field, or an error naming
// the field when it is absent or not a dropdown.
func (s *Schema) Dropdown(key string) ([]Option, error) {
	f, ok := s.Fields[key]
	if !ok {
		return nil, models.NewSearchError(models.ErrCodeFieldMissing,
			fmt.Sprintf("field %q not present on the page", key), nil)
	}
	if f.Type != TypeSelect {
		return nil, models.NewSearchError(models.ErrCodeFieldMissing,
			fmt.Sprintf("field %q is a %s, not a dropdown", key, f.Type), nil)
	}
	return f.Options, nil
}

// Missing returns the expected fields of the schema's kind that discovery
// did not find. Missing fields are skipped by the caller, not fatal.
func (s *Schema) Missing() []string {
	var missing []string
	for _, key := range ExpectedFields(s.Kind) {
		if !s.Has(key) {
			missing = append(missing, key)
		}
	}
	return missing
}

// Well-known field ids/names on the Digital Beef search pages. These are the
// fields the filters map onto when present; discovery decides presence.
const (
	RanchFieldName     = "ranch_search_val"
	RanchFieldCity     = "ranch_search_city"
	RanchFieldMemberID = "ranch_search_id"
	RanchFieldPrefix   = "ranch_search_prefix"
	RanchFieldLocation = "search-member-location"

	AnimalContainerID = "tbl_animal_search"
	AnimalRadioSex    = "animal_search_sex"
	AnimalRadioField  = "animal_search_fld"
	AnimalFieldValue  = "animal_search_val"
	AnimalSubmitID    = "btnAnimalSubmit"

	EPDFormID    = "epd_search"
	EPDRadioSex  = "search_sex"
	EPDRadioSort = "sort_fld"
)

// ExpectedFields lists the fields a search of the given kind wants to fill.
func ExpectedFields(kind Kind) []string {
	switch kind {
	case KindRanch:
		return []string{
			RanchFieldName, RanchFieldCity, RanchFieldMemberID,
			RanchFieldPrefix, RanchFieldLocation,
		}
	case KindAnimal:
		return []string{AnimalRadioSex, AnimalRadioField, AnimalFieldValue}
	case KindEPD:
		return []string{EPDRadioSex}
	}
	return nil
}
