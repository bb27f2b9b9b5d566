package models

import "strings"

// RanchFilter holds the user-supplied ranch search filters. Empty fields are
// skipped when filling the form.
type RanchFilter struct {
	Name     string `json:"name,omitempty"`
	City     string `json:"city,omitempty"`
	MemberID string `json:"member_id,omitempty"`
	Prefix   string `json:"prefix,omitempty"`
	Location string `json:"location,omitempty"`
}

// Empty reports whether no filter was supplied at all.
func (f RanchFilter) Empty() bool {
	return f.Name == "" && f.City == "" && f.MemberID == "" &&
		f.Prefix == "" && f.Location == ""
}

// Animal search field values as the site names them.
const (
	AnimalFieldRegistration = "animal_registration"
	AnimalFieldTattoo       = "animal_private_herd_id"
	AnimalFieldName         = "animal_name"
	AnimalFieldEID          = "eid"
)

// AnimalFilter holds the animal search parameters. Sex is the site's radio
// value ("B" bulls, "C" females, "" both). Field selects which attribute
// Value is matched against; an asterisk in Value acts as a wildcard.
type AnimalFilter struct {
	Sex   string `json:"sex,omitempty"`
	Field string `json:"field,omitempty"`
	Value string `json:"value"`
}

// Normalize resolves friendly field/sex spellings to the site's values.
func (f *AnimalFilter) Normalize() {
	switch strings.ToLower(strings.TrimSpace(f.Sex)) {
	case "b", "bull", "bulls", "male", "males":
		f.Sex = "B"
	case "c", "cow", "cows", "female", "females":
		f.Sex = "C"
	default:
		f.Sex = ""
	}
	switch strings.ToLower(strings.TrimSpace(f.Field)) {
	case "", "reg", "reg#", "registration", AnimalFieldRegistration:
		f.Field = AnimalFieldRegistration
	case "tattoo", AnimalFieldTattoo:
		f.Field = AnimalFieldTattoo
	case "name", AnimalFieldName:
		f.Field = AnimalFieldName
	case "eid":
		f.Field = AnimalFieldEID
	}
}

// TraitRange is a numeric window (plus optional minimum accuracy) for a
// single EPD trait. Values stay strings: they are typed into form inputs
// verbatim and the site does its own validation.
type TraitRange struct {
	Min      string `json:"min,omitempty"`
	Max      string `json:"max,omitempty"`
	Accuracy string `json:"accuracy,omitempty"`
}

// Empty reports whether the range constrains nothing.
func (r TraitRange) Empty() bool {
	return r.Min == "" && r.Max == "" && r.Accuracy == ""
}

// EPDFilter holds the EPD search parameters. Traits is keyed by the short
// trait key (ww, yw, milk, ...; see search.EPDTraits for the full set).
type EPDFilter struct {
	Sex    string                `json:"sex,omitempty"`
	Sort   string                `json:"sort,omitempty"`
	Traits map[string]TraitRange `json:"traits,omitempty"`
}

// Empty reports whether no trait window was supplied.
func (f EPDFilter) Empty() bool {
	for _, r := range f.Traits {
		if !r.Empty() {
			return false
		}
	}
	return true
}

// Normalize resolves friendly sex spellings to the site's radio values.
func (f *EPDFilter) Normalize() {
	switch strings.ToLower(strings.TrimSpace(f.Sex)) {
	case "b", "bull", "bulls", "male", "males":
		f.Sex = "B"
	case "c", "cow", "cows", "female", "females":
		f.Sex = "C"
	default:
		f.Sex = ""
	}
}
