package form

import (
	"errors"
	"strings"
	"testing"

	"github.com/herdscout/herdscout/models"
)

var locationOpts = []Option{
	{Value: "", Label: "Any Location"},
	{Value: "Canada|AB", Label: "Alberta"},
	{Value: "United States|KS", Label: "Kansas"},
	{Value: "United States|OK", Label: "Oklahoma"},
	{Value: "United States|TX", Label: "Texas"},
}

func TestMatchOption_ExactValue(t *testing.T) {
	got, err := MatchOption("United States|TX", locationOpts)
	if err != nil {
		t.Fatalf("MatchOption failed: %v", err)
	}
	if got.Label != "Texas" {
		t.Errorf("matched %q, want Texas", got.Label)
	}
}

func TestMatchOption_ExactLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Texas", "United States|TX"},
		{"texas", "United States|TX"},
		{"  OKLAHOMA  ", "United States|OK"},
		{"alberta", "Canada|AB"},
	}
	for _, tt := range tests {
		got, err := MatchOption(tt.in, locationOpts)
		if err != nil {
			t.Errorf("MatchOption(%q): %v", tt.in, err)
			continue
		}
		if got.Value != tt.want {
			t.Errorf("MatchOption(%q) = %q, want %q", tt.in, got.Value, tt.want)
		}
	}
}

func TestMatchOption_Substring(t *testing.T) {
	// "okla" is contained in "Oklahoma"; first qualifying option in page
	// order wins.
	got, err := MatchOption("okla", locationOpts)
	if err != nil {
		t.Fatalf("MatchOption failed: %v", err)
	}
	if got.Value != "United States|OK" {
		t.Errorf("matched %q, want United States|OK", got.Value)
	}
}

func TestMatchOption_SubstringFirstWins(t *testing.T) {
	opts := []Option{
		{Value: "1", Label: "North Dakota"},
		{Value: "2", Label: "South Dakota"},
	}
	got, err := MatchOption("dakota", opts)
	if err != nil {
		t.Fatalf("MatchOption failed: %v", err)
	}
	if got.Value != "1" {
		t.Errorf("matched option %q, want the first in page order", got.Value)
	}
}

func TestMatchOption_NumericIndex(t *testing.T) {
	got, err := MatchOption("3", locationOpts)
	if err != nil {
		t.Fatalf("MatchOption failed: %v", err)
	}
	// 1-based: index 3 is Kansas.
	if got.Label != "Kansas" {
		t.Errorf("index 3 matched %q, want Kansas", got.Label)
	}

	if _, err := MatchOption("99", locationOpts); err == nil {
		t.Error("out-of-range index should not match")
	}
	if _, err := MatchOption("0", locationOpts); err == nil {
		t.Error("index 0 should not match (indexes are 1-based)")
	}
}

func TestMatchOption_ExactValueBeatsIndex(t *testing.T) {
	// A numeric input that IS an option's value selects that option, never
	// the option sitting at that 1-based position.
	opts := []Option{
		{Value: "2", Label: "Two-ish"},
		{Value: "9", Label: "Nine"},
	}
	got, err := MatchOption("2", opts)
	if err != nil {
		t.Fatalf("MatchOption failed: %v", err)
	}
	if got.Value != "2" {
		t.Errorf("matched value %q, want the exact-value option 2", got.Value)
	}
}

func TestMatchOption_SubstringBeatsIndex(t *testing.T) {
	opts := []Option{
		{Value: "a", Label: "Region 1"},
		{Value: "b", Label: "Region 2"},
		{Value: "c", Label: "Region 3"},
	}
	got, err := MatchOption("2", opts)
	if err != nil {
		t.Fatalf("MatchOption failed: %v", err)
	}
	if got.Value != "b" {
		t.Errorf("matched value %q, want the Region 2 option", got.Value)
	}
}

func TestMatchOption_Fuzzy(t *testing.T) {
	// One transposition away from "Texas"; close enough for the fuzzy tier.
	got, err := MatchOption("Texsa", locationOpts)
	if err != nil {
		t.Fatalf("MatchOption failed: %v", err)
	}
	if got.Label != "Texas" {
		t.Errorf("fuzzy matched %q, want Texas", got.Label)
	}
}

func TestMatchOption_NoMatchNamesOptions(t *testing.T) {
	_, err := MatchOption("Zanzibar", locationOpts)
	if err == nil {
		t.Fatal("expected NO_OPTION_MATCH error")
	}
	var serr *models.SearchError
	if !errors.As(err, &serr) {
		t.Fatalf("error type = %T, want *models.SearchError", err)
	}
	if serr.Code != models.ErrCodeNoOptionMatch {
		t.Errorf("code = %q, want %q", serr.Code, models.ErrCodeNoOptionMatch)
	}
	for _, label := range []string{"Texas", "Kansas", "Oklahoma"} {
		if !strings.Contains(serr.Message, label) {
			t.Errorf("error message should name valid option %q: %s", label, serr.Message)
		}
	}
}

func TestMatchOption_NoMatchSuggestsNearest(t *testing.T) {
	_, err := MatchOption("Texarkana", locationOpts)
	if err == nil {
		t.Fatal("expected NO_OPTION_MATCH error")
	}
	msg := err.Error()
	idx := strings.Index(msg, "did you mean")
	if idx < 0 {
		t.Fatalf("error message should suggest nearby options: %s", msg)
	}
	if !strings.Contains(msg[idx:], "Texas") {
		t.Errorf("Texas should lead the suggestions for Texarkana: %s", msg)
	}
}

func TestMatchOption_EmptyInputs(t *testing.T) {
	if _, err := MatchOption("", locationOpts); err == nil {
		t.Error("empty input should error")
	}
	if _, err := MatchOption("Texas", nil); err == nil {
		t.Error("empty option list should error")
	}
}

func TestMatchLocation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"TX", "United States|TX"},
		{"tx", "United States|TX"},
		{"Texas", "United States|TX"},
		{"United States|TX", "United States|TX"},
		{"united states|ks", "United States|KS"},
		{"Oklahoma", "United States|OK"},
		{"AB", "Canada|AB"},
	}
	for _, tt := range tests {
		got, err := MatchLocation(tt.in, locationOpts)
		if err != nil {
			t.Errorf("MatchLocation(%q): %v", tt.in, err)
			continue
		}
		if got.Value != tt.want {
			t.Errorf("MatchLocation(%q) = %q, want %q", tt.in, got.Value, tt.want)
		}
	}
}

func TestSuggestOptions(t *testing.T) {
	got := SuggestOptions("Texarkana", locationOpts, 2)
	if len(got) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(got))
	}
	if got[0].Label != "Texas" {
		t.Errorf("top suggestion = %q, want Texas", got[0].Label)
	}

	if n := len(SuggestOptions("x", locationOpts, 100)); n != len(locationOpts) {
		t.Errorf("limit beyond option count returned %d, want %d", n, len(locationOpts))
	}
}
