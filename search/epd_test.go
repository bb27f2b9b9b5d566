package search

import (
	"strings"
	"testing"
)

func TestTraitByKey(t *testing.T) {
	tests := []struct {
		in      string
		wantKey string
		ok      bool
	}{
		{"ww", "ww", true},
		{"WW", "ww", true},
		{" milk ", "milk", true},
		{"mk", "milk", true},
		{"mb", "marb", true},
		{"ft", "fat", true},
		{"$cez", "cez", true},
		{"$F", "f", true},
		{"ribeye", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := TraitByKey(tt.in)
		if ok != tt.ok {
			t.Errorf("TraitByKey(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got.Key != tt.wantKey {
			t.Errorf("TraitByKey(%q) = %q, want %q", tt.in, got.Key, tt.wantKey)
		}
	}
}

func TestTraitFieldConventions(t *testing.T) {
	for _, tr := range Traits {
		if !strings.HasPrefix(tr.MinField, "min") {
			t.Errorf("trait %s: MinField %q lacks min prefix", tr.Key, tr.MinField)
		}
		if !strings.HasPrefix(tr.MaxField, "max") {
			t.Errorf("trait %s: MaxField %q lacks max prefix", tr.Key, tr.MaxField)
		}
		if tr.AccField != "" && !strings.HasSuffix(tr.AccField, "acc") {
			t.Errorf("trait %s: AccField %q lacks acc suffix", tr.Key, tr.AccField)
		}
		if tr.SortVal == "" {
			t.Errorf("trait %s has no sort value", tr.Key)
		}
	}

	// The dollar indexes have no accuracy input on the form.
	for _, key := range []string{"cez", "bmi", "cpi", "f"} {
		tr, ok := TraitByKey(key)
		if !ok {
			t.Fatalf("trait %s missing from registry", key)
		}
		if tr.AccField != "" {
			t.Errorf("index trait %s should have no accuracy field, got %q", key, tr.AccField)
		}
	}
}

func TestResolveSort(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ww", "epd_ww"},
		{"weaning weight", "epd_ww"},
		{"epd_ww", "epd_ww"},
		{"milk", "epd_milk"},
		{"st", "epd_stay"},
		{"fat", "epd_bf"},
		{"backfat", "epd_bf"},
		{"marb", "epd_ms"},
		{"marbling", "epd_ms"},
		{"cez", "cez_index"},
		{"$cpi", "cpi_index"},
		{"f_index", "f_index"},
	}
	for _, tt := range tests {
		got, err := ResolveSort(tt.in)
		if err != nil {
			t.Errorf("ResolveSort(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveSort(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveSort_Unknown(t *testing.T) {
	_, err := ResolveSort("frame score")
	if err == nil {
		t.Fatal("expected an error for an unknown sort field")
	}
	if !strings.Contains(err.Error(), "ww") {
		t.Errorf("error should list valid keys: %v", err)
	}
}
