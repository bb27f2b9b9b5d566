package main

import "testing"

func TestParseTraitSpec(t *testing.T) {
	tests := []struct {
		spec    string
		wantKey string
		wantMin string
		wantMax string
		wantAcc string
		wantErr bool
	}{
		{spec: "ww:min=60", wantKey: "ww", wantMin: "60"},
		{spec: "ww:min=60,max=100,acc=0.4", wantKey: "ww", wantMin: "60", wantMax: "100", wantAcc: "0.4"},
		{spec: "MK:max=35", wantKey: "milk", wantMax: "35"},
		{spec: "$cez:min=10", wantKey: "cez", wantMin: "10"},
		{spec: "ww", wantErr: true},
		{spec: "ww:", wantErr: true},
		{spec: "ww:min", wantErr: true},
		{spec: "ww:floor=60", wantErr: true},
		{spec: "frame:min=5", wantErr: true},
	}
	for _, tt := range tests {
		key, window, err := parseTraitSpec(tt.spec)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseTraitSpec(%q): expected error", tt.spec)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseTraitSpec(%q): %v", tt.spec, err)
			continue
		}
		if key != tt.wantKey {
			t.Errorf("parseTraitSpec(%q) key = %q, want %q", tt.spec, key, tt.wantKey)
		}
		if window.Min != tt.wantMin || window.Max != tt.wantMax || window.Accuracy != tt.wantAcc {
			t.Errorf("parseTraitSpec(%q) = %+v, want min %q max %q acc %q",
				tt.spec, window, tt.wantMin, tt.wantMax, tt.wantAcc)
		}
	}
}
