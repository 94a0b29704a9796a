package domain

import "testing"

func TestParseState(t *testing.T) {
	tests := []struct {
		raw     string
		want    State
		wantErr bool
	}{
		{"new", StateNew, false},
		{"active", StateActive, false},
		{"resolved", StateResolved, false},
		{"removed", StateRemoved, false},
		{"", "", true},
		{"New", "", true},
		{"closed", "", true},
	}

	for _, tt := range tests {
		got, err := ParseState(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseState(%q): expected error, got %q", tt.raw, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseState(%q): %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseState(%q): got %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestStates_AllValid(t *testing.T) {
	for _, s := range States() {
		if !s.IsValid() {
			t.Errorf("state %q should be valid", s)
		}
	}
	if State("deleted").IsValid() {
		t.Error("unknown state should not be valid")
	}
}
