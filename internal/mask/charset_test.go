package mask

import (
	"strings"
	"testing"
)

func TestCycleSet(t *testing.T) {
	tests := []struct {
		wildcard rune
		shift    CaseShift
		contains string
		excludes string
	}{
		{'0', ShiftNone, "0123456789", "a "},
		{'#', ShiftNone, "+-", "a"},
		{'L', ShiftUpper, "AZ", "az0"},
		{'L', ShiftLower, "az", "AZ"},
		{'L', ShiftNone, "aZ", "0"},
		{'A', ShiftNone, "09aZ", " "},
		{'&', ShiftUpper, "A!~", "a"},
	}

	for _, tt := range tests {
		t.Run(string(tt.wildcard)+"/"+tt.shift.String(), func(t *testing.T) {
			set := CycleSet(tt.wildcard, tt.shift)
			for _, r := range tt.contains {
				if !strings.ContainsRune(set, r) {
					t.Errorf("CycleSet(%q, %v) missing %q", tt.wildcard, tt.shift, r)
				}
			}
			for _, r := range tt.excludes {
				if strings.ContainsRune(set, r) {
					t.Errorf("CycleSet(%q, %v) should not contain %q", tt.wildcard, tt.shift, r)
				}
			}
		})
	}

	if CycleSet('x', ShiftNone) != "" {
		t.Error("non-wildcard should have an empty cycle set")
	}
}

func TestAccepts(t *testing.T) {
	tests := []struct {
		wildcard rune
		r        rune
		want     bool
	}{
		{'0', '5', true},
		{'0', ' ', false},
		{'9', ' ', true},
		{'#', '-', true},
		{'L', 'é', true},
		{'L', '1', false},
		{'?', ' ', true},
		{'A', '7', true},
		{'A', '-', false},
		{'&', ' ', false},
		{'C', ' ', true},
		{'x', 'x', false},
	}

	for _, tt := range tests {
		if got := Accepts(tt.wildcard, tt.r); got != tt.want {
			t.Errorf("Accepts(%q, %q) = %v, want %v", tt.wildcard, tt.r, got, tt.want)
		}
	}
}
