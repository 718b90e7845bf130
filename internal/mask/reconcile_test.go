package mask

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestReconcileKeepsCustomizations(t *testing.T) {
	old, err := Parse("00:00", "09:30", nil, nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	old[0].MaxValue = decimal.NewFromInt(24)
	old[2].PadChar = '_'
	old[2].CustomValues = []string{"00", "15", "30", "45"}

	fresh, err := Parse("000:00", "009:30", nil, nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	merged := Reconcile(old, fresh)

	if !merged[0].MaxValue.Equal(decimal.NewFromInt(24)) {
		t.Errorf("hour MaxValue = %s, want 24", merged[0].MaxValue)
	}
	if merged[2].PadChar != '_' {
		t.Errorf("minute PadChar = %q, want '_'", merged[2].PadChar)
	}
	if diff := cmp.Diff([]string{"00", "15", "30", "45"}, merged[2].CustomValues); diff != "" {
		t.Errorf("CustomValues mismatch (-want +got):\n%s", diff)
	}
	if merged[0].Mask != "000" || merged[0].Text != "009" {
		t.Errorf("positional fields should come from the fresh parse, got %v", merged[0])
	}

	// inputs are left untouched
	if !fresh[0].MaxValue.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("fresh token was modified: MaxValue = %s", fresh[0].MaxValue)
	}
	merged[2].CustomValues[0] = "xx"
	if old[2].CustomValues[0] != "00" {
		t.Error("merged token shares CustomValues with the old token")
	}
}

func TestReconcileSkipsDefaults(t *testing.T) {
	old, err := Parse("00", "05", nil, nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	fresh, err := Parse("0000", "0005", nil, nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	merged := Reconcile(old, fresh)
	// old MaxValue is its own default (100), so the new default (10000) wins
	if !merged[0].MaxValue.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("MaxValue = %s, want 10000", merged[0].MaxValue)
	}
}

func TestReconcileViaParse(t *testing.T) {
	old, err := Parse("00/00", "01/02", nil, nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	old[0].ReverseUpDown = true
	fixMode := TakeClosestValidValue
	old[2].ValueTooLargeFixMode = &fixMode

	tokens, err := Parse("00/00", "03/04", nil, old)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !tokens[0].ReverseUpDown {
		t.Error("ReverseUpDown not carried over")
	}
	if tokens[2].ValueTooLargeFixMode == nil || *tokens[2].ValueTooLargeFixMode != TakeClosestValidValue {
		t.Error("ValueTooLargeFixMode not carried over")
	}
	if diff := cmp.Diff([]string{"03", "/", "04"}, texts(tokens)); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}

	// a shorter old list leaves the extra tokens at their defaults
	clean, err := Parse("00/00", "03/04", nil, nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	extra := Reconcile(old[:1], clean)
	if extra[2].ValueTooLargeFixMode != nil {
		t.Error("token past the end of old should keep defaults")
	}
}
