package engine

import (
	"errors"
	"testing"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		input    string
		expected Action
		err      error
	}{
		{"3a", Move{From: CascadeAt(2), To: CellAt(0)}, nil},
		{"15+78", Move{From: CascadeAt(6), To: CascadeAt(7), Count: 15}, nil},
		{"+78", Move{From: CascadeAt(6), To: CascadeAt(7), Count: MaxCount}, nil},
		{"255+12", Move{From: CascadeAt(0), To: CascadeAt(1), Count: 255}, nil},
		{"1w", Move{From: CascadeAt(0), To: FoundationAt(0)}, nil},
		{"dZ", Move{From: CellAt(3), To: FoundationAt(3)}, nil},
		{"B8", Move{From: CellAt(1), To: CascadeAt(7)}, nil},
		{"!*", Move{From: CascadeAt(0), To: CascadeAt(7)}, nil},
		{"$c", Move{From: CascadeAt(3), To: CellAt(2)}, nil},
		{"  4x \n", Move{From: CascadeAt(3), To: FoundationAt(1)}, nil},
		{"u", Undo{}, nil},
		{"UNDO", Undo{}, nil},

		{"", nil, ErrInvalidInput},
		{"1", nil, ErrInvalidInput},
		{"1a1", nil, ErrInvalidInput},
		{"1e", nil, ErrInvalidInput},
		{"9a", nil, ErrInvalidInput},
		{"+", nil, ErrInvalidInput},
		{"1+2", nil, ErrInvalidInput},
		{"aa", nil, ErrSameCoordinate},
		{"1!", nil, ErrSameCoordinate},
		{"w1", nil, ErrInvalidSource},
		{"wq", nil, ErrInvalidSource},
		{"0+12", nil, ErrInvalidCount},
		{"256+12", nil, ErrInvalidCount},
		{"x+12", nil, ErrInvalidCount},
		{"-1+12", nil, ErrInvalidCount},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got, err := ParseAction(test.input)
			if test.err != nil {
				if !errors.Is(err, test.err) {
					t.Fatalf("expected error %q, got %v", test.err, err)
				}
				if KindOf(err) == KindInternal {
					t.Errorf("parse error %v classified as internal", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != test.expected {
				t.Errorf("expected %#v, got %#v", test.expected, got)
			}
		})
	}
}

func TestParseActionMessages(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"", "Invalid input."},
		{"aa", "The source and destination are the same."},
		{"1a1", "Invalid input."},
		{"y3", "You cannot take a card from a foundation."},
		{"0+12", "Invalid count."},
	}

	for _, test := range tests {
		_, err := ParseAction(test.input)
		if err == nil || err.Error() != test.message {
			t.Errorf("ParseAction(%q): expected %q, got %v", test.input, test.message, err)
		}
	}
}

func TestMoveString(t *testing.T) {
	tests := []struct {
		move     Move
		expected string
	}{
		{Move{From: CascadeAt(2), To: CellAt(0)}, "3a"},
		{Move{From: CascadeAt(6), To: CascadeAt(7), Count: 15}, "15+78"},
		{Move{From: CellAt(3), To: FoundationAt(2)}, "dy"},
		{Move{From: CascadeAt(9), To: CellAt(0)}, "?a"},
	}

	for _, test := range tests {
		if got := test.move.String(); got != test.expected {
			t.Errorf("expected %q, got %q", test.expected, got)
		}
	}

	// Canonical text parses back to the same move
	for _, input := range []string{"3a", "15+78", "dy", "8w"} {
		action, err := ParseAction(input)
		if err != nil {
			t.Fatalf("ParseAction(%q): %v", input, err)
		}
		if action.String() != input {
			t.Errorf("expected %q, got %q", input, action.String())
		}
	}
}

func TestPileKindString(t *testing.T) {
	if CascadePile.String() != "cascade" || CellPile.String() != "cell" || FoundationPile.String() != "foundation" {
		t.Error("unexpected pile kind names")
	}
	if PileKind(7).String() != "PileKind(7)" {
		t.Errorf("unexpected name for unknown kind: %s", PileKind(7))
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		kind ErrorKind
	}{
		{nil, KindNone},
		{ErrInvalidInput, KindParse},
		{ErrEmptySource, KindEmptySource},
		{ErrRunRejected, KindIllegalDestination},
		{ErrCellOccupied, KindIllegalDestination},
		{ErrInvalidSource, KindInvalidSource},
		{ErrAlreadyAtFirstMove, KindAlreadyAtFirstMove},
		{ErrNotEnoughCards, KindInternal},
		{errors.New("boom"), KindInternal},
	}

	for _, test := range tests {
		if got := KindOf(test.err); got != test.kind {
			t.Errorf("KindOf(%v) = %q, want %q", test.err, got, test.kind)
		}
	}

	if !IsRuleError(ErrCascadeRejected) {
		t.Error("cascade rejection should be a rule error")
	}
	if IsRuleError(ErrInvalidCoordinate) || IsRuleError(nil) {
		t.Error("precondition failures are not rule errors")
	}
}
