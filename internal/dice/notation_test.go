package dice

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		notation string
		want     Request
	}{
		{
			notation: "2d6+1d8+3",
			want:     Request{Dice: []Spec{{Sides: 6, Count: 2}, {Sides: 8, Count: 1}}, Modifier: 3},
		},
		{
			notation: "d20",
			want:     Request{Dice: []Spec{{Sides: 20, Count: 1}}},
		},
		{
			notation: "d20-1",
			want:     Request{Dice: []Spec{{Sides: 20, Count: 1}}, Modifier: -1},
		},
		{
			notation: " 1d12 + 2 - 4 ",
			want:     Request{Dice: []Spec{{Sides: 12, Count: 1}}, Modifier: -2},
		},
		{
			notation: "4D6",
			want:     Request{Dice: []Spec{{Sides: 6, Count: 4}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.notation, func(t *testing.T) {
			got, err := Parse(tt.notation)
			if err != nil {
				t.Fatalf("parse %q: %v", tt.notation, err)
			}
			if len(got.Dice) != len(tt.want.Dice) {
				t.Fatalf("expected %d dice terms, got %d", len(tt.want.Dice), len(got.Dice))
			}
			for i, spec := range tt.want.Dice {
				if got.Dice[i] != spec {
					t.Fatalf("term %d: expected %+v, got %+v", i, spec, got.Dice[i])
				}
			}
			if got.Modifier != tt.want.Modifier {
				t.Fatalf("expected modifier %d, got %d", tt.want.Modifier, got.Modifier)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		notation string
		err      error
	}{
		{name: "empty", notation: "", err: ErrMissingDice},
		{name: "constant only", notation: "5", err: ErrMissingDice},
		{name: "garbage", notation: "2d6+potato", err: ErrInvalidNotation},
		{name: "dangling operator", notation: "2d6+", err: ErrInvalidNotation},
		{name: "negative dice term", notation: "2d6-1d4", err: ErrInvalidNotation},
		{name: "zero-sided die", notation: "2d0", err: ErrInvalidDiceSpec},
		{name: "zero count", notation: "0d6", err: ErrInvalidDiceSpec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.notation)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestParseRollRoundTrip(t *testing.T) {
	req, err := Parse("2d6+1d8+3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	req.Seed = 99

	result, err := RollDice(req)
	if err != nil {
		t.Fatalf("roll: %v", err)
	}
	if result.Modifier != 3 {
		t.Fatalf("expected modifier 3, got %d", result.Modifier)
	}
	if result.Total < 3+3 || result.Total > 12+8+3 {
		t.Fatalf("total out of range: %d", result.Total)
	}
}

func TestNotation(t *testing.T) {
	tests := []struct {
		request Request
		want    string
	}{
		{Request{Dice: []Spec{{Sides: 6, Count: 2}, {Sides: 8, Count: 1}}, Modifier: 3}, "2d6+1d8+3"},
		{Request{Dice: []Spec{{Sides: 20, Count: 1}}, Modifier: -1}, "1d20-1"},
		{Request{Dice: []Spec{{Sides: 10, Count: 4}}}, "4d10"},
	}

	for _, tt := range tests {
		if got := Notation(tt.request); got != tt.want {
			t.Fatalf("expected %q, got %q", tt.want, got)
		}
	}
}
