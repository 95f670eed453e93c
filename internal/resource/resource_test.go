package resource

import (
	"errors"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC)
}

func TestUseAndRemaining(t *testing.T) {
	r := Resource{ID: "res-1", CharacterID: "char-1", Name: "Rage", MaxUses: 3}

	r, err := r.Use(2, fixedNow)
	if err != nil {
		t.Fatalf("use: %v", err)
	}
	if r.Remaining() != 1 {
		t.Fatalf("expected 1 remaining, got %d", r.Remaining())
	}

	_, err = r.Use(2, fixedNow)
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
}

func TestUseZeroIsNoop(t *testing.T) {
	r := Resource{MaxUses: 2, UsedCount: 1}
	next, err := r.Use(0, fixedNow)
	if err != nil {
		t.Fatalf("use zero: %v", err)
	}
	if next.UsedCount != 1 {
		t.Fatalf("expected used count unchanged, got %d", next.UsedCount)
	}
}

func TestRecoverClampsAtZero(t *testing.T) {
	r := Resource{MaxUses: 4, UsedCount: 1}
	r = r.Recover(3, fixedNow)
	if r.UsedCount != 0 {
		t.Fatalf("expected used count clamped to 0, got %d", r.UsedCount)
	}
}

func TestApplyRest(t *testing.T) {
	tests := []struct {
		name     string
		resource Resource
		rest     RestKind
		wantUsed int
	}{
		{
			name:     "short rest resets short-rest resource",
			resource: Resource{MaxUses: 3, UsedCount: 3, ResetOn: ResetShortRest},
			rest:     RestShort,
			wantUsed: 0,
		},
		{
			name:     "short rest leaves long-rest resource",
			resource: Resource{MaxUses: 3, UsedCount: 2, ResetOn: ResetLongRest},
			rest:     RestShort,
			wantUsed: 2,
		},
		{
			name:     "long rest resets short-rest resource",
			resource: Resource{MaxUses: 3, UsedCount: 2, ResetOn: ResetShortRest},
			rest:     RestLong,
			wantUsed: 0,
		},
		{
			name:     "long rest resets long-rest resource",
			resource: Resource{MaxUses: 3, UsedCount: 1, ResetOn: ResetLongRest},
			rest:     RestLong,
			wantUsed: 0,
		},
		{
			name:     "rest never touches non-resetting resource",
			resource: Resource{MaxUses: 3, UsedCount: 2, ResetOn: ResetNone},
			rest:     RestLong,
			wantUsed: 2,
		},
		{
			name:     "partial recovery amount",
			resource: Resource{MaxUses: 5, UsedCount: 4, ResetOn: ResetLongRest, RecoverAmount: 2},
			rest:     RestLong,
			wantUsed: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.resource.ApplyRest(tt.rest, fixedNow)
			if got.UsedCount != tt.wantUsed {
				t.Fatalf("expected used count %d, got %d", tt.wantUsed, got.UsedCount)
			}
		})
	}
}

func TestCreateResourceNormalizesInput(t *testing.T) {
	fixedTime := fixedNow()
	r, err := CreateResource(CreateResourceInput{
		CharacterID: " char-1 ",
		Name:        " Bardic Inspiration ",
		MaxUses:     5,
	}, func() time.Time { return fixedTime }, func() (string, error) { return "res-1", nil })
	if err != nil {
		t.Fatalf("create resource: %v", err)
	}
	if r.Name != "Bardic Inspiration" {
		t.Fatalf("expected trimmed name, got %q", r.Name)
	}
	if r.ResetOn != ResetNone {
		t.Fatalf("expected default reset trigger none, got %q", r.ResetOn)
	}
}

func TestNormalizeCreateResourceInputValidation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateResourceInput
		err   error
	}{
		{
			name:  "empty character id",
			input: CreateResourceInput{CharacterID: " ", Name: "Rage", MaxUses: 3},
			err:   ErrEmptyCharacterID,
		},
		{
			name:  "empty name",
			input: CreateResourceInput{CharacterID: "char-1", Name: " ", MaxUses: 3},
			err:   ErrEmptyName,
		},
		{
			name:  "non-positive max uses",
			input: CreateResourceInput{CharacterID: "char-1", Name: "Rage"},
			err:   ErrInvalidMaxUses,
		},
		{
			name:  "unknown reset trigger",
			input: CreateResourceInput{CharacterID: "char-1", Name: "Rage", MaxUses: 3, ResetOn: "daily"},
			err:   ErrInvalidResetTrigger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeCreateResourceInput(tt.input)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected error %v, got %v", tt.err, err)
			}
		})
	}
}
