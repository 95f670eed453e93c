// Package resource models consumable and passive character abilities with
// limited uses and rest-based recovery.
package resource

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/satchel/internal/errors"
)

var (
	// ErrEmptyCharacterID indicates a resource without an owning character.
	ErrEmptyCharacterID = apperrors.New(apperrors.CodeResourceEmptyCharacterID, "character id is required")
	// ErrEmptyName indicates a missing resource name.
	ErrEmptyName = apperrors.New(apperrors.CodeResourceEmptyName, "resource name is required")
	// ErrInvalidMaxUses indicates a non-positive use cap.
	ErrInvalidMaxUses = apperrors.New(apperrors.CodeResourceInvalidMaxUses, "max uses must be positive")
	// ErrInvalidResetTrigger indicates an unknown reset trigger.
	ErrInvalidResetTrigger = apperrors.New(apperrors.CodeResourceInvalidReset, "reset trigger must be one of: none, short_rest, long_rest")
	// ErrExhausted indicates the resource has no uses left.
	ErrExhausted = apperrors.New(apperrors.CodeResourceExhausted, "resource has no remaining uses")
)

// ResetTrigger names the rest event that restores a resource.
type ResetTrigger string

const (
	ResetNone      ResetTrigger = "none"
	ResetShortRest ResetTrigger = "short_rest"
	ResetLongRest  ResetTrigger = "long_rest"
)

// Valid reports whether the trigger is a known value.
func (r ResetTrigger) Valid() bool {
	switch r {
	case ResetNone, ResetShortRest, ResetLongRest:
		return true
	default:
		return false
	}
}

// RestKind names a rest taken by the character.
type RestKind string

const (
	RestShort RestKind = "short"
	RestLong  RestKind = "long"
)

// Resource is a limited-use ability belonging to a character.
type Resource struct {
	ID            string
	CharacterID   string
	Name          string
	MaxUses       int
	UsedCount     int
	ResetOn       ResetTrigger
	RecoverAmount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Remaining returns the number of uses left, never below zero.
func (r Resource) Remaining() int {
	remaining := r.MaxUses - r.UsedCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Use consumes n uses. It fails with ErrExhausted when fewer than n remain.
func (r Resource) Use(n int, now func() time.Time) (Resource, error) {
	if n <= 0 {
		return r, nil
	}
	if r.Remaining() < n {
		return Resource{}, ErrExhausted
	}
	r.UsedCount += n
	r.UpdatedAt = now().UTC()
	return r, nil
}

// Recover restores n uses, clamped so the used count never drops below zero.
func (r Resource) Recover(n int, now func() time.Time) Resource {
	if n <= 0 {
		return r
	}
	r.UsedCount -= n
	if r.UsedCount < 0 {
		r.UsedCount = 0
	}
	r.UpdatedAt = now().UTC()
	return r
}

// ApplyRest recovers the resource according to its reset trigger. A long rest
// also restores short-rest resources. Resources with a positive RecoverAmount
// regain that many uses; otherwise the resource resets fully.
func (r Resource) ApplyRest(kind RestKind, now func() time.Time) Resource {
	applies := false
	switch kind {
	case RestShort:
		applies = r.ResetOn == ResetShortRest
	case RestLong:
		applies = r.ResetOn == ResetShortRest || r.ResetOn == ResetLongRest
	}
	if !applies {
		return r
	}

	if r.RecoverAmount > 0 {
		return r.Recover(r.RecoverAmount, now)
	}
	r.UsedCount = 0
	r.UpdatedAt = now().UTC()
	return r
}

// CreateResourceInput carries the fields needed to create a resource.
type CreateResourceInput struct {
	CharacterID   string
	Name          string
	MaxUses       int
	ResetOn       ResetTrigger
	RecoverAmount int
}

// NormalizeCreateResourceInput trims fields and validates the resource.
func NormalizeCreateResourceInput(input CreateResourceInput) (CreateResourceInput, error) {
	input.CharacterID = strings.TrimSpace(input.CharacterID)
	input.Name = strings.TrimSpace(input.Name)

	if input.CharacterID == "" {
		return CreateResourceInput{}, ErrEmptyCharacterID
	}
	if input.Name == "" {
		return CreateResourceInput{}, ErrEmptyName
	}
	if input.MaxUses <= 0 {
		return CreateResourceInput{}, ErrInvalidMaxUses
	}
	if input.ResetOn == "" {
		input.ResetOn = ResetNone
	}
	if !input.ResetOn.Valid() {
		return CreateResourceInput{}, ErrInvalidResetTrigger
	}
	return input, nil
}

// CreateResource builds a resource with a generated id and timestamps.
func CreateResource(input CreateResourceInput, now func() time.Time, newID func() (string, error)) (Resource, error) {
	normalized, err := NormalizeCreateResourceInput(input)
	if err != nil {
		return Resource{}, err
	}

	id, err := newID()
	if err != nil {
		return Resource{}, err
	}

	created := now().UTC()
	return Resource{
		ID:            id,
		CharacterID:   normalized.CharacterID,
		Name:          normalized.Name,
		MaxUses:       normalized.MaxUses,
		ResetOn:       normalized.ResetOn,
		RecoverAmount: normalized.RecoverAmount,
		CreatedAt:     created,
		UpdatedAt:     created,
	}, nil
}
