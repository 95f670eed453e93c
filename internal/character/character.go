// Package character models player characters and their sheet attribute bag.
package character

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/satchel/internal/errors"
)

var (
	// ErrEmptyUserID indicates a character without an owning user.
	ErrEmptyUserID = apperrors.New(apperrors.CodeCharacterEmptyUserID, "user id is required")
	// ErrEmptyName indicates a missing character name.
	ErrEmptyName = apperrors.New(apperrors.CodeCharacterEmptyName, "character name is required")
)

// Character is one player character belonging to a user.
//
// Characters are never hard-deleted; retiring a character is a sheet-level
// flag, not a row removal.
type Character struct {
	ID        string
	UserID    string
	Name      string
	Sheet     Sheet
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateCharacterInput carries the fields needed to create a character.
type CreateCharacterInput struct {
	UserID string
	Name   string
	Sheet  Sheet
}

// NormalizeCreateCharacterInput trims fields and validates the character.
func NormalizeCreateCharacterInput(input CreateCharacterInput) (CreateCharacterInput, error) {
	input.UserID = strings.TrimSpace(input.UserID)
	input.Name = strings.TrimSpace(input.Name)

	if input.UserID == "" {
		return CreateCharacterInput{}, ErrEmptyUserID
	}
	if input.Name == "" {
		return CreateCharacterInput{}, ErrEmptyName
	}
	if input.Sheet.Version == 0 {
		input.Sheet.Version = CurrentSheetVersion
	}
	if err := input.Sheet.Validate(); err != nil {
		return CreateCharacterInput{}, err
	}
	return input, nil
}

// CreateCharacter builds a character with a generated id and timestamps.
func CreateCharacter(input CreateCharacterInput, now func() time.Time, newID func() (string, error)) (Character, error) {
	normalized, err := NormalizeCreateCharacterInput(input)
	if err != nil {
		return Character{}, err
	}

	id, err := newID()
	if err != nil {
		return Character{}, err
	}

	created := now().UTC()
	return Character{
		ID:        id,
		UserID:    normalized.UserID,
		Name:      normalized.Name,
		Sheet:     normalized.Sheet,
		CreatedAt: created,
		UpdatedAt: created,
	}, nil
}
