// Package sessionfile models metadata rows for session documents stored in
// remote file storage.
package sessionfile

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/satchel/internal/errors"
)

var (
	// ErrEmptyCharacterID indicates a file without an owning character.
	ErrEmptyCharacterID = apperrors.New(apperrors.CodeFileEmptyCharacterID, "character id is required")
	// ErrEmptyName indicates a missing file name.
	ErrEmptyName = apperrors.New(apperrors.CodeFileEmptyName, "file name is required")
)

// File is the metadata row for one remote-stored session document.
// The binary itself lives in remote file storage at StoragePath.
type File struct {
	ID            string
	CharacterID   string
	Name          string
	Size          int64
	MimeType      string
	SessionNumber int
	Notes         string
	StoragePath   string
	UploadedAt    time.Time
}

// NewFileInput carries the fields needed to record a session file.
type NewFileInput struct {
	CharacterID   string
	Name          string
	Size          int64
	MimeType      string
	SessionNumber int
	Notes         string
	StoragePath   string
}

// NormalizeNewFileInput trims fields and validates the file metadata.
func NormalizeNewFileInput(input NewFileInput) (NewFileInput, error) {
	input.CharacterID = strings.TrimSpace(input.CharacterID)
	input.Name = strings.TrimSpace(input.Name)
	input.MimeType = strings.TrimSpace(input.MimeType)
	input.StoragePath = strings.TrimSpace(input.StoragePath)

	if input.CharacterID == "" {
		return NewFileInput{}, ErrEmptyCharacterID
	}
	if input.Name == "" {
		return NewFileInput{}, ErrEmptyName
	}
	if input.MimeType == "" {
		input.MimeType = "application/pdf"
	}
	return input, nil
}

// NewFile builds a file metadata row with a generated id and timestamp.
func NewFile(input NewFileInput, now func() time.Time, newID func() (string, error)) (File, error) {
	normalized, err := NormalizeNewFileInput(input)
	if err != nil {
		return File{}, err
	}

	id, err := newID()
	if err != nil {
		return File{}, err
	}

	return File{
		ID:            id,
		CharacterID:   normalized.CharacterID,
		Name:          normalized.Name,
		Size:          normalized.Size,
		MimeType:      normalized.MimeType,
		SessionNumber: normalized.SessionNumber,
		Notes:         normalized.Notes,
		StoragePath:   normalized.StoragePath,
		UploadedAt:    now().UTC(),
	}, nil
}
