// Package journal models campaign journal entries, user tags, and the links
// between them.
package journal

import (
	"sort"
	"strings"
	"time"

	apperrors "github.com/louisbranch/satchel/internal/errors"
)

var (
	// ErrEmptyCharacterID indicates an entry without an owning character.
	ErrEmptyCharacterID = apperrors.New(apperrors.CodeEntryEmptyCharacterID, "character id is required")
	// ErrEmptyTitle indicates a missing entry title.
	ErrEmptyTitle = apperrors.New(apperrors.CodeEntryEmptyTitle, "entry title is required")
)

// Entry is one journal entry belonging to a character.
type Entry struct {
	ID            string
	CharacterID   string
	Title         string
	Date          time.Time
	SessionNumber int
	Content       string
	Pinned        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateEntryInput carries the fields needed to create a journal entry.
type CreateEntryInput struct {
	CharacterID   string
	Title         string
	Date          time.Time
	SessionNumber int
	Content       string
	Pinned        bool
}

// NormalizeCreateEntryInput trims fields and validates the entry.
func NormalizeCreateEntryInput(input CreateEntryInput) (CreateEntryInput, error) {
	input.CharacterID = strings.TrimSpace(input.CharacterID)
	input.Title = strings.TrimSpace(input.Title)

	if input.CharacterID == "" {
		return CreateEntryInput{}, ErrEmptyCharacterID
	}
	if input.Title == "" {
		return CreateEntryInput{}, ErrEmptyTitle
	}
	return input, nil
}

// CreateEntry builds an entry with a generated id and timestamps.
func CreateEntry(input CreateEntryInput, now func() time.Time, newID func() (string, error)) (Entry, error) {
	normalized, err := NormalizeCreateEntryInput(input)
	if err != nil {
		return Entry{}, err
	}

	id, err := newID()
	if err != nil {
		return Entry{}, err
	}

	created := now().UTC()
	date := normalized.Date
	if date.IsZero() {
		date = created
	}
	return Entry{
		ID:            id,
		CharacterID:   normalized.CharacterID,
		Title:         normalized.Title,
		Date:          date,
		SessionNumber: normalized.SessionNumber,
		Content:       normalized.Content,
		Pinned:        normalized.Pinned,
		CreatedAt:     created,
		UpdatedAt:     created,
	}, nil
}

// SortEntries orders entries for display: pinned first, then by date
// descending, breaking ties by title.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Pinned != entries[j].Pinned {
			return entries[i].Pinned
		}
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.After(entries[j].Date)
		}
		return entries[i].Title < entries[j].Title
	})
}
