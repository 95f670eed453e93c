package journal

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/satchel/internal/errors"
)

var (
	// ErrEmptyUserID indicates a tag without an owning user.
	ErrEmptyUserID = apperrors.New(apperrors.CodeTagEmptyUserID, "user id is required")
	// ErrEmptyTagName indicates a missing tag name.
	ErrEmptyTagName = apperrors.New(apperrors.CodeTagEmptyName, "tag name is required")
	// ErrIncompleteLink indicates an entry-tag link missing one side.
	ErrIncompleteLink = apperrors.New(apperrors.CodeEntryTagIncomplete, "entry-tag link requires both entry id and tag id")
)

// Tag is a user-owned label attachable to journal entries.
type Tag struct {
	ID        string
	UserID    string
	Name      string
	Color     string
	CreatedAt time.Time
}

// CreateTagInput carries the fields needed to create a tag.
type CreateTagInput struct {
	UserID string
	Name   string
	Color  string
}

// NormalizeCreateTagInput trims fields and validates the tag.
func NormalizeCreateTagInput(input CreateTagInput) (CreateTagInput, error) {
	input.UserID = strings.TrimSpace(input.UserID)
	input.Name = strings.TrimSpace(input.Name)
	input.Color = strings.TrimSpace(input.Color)

	if input.UserID == "" {
		return CreateTagInput{}, ErrEmptyUserID
	}
	if input.Name == "" {
		return CreateTagInput{}, ErrEmptyTagName
	}
	return input, nil
}

// CreateTag builds a tag with a generated id and timestamp.
func CreateTag(input CreateTagInput, now func() time.Time, newID func() (string, error)) (Tag, error) {
	normalized, err := NormalizeCreateTagInput(input)
	if err != nil {
		return Tag{}, err
	}

	id, err := newID()
	if err != nil {
		return Tag{}, err
	}

	return Tag{
		ID:        id,
		UserID:    normalized.UserID,
		Name:      normalized.Name,
		Color:     normalized.Color,
		CreatedAt: now().UTC(),
	}, nil
}

// EntryTag links one journal entry to one tag. The (EntryID, TagID) pair is
// unique; the storage layer enforces it as a composite primary key.
type EntryTag struct {
	EntryID string
	TagID   string
}

// Validate checks that both sides of the link are present.
func (l EntryTag) Validate() error {
	if strings.TrimSpace(l.EntryID) == "" || strings.TrimSpace(l.TagID) == "" {
		return ErrIncompleteLink
	}
	return nil
}

// TagsForEntry resolves the tags linked to the given entry, preserving the
// order of the tags slice.
func TagsForEntry(entryID string, links []EntryTag, tags []Tag) []Tag {
	linked := make(map[string]bool, len(links))
	for _, link := range links {
		if link.EntryID == entryID {
			linked[link.TagID] = true
		}
	}
	if len(linked) == 0 {
		return nil
	}

	var result []Tag
	for _, tag := range tags {
		if linked[tag.ID] {
			result = append(result, tag)
		}
	}
	return result
}
