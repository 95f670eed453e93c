package journal

import (
	"errors"
	"testing"
	"time"
)

func TestCreateTagNormalizesInput(t *testing.T) {
	fixedTime := time.Date(2026, 5, 20, 21, 0, 0, 0, time.UTC)
	tag, err := CreateTag(CreateTagInput{
		UserID: " user-1 ",
		Name:   "  npc  ",
		Color:  " #aa55ff ",
	}, func() time.Time { return fixedTime }, func() (string, error) { return "tag-1", nil })
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}

	if tag.UserID != "user-1" || tag.Name != "npc" || tag.Color != "#aa55ff" {
		t.Fatalf("expected trimmed fields, got %+v", tag)
	}
}

func TestNormalizeCreateTagInputValidation(t *testing.T) {
	if _, err := NormalizeCreateTagInput(CreateTagInput{UserID: " ", Name: "npc"}); !errors.Is(err, ErrEmptyUserID) {
		t.Fatalf("expected ErrEmptyUserID, got %v", err)
	}
	if _, err := NormalizeCreateTagInput(CreateTagInput{UserID: "user-1", Name: "  "}); !errors.Is(err, ErrEmptyTagName) {
		t.Fatalf("expected ErrEmptyTagName, got %v", err)
	}
}

func TestEntryTagValidate(t *testing.T) {
	if err := (EntryTag{EntryID: "entry-1", TagID: "tag-1"}).Validate(); err != nil {
		t.Fatalf("expected valid link, got %v", err)
	}
	if err := (EntryTag{EntryID: "entry-1"}).Validate(); !errors.Is(err, ErrIncompleteLink) {
		t.Fatalf("expected ErrIncompleteLink, got %v", err)
	}
	if err := (EntryTag{TagID: "tag-1"}).Validate(); !errors.Is(err, ErrIncompleteLink) {
		t.Fatalf("expected ErrIncompleteLink, got %v", err)
	}
}

func TestTagsForEntry(t *testing.T) {
	tags := []Tag{
		{ID: "tag-1", Name: "npc"},
		{ID: "tag-2", Name: "quest"},
		{ID: "tag-3", Name: "loot"},
	}
	links := []EntryTag{
		{EntryID: "entry-1", TagID: "tag-3"},
		{EntryID: "entry-1", TagID: "tag-1"},
		{EntryID: "entry-2", TagID: "tag-2"},
	}

	got := TagsForEntry("entry-1", links, tags)
	if len(got) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(got))
	}
	// Order follows the tags slice, not the links slice.
	if got[0].ID != "tag-1" || got[1].ID != "tag-3" {
		t.Fatalf("unexpected tag order: %v", got)
	}

	if TagsForEntry("entry-9", links, tags) != nil {
		t.Fatal("expected nil for entry with no links")
	}
}
