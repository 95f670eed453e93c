package sync

import (
	"context"

	"github.com/louisbranch/satchel/internal/journal"
)

// AddEntry creates a journal entry for the active character.
func (c *Core) AddEntry(ctx context.Context, input journal.CreateEntryInput) (journal.Entry, error) {
	characterID, err := c.requireActiveCharacter()
	if err != nil {
		return journal.Entry{}, err
	}
	input.CharacterID = characterID

	entry, err := journal.CreateEntry(input, c.now, c.newID)
	if err != nil {
		return journal.Entry{}, err
	}
	if err := c.SaveEntry(ctx, entry); err != nil {
		return journal.Entry{}, err
	}
	return entry, nil
}

// SaveEntry saves a journal entry remotely, then updates state and the
// mirror.
func (c *Core) SaveEntry(ctx context.Context, entry journal.Entry) error {
	ctx, span := c.startSpan(ctx, "sync.SaveEntry")
	defer span.End()

	if err := c.requireOnline(); err != nil {
		return err
	}
	entry.UpdatedAt = c.now().UTC()

	if err := c.gw.SaveEntry(ctx, entry); err != nil {
		return c.remoteErr("save entry", err)
	}

	cache := c.state.Get().Cache
	entries := upsertEntry(cache.Entries, entry)
	journal.SortEntries(entries)
	c.state.SetJournal(entries, cache.Tags, cache.EntryTags)

	if err := c.CacheSnapshot(ctx, Snapshot{Entries: []journal.Entry{entry}}); err != nil {
		c.mirrorErr("save entry", err)
	}
	return nil
}

// AddTag creates a tag owned by the signed-in user.
func (c *Core) AddTag(ctx context.Context, input journal.CreateTagInput) (journal.Tag, error) {
	ctx, span := c.startSpan(ctx, "sync.AddTag")
	defer span.End()

	userID, err := c.requireUser()
	if err != nil {
		return journal.Tag{}, err
	}
	if err := c.requireOnline(); err != nil {
		return journal.Tag{}, err
	}
	input.UserID = userID

	tag, err := journal.CreateTag(input, c.now, c.newID)
	if err != nil {
		return journal.Tag{}, err
	}

	if err := c.gw.SaveTag(ctx, tag); err != nil {
		return journal.Tag{}, c.remoteErr("create tag", err)
	}

	tags := c.state.Get().Cache.Tags
	c.state.SetTags(append(append([]journal.Tag{}, tags...), tag))

	if err := c.CacheSnapshot(ctx, Snapshot{Tags: []journal.Tag{tag}}); err != nil {
		c.mirrorErr("create tag", err)
	}
	return tag, nil
}

// TagEntry links a tag to an entry. Linking the same pair twice is a no-op.
func (c *Core) TagEntry(ctx context.Context, entryID, tagID string) error {
	ctx, span := c.startSpan(ctx, "sync.TagEntry")
	defer span.End()

	if err := c.requireOnline(); err != nil {
		return err
	}
	link := journal.EntryTag{EntryID: entryID, TagID: tagID}
	if err := link.Validate(); err != nil {
		return err
	}

	if err := c.gw.LinkEntryTag(ctx, link); err != nil {
		return c.remoteErr("tag entry", err)
	}

	cache := c.state.Get().Cache
	links := cache.EntryTags
	if !containsLink(links, link) {
		links = append(append([]journal.EntryTag{}, links...), link)
	}
	c.state.SetJournal(cache.Entries, cache.Tags, links)

	if err := c.CacheSnapshot(ctx, Snapshot{EntryTags: []journal.EntryTag{link}}); err != nil {
		c.mirrorErr("tag entry", err)
	}
	return nil
}

// UntagEntry removes the link between a tag and an entry.
func (c *Core) UntagEntry(ctx context.Context, entryID, tagID string) error {
	ctx, span := c.startSpan(ctx, "sync.UntagEntry")
	defer span.End()

	if err := c.requireOnline(); err != nil {
		return err
	}
	link := journal.EntryTag{EntryID: entryID, TagID: tagID}
	if err := link.Validate(); err != nil {
		return err
	}

	if err := c.gw.UnlinkEntryTag(ctx, link); err != nil {
		return c.remoteErr("untag entry", err)
	}

	cache := c.state.Get().Cache
	links := make([]journal.EntryTag, 0, len(cache.EntryTags))
	for _, l := range cache.EntryTags {
		if l != link {
			links = append(links, l)
		}
	}
	c.state.SetJournal(cache.Entries, cache.Tags, links)

	if err := c.store.DeleteEntryTag(ctx, link); err != nil {
		c.mirrorErr("untag entry", err)
	}
	return nil
}

func upsertEntry(entries []journal.Entry, entry journal.Entry) []journal.Entry {
	next := append([]journal.Entry{}, entries...)
	for i := range next {
		if next[i].ID == entry.ID {
			next[i] = entry
			return next
		}
	}
	return append(next, entry)
}

func containsLink(links []journal.EntryTag, link journal.EntryTag) bool {
	for _, l := range links {
		if l == link {
			return true
		}
	}
	return false
}
