package sync

import (
	"context"

	"github.com/louisbranch/satchel/internal/appstate"
	"github.com/louisbranch/satchel/internal/character"
	"github.com/louisbranch/satchel/internal/inventory"
	"github.com/louisbranch/satchel/internal/journal"
	"github.com/louisbranch/satchel/internal/localstore"
	"github.com/louisbranch/satchel/internal/resource"
	"github.com/louisbranch/satchel/internal/sessionfile"
	"github.com/louisbranch/satchel/internal/wallet"
)

// Snapshot is a partial mirror write: nil or empty sections are skipped,
// and nothing is ever deleted. The mirror converges by overwriting rows the
// backend returned, never by pruning rows it did not.
type Snapshot struct {
	Characters   []character.Character
	Items        []inventory.Item
	Resources    []resource.Resource
	Wallet       *wallet.Wallet
	Transactions []wallet.Transaction
	Entries      []journal.Entry
	Tags         []journal.Tag
	EntryTags    []journal.EntryTag
	Files        []sessionfile.File
}

// CacheSnapshot mirrors a snapshot into the local store. Each section is
// written independently; the first failure aborts and is returned.
func (c *Core) CacheSnapshot(ctx context.Context, snap Snapshot) error {
	ctx, span := c.startSpan(ctx, "sync.CacheSnapshot")
	defer span.End()

	if len(snap.Characters) > 0 {
		if err := c.store.PutCharacters(ctx, snap.Characters); err != nil {
			return err
		}
	}
	if len(snap.Items) > 0 {
		if err := c.store.PutItems(ctx, snap.Items); err != nil {
			return err
		}
	}
	if len(snap.Resources) > 0 {
		if err := c.store.PutResources(ctx, snap.Resources); err != nil {
			return err
		}
	}
	if snap.Wallet != nil {
		if err := c.store.PutWallet(ctx, *snap.Wallet); err != nil {
			return err
		}
	}
	if len(snap.Transactions) > 0 {
		if err := c.store.PutTransactions(ctx, snap.Transactions); err != nil {
			return err
		}
	}
	if len(snap.Entries) > 0 {
		if err := c.store.PutEntries(ctx, snap.Entries); err != nil {
			return err
		}
	}
	if len(snap.Tags) > 0 {
		if err := c.store.PutTags(ctx, snap.Tags); err != nil {
			return err
		}
	}
	if len(snap.EntryTags) > 0 {
		if err := c.store.PutEntryTags(ctx, snap.EntryTags); err != nil {
			return err
		}
	}
	if len(snap.Files) > 0 {
		if err := c.store.PutFiles(ctx, snap.Files); err != nil {
			return err
		}
	}
	return nil
}

// LoadCachedData hydrates the application state from the local mirror
// without touching the network. This is the cold-start path: it restores
// the character list, the remembered active selection, and the cached
// sections for that character.
//
// The stored selection is validated against the cached character list; a
// selection referencing a character the cache no longer holds falls back to
// the first cached character.
func (c *Core) LoadCachedData(ctx context.Context) error {
	ctx, span := c.startSpan(ctx, "sync.LoadCachedData")
	defer span.End()

	userID, err := c.requireUser()
	if err != nil {
		return err
	}

	characters, err := c.store.CharactersByUser(ctx, userID)
	if err != nil {
		return err
	}

	activeID := ""
	if stored, found, err := c.store.GetPreference(ctx, userID, localstore.PrefActiveCharacter); err == nil && found {
		activeID = appstate.NormalizeCharacterID(stored)
	}
	if !containsCharacter(characters, activeID) {
		activeID = ""
	}
	if activeID == "" && len(characters) > 0 {
		activeID = characters[0].ID
	}

	c.state.Set(appstate.Patch{UserID: &userID, Characters: &characters})
	// Persist the resolved selection so a stale stored id is corrected once
	// instead of re-resolved on every cold start.
	c.state.SetActiveCharacter(activeID)

	if activeID == "" {
		return nil
	}
	return c.loadCachedSections(ctx, userID, activeID)
}

// loadCachedSections reads every cached section for one character from the
// local store into the state cache.
func (c *Core) loadCachedSections(ctx context.Context, userID, characterID string) error {
	items, err := c.store.ItemsByCharacter(ctx, characterID)
	if err != nil {
		return err
	}
	resources, err := c.store.ResourcesByCharacter(ctx, characterID)
	if err != nil {
		return err
	}
	entries, err := c.store.EntriesByCharacter(ctx, characterID)
	if err != nil {
		return err
	}
	tags, err := c.store.TagsByUser(ctx, userID)
	if err != nil {
		return err
	}
	links, err := c.store.EntryTagsByEntries(ctx, entryIDs(entries))
	if err != nil {
		return err
	}

	patch := appstate.CachePatch{
		Items:     &items,
		Resources: &resources,
		Entries:   &entries,
		Tags:      &tags,
		EntryTags: &links,
	}
	if w, found, err := c.store.WalletByCharacter(ctx, characterID); err == nil && found {
		cached := w
		patch.Wallet = &cached
	}
	c.state.SetCache(patch)
	return nil
}

// RefreshCharacters reloads the character list. Online it fetches from the
// backend, updates state, and mirrors locally; offline it is a no-op, since
// state keeps whatever it already holds.
func (c *Core) RefreshCharacters(ctx context.Context) error {
	ctx, span := c.startSpan(ctx, "sync.RefreshCharacters")
	defer span.End()

	userID, err := c.requireUser()
	if err != nil {
		return err
	}

	if c.session.Offline() {
		// State already holds the last known list; the local store is read
		// back only during cold-start hydration.
		return nil
	}

	characters, err := c.gw.FetchCharacters(ctx, userID)
	if err != nil {
		return c.remoteErr("refresh characters", err)
	}
	c.setCharacters(userID, characters)
	if err := c.CacheSnapshot(ctx, Snapshot{Characters: characters}); err != nil {
		c.mirrorErr("refresh characters", err)
	}
	return nil
}

// setCharacters replaces the character list, revalidating the active
// selection against the new list and persisting the result.
func (c *Core) setCharacters(userID string, characters []character.Character) {
	activeID := c.state.Get().ActiveCharacterID
	if !containsCharacter(characters, activeID) {
		activeID = ""
	}
	if activeID == "" && len(characters) > 0 {
		activeID = characters[0].ID
	}
	c.state.Set(appstate.Patch{UserID: &userID, Characters: &characters})
	c.state.SetActiveCharacter(activeID)
}

// RefreshInventory reloads the active character's items.
func (c *Core) RefreshInventory(ctx context.Context) error {
	ctx, span := c.startSpan(ctx, "sync.RefreshInventory")
	defer span.End()

	characterID, err := c.requireActiveCharacter()
	if err != nil {
		return err
	}

	if c.session.Offline() {
		return nil
	}

	items, err := c.gw.FetchItems(ctx, characterID)
	if err != nil {
		return c.remoteErr("refresh inventory", err)
	}
	c.state.SetItems(items)
	if err := c.CacheSnapshot(ctx, Snapshot{Items: items}); err != nil {
		c.mirrorErr("refresh inventory", err)
	}
	return nil
}

// RefreshResources reloads the active character's resources.
func (c *Core) RefreshResources(ctx context.Context) error {
	ctx, span := c.startSpan(ctx, "sync.RefreshResources")
	defer span.End()

	characterID, err := c.requireActiveCharacter()
	if err != nil {
		return err
	}

	if c.session.Offline() {
		return nil
	}

	resources, err := c.gw.FetchResources(ctx, characterID)
	if err != nil {
		return c.remoteErr("refresh resources", err)
	}
	c.state.SetResources(resources)
	if err := c.CacheSnapshot(ctx, Snapshot{Resources: resources}); err != nil {
		c.mirrorErr("refresh resources", err)
	}
	return nil
}

// RefreshWallet reloads the active character's wallet. A character without
// a remote wallet reads as an empty one.
func (c *Core) RefreshWallet(ctx context.Context) error {
	ctx, span := c.startSpan(ctx, "sync.RefreshWallet")
	defer span.End()

	characterID, err := c.requireActiveCharacter()
	if err != nil {
		return err
	}

	if c.session.Offline() {
		return nil
	}

	w, found, err := c.gw.FetchWallet(ctx, characterID)
	if err != nil {
		return c.remoteErr("refresh wallet", err)
	}
	if !found {
		w = wallet.Wallet{CharacterID: characterID}
	}
	c.state.SetWallet(&w)
	if found {
		if err := c.CacheSnapshot(ctx, Snapshot{Wallet: &w}); err != nil {
			c.mirrorErr("refresh wallet", err)
		}
	}
	return nil
}

// RefreshJournal reloads the active character's entries plus the user's
// tags and the links joining them.
func (c *Core) RefreshJournal(ctx context.Context) error {
	ctx, span := c.startSpan(ctx, "sync.RefreshJournal")
	defer span.End()

	userID, err := c.requireUser()
	if err != nil {
		return err
	}
	characterID, err := c.requireActiveCharacter()
	if err != nil {
		return err
	}

	if c.session.Offline() {
		return nil
	}

	entries, err := c.gw.FetchEntries(ctx, characterID)
	if err != nil {
		return c.remoteErr("refresh journal", err)
	}
	tags, err := c.gw.FetchTags(ctx, userID)
	if err != nil {
		return c.remoteErr("refresh journal", err)
	}
	links, err := c.gw.FetchEntryTags(ctx, entryIDs(entries))
	if err != nil {
		return c.remoteErr("refresh journal", err)
	}

	c.state.SetJournal(entries, tags, links)
	if err := c.CacheSnapshot(ctx, Snapshot{Entries: entries, Tags: tags, EntryTags: links}); err != nil {
		c.mirrorErr("refresh journal", err)
	}
	return nil
}

// RefreshAll reloads every section for the active character. The first
// failure aborts; earlier sections keep their refreshed data.
func (c *Core) RefreshAll(ctx context.Context) error {
	if err := c.RefreshCharacters(ctx); err != nil {
		return err
	}
	if _, err := c.requireActiveCharacter(); err != nil {
		// A user with no characters has nothing further to refresh.
		return nil
	}
	if err := c.RefreshInventory(ctx); err != nil {
		return err
	}
	if err := c.RefreshResources(ctx); err != nil {
		return err
	}
	if err := c.RefreshWallet(ctx); err != nil {
		return err
	}
	return c.RefreshJournal(ctx)
}

func containsCharacter(characters []character.Character, id string) bool {
	if id == "" {
		return false
	}
	for _, c := range characters {
		if c.ID == id {
			return true
		}
	}
	return false
}

func entryIDs(entries []journal.Entry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}
