package sync

import (
	"context"

	"github.com/louisbranch/satchel/internal/appstate"
	"github.com/louisbranch/satchel/internal/character"
	"github.com/louisbranch/satchel/internal/inventory"
	"github.com/louisbranch/satchel/internal/resource"
	"github.com/louisbranch/satchel/internal/sessionfile"
)

// CreateCharacter creates a character remotely, then updates state and the
// local mirror. The owner is always the signed-in user. The first character
// a user creates becomes the active selection.
func (c *Core) CreateCharacter(ctx context.Context, input character.CreateCharacterInput) (character.Character, error) {
	ctx, span := c.startSpan(ctx, "sync.CreateCharacter")
	defer span.End()

	userID, err := c.requireUser()
	if err != nil {
		return character.Character{}, err
	}
	if err := c.requireOnline(); err != nil {
		return character.Character{}, err
	}

	input.UserID = userID
	created, err := character.CreateCharacter(input, c.now, c.newID)
	if err != nil {
		return character.Character{}, err
	}

	if err := c.gw.CreateCharacter(ctx, created); err != nil {
		return character.Character{}, c.remoteErr("create character", err)
	}

	characters := append(append([]character.Character{}, c.state.Get().Characters...), created)
	c.state.Set(appstate.Patch{Characters: &characters})
	if c.state.Get().ActiveCharacterID == "" {
		c.state.SetActiveCharacter(created.ID)
	}

	if err := c.CacheSnapshot(ctx, Snapshot{Characters: []character.Character{created}}); err != nil {
		c.mirrorErr("create character", err)
	}
	return created, nil
}

// UpdateCharacter saves sheet or name edits remotely, then updates state
// and the mirror.
func (c *Core) UpdateCharacter(ctx context.Context, ch character.Character) error {
	ctx, span := c.startSpan(ctx, "sync.UpdateCharacter")
	defer span.End()

	if err := c.requireOnline(); err != nil {
		return err
	}
	if err := ch.Sheet.Validate(); err != nil {
		return err
	}
	ch.UpdatedAt = c.now().UTC()

	if err := c.gw.UpdateCharacter(ctx, ch); err != nil {
		return c.remoteErr("update character", err)
	}

	characters := append([]character.Character{}, c.state.Get().Characters...)
	for i := range characters {
		if characters[i].ID == ch.ID {
			characters[i] = ch
			break
		}
	}
	c.state.Set(appstate.Patch{Characters: &characters})

	if err := c.CacheSnapshot(ctx, Snapshot{Characters: []character.Character{ch}}); err != nil {
		c.mirrorErr("update character", err)
	}
	return nil
}

// AddItem creates an inventory item for the active character.
func (c *Core) AddItem(ctx context.Context, input inventory.CreateItemInput) (inventory.Item, error) {
	characterID, err := c.requireActiveCharacter()
	if err != nil {
		return inventory.Item{}, err
	}
	input.CharacterID = characterID

	item, err := inventory.CreateItem(input, c.now, c.newID)
	if err != nil {
		return inventory.Item{}, err
	}
	if err := c.SaveItem(ctx, item); err != nil {
		return inventory.Item{}, err
	}
	return item, nil
}

// SaveItem validates containment against the cached inventory, saves the
// item remotely, and updates state and the mirror.
func (c *Core) SaveItem(ctx context.Context, item inventory.Item) error {
	ctx, span := c.startSpan(ctx, "sync.SaveItem")
	defer span.End()

	if err := c.requireOnline(); err != nil {
		return err
	}

	items := c.state.Get().Cache.Items
	if err := inventory.ValidateContainment(item, items); err != nil {
		return err
	}
	item.UpdatedAt = c.now().UTC()

	if err := c.gw.SaveItem(ctx, item); err != nil {
		return c.remoteErr("save item", err)
	}

	c.state.SetItems(upsertItem(items, item))
	if err := c.CacheSnapshot(ctx, Snapshot{Items: []inventory.Item{item}}); err != nil {
		c.mirrorErr("save item", err)
	}
	return nil
}

// DeleteItem removes an item remotely, then from state and the mirror.
// Containers still holding items are rejected before any network call.
func (c *Core) DeleteItem(ctx context.Context, itemID string) error {
	ctx, span := c.startSpan(ctx, "sync.DeleteItem")
	defer span.End()

	if err := c.requireOnline(); err != nil {
		return err
	}

	items := c.state.Get().Cache.Items
	if err := inventory.ValidateRemoval(itemID, items); err != nil {
		return err
	}

	if err := c.gw.DeleteItem(ctx, itemID); err != nil {
		return c.remoteErr("delete item", err)
	}

	remaining := make([]inventory.Item, 0, len(items))
	for _, it := range items {
		if it.ID != itemID {
			remaining = append(remaining, it)
		}
	}
	c.state.SetItems(remaining)

	if err := c.store.DeleteItem(ctx, itemID); err != nil {
		c.mirrorErr("delete item", err)
	}
	return nil
}

// AddResource creates a limited-use resource for the active character.
func (c *Core) AddResource(ctx context.Context, input resource.CreateResourceInput) (resource.Resource, error) {
	characterID, err := c.requireActiveCharacter()
	if err != nil {
		return resource.Resource{}, err
	}
	input.CharacterID = characterID

	r, err := resource.CreateResource(input, c.now, c.newID)
	if err != nil {
		return resource.Resource{}, err
	}
	if err := c.SaveResource(ctx, r); err != nil {
		return resource.Resource{}, err
	}
	return r, nil
}

// SaveResource saves a resource remotely, then updates state and the mirror.
func (c *Core) SaveResource(ctx context.Context, r resource.Resource) error {
	ctx, span := c.startSpan(ctx, "sync.SaveResource")
	defer span.End()

	if err := c.requireOnline(); err != nil {
		return err
	}
	r.UpdatedAt = c.now().UTC()

	if err := c.gw.SaveResource(ctx, r); err != nil {
		return c.remoteErr("save resource", err)
	}

	c.state.SetResources(upsertResource(c.state.Get().Cache.Resources, r))
	if err := c.CacheSnapshot(ctx, Snapshot{Resources: []resource.Resource{r}}); err != nil {
		c.mirrorErr("save resource", err)
	}
	return nil
}

// UseResource consumes one use of the named resource.
func (c *Core) UseResource(ctx context.Context, resourceID string) error {
	r, found := findResource(c.state.Get().Cache.Resources, resourceID)
	if !found {
		return notFoundErr("resource", resourceID)
	}
	used, err := r.Use(1, c.now)
	if err != nil {
		return err
	}
	return c.SaveResource(ctx, used)
}

// RecoverResource restores n uses of the named resource.
func (c *Core) RecoverResource(ctx context.Context, resourceID string, n int) error {
	r, found := findResource(c.state.Get().Cache.Resources, resourceID)
	if !found {
		return notFoundErr("resource", resourceID)
	}
	return c.SaveResource(ctx, r.Recover(n, c.now))
}

// ApplyRest applies a short or long rest to every cached resource of the
// active character, saving only the ones the rest actually changed.
func (c *Core) ApplyRest(ctx context.Context, kind resource.RestKind) error {
	ctx, span := c.startSpan(ctx, "sync.ApplyRest")
	defer span.End()

	if err := c.requireOnline(); err != nil {
		return err
	}
	if _, err := c.requireActiveCharacter(); err != nil {
		return err
	}

	resources := c.state.Get().Cache.Resources
	updated := make([]resource.Resource, 0, len(resources))
	changed := make([]resource.Resource, 0, len(resources))
	for _, r := range resources {
		rested := r.ApplyRest(kind, c.now)
		updated = append(updated, rested)
		if rested.UsedCount != r.UsedCount {
			changed = append(changed, rested)
		}
	}
	if len(changed) == 0 {
		return nil
	}

	for _, r := range changed {
		if err := c.gw.SaveResource(ctx, r); err != nil {
			return c.remoteErr("apply rest", err)
		}
	}

	c.state.SetResources(updated)
	if err := c.CacheSnapshot(ctx, Snapshot{Resources: changed}); err != nil {
		c.mirrorErr("apply rest", err)
	}
	return nil
}

// RecordSessionFile records metadata for an uploaded session document.
func (c *Core) RecordSessionFile(ctx context.Context, input sessionfile.NewFileInput) (sessionfile.File, error) {
	ctx, span := c.startSpan(ctx, "sync.RecordSessionFile")
	defer span.End()

	characterID, err := c.requireActiveCharacter()
	if err != nil {
		return sessionfile.File{}, err
	}
	if err := c.requireOnline(); err != nil {
		return sessionfile.File{}, err
	}
	input.CharacterID = characterID

	file, err := sessionfile.NewFile(input, c.now, c.newID)
	if err != nil {
		return sessionfile.File{}, err
	}

	if err := c.gw.SaveFile(ctx, file); err != nil {
		return sessionfile.File{}, c.remoteErr("record session file", err)
	}
	if err := c.CacheSnapshot(ctx, Snapshot{Files: []sessionfile.File{file}}); err != nil {
		c.mirrorErr("record session file", err)
	}
	return file, nil
}

// SessionFiles lists the active character's session documents, newest
// first. Offline it reads the local mirror; online it fetches and mirrors.
func (c *Core) SessionFiles(ctx context.Context) ([]sessionfile.File, error) {
	ctx, span := c.startSpan(ctx, "sync.SessionFiles")
	defer span.End()

	characterID, err := c.requireActiveCharacter()
	if err != nil {
		return nil, err
	}

	if c.session.Offline() {
		return c.store.FilesByCharacter(ctx, characterID)
	}

	files, err := c.gw.FetchFiles(ctx, characterID)
	if err != nil {
		return nil, c.remoteErr("fetch session files", err)
	}
	if err := c.CacheSnapshot(ctx, Snapshot{Files: files}); err != nil {
		c.mirrorErr("fetch session files", err)
	}
	return files, nil
}

func upsertItem(items []inventory.Item, item inventory.Item) []inventory.Item {
	next := append([]inventory.Item{}, items...)
	for i := range next {
		if next[i].ID == item.ID {
			next[i] = item
			return next
		}
	}
	return append(next, item)
}

func upsertResource(resources []resource.Resource, r resource.Resource) []resource.Resource {
	next := append([]resource.Resource{}, resources...)
	for i := range next {
		if next[i].ID == r.ID {
			next[i] = r
			return next
		}
	}
	return append(next, r)
}

func findResource(resources []resource.Resource, id string) (resource.Resource, bool) {
	for _, r := range resources {
		if r.ID == id {
			return r, true
		}
	}
	return resource.Resource{}, false
}
