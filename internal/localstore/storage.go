// Package localstore defines the persistence contract for the device-local
// data mirror.
//
// The local store is a cache of the remote backend, never the source of
// truth: rows are overwritten wholesale from remote reads and are safe to
// discard and rebuild. The only locally-authored data is the per-user
// preference table, which survives sign-out.
package localstore

import (
	"context"

	"github.com/louisbranch/satchel/internal/character"
	"github.com/louisbranch/satchel/internal/inventory"
	"github.com/louisbranch/satchel/internal/journal"
	"github.com/louisbranch/satchel/internal/resource"
	"github.com/louisbranch/satchel/internal/sessionfile"
	"github.com/louisbranch/satchel/internal/wallet"
)

// PrefActiveCharacter is the preference key holding the last selected
// character id for a user.
const PrefActiveCharacter = "active_character_id"

// Store is the contract for local mirror persistence.
//
// Put methods upsert by primary key and never delete rows they were not
// given; list methods return empty slices when nothing is cached.
type Store interface {
	Close() error

	PutCharacters(ctx context.Context, characters []character.Character) error
	CharactersByUser(ctx context.Context, userID string) ([]character.Character, error)

	PutItems(ctx context.Context, items []inventory.Item) error
	ItemsByCharacter(ctx context.Context, characterID string) ([]inventory.Item, error)
	DeleteItem(ctx context.Context, itemID string) error

	PutResources(ctx context.Context, resources []resource.Resource) error
	ResourcesByCharacter(ctx context.Context, characterID string) ([]resource.Resource, error)

	PutWallet(ctx context.Context, w wallet.Wallet) error
	WalletByCharacter(ctx context.Context, characterID string) (wallet.Wallet, bool, error)

	PutTransactions(ctx context.Context, transactions []wallet.Transaction) error
	TransactionsByCharacter(ctx context.Context, characterID string) ([]wallet.Transaction, error)

	PutEntries(ctx context.Context, entries []journal.Entry) error
	EntriesByCharacter(ctx context.Context, characterID string) ([]journal.Entry, error)

	PutTags(ctx context.Context, tags []journal.Tag) error
	TagsByUser(ctx context.Context, userID string) ([]journal.Tag, error)

	PutEntryTags(ctx context.Context, links []journal.EntryTag) error
	DeleteEntryTag(ctx context.Context, link journal.EntryTag) error
	EntryTagsByEntries(ctx context.Context, entryIDs []string) ([]journal.EntryTag, error)

	PutFiles(ctx context.Context, files []sessionfile.File) error
	FilesByCharacter(ctx context.Context, characterID string) ([]sessionfile.File, error)

	GetPreference(ctx context.Context, userID, key string) (string, bool, error)
	SetPreference(ctx context.Context, userID, key, value string) error
	DeletePreference(ctx context.Context, userID, key string) error
}
