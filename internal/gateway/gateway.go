// Package gateway defines the remote backend contract.
//
// The backend is the source of truth for all synced data. The contract is
// deliberately thin: fetch-by-owner reads and single-row writes, with no
// retries, batching, or caching; those concerns belong to the sync layer.
package gateway

import (
	"context"
	"fmt"

	"github.com/louisbranch/satchel/internal/character"
	"github.com/louisbranch/satchel/internal/inventory"
	"github.com/louisbranch/satchel/internal/journal"
	"github.com/louisbranch/satchel/internal/resource"
	"github.com/louisbranch/satchel/internal/sessionfile"
	"github.com/louisbranch/satchel/internal/wallet"
)

// Error is a remote request failure with the backend's status and payload.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gateway: %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("gateway: %d: %s", e.Status, e.Message)
}

// Gateway is the remote data contract implemented by the REST client.
type Gateway interface {
	FetchCharacters(ctx context.Context, userID string) ([]character.Character, error)
	CreateCharacter(ctx context.Context, c character.Character) error
	UpdateCharacter(ctx context.Context, c character.Character) error

	FetchItems(ctx context.Context, characterID string) ([]inventory.Item, error)
	SaveItem(ctx context.Context, item inventory.Item) error
	DeleteItem(ctx context.Context, itemID string) error

	FetchResources(ctx context.Context, characterID string) ([]resource.Resource, error)
	SaveResource(ctx context.Context, r resource.Resource) error

	FetchWallet(ctx context.Context, characterID string) (wallet.Wallet, bool, error)
	SaveWallet(ctx context.Context, w wallet.Wallet) error
	FetchTransactions(ctx context.Context, characterID string) ([]wallet.Transaction, error)
	AppendTransaction(ctx context.Context, t wallet.Transaction) error

	FetchEntries(ctx context.Context, characterID string) ([]journal.Entry, error)
	SaveEntry(ctx context.Context, e journal.Entry) error

	FetchTags(ctx context.Context, userID string) ([]journal.Tag, error)
	SaveTag(ctx context.Context, t journal.Tag) error

	FetchEntryTags(ctx context.Context, entryIDs []string) ([]journal.EntryTag, error)
	LinkEntryTag(ctx context.Context, link journal.EntryTag) error
	UnlinkEntryTag(ctx context.Context, link journal.EntryTag) error

	FetchFiles(ctx context.Context, characterID string) ([]sessionfile.File, error)
	SaveFile(ctx context.Context, f sessionfile.File) error
}
