package sync

import (
	"context"

	apperrors "github.com/louisbranch/satchel/internal/errors"
	"github.com/louisbranch/satchel/internal/wallet"
)

// Pay spends coins: the cost is negated and applied to the active
// character's wallet. Fails before any network call when the wallet cannot
// cover the cost.
func (c *Core) Pay(ctx context.Context, cost wallet.Delta, reason string) error {
	return c.adjustWallet(ctx, cost.Negate(), reason)
}

// Earn adds coins to the active character's wallet.
func (c *Core) Earn(ctx context.Context, gain wallet.Delta, reason string) error {
	return c.adjustWallet(ctx, gain, reason)
}

// adjustWallet applies a signed delta remote-first, then appends the ledger
// row. The wallet write is the authoritative step: a ledger failure after a
// successful wallet write is reported as an advisory toast, not an error,
// because rolling the balance back would forge a second unaudited change.
func (c *Core) adjustWallet(ctx context.Context, delta wallet.Delta, reason string) error {
	ctx, span := c.startSpan(ctx, "sync.adjustWallet")
	defer span.End()

	characterID, err := c.requireActiveCharacter()
	if err != nil {
		return err
	}
	if err := c.requireOnline(); err != nil {
		return err
	}

	current, err := c.currentWallet(characterID)
	if err != nil {
		return err
	}

	next, err := current.Apply(delta, c.now)
	if err != nil {
		return err
	}

	transaction, err := wallet.NewTransaction(wallet.NewTransactionInput{
		CharacterID: characterID,
		Delta:       delta,
		Reason:      reason,
	}, c.now, c.newID)
	if err != nil {
		return err
	}

	if err := c.gw.SaveWallet(ctx, next); err != nil {
		return c.remoteErr("update wallet", err)
	}

	if err := c.gw.AppendTransaction(ctx, transaction); err != nil {
		c.toaster.Failure(apperrors.Wrap(apperrors.CodeLedgerOrphaned, "wallet updated but ledger row was not recorded", err))
	}

	c.state.SetWallet(&next)
	if err := c.CacheSnapshot(ctx, Snapshot{Wallet: &next, Transactions: []wallet.Transaction{transaction}}); err != nil {
		c.mirrorErr("update wallet", err)
	}
	return nil
}

// currentWallet resolves the wallet to mutate: the state cache, or an empty
// wallet for characters that never held coin. The local mirror is not
// consulted; hydration already put the freshest known wallet in state.
func (c *Core) currentWallet(characterID string) (wallet.Wallet, error) {
	if cached := c.state.Get().Cache.Wallet; cached != nil && cached.CharacterID == characterID {
		return *cached, nil
	}
	return wallet.New(characterID, c.now)
}

// TransactionHistory lists the active character's ledger rows, newest
// first. Offline it reads the local mirror; online it fetches and mirrors.
func (c *Core) TransactionHistory(ctx context.Context) ([]wallet.Transaction, error) {
	ctx, span := c.startSpan(ctx, "sync.TransactionHistory")
	defer span.End()

	characterID, err := c.requireActiveCharacter()
	if err != nil {
		return nil, err
	}

	if c.session.Offline() {
		return c.store.TransactionsByCharacter(ctx, characterID)
	}

	transactions, err := c.gw.FetchTransactions(ctx, characterID)
	if err != nil {
		return nil, c.remoteErr("fetch ledger", err)
	}
	if err := c.CacheSnapshot(ctx, Snapshot{Transactions: transactions}); err != nil {
		c.mirrorErr("fetch ledger", err)
	}
	return transactions, nil
}
