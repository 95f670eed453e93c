package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/louisbranch/satchel/internal/wallet"
)

// PutWallet upserts the wallet row for one character.
func (s *Store) PutWallet(ctx context.Context, w wallet.Wallet) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	w.CharacterID = strings.TrimSpace(w.CharacterID)
	if w.CharacterID == "" {
		return fmt.Errorf("character id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO wallets (character_id, platinum, gold, silver, copper, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(character_id) DO UPDATE SET
		   platinum = excluded.platinum,
		   gold = excluded.gold,
		   silver = excluded.silver,
		   copper = excluded.copper,
		   updated_at = excluded.updated_at`,
		w.CharacterID,
		w.Platinum,
		w.Gold,
		w.Silver,
		w.Copper,
		timeToUnixMillis(w.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put wallet: %w", err)
	}
	return nil
}

// WalletByCharacter loads the cached wallet for one character.
func (s *Store) WalletByCharacter(ctx context.Context, characterID string) (wallet.Wallet, bool, error) {
	if s == nil || s.sqlDB == nil {
		return wallet.Wallet{}, false, fmt.Errorf("storage is not configured")
	}
	characterID = strings.TrimSpace(characterID)
	if characterID == "" {
		return wallet.Wallet{}, false, fmt.Errorf("character id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT character_id, platinum, gold, silver, copper, updated_at
		 FROM wallets
		 WHERE character_id = ?`,
		characterID,
	)

	var w wallet.Wallet
	var updatedAt int64
	if err := row.Scan(&w.CharacterID, &w.Platinum, &w.Gold, &w.Silver, &w.Copper, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return wallet.Wallet{}, false, nil
		}
		return wallet.Wallet{}, false, fmt.Errorf("get wallet: %w", err)
	}
	w.UpdatedAt = unixMillisToTime(updatedAt)
	return w, true, nil
}

// PutTransactions upserts ledger rows by id.
func (s *Store) PutTransactions(ctx context.Context, transactions []wallet.Transaction) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if len(transactions) == 0 {
		return nil
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, t := range transactions {
			if strings.TrimSpace(t.ID) == "" {
				return fmt.Errorf("transaction id is required")
			}

			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO wallet_transactions (id, character_id, platinum, gold, silver, copper, reason, occurred_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
				 ON CONFLICT(id) DO UPDATE SET
				   character_id = excluded.character_id,
				   platinum = excluded.platinum,
				   gold = excluded.gold,
				   silver = excluded.silver,
				   copper = excluded.copper,
				   reason = excluded.reason,
				   occurred_at = excluded.occurred_at`,
				t.ID,
				t.CharacterID,
				t.Delta.Platinum,
				t.Delta.Gold,
				t.Delta.Silver,
				t.Delta.Copper,
				t.Reason,
				timeToUnixMillis(t.OccurredAt),
			); err != nil {
				return fmt.Errorf("put transaction %s: %w", t.ID, err)
			}
		}
		return nil
	})
}

// TransactionsByCharacter lists ledger rows for one character, newest first.
func (s *Store) TransactionsByCharacter(ctx context.Context, characterID string) ([]wallet.Transaction, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	characterID = strings.TrimSpace(characterID)
	if characterID == "" {
		return nil, fmt.Errorf("character id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, character_id, platinum, gold, silver, copper, reason, occurred_at
		 FROM wallet_transactions
		 WHERE character_id = ?
		 ORDER BY occurred_at DESC, id`,
		characterID,
	)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	transactions := make([]wallet.Transaction, 0)
	for rows.Next() {
		var t wallet.Transaction
		var occurredAt int64
		if err := rows.Scan(
			&t.ID,
			&t.CharacterID,
			&t.Delta.Platinum,
			&t.Delta.Gold,
			&t.Delta.Silver,
			&t.Delta.Copper,
			&t.Reason,
			&occurredAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.OccurredAt = unixMillisToTime(occurredAt)
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return transactions, nil
}
