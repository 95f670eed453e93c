package wallet

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/satchel/internal/errors"
)

var (
	// ErrEmptyReason indicates a ledger row without a reason.
	ErrEmptyReason = apperrors.New(apperrors.CodeLedgerEmptyReason, "transaction reason is required")
	// ErrEmptyDelta indicates a ledger row that adjusts nothing.
	ErrEmptyDelta = apperrors.New(apperrors.CodeLedgerEmptyDelta, "transaction delta must adjust at least one denomination")
)

// Transaction is an append-only ledger row recording one wallet adjustment.
// It never mutates a wallet directly; the wallet is updated first and the
// transaction is recorded afterwards as an audit entry.
type Transaction struct {
	ID          string
	CharacterID string
	Delta       Delta
	Reason      string
	OccurredAt  time.Time
}

// NewTransactionInput carries the fields needed to record a ledger row.
type NewTransactionInput struct {
	CharacterID string
	Delta       Delta
	Reason      string
}

// NormalizeNewTransactionInput trims fields and validates the ledger row.
func NormalizeNewTransactionInput(input NewTransactionInput) (NewTransactionInput, error) {
	input.CharacterID = strings.TrimSpace(input.CharacterID)
	input.Reason = strings.TrimSpace(input.Reason)

	if input.CharacterID == "" {
		return NewTransactionInput{}, ErrEmptyCharacterID
	}
	if input.Reason == "" {
		return NewTransactionInput{}, ErrEmptyReason
	}
	if input.Delta.IsZero() {
		return NewTransactionInput{}, ErrEmptyDelta
	}
	return input, nil
}

// NewTransaction builds a ledger row with a generated id and timestamp.
func NewTransaction(input NewTransactionInput, now func() time.Time, newID func() (string, error)) (Transaction, error) {
	normalized, err := NormalizeNewTransactionInput(input)
	if err != nil {
		return Transaction{}, err
	}

	id, err := newID()
	if err != nil {
		return Transaction{}, err
	}

	return Transaction{
		ID:          id,
		CharacterID: normalized.CharacterID,
		Delta:       normalized.Delta,
		Reason:      normalized.Reason,
		OccurredAt:  now().UTC(),
	}, nil
}
