// Package wallet models per-character coin balances and the signed deltas
// that mutate them.
//
// A wallet is keyed one-to-one by character id. Balances change only through
// Apply; wholesale writes happen once, on creation.
package wallet

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/satchel/internal/errors"
)

var (
	// ErrEmptyCharacterID indicates a wallet without an owning character.
	ErrEmptyCharacterID = apperrors.New(apperrors.CodeWalletEmptyCharacterID, "character id is required")
	// ErrNegativeBalance indicates a delta that would take a denomination below zero.
	ErrNegativeBalance = apperrors.New(apperrors.CodeWalletNegativeBalance, "delta would take a denomination below zero")
)

// Wallet holds the four coin-denomination counters for one character.
type Wallet struct {
	CharacterID string
	Platinum    int
	Gold        int
	Silver      int
	Copper      int
	UpdatedAt   time.Time
}

// Delta is a signed per-denomination adjustment. Denominations left at zero
// leave the corresponding balance unchanged.
type Delta struct {
	Platinum int
	Gold     int
	Silver   int
	Copper   int
}

// IsZero reports whether the delta adjusts nothing.
func (d Delta) IsZero() bool {
	return d.Platinum == 0 && d.Gold == 0 && d.Silver == 0 && d.Copper == 0
}

// Negate returns the delta with every denomination sign-flipped.
func (d Delta) Negate() Delta {
	return Delta{
		Platinum: -d.Platinum,
		Gold:     -d.Gold,
		Silver:   -d.Silver,
		Copper:   -d.Copper,
	}
}

// Add combines two deltas per denomination.
func (d Delta) Add(other Delta) Delta {
	return Delta{
		Platinum: d.Platinum + other.Platinum,
		Gold:     d.Gold + other.Gold,
		Silver:   d.Silver + other.Silver,
		Copper:   d.Copper + other.Copper,
	}
}

// New creates an empty wallet for the given character.
func New(characterID string, now func() time.Time) (Wallet, error) {
	characterID = strings.TrimSpace(characterID)
	if characterID == "" {
		return Wallet{}, ErrEmptyCharacterID
	}
	return Wallet{
		CharacterID: characterID,
		UpdatedAt:   now().UTC(),
	}, nil
}

// Apply returns the wallet with the delta applied per denomination.
// Denominations absent from the delta are unchanged. Apply fails with
// ErrNegativeBalance when any denomination would drop below zero.
func (w Wallet) Apply(delta Delta, now func() time.Time) (Wallet, error) {
	next := w
	next.Platinum += delta.Platinum
	next.Gold += delta.Gold
	next.Silver += delta.Silver
	next.Copper += delta.Copper

	if next.Platinum < 0 || next.Gold < 0 || next.Silver < 0 || next.Copper < 0 {
		return Wallet{}, ErrNegativeBalance
	}

	next.UpdatedAt = now().UTC()
	return next, nil
}

// CanAfford reports whether applying the delta keeps every denomination
// at or above zero.
func (w Wallet) CanAfford(delta Delta) bool {
	return w.Platinum+delta.Platinum >= 0 &&
		w.Gold+delta.Gold >= 0 &&
		w.Silver+delta.Silver >= 0 &&
		w.Copper+delta.Copper >= 0
}

// TotalCopper converts the balance into copper pieces using the standard
// 1pp = 10gp, 1gp = 10sp, 1sp = 10cp rates.
func (w Wallet) TotalCopper() int {
	return w.Platinum*1000 + w.Gold*100 + w.Silver*10 + w.Copper
}
