// Package inventory models per-character items, their containment tree, and
// carry totals.
package inventory

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/satchel/internal/errors"
)

var (
	// ErrEmptyCharacterID indicates an item without an owning character.
	ErrEmptyCharacterID = apperrors.New(apperrors.CodeItemEmptyCharacterID, "character id is required")
	// ErrEmptyName indicates a missing item name.
	ErrEmptyName = apperrors.New(apperrors.CodeItemEmptyName, "item name is required")
	// ErrNegativeQuantity indicates an item with a negative quantity.
	ErrNegativeQuantity = apperrors.New(apperrors.CodeItemNegativeQuantity, "item quantity must not be negative")
)

// Category classifies an item for slotting, filtering, and containment rules.
type Category string

const (
	CategoryUnspecified Category = ""
	CategoryWeapon      Category = "weapon"
	CategoryArmor       Category = "armor"
	CategoryGear        Category = "gear"
	CategoryConsumable  Category = "consumable"
	CategoryContainer   Category = "container"
	CategoryTreasure    Category = "treasure"
)

// IsContainer reports whether items of this category may hold other items.
func (c Category) IsContainer() bool {
	return c == CategoryContainer
}

// Item is one inventory row belonging to a character.
//
// ContainerItemID, when set, references another item of the same character
// whose category marks it as a container. Containers do not chain: an item
// stored inside a container cannot itself be a container holding items.
type Item struct {
	ID              string
	CharacterID     string
	Name            string
	Quantity        int
	Weight          float64
	Volume          float64
	Value           float64
	Category        Category
	ContainerItemID string
	EquipSlots      []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateItemInput carries the fields needed to create an item.
type CreateItemInput struct {
	CharacterID     string
	Name            string
	Quantity        int
	Weight          float64
	Volume          float64
	Value           float64
	Category        Category
	ContainerItemID string
	EquipSlots      []string
}

// NormalizeCreateItemInput trims fields and validates the item.
func NormalizeCreateItemInput(input CreateItemInput) (CreateItemInput, error) {
	input.CharacterID = strings.TrimSpace(input.CharacterID)
	input.Name = strings.TrimSpace(input.Name)
	input.ContainerItemID = strings.TrimSpace(input.ContainerItemID)

	if input.CharacterID == "" {
		return CreateItemInput{}, ErrEmptyCharacterID
	}
	if input.Name == "" {
		return CreateItemInput{}, ErrEmptyName
	}
	if input.Quantity < 0 {
		return CreateItemInput{}, ErrNegativeQuantity
	}

	slots := make([]string, 0, len(input.EquipSlots))
	for _, slot := range input.EquipSlots {
		slot = strings.TrimSpace(slot)
		if slot != "" {
			slots = append(slots, slot)
		}
	}
	if len(slots) == 0 {
		slots = nil
	}
	input.EquipSlots = slots

	return input, nil
}

// CreateItem builds an item with a generated id and timestamps.
func CreateItem(input CreateItemInput, now func() time.Time, newID func() (string, error)) (Item, error) {
	normalized, err := NormalizeCreateItemInput(input)
	if err != nil {
		return Item{}, err
	}

	id, err := newID()
	if err != nil {
		return Item{}, err
	}

	created := now().UTC()
	return Item{
		ID:              id,
		CharacterID:     normalized.CharacterID,
		Name:            normalized.Name,
		Quantity:        normalized.Quantity,
		Weight:          normalized.Weight,
		Volume:          normalized.Volume,
		Value:           normalized.Value,
		Category:        normalized.Category,
		ContainerItemID: normalized.ContainerItemID,
		EquipSlots:      normalized.EquipSlots,
		CreatedAt:       created,
		UpdatedAt:       created,
	}, nil
}
