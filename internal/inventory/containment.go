package inventory

import (
	apperrors "github.com/louisbranch/satchel/internal/errors"
)

var (
	// ErrContainerNotFound indicates a container reference to an unknown item.
	ErrContainerNotFound = apperrors.New(apperrors.CodeItemContainerNotFound, "container item does not exist")
	// ErrContainerInvalid indicates a container reference to a non-container item.
	ErrContainerInvalid = apperrors.New(apperrors.CodeItemContainerInvalid, "referenced item is not a container")
	// ErrContainerNested indicates a container stored inside another container.
	ErrContainerNested = apperrors.New(apperrors.CodeItemContainerNested, "containers cannot be stored inside containers")
	// ErrContainerSelf indicates an item referencing itself as its container.
	ErrContainerSelf = apperrors.New(apperrors.CodeItemContainerSelf, "item cannot be its own container")
	// ErrContainerHasContents indicates a container that still holds items.
	ErrContainerHasContents = apperrors.New(apperrors.CodeItemContainerHasContent, "container still holding items cannot be removed")
)

// ValidateContainment checks item's container reference against the rest of
// the character's inventory. The containment tree is two levels deep:
// container items hold plain items and nothing nests further.
func ValidateContainment(item Item, all []Item) error {
	if item.ContainerItemID == "" {
		return nil
	}
	if item.ContainerItemID == item.ID {
		return ErrContainerSelf
	}

	var container *Item
	for i := range all {
		if all[i].ID == item.ContainerItemID {
			container = &all[i]
			break
		}
	}
	if container == nil {
		return ErrContainerNotFound
	}
	if !container.Category.IsContainer() {
		return ErrContainerInvalid
	}
	// The target container must itself live at the top level.
	if container.ContainerItemID != "" {
		return ErrContainerNested
	}

	// The tree is two levels deep, so containers themselves always stay at
	// the top level.
	if item.Category.IsContainer() {
		return ErrContainerNested
	}

	return nil
}

// ValidateRemoval checks that removing the item leaves no dangling container
// references. A container still holding items cannot be removed.
func ValidateRemoval(itemID string, all []Item) error {
	for _, it := range all {
		if it.ID != itemID && it.ContainerItemID == itemID {
			return ErrContainerHasContents
		}
	}
	return nil
}

// Contents returns the items stored inside the given container id, in input
// order.
func Contents(containerID string, all []Item) []Item {
	if containerID == "" {
		return nil
	}
	var contents []Item
	for _, it := range all {
		if it.ContainerItemID == containerID {
			contents = append(contents, it)
		}
	}
	return contents
}
