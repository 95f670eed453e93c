package inventory

import (
	"errors"
	"testing"
)

func testInventory() []Item {
	return []Item{
		{ID: "pack", CharacterID: "char-1", Name: "Backpack", Category: CategoryContainer},
		{ID: "sack", CharacterID: "char-1", Name: "Sack", Category: CategoryContainer},
		{ID: "rope", CharacterID: "char-1", Name: "Rope", Category: CategoryGear, ContainerItemID: "pack"},
		{ID: "sword", CharacterID: "char-1", Name: "Sword", Category: CategoryWeapon},
	}
}

func TestValidateContainment(t *testing.T) {
	all := testInventory()

	tests := []struct {
		name string
		item Item
		err  error
	}{
		{
			name: "top-level item",
			item: Item{ID: "sword", Category: CategoryWeapon},
			err:  nil,
		},
		{
			name: "item inside container",
			item: Item{ID: "rations", Category: CategoryConsumable, ContainerItemID: "pack"},
			err:  nil,
		},
		{
			name: "unknown container",
			item: Item{ID: "rations", Category: CategoryConsumable, ContainerItemID: "missing"},
			err:  ErrContainerNotFound,
		},
		{
			name: "reference to non-container",
			item: Item{ID: "rations", Category: CategoryConsumable, ContainerItemID: "sword"},
			err:  ErrContainerInvalid,
		},
		{
			name: "self reference",
			item: Item{ID: "pack", Category: CategoryContainer, ContainerItemID: "pack"},
			err:  ErrContainerSelf,
		},
		{
			name: "container inside container",
			item: Item{ID: "sack", Category: CategoryContainer, ContainerItemID: "pack"},
			err:  ErrContainerNested,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContainment(tt.item, all)
			if tt.err == nil {
				if err != nil {
					t.Fatalf("expected containment to validate, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected error %v, got %v", tt.err, err)
			}
		})
	}
}

func TestValidateContainmentRejectsContainedTarget(t *testing.T) {
	all := []Item{
		{ID: "pack", Category: CategoryContainer},
		// Malformed cached row: a container that itself claims a parent.
		{ID: "pouch", Category: CategoryContainer, ContainerItemID: "pack"},
	}
	item := Item{ID: "coin", Category: CategoryTreasure, ContainerItemID: "pouch"}
	if err := ValidateContainment(item, all); !errors.Is(err, ErrContainerNested) {
		t.Fatalf("expected ErrContainerNested, got %v", err)
	}
}

func TestValidateRemoval(t *testing.T) {
	all := testInventory()

	if err := ValidateRemoval("pack", all); !errors.Is(err, ErrContainerHasContents) {
		t.Fatalf("expected ErrContainerHasContents, got %v", err)
	}
	if err := ValidateRemoval("sack", all); err != nil {
		t.Fatalf("expected empty container removal to validate, got %v", err)
	}
	if err := ValidateRemoval("sword", all); err != nil {
		t.Fatalf("expected plain item removal to validate, got %v", err)
	}
}

func TestContents(t *testing.T) {
	all := testInventory()

	contents := Contents("pack", all)
	if len(contents) != 1 || contents[0].ID != "rope" {
		t.Fatalf("expected rope inside pack, got %v", contents)
	}
	if Contents("", all) != nil {
		t.Fatal("expected nil contents for empty container id")
	}
}
