package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/louisbranch/satchel/internal/inventory"
)

// PutItems upserts inventory items by id.
func (s *Store) PutItems(ctx context.Context, items []inventory.Item) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if len(items) == 0 {
		return nil
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, item := range items {
			if strings.TrimSpace(item.ID) == "" {
				return fmt.Errorf("item id is required")
			}

			slotsJSON := ""
			if len(item.EquipSlots) > 0 {
				encoded, err := json.Marshal(item.EquipSlots)
				if err != nil {
					return fmt.Errorf("marshal equip slots for item %s: %w", item.ID, err)
				}
				slotsJSON = string(encoded)
			}

			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO items (
				    id, character_id, name, quantity, weight, volume, value,
				    category, container_item_id, equip_slots_json, created_at, updated_at
				 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				 ON CONFLICT(id) DO UPDATE SET
				   character_id = excluded.character_id,
				   name = excluded.name,
				   quantity = excluded.quantity,
				   weight = excluded.weight,
				   volume = excluded.volume,
				   value = excluded.value,
				   category = excluded.category,
				   container_item_id = excluded.container_item_id,
				   equip_slots_json = excluded.equip_slots_json,
				   created_at = excluded.created_at,
				   updated_at = excluded.updated_at`,
				item.ID,
				item.CharacterID,
				item.Name,
				item.Quantity,
				item.Weight,
				item.Volume,
				item.Value,
				string(item.Category),
				item.ContainerItemID,
				slotsJSON,
				timeToUnixMillis(item.CreatedAt),
				timeToUnixMillis(item.UpdatedAt),
			); err != nil {
				return fmt.Errorf("put item %s: %w", item.ID, err)
			}
		}
		return nil
	})
}

// ItemsByCharacter lists cached items for one character ordered by name.
func (s *Store) ItemsByCharacter(ctx context.Context, characterID string) ([]inventory.Item, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	characterID = strings.TrimSpace(characterID)
	if characterID == "" {
		return nil, fmt.Errorf("character id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, character_id, name, quantity, weight, volume, value,
		        category, container_item_id, equip_slots_json, created_at, updated_at
		 FROM items
		 WHERE character_id = ?
		 ORDER BY name, id`,
		characterID,
	)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	items := make([]inventory.Item, 0)
	for rows.Next() {
		var item inventory.Item
		var category string
		var slotsJSON string
		var createdAt int64
		var updatedAt int64
		if err := rows.Scan(
			&item.ID,
			&item.CharacterID,
			&item.Name,
			&item.Quantity,
			&item.Weight,
			&item.Volume,
			&item.Value,
			&category,
			&item.ContainerItemID,
			&slotsJSON,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		item.Category = inventory.Category(category)
		if slotsJSON != "" {
			if err := json.Unmarshal([]byte(slotsJSON), &item.EquipSlots); err != nil {
				return nil, fmt.Errorf("unmarshal equip slots for item %s: %w", item.ID, err)
			}
		}
		item.CreatedAt = unixMillisToTime(createdAt)
		item.UpdatedAt = unixMillisToTime(updatedAt)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// DeleteItem removes one cached item by id.
func (s *Store) DeleteItem(ctx context.Context, itemID string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return fmt.Errorf("item id is required")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, itemID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
