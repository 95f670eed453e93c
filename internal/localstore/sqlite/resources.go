package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/louisbranch/satchel/internal/resource"
)

// PutResources upserts resources by id.
func (s *Store) PutResources(ctx context.Context, resources []resource.Resource) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if len(resources) == 0 {
		return nil
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, r := range resources {
			if strings.TrimSpace(r.ID) == "" {
				return fmt.Errorf("resource id is required")
			}

			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO resources (
				    id, character_id, name, max_uses, used_count, reset_on, recover_amount, created_at, updated_at
				 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
				 ON CONFLICT(id) DO UPDATE SET
				   character_id = excluded.character_id,
				   name = excluded.name,
				   max_uses = excluded.max_uses,
				   used_count = excluded.used_count,
				   reset_on = excluded.reset_on,
				   recover_amount = excluded.recover_amount,
				   created_at = excluded.created_at,
				   updated_at = excluded.updated_at`,
				r.ID,
				r.CharacterID,
				r.Name,
				r.MaxUses,
				r.UsedCount,
				string(r.ResetOn),
				r.RecoverAmount,
				timeToUnixMillis(r.CreatedAt),
				timeToUnixMillis(r.UpdatedAt),
			); err != nil {
				return fmt.Errorf("put resource %s: %w", r.ID, err)
			}
		}
		return nil
	})
}

// ResourcesByCharacter lists cached resources for one character ordered by name.
func (s *Store) ResourcesByCharacter(ctx context.Context, characterID string) ([]resource.Resource, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	characterID = strings.TrimSpace(characterID)
	if characterID == "" {
		return nil, fmt.Errorf("character id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, character_id, name, max_uses, used_count, reset_on, recover_amount, created_at, updated_at
		 FROM resources
		 WHERE character_id = ?
		 ORDER BY name, id`,
		characterID,
	)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	resources := make([]resource.Resource, 0)
	for rows.Next() {
		var r resource.Resource
		var resetOn string
		var createdAt int64
		var updatedAt int64
		if err := rows.Scan(
			&r.ID,
			&r.CharacterID,
			&r.Name,
			&r.MaxUses,
			&r.UsedCount,
			&resetOn,
			&r.RecoverAmount,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		r.ResetOn = resource.ResetTrigger(resetOn)
		r.CreatedAt = unixMillisToTime(createdAt)
		r.UpdatedAt = unixMillisToTime(updatedAt)
		resources = append(resources, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resources: %w", err)
	}
	return resources, nil
}
