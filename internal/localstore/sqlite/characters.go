package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/louisbranch/satchel/internal/character"
)

// PutCharacters upserts characters by id.
func (s *Store) PutCharacters(ctx context.Context, characters []character.Character) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if len(characters) == 0 {
		return nil
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, c := range characters {
			if strings.TrimSpace(c.ID) == "" {
				return fmt.Errorf("character id is required")
			}
			sheetJSON, err := json.Marshal(c.Sheet)
			if err != nil {
				return fmt.Errorf("marshal sheet for character %s: %w", c.ID, err)
			}

			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO characters (id, user_id, name, sheet_json, created_at, updated_at)
				 VALUES (?, ?, ?, ?, ?, ?)
				 ON CONFLICT(id) DO UPDATE SET
				   user_id = excluded.user_id,
				   name = excluded.name,
				   sheet_json = excluded.sheet_json,
				   created_at = excluded.created_at,
				   updated_at = excluded.updated_at`,
				c.ID,
				c.UserID,
				c.Name,
				string(sheetJSON),
				timeToUnixMillis(c.CreatedAt),
				timeToUnixMillis(c.UpdatedAt),
			); err != nil {
				return fmt.Errorf("put character %s: %w", c.ID, err)
			}
		}
		return nil
	})
}

// CharactersByUser lists cached characters for one user ordered by name.
func (s *Store) CharactersByUser(ctx context.Context, userID string) ([]character.Character, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, user_id, name, sheet_json, created_at, updated_at
		 FROM characters
		 WHERE user_id = ?
		 ORDER BY name, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	characters := make([]character.Character, 0)
	for rows.Next() {
		var c character.Character
		var sheetJSON string
		var createdAt int64
		var updatedAt int64
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &sheetJSON, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan character: %w", err)
		}
		if sheetJSON != "" {
			if err := json.Unmarshal([]byte(sheetJSON), &c.Sheet); err != nil {
				return nil, fmt.Errorf("unmarshal sheet for character %s: %w", c.ID, err)
			}
		}
		c.CreatedAt = unixMillisToTime(createdAt)
		c.UpdatedAt = unixMillisToTime(updatedAt)
		characters = append(characters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate characters: %w", err)
	}
	return characters, nil
}
