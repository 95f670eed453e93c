package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/louisbranch/satchel/internal/journal"
)

// PutEntries upserts journal entries by id.
func (s *Store) PutEntries(ctx context.Context, entries []journal.Entry) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if len(entries) == 0 {
		return nil
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, e := range entries {
			if strings.TrimSpace(e.ID) == "" {
				return fmt.Errorf("entry id is required")
			}

			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO journal_entries (
				    id, character_id, title, entry_date, session_number, content, pinned, created_at, updated_at
				 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
				 ON CONFLICT(id) DO UPDATE SET
				   character_id = excluded.character_id,
				   title = excluded.title,
				   entry_date = excluded.entry_date,
				   session_number = excluded.session_number,
				   content = excluded.content,
				   pinned = excluded.pinned,
				   created_at = excluded.created_at,
				   updated_at = excluded.updated_at`,
				e.ID,
				e.CharacterID,
				e.Title,
				timeToUnixMillis(e.Date),
				e.SessionNumber,
				e.Content,
				boolToInt(e.Pinned),
				timeToUnixMillis(e.CreatedAt),
				timeToUnixMillis(e.UpdatedAt),
			); err != nil {
				return fmt.Errorf("put entry %s: %w", e.ID, err)
			}
		}
		return nil
	})
}

// EntriesByCharacter lists cached journal entries for one character.
func (s *Store) EntriesByCharacter(ctx context.Context, characterID string) ([]journal.Entry, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	characterID = strings.TrimSpace(characterID)
	if characterID == "" {
		return nil, fmt.Errorf("character id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, character_id, title, entry_date, session_number, content, pinned, created_at, updated_at
		 FROM journal_entries
		 WHERE character_id = ?
		 ORDER BY entry_date DESC, id`,
		characterID,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	entries := make([]journal.Entry, 0)
	for rows.Next() {
		var e journal.Entry
		var entryDate int64
		var pinned int64
		var createdAt int64
		var updatedAt int64
		if err := rows.Scan(
			&e.ID,
			&e.CharacterID,
			&e.Title,
			&entryDate,
			&e.SessionNumber,
			&e.Content,
			&pinned,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Date = unixMillisToTime(entryDate)
		e.Pinned = pinned != 0
		e.CreatedAt = unixMillisToTime(createdAt)
		e.UpdatedAt = unixMillisToTime(updatedAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// PutTags upserts tags by id.
func (s *Store) PutTags(ctx context.Context, tags []journal.Tag) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if len(tags) == 0 {
		return nil
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, t := range tags {
			if strings.TrimSpace(t.ID) == "" {
				return fmt.Errorf("tag id is required")
			}

			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO tags (id, user_id, name, color, created_at)
				 VALUES (?, ?, ?, ?, ?)
				 ON CONFLICT(id) DO UPDATE SET
				   user_id = excluded.user_id,
				   name = excluded.name,
				   color = excluded.color,
				   created_at = excluded.created_at`,
				t.ID,
				t.UserID,
				t.Name,
				t.Color,
				timeToUnixMillis(t.CreatedAt),
			); err != nil {
				return fmt.Errorf("put tag %s: %w", t.ID, err)
			}
		}
		return nil
	})
}

// TagsByUser lists cached tags for one user ordered by name.
func (s *Store) TagsByUser(ctx context.Context, userID string) ([]journal.Tag, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, user_id, name, color, created_at
		 FROM tags
		 WHERE user_id = ?
		 ORDER BY name, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	tags := make([]journal.Tag, 0)
	for rows.Next() {
		var t journal.Tag
		var createdAt int64
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Color, &createdAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		t.CreatedAt = unixMillisToTime(createdAt)
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return tags, nil
}

// PutEntryTags upserts entry-tag links by composite key.
func (s *Store) PutEntryTags(ctx context.Context, links []journal.EntryTag) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if len(links) == 0 {
		return nil
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, link := range links {
			if err := link.Validate(); err != nil {
				return err
			}

			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO entry_tags (entry_id, tag_id)
				 VALUES (?, ?)
				 ON CONFLICT(entry_id, tag_id) DO NOTHING`,
				link.EntryID,
				link.TagID,
			); err != nil {
				return fmt.Errorf("put entry tag %s/%s: %w", link.EntryID, link.TagID, err)
			}
		}
		return nil
	})
}

// DeleteEntryTag removes one entry-tag link.
func (s *Store) DeleteEntryTag(ctx context.Context, link journal.EntryTag) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := link.Validate(); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM entry_tags WHERE entry_id = ? AND tag_id = ?`,
		link.EntryID,
		link.TagID,
	); err != nil {
		return fmt.Errorf("delete entry tag: %w", err)
	}
	return nil
}

// EntryTagsByEntries lists links for the given entry ids.
func (s *Store) EntryTagsByEntries(ctx context.Context, entryIDs []string) ([]journal.EntryTag, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if len(entryIDs) == 0 {
		return []journal.EntryTag{}, nil
	}

	placeholders := make([]string, 0, len(entryIDs))
	args := make([]any, 0, len(entryIDs))
	for _, entryID := range entryIDs {
		entryID = strings.TrimSpace(entryID)
		if entryID == "" {
			continue
		}
		placeholders = append(placeholders, "?")
		args = append(args, entryID)
	}
	if len(args) == 0 {
		return []journal.EntryTag{}, nil
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT entry_id, tag_id
		 FROM entry_tags
		 WHERE entry_id IN (`+strings.Join(placeholders, ", ")+`)
		 ORDER BY entry_id, tag_id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list entry tags: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	links := make([]journal.EntryTag, 0)
	for rows.Next() {
		var link journal.EntryTag
		if err := rows.Scan(&link.EntryID, &link.TagID); err != nil {
			return nil, fmt.Errorf("scan entry tag: %w", err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entry tags: %w", err)
	}
	return links, nil
}
