package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/louisbranch/satchel/internal/sessionfile"
)

// PutFiles upserts session file metadata rows by id.
func (s *Store) PutFiles(ctx context.Context, files []sessionfile.File) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if len(files) == 0 {
		return nil
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, f := range files {
			if strings.TrimSpace(f.ID) == "" {
				return fmt.Errorf("file id is required")
			}

			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO session_files (
				    id, character_id, name, size, mime_type, session_number, notes, storage_path, uploaded_at
				 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
				 ON CONFLICT(id) DO UPDATE SET
				   character_id = excluded.character_id,
				   name = excluded.name,
				   size = excluded.size,
				   mime_type = excluded.mime_type,
				   session_number = excluded.session_number,
				   notes = excluded.notes,
				   storage_path = excluded.storage_path,
				   uploaded_at = excluded.uploaded_at`,
				f.ID,
				f.CharacterID,
				f.Name,
				f.Size,
				f.MimeType,
				f.SessionNumber,
				f.Notes,
				f.StoragePath,
				timeToUnixMillis(f.UploadedAt),
			); err != nil {
				return fmt.Errorf("put session file %s: %w", f.ID, err)
			}
		}
		return nil
	})
}

// FilesByCharacter lists cached session files for one character, newest first.
func (s *Store) FilesByCharacter(ctx context.Context, characterID string) ([]sessionfile.File, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	characterID = strings.TrimSpace(characterID)
	if characterID == "" {
		return nil, fmt.Errorf("character id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, character_id, name, size, mime_type, session_number, notes, storage_path, uploaded_at
		 FROM session_files
		 WHERE character_id = ?
		 ORDER BY uploaded_at DESC, id`,
		characterID,
	)
	if err != nil {
		return nil, fmt.Errorf("list session files: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	files := make([]sessionfile.File, 0)
	for rows.Next() {
		var f sessionfile.File
		var uploadedAt int64
		if err := rows.Scan(
			&f.ID,
			&f.CharacterID,
			&f.Name,
			&f.Size,
			&f.MimeType,
			&f.SessionNumber,
			&f.Notes,
			&f.StoragePath,
			&uploadedAt,
		); err != nil {
			return nil, fmt.Errorf("scan session file: %w", err)
		}
		f.UploadedAt = unixMillisToTime(uploadedAt)
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session files: %w", err)
	}
	return files, nil
}
