package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"

	"summarist/internal/summary"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS conversations (
	id         TEXT PRIMARY KEY,
	payload    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func (s *Store) ensureSchema(ctx context.Context) error {
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.ExecContext(ctx, schemaSQL)
	})
	return s.schemaErr
}

func (s *Store) saveDB(ctx context.Context, snap summary.Snapshot) error {
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO conversations (id, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
		snap.ConversationID, payload)
	return err
}

func (s *Store) loadDB(ctx context.Context, conversationID string) (summary.Snapshot, bool, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return summary.Snapshot{}, false, err
	}
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM conversations WHERE id = $1`, conversationID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return summary.Snapshot{}, false, nil
	}
	if err != nil {
		return summary.Snapshot{}, false, err
	}
	var snap summary.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return summary.Snapshot{}, false, err
	}
	return snap, true, nil
}

func (s *Store) listDB(ctx context.Context) ([]string, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM conversations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}
