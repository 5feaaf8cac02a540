// Package archive optionally persists conversation snapshots so a session
// can be restored later. Postgres when a DSN is configured, a JSON file on
// disk otherwise.
package archive

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib"

	"summarist/internal/summary"
)

type Store struct {
	path string
	db   *sql.DB

	loadOnce sync.Once
	mu       sync.RWMutex
	byID     map[string]summary.Snapshot

	schemaOnce sync.Once
	schemaErr  error

	cache *lru.Cache[string, summary.Snapshot]
}

func New(path string) *Store {
	return &Store{
		path: path,
		byID: make(map[string]summary.Snapshot),
	}
}

func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	cache, err := lru.New[string, summary.Snapshot](256)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{
		db:    db,
		cache: cache,
	}, nil
}

// NewFromEnv uses Postgres when ARCHIVE_PG_DSN is set and reachable, the
// file store at path otherwise.
func NewFromEnv(path string) *Store {
	dsn := strings.TrimSpace(os.Getenv("ARCHIVE_PG_DSN"))
	if dsn == "" {
		return New(path)
	}
	s, err := NewPostgres(dsn)
	if err != nil {
		return New(path)
	}
	return s
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Save(ctx context.Context, snap summary.Snapshot) error {
	if s == nil {
		return nil
	}
	if s.db != nil {
		err := s.saveDB(ctx, snap)
		if err == nil && s.cache != nil {
			s.cache.Remove(snap.ConversationID)
		}
		return err
	}
	return s.saveFile(snap)
}

func (s *Store) Load(ctx context.Context, conversationID string) (summary.Snapshot, bool, error) {
	if s == nil {
		return summary.Snapshot{}, false, nil
	}
	if s.db != nil {
		if s.cache != nil {
			if snap, ok := s.cache.Get(conversationID); ok {
				return snap, true, nil
			}
		}
		snap, ok, err := s.loadDB(ctx, conversationID)
		if err == nil && ok && s.cache != nil {
			s.cache.Add(conversationID, snap)
		}
		return snap, ok, err
	}
	return s.loadFile(conversationID)
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	if s == nil {
		return nil, nil
	}
	if s.db != nil {
		return s.listDB(ctx)
	}
	return s.listFile()
}
