// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records the searches served by the API in SQLite and keeps
// the newest MaxEntries of them.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/tubelytics/pkg/types"
)

const defaultMaxEntries = 10

// Store manages the search history database.
type Store struct {
	db         *sql.DB
	maxEntries int
	now        func() time.Time
}

// NewStore opens or creates the SQLite database at cfg.DBPath and creates
// the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("history database path is empty")
	}
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}

	s := &Store{db: db, maxEntries: maxEntries, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// MaxEntries is the number of searches the store keeps.
func (s *Store) MaxEntries() int { return s.maxEntries }

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS searches (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			query TEXT NOT NULL,
			created_at TEXT NOT NULL,
			item_count INTEGER NOT NULL,
			avg_grade REAL NOT NULL,
			avg_ease REAL NOT NULL,
			response TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_searches_created_at ON searches(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Add records a search and drops the oldest entries beyond MaxEntries.
func (s *Store) Add(ctx context.Context, query string, resp *types.SearchResponse) (*types.HistoryEntry, error) {
	entry := &types.HistoryEntry{
		ID:        uuid.NewString(),
		Query:     query,
		CreatedAt: s.now().UTC(),
		Response:  resp,
	}
	var payload []byte
	if resp != nil {
		entry.ItemCount = len(resp.Items)
		entry.AvgFleschKincaidGrade = deref(resp.AvgFleschKincaidGrade)
		entry.AvgFleschReadingEase = deref(resp.AvgFleschReadingEase)

		var err error
		if payload, err = json.Marshal(resp); err != nil {
			return nil, fmt.Errorf("encoding response: %w", err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO searches (id, query, created_at, item_count, avg_grade, avg_ease, response)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Query, entry.CreatedAt.Format(time.RFC3339Nano), entry.ItemCount,
		entry.AvgFleschKincaidGrade, entry.AvgFleschReadingEase, nullString(payload),
	); err != nil {
		return nil, fmt.Errorf("inserting search: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM searches WHERE seq NOT IN (SELECT seq FROM searches ORDER BY seq DESC LIMIT ?)`,
		s.maxEntries,
	); err != nil {
		return nil, fmt.Errorf("trimming history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing search: %w", err)
	}
	return entry, nil
}

// Recent returns up to limit entries, newest first. A non-positive limit
// means MaxEntries.
func (s *Store) Recent(ctx context.Context, limit int) ([]types.HistoryEntry, error) {
	if limit <= 0 {
		limit = s.maxEntries
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, created_at, item_count, avg_grade, avg_ease, response
		 FROM searches ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	entries := []types.HistoryEntry{}
	for rows.Next() {
		var (
			e        types.HistoryEntry
			created  string
			response sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Query, &created, &e.ItemCount,
			&e.AvgFleschKincaidGrade, &e.AvgFleschReadingEase, &response); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parsing created_at of %s: %w", e.ID, err)
		}
		if response.Valid {
			var r types.SearchResponse
			if err := json.Unmarshal([]byte(response.String), &r); err != nil {
				return nil, fmt.Errorf("decoding response of %s: %w", e.ID, err)
			}
			e.Response = &r
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear deletes every entry and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM searches`)
	if err != nil {
		return 0, fmt.Errorf("clearing history: %w", err)
	}
	return res.RowsAffected()
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func nullString(b []byte) sql.NullString {
	if b == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}
