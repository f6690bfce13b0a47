// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists completed research runs to a local SQLite
// database: an indexed summary row per run plus a full-fidelity record.
// The two are always written in one transaction.
// See docs/ARCHITECTURE.md § Persistence.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/research-assistant/pkg/types"
)

const (
	dbFile = "research.db"

	// previewLen bounds the synthesis preview stored on the summary row.
	previewLen = 200
)

// ErrNotFound is returned by Load when no record has the given ID.
var ErrNotFound = errors.New("research record not found")

// Store manages the research-run SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at dataDir/research.db and creates
// the schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
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

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS research_runs (
			research_id TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			created_at TEXT NOT NULL,
			synthesis_preview TEXT,
			source_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS research_records (
			research_id TEXT PRIMARY KEY REFERENCES research_runs(research_id),
			record TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON research_runs(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Summary is the indexed view of one saved run.
type Summary struct {
	ResearchID       string    `json:"research_id"`
	Query            string    `json:"query"`
	CreatedAt        time.Time `json:"created_at"`
	SynthesisPreview string    `json:"synthesis_preview"`
	SourceCount      int       `json:"source_count"`
}

// Save writes the summary row and the full serialized record in one
// transaction and returns the new research ID. A summary row without a
// matching record can never be observed.
func (s *Store) Save(ctx context.Context, state *types.ResearchState) (string, error) {
	record, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("serializing research state: %w", err)
	}

	researchID := uuid.NewString()
	createdAt := state.StartedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO research_runs (research_id, query, created_at, synthesis_preview, source_count)
		 VALUES (?, ?, ?, ?, ?)`,
		researchID, state.Query, createdAt.UTC().Format(time.RFC3339Nano),
		preview(state.Synthesis), state.SourceCount(),
	)
	if err != nil {
		return "", fmt.Errorf("inserting summary: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO research_records (research_id, record) VALUES (?, ?)`,
		researchID, string(record),
	)
	if err != nil {
		return "", fmt.Errorf("inserting full record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing save: %w", err)
	}
	return researchID, nil
}

// Search returns summaries whose query contains the filter text,
// newest first. An empty filter matches everything.
func (s *Store) Search(ctx context.Context, queryFilter string, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT research_id, query, created_at, synthesis_preview, source_count
		 FROM research_runs
		 WHERE query LIKE ?
		 ORDER BY created_at DESC
		 LIMIT ?`,
		"%"+queryFilter+"%", limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var sum Summary
		var createdAt string
		if err := rows.Scan(&sum.ResearchID, &sum.Query, &createdAt, &sum.SynthesisPreview, &sum.SourceCount); err != nil {
			return nil, fmt.Errorf("scanning summary: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			sum.CreatedAt = t
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// Load retrieves the full research state for one ID. Returns ErrNotFound
// when the ID is unknown.
func (s *Store) Load(ctx context.Context, researchID string) (*types.ResearchState, error) {
	var record string
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM research_records WHERE research_id = ?`, researchID,
	).Scan(&record)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading record: %w", err)
	}

	var state types.ResearchState
	if err := json.Unmarshal([]byte(record), &state); err != nil {
		return nil, fmt.Errorf("parsing record: %w", err)
	}
	return &state, nil
}

func preview(synthesis string) string {
	if len(synthesis) <= previewLen {
		return synthesis
	}
	return synthesis[:previewLen]
}
