// Package sqlite provides the durable chunk store. Chunks are flat keyed
// records: one row per (document identity, sequence index).
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/askitty/askitty/internal/core/domain"
	"github.com/askitty/askitty/internal/core/ports/driven"
)

// scanPageSize is how many rows one internal scan page fetches.
const scanPageSize = 500

// Ensure Store implements the interface.
var _ driven.ChunkStore = (*Store)(nil)

// Store is a SQLite-backed chunk store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a chunk store at the specified data directory.
// If dataDir is empty, defaults to ~/.askitty/data/chunks.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".askitty", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "chunks.db")

	// WAL mode for better concurrency between ingestion and queries
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// migrate creates the chunks table if missing.
func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS chunks (
			document_id TEXT NOT NULL,
			seq         INTEGER NOT NULL,
			content     TEXT NOT NULL,
			embedding   TEXT NOT NULL,
			source_key  TEXT NOT NULL,
			ext         TEXT NOT NULL,
			page_start  INTEGER NOT NULL DEFAULT 1,
			generation  TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (document_id, seq)
		)
	`)
	if err != nil {
		return fmt.Errorf("creating chunks table: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// PutChunk upserts one chunk record by its composite key.
func (s *Store) PutChunk(ctx context.Context, chunk domain.Chunk) error {
	embedding, err := json.Marshal(chunk.Embedding)
	if err != nil {
		return fmt.Errorf("serializing embedding: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO chunks (document_id, seq, content, embedding, source_key, ext, page_start, generation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(document_id, seq) DO UPDATE SET
			content = excluded.content,
			embedding = excluded.embedding,
			source_key = excluded.source_key,
			ext = excluded.ext,
			page_start = excluded.page_start,
			generation = excluded.generation
	`, chunk.DocumentID, chunk.Seq, chunk.Content, string(embedding),
		chunk.SourceKey, chunk.Ext, chunk.PageStart, chunk.Generation)
	if err != nil {
		return fmt.Errorf("upserting chunk: %w", err)
	}
	return nil
}

// DeleteDocument removes every chunk stored under the document identity.
func (s *Store) DeleteDocument(ctx context.Context, documentID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", documentID); err != nil {
		return fmt.Errorf("deleting chunks: %w", err)
	}
	return nil
}

// ScanAll returns stored records up to the ceiling. Delivery is paginated
// internally; rows arrive in (document_id, seq) order.
func (s *Store) ScanAll(ctx context.Context, ceiling int) ([]domain.StoredChunk, error) {
	if ceiling <= 0 {
		ceiling = driven.DefaultScanCeiling
	}

	var records []domain.StoredChunk
	for len(records) < ceiling {
		limit := scanPageSize
		if remaining := ceiling - len(records); remaining < limit {
			limit = remaining
		}

		page, err := s.scanPage(ctx, len(records), limit)
		if err != nil {
			return nil, err
		}
		records = append(records, page...)
		if len(page) < limit {
			break
		}
	}
	return records, nil
}

// scanPage fetches one page of records.
func (s *Store) scanPage(ctx context.Context, offset, limit int) ([]domain.StoredChunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT document_id, seq, content, embedding, source_key, ext, page_start, generation
		FROM chunks ORDER BY document_id, seq
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	page := make([]domain.StoredChunk, 0, limit)
	for rows.Next() {
		var rec domain.StoredChunk
		var embedding string
		if err := rows.Scan(&rec.DocumentID, &rec.Seq, &rec.Content, &embedding,
			&rec.SourceKey, &rec.Ext, &rec.PageStart, &rec.Generation); err != nil {
			return nil, fmt.Errorf("scanning chunk row: %w", err)
		}
		rec.Embedding = []byte(embedding)
		page = append(page, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}
	return page, nil
}
