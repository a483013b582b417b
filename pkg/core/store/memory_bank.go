package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// BankEntry is one compact long-term memory item: the headline facts of a
// run without the full series payloads.
type BankEntry struct {
	Name      string    `json:"name"`
	Verdict   string    `json:"verdict"`
	Score     float64   `json:"score"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

// MemoryBank is the long-term cross-run memory. Same hybrid strategy as
// RunsRepo: Postgres when a pool is configured, a single JSON file
// otherwise.
//
// Schema assumption:
//
//	CREATE TABLE IF NOT EXISTS memory_bank (
//	  id BIGSERIAL PRIMARY KEY,
//	  created_at TIMESTAMPTZ NOT NULL,
//	  entry_json JSONB NOT NULL
//	);
type MemoryBank struct {
	pool     *pgxpool.Pool
	filePath string
}

// NewMemoryBank creates a memory bank. If pool is nil, entries live in a
// JSON array at path (default .cache/memory_bank.json).
func NewMemoryBank(pool *pgxpool.Pool, path string) *MemoryBank {
	if pool == nil && path == "" {
		path = filepath.Join(".cache", "memory_bank.json")
	}
	if path != "" {
		os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &MemoryBank{pool: pool, filePath: path}
}

// Append writes one entry to long-term memory.
func (b *MemoryBank) Append(ctx context.Context, entry BankEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	if b.pool != nil {
		blob, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal bank entry: %w", err)
		}
		query := `INSERT INTO memory_bank (created_at, entry_json) VALUES ($1, $2)`
		if _, err := b.pool.Exec(ctx, query, entry.CreatedAt, blob); err != nil {
			return fmt.Errorf("failed to append to memory bank: %w", err)
		}
		return nil
	}

	entries := b.readAll()
	entries = append(entries, entry)
	blob, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal memory bank: %w", err)
	}
	if err := os.WriteFile(b.filePath, blob, 0644); err != nil {
		return fmt.Errorf("failed to write memory bank: %w", err)
	}
	return nil
}

// All returns every entry, oldest first. A missing or corrupt file reads as
// empty rather than failing.
func (b *MemoryBank) All(ctx context.Context) ([]BankEntry, error) {
	if b.pool != nil {
		query := `SELECT entry_json FROM memory_bank ORDER BY created_at ASC`
		rows, err := b.pool.Query(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to query memory bank: %w", err)
		}
		defer rows.Close()

		var entries []BankEntry
		for rows.Next() {
			var blob []byte
			if err := rows.Scan(&blob); err != nil {
				return nil, fmt.Errorf("failed to scan bank row: %w", err)
			}
			var entry BankEntry
			if err := json.Unmarshal(blob, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
		return entries, nil
	}

	return b.readAll(), nil
}

func (b *MemoryBank) readAll() []BankEntry {
	blob, err := os.ReadFile(b.filePath)
	if err != nil {
		return []BankEntry{}
	}
	var entries []BankEntry
	if err := json.Unmarshal(blob, &entries); err != nil {
		return []BankEntry{}
	}
	return entries
}
