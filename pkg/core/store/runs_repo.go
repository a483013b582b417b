package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RunRecord is one complete pipeline execution: extraction, market research,
// financial model, memo and deck path, stored as a single JSON blob.
type RunRecord struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Data      json.RawMessage `json:"data"`
}

// RunsRepo persists pipeline runs. Hybrid Vault: DB (Primary) + File System
// (Fallback/Local). With no pool configured every operation works against
// JSON files under fileDir, so local runs need no database at all.
//
// Schema assumption:
//
//	CREATE TABLE IF NOT EXISTS valuation_runs (
//	  id UUID PRIMARY KEY,
//	  created_at TIMESTAMPTZ NOT NULL,
//	  run_json JSONB NOT NULL
//	);
type RunsRepo struct {
	pool    *pgxpool.Pool
	fileDir string
}

// NewRunsRepo creates a runs repository. If pool is nil, it falls back to a
// file-based store in dir (default .cache/runs).
func NewRunsRepo(pool *pgxpool.Pool, dir string) *RunsRepo {
	if pool == nil && dir == "" {
		dir = filepath.Join(".cache", "runs")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("[WARNING] Check RunsRepo dir: %v\n", err)
		}
	}
	return &RunsRepo{pool: pool, fileDir: dir}
}

// Save stores a run and returns the generated record. data must be JSON-
// marshalable; the record ID is a fresh UUID.
func (r *RunsRepo) Save(ctx context.Context, data any) (RunRecord, error) {
	blob, err := json.Marshal(data)
	if err != nil {
		return RunRecord{}, fmt.Errorf("failed to marshal run data: %w", err)
	}

	record := RunRecord{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Data:      blob,
	}

	if r.pool != nil {
		query := `INSERT INTO valuation_runs (id, created_at, run_json) VALUES ($1, $2, $3)`
		if _, err := r.pool.Exec(ctx, query, record.ID, record.CreatedAt, record.Data); err != nil {
			return RunRecord{}, fmt.Errorf("failed to save run: %w", err)
		}
		return record, nil
	}

	return record, r.writeFile(record)
}

// Get retrieves a single run by ID.
func (r *RunsRepo) Get(ctx context.Context, id string) (RunRecord, error) {
	if r.pool != nil {
		query := `SELECT id, created_at, run_json FROM valuation_runs WHERE id = $1`
		var record RunRecord
		err := r.pool.QueryRow(ctx, query, id).Scan(&record.ID, &record.CreatedAt, &record.Data)
		if err != nil {
			if err == pgx.ErrNoRows {
				return RunRecord{}, fmt.Errorf("no run found with id %s", id)
			}
			return RunRecord{}, fmt.Errorf("failed to load run: %w", err)
		}
		return record, nil
	}

	return r.readFile(id)
}

// List returns up to limit runs, newest first. limit <= 0 means no limit.
func (r *RunsRepo) List(ctx context.Context, limit int) ([]RunRecord, error) {
	if r.pool != nil {
		query := `SELECT id, created_at, run_json FROM valuation_runs ORDER BY created_at DESC`
		args := []any{}
		if limit > 0 {
			query += ` LIMIT $1`
			args = append(args, limit)
		}

		rows, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to query runs: %w", err)
		}
		defer rows.Close()

		var records []RunRecord
		for rows.Next() {
			var record RunRecord
			if err := rows.Scan(&record.ID, &record.CreatedAt, &record.Data); err != nil {
				return nil, fmt.Errorf("failed to scan run row: %w", err)
			}
			records = append(records, record)
		}
		return records, nil
	}

	return r.listFiles(limit)
}

func (r *RunsRepo) runPath(id string) string {
	return filepath.Join(r.fileDir, fmt.Sprintf("run_%s.json", id))
}

func (r *RunsRepo) writeFile(record RunRecord) error {
	blob, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}
	if err := os.WriteFile(r.runPath(record.ID), blob, 0644); err != nil {
		return fmt.Errorf("failed to write run file: %w", err)
	}
	return nil
}

func (r *RunsRepo) readFile(id string) (RunRecord, error) {
	blob, err := os.ReadFile(r.runPath(id))
	if err != nil {
		return RunRecord{}, fmt.Errorf("no run found with id %s", id)
	}
	var record RunRecord
	if err := json.Unmarshal(blob, &record); err != nil {
		return RunRecord{}, fmt.Errorf("failed to parse run file: %w", err)
	}
	return record, nil
}

func (r *RunsRepo) listFiles(limit int) ([]RunRecord, error) {
	entries, err := os.ReadDir(r.fileDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read runs dir: %w", err)
	}

	var records []RunRecord
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		blob, err := os.ReadFile(filepath.Join(r.fileDir, entry.Name()))
		if err != nil {
			continue
		}
		var record RunRecord
		if err := json.Unmarshal(blob, &record); err != nil {
			// Skip corrupt entries rather than failing the listing
			continue
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
