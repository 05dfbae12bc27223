package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/agentic-research/canopy/api"
	"github.com/ohler55/ojg/oj"
	_ "modernc.org/sqlite"
)

// StreamSQLite iterates over the files table of a SQLite database in the
// order the records were written, calling fn for each record.
func StreamSQLite(ctx context.Context, dbPath string, fn func(api.FileRecord) error) error {
	// sql.Open would silently create a missing database.
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	defer func() { _ = db.Close() }() // safe to ignore

	rows, err := db.QueryContext(ctx, "SELECT id, name, categories, parent, size FROM files ORDER BY seq")
	if err != nil {
		return fmt.Errorf("query files: %w", err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	for rows.Next() {
		var (
			r          api.FileRecord
			categories sql.NullString
			parent     sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &r.Name, &categories, &parent, &r.Size); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}

		if r.Size < 0 {
			return fmt.Errorf("%w: record %d: negative size %d", ErrInvalidRecord, r.ID, r.Size)
		}

		r.Parent = api.NoParent
		if parent.Valid {
			r.Parent = int(parent.Int64)
		}

		if categories.Valid && categories.String != "" {
			raw, err := oj.ParseString(categories.String)
			if err != nil {
				return fmt.Errorf("record %d: parse categories json: %w", r.ID, err)
			}
			if r.Categories, err = decodeCategories(raw); err != nil {
				return fmt.Errorf("record %d: %w", r.ID, err)
			}
		}

		if err := fn(r); err != nil {
			return err
		}
	}
	return rows.Err()
}

// LoadSQLite reads every record of a SQLite database into memory.
func LoadSQLite(ctx context.Context, dbPath string) ([]api.FileRecord, error) {
	records := []api.FileRecord{}
	err := StreamSQLite(ctx, dbPath, func(r api.FileRecord) error {
		records = append(records, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
