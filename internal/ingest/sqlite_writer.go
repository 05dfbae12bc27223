package ingest

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/agentic-research/canopy/api"
	"github.com/ohler55/ojg/oj"
	_ "modernc.org/sqlite"
)

// Schema is the layout LoadSQLite reads and SQLiteWriter writes. seq keeps
// insertion order; id is an ordinary column so repeated ids survive a round
// trip and Validate can still report them.
const Schema = `
CREATE TABLE IF NOT EXISTS files (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id INTEGER NOT NULL,
	name TEXT NOT NULL,
	categories TEXT,
	parent INTEGER,
	size INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_files_id ON files(id);
CREATE INDEX IF NOT EXISTS idx_files_parent ON files(parent);
`

// SQLiteWriter stores records in a SQLite database, committing every
// batchSize records.
type SQLiteWriter struct {
	db        *sql.DB
	tx        *sql.Tx
	stmt      *sql.Stmt
	batchSize int
	count     int
	mu        sync.Mutex
}

// NewSQLiteWriter opens (or creates) dbPath and initializes the schema.
func NewSQLiteWriter(dbPath string) (*SQLiteWriter, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// Bulk insert tuning
	if _, err := db.Exec("PRAGMA synchronous = OFF"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode = MEMORY"); err != nil {
		_ = db.Close()
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	w := &SQLiteWriter{
		db:        db,
		batchSize: 10000,
	}
	if err := w.beginTx(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return w, nil
}

func (w *SQLiteWriter) beginTx() error {
	var err error
	w.tx, err = w.db.Begin()
	if err != nil {
		return err
	}
	w.stmt, err = w.tx.Prepare(`
		INSERT INTO files (id, name, categories, parent, size)
		VALUES (?, ?, ?, ?, ?)
	`)
	return err
}

func (w *SQLiteWriter) commitTx() error {
	if w.stmt != nil {
		_ = w.stmt.Close()
	}
	return w.tx.Commit()
}

// Add writes one record. A root is stored with a NULL parent.
func (w *SQLiteWriter) Add(r api.FileRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var categories, parent any
	if r.Categories != nil {
		categories = oj.JSON(r.Categories)
	}
	if !r.IsRoot() {
		parent = r.Parent
	}

	if _, err := w.stmt.Exec(r.ID, r.Name, categories, parent, r.Size); err != nil {
		return fmt.Errorf("insert record %d: %w", r.ID, err)
	}

	w.count++
	if w.count%w.batchSize == 0 {
		if err := w.commitTx(); err != nil {
			return fmt.Errorf("commit batch: %w", err)
		}
		if err := w.beginTx(); err != nil {
			return fmt.Errorf("begin batch: %w", err)
		}
	}
	return nil
}

// Count returns the number of records written so far.
func (w *SQLiteWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close commits pending records and closes the database.
func (w *SQLiteWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	err := w.commitTx()
	if cerr := w.db.Close(); err == nil {
		err = cerr
	}
	return err
}
