package ingest

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/agentic-research/canopy/api"
	"github.com/agentic-research/canopy/internal/forest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func createTestDB(t *testing.T, rows string) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "files.db")

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Exec(Schema)
	require.NoError(t, err)
	if rows != "" {
		_, err = db.Exec(rows)
		require.NoError(t, err)
	}
	return dbPath
}

func TestLoadSQLite(t *testing.T) {
	t.Run("basic records", func(t *testing.T) {
		dbPath := createTestDB(t, `
			INSERT INTO files (id, name, categories, parent, size) VALUES (3, 'Folder', '["Folder"]', NULL, 0);
			INSERT INTO files (id, name, categories, parent, size) VALUES (1, 'Document.txt', '["Documents","Text"]', 3, 1024);
			INSERT INTO files (id, name, categories, parent, size) VALUES (55, 'Code.py', NULL, -1, 1536);
		`)

		records, err := LoadSQLite(context.Background(), dbPath)
		require.NoError(t, err)
		require.Len(t, records, 3)

		assert.Equal(t, api.FileRecord{
			ID: 3, Name: "Folder", Categories: []string{"Folder"}, Parent: api.NoParent,
		}, records[0])
		assert.Equal(t, []string{"Documents", "Text"}, records[1].Categories)
		assert.Equal(t, 3, records[1].Parent)
		assert.Nil(t, records[2].Categories)
		assert.True(t, records[2].IsRoot(), "explicit -1 is also a root")
	})

	t.Run("empty database", func(t *testing.T) {
		records, err := LoadSQLite(context.Background(), createTestDB(t, ""))
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("nonexistent file", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing.db")
		_, err := LoadSQLite(context.Background(), missing)
		require.Error(t, err)
		assert.NoFileExists(t, missing, "loading must not create the database")
	})

	t.Run("negative size", func(t *testing.T) {
		dbPath := createTestDB(t, `INSERT INTO files (id, name, categories, parent, size) VALUES (1, 'x', NULL, NULL, -4);`)
		_, err := LoadSQLite(context.Background(), dbPath)
		assert.ErrorIs(t, err, ErrInvalidRecord)
		assert.ErrorContains(t, err, "negative size")
	})

	t.Run("bad categories json", func(t *testing.T) {
		dbPath := createTestDB(t, `INSERT INTO files (id, name, categories, parent, size) VALUES (1, 'x', '{"not":"a list"}', NULL, 0);`)
		_, err := LoadSQLite(context.Background(), dbPath)
		assert.ErrorIs(t, err, ErrInvalidRecord)
	})
}

func TestStreamSQLite_StopsOnCallbackError(t *testing.T) {
	dbPath := createTestDB(t, `
		INSERT INTO files (id, name, categories, parent, size) VALUES (1, 'a', NULL, NULL, 1);
		INSERT INTO files (id, name, categories, parent, size) VALUES (2, 'b', NULL, 1, 2);
	`)
	stop := errors.New("stop")

	var seen int
	err := StreamSQLite(context.Background(), dbPath, func(api.FileRecord) error {
		seen++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, seen)
}

func TestSQLiteWriter(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "out.db")
	w, err := NewSQLiteWriter(dbPath)
	require.NoError(t, err)
	w.batchSize = 2 // exercise intermediate commits

	in := []api.FileRecord{
		{ID: 1, Name: "root", Categories: []string{"Folder"}, Parent: api.NoParent, Size: 0},
		{ID: 2, Name: "a.txt", Categories: []string{"Documents", "Text"}, Parent: 1, Size: 10},
		{ID: 3, Name: "b.bin", Parent: 1, Size: 20},
	}
	for _, r := range in {
		require.NoError(t, w.Add(r))
	}
	assert.Equal(t, 3, w.Count())
	require.NoError(t, w.Close())

	out, err := LoadSQLite(context.Background(), dbPath)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSQLiteWriter_KeepsOrderAndDuplicates(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "dup.db")
	w, err := NewSQLiteWriter(dbPath)
	require.NoError(t, err)

	in := []api.FileRecord{
		{ID: 9, Name: "nine", Parent: api.NoParent, Size: 1},
		{ID: 2, Name: "two", Parent: api.NoParent, Size: 2},
		{ID: 2, Name: "two-dup", Parent: api.NoParent, Size: 3},
	}
	for _, r := range in {
		require.NoError(t, w.Add(r))
	}
	require.NoError(t, w.Close())

	out, err := LoadSQLite(context.Background(), dbPath)
	require.NoError(t, err)
	assert.Equal(t, in, out, "records come back in write order, repeats included")

	assert.Equal(t, []string{"nine", "two", "two-dup"}, forest.LeafFiles(out))
	assert.ErrorIs(t, forest.Validate(out), forest.ErrDuplicateID)
}
