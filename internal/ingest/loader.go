package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/agentic-research/canopy/api"
	"github.com/go-git/go-billy/v5/osfs"
	"go.uber.org/zap"
)

// Loader reads record sets from local sources. SQLite databases are chosen by
// file extension; anything else is parsed as JSON.
type Loader struct {
	// Selector is the JSONPath used for JSON sources. Empty means DefaultSelector.
	Selector string
	Log      *zap.Logger
}

// NewLoader returns a Loader that logs to log (nil disables logging).
func NewLoader(selector string, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{Selector: selector, Log: log}
}

// IsSQLite reports whether source is read as a SQLite database.
func IsSQLite(source string) bool {
	switch strings.ToLower(filepath.Ext(source)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// Load reads every record from source.
func (l *Loader) Load(ctx context.Context, source string) ([]api.FileRecord, error) {
	start := time.Now()
	log := l.Log
	if log == nil {
		log = zap.NewNop()
	}

	var (
		records []api.FileRecord
		err     error
		format  string
	)
	if IsSQLite(source) {
		format = "sqlite"
		records, err = LoadSQLite(ctx, source)
	} else {
		format = "json"
		records, err = l.loadJSON(source)
	}
	if err != nil {
		return nil, err
	}

	log.Debug("loaded records",
		zap.String("source", source),
		zap.String("format", format),
		zap.Int("records", len(records)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return records, nil
}

// loadJSON chroots an OS filesystem at the source's directory so relative and
// absolute paths resolve the same way.
func (l *Loader) loadJSON(source string) ([]api.FileRecord, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", source, err)
	}
	fsys := osfs.New(filepath.Dir(abs))
	return LoadJSON(fsys, filepath.Base(abs), l.Selector)
}
