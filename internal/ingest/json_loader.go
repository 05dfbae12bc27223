package ingest

import (
	"fmt"

	"github.com/agentic-research/canopy/api"
	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// DefaultSelector selects every element of a top-level array.
const DefaultSelector = "$[*]"

// LoadJSON reads a JSON document from fsys and decodes every value matched by
// the JSONPath selector as a FileRecord. An empty selector means
// DefaultSelector.
func LoadJSON(fsys billy.Filesystem, name, selector string) ([]api.FileRecord, error) {
	raw, err := util.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return DecodeJSON(raw, selector)
}

// DecodeJSON is LoadJSON on an in-memory document.
func DecodeJSON(raw []byte, selector string) ([]api.FileRecord, error) {
	if selector == "" {
		selector = DefaultSelector
	}
	x, err := jp.ParseString(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", selector, err)
	}

	doc, err := oj.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	matches := x.Get(doc)
	records := make([]api.FileRecord, 0, len(matches))
	for i, m := range matches {
		r, err := DecodeRecord(m)
		if err != nil {
			return nil, fmt.Errorf("match %d: %w", i, err)
		}
		records = append(records, r)
	}
	return records, nil
}
