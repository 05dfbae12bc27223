// Package forest answers structural queries over a flat set of file records
// that form zero or more disjoint trees.
package forest

import (
	"errors"

	"github.com/agentic-research/canopy/api"
)

var ErrNotFound = errors.New("record not found")

// Index is the lookup structure derived from a flat record set.
// It is built per query and owned by the caller; nothing is cached across calls.
type Index struct {
	records  map[int]api.FileRecord
	children map[int][]int // parent ID -> child IDs in input order
	roots    []int
}

// BuildIndex builds the id lookup and the parent -> children adjacency in a
// single pass. Roots contribute no adjacency entry. If an ID appears twice the
// later record wins the lookup; Validate reports the duplicate.
func BuildIndex(records []api.FileRecord) *Index {
	idx := &Index{
		records:  make(map[int]api.FileRecord, len(records)),
		children: make(map[int][]int),
	}
	for _, r := range records {
		idx.records[r.ID] = r
		if r.IsRoot() {
			idx.roots = append(idx.roots, r.ID)
			continue
		}
		idx.children[r.Parent] = append(idx.children[r.Parent], r.ID)
	}
	return idx
}

// Len returns the number of distinct IDs in the index.
func (idx *Index) Len() int {
	return len(idx.records)
}

// Record returns the record for id.
func (idx *Index) Record(id int) (api.FileRecord, error) {
	r, ok := idx.records[id]
	if !ok {
		return api.FileRecord{}, ErrNotFound
	}
	return r, nil
}

// Children returns the child IDs of id. The boolean is false when id was
// never recorded as a parent, which is what makes a node a leaf.
func (idx *Index) Children(id int) ([]int, bool) {
	c, ok := idx.children[id]
	return c, ok
}

// Roots returns the IDs of records with no parent, in input order.
func (idx *Index) Roots() []int {
	return idx.roots
}
