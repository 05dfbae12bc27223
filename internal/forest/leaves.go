package forest

import "github.com/agentic-research/canopy/api"

// LeafFiles returns the names of records that no other record names as its
// parent, in input order. Empty input yields an empty, non-nil slice.
func LeafFiles(records []api.FileRecord) []string {
	leaves := []string{}
	if len(records) == 0 {
		return leaves
	}

	idx := BuildIndex(records)
	for _, r := range records {
		if _, hasChildren := idx.Children(r.ID); hasChildren {
			continue
		}
		leaves = append(leaves, r.Name)
	}
	return leaves
}
