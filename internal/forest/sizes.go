package forest

import "github.com/agentic-research/canopy/api"

// Rollup computes the aggregate size of every node: its own size plus the
// sizes of all of its descendants.
//
// Each record adds its own size to itself and then to every ancestor found by
// walking the parent chain iteratively, so deep trees do not grow the stack and
// input order does not matter. Every distinct ID gets an entry.
//
// Input that fails Validate still terminates. A parent ID missing from the
// input ends the walk without being credited, and a walk is capped at one step
// per record, so a cycle produces a partial total rather than a hang.
func Rollup(records []api.FileRecord) map[int]int64 {
	idx := BuildIndex(records)
	totals := make(map[int]int64, idx.Len())

	for id, r := range idx.records {
		totals[id] += r.Size

		parent := r.Parent
		for steps := 0; parent != api.NoParent && steps < idx.Len(); steps++ {
			ancestor, ok := idx.records[parent]
			if !ok {
				break
			}
			// Credit the contributor's own size, never the ancestor's running total.
			totals[ancestor.ID] += r.Size
			parent = ancestor.Parent
		}
	}
	return totals
}

// LargestFileSize returns the largest aggregate size of any node, or 0 when
// there are no records.
func LargestFileSize(records []api.FileRecord) int64 {
	if len(records) == 0 {
		return 0
	}

	var largest int64
	first := true
	for _, total := range Rollup(records) {
		if first || total > largest {
			largest = total
			first = false
		}
	}
	return largest
}
