package forest

import (
	"sort"
	"strings"

	"github.com/agentic-research/canopy/api"
)

// CategoryCount is one row of the category tally.
type CategoryCount struct {
	Category string `json:"category"`
	Files    int    `json:"files"`
}

// CategoryCounts tallies how many records carry each tag and returns the
// tally ranked by count descending, then tag ascending compared
// case-insensitively. Tags are distinct by exact text; a tag listed twice on
// one record counts once for that record. Remaining ties keep first-seen order.
func CategoryCounts(records []api.FileRecord) []CategoryCount {
	counts := []CategoryCount{}
	pos := make(map[string]int) // tag -> index into counts

	for _, r := range records {
		seen := make(map[string]struct{}, len(r.Categories))
		for _, c := range r.Categories {
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}

			i, ok := pos[c]
			if !ok {
				i = len(counts)
				pos[c] = i
				counts = append(counts, CategoryCount{Category: c})
			}
			counts[i].Files++
		}
	}

	// Lowercase once; the tag as written stays the payload.
	keys := make(map[string]string, len(counts))
	for _, cc := range counts {
		keys[cc.Category] = strings.ToLower(cc.Category)
	}
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Files != counts[j].Files {
			return counts[i].Files > counts[j].Files
		}
		return keys[counts[i].Category] < keys[counts[j].Category]
	})
	return counts
}

// KLargestCategories returns the k tags carried by the most records, ordered
// as CategoryCounts ranks them. k larger than the number of distinct tags
// returns all of them; k <= 0 returns an empty slice.
func KLargestCategories(records []api.FileRecord, k int) []string {
	top := []string{}
	if k <= 0 || len(records) == 0 {
		return top
	}

	counts := CategoryCounts(records)
	if k > len(counts) {
		k = len(counts)
	}
	for _, cc := range counts[:k] {
		top = append(top, cc.Category)
	}
	return top
}
