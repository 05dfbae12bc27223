package forest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring/roaring64"
	"github.com/agentic-research/canopy/api"
)

var (
	ErrDuplicateID    = errors.New("duplicate id")
	ErrDanglingParent = errors.New("dangling parent")
	ErrCycle          = errors.New("parent cycle")
)

// StructureError describes one way a record set fails to be a forest.
type StructureError struct {
	Err    error // ErrDuplicateID, ErrDanglingParent or ErrCycle
	ID     int
	Parent int
	Cycle  []int // member IDs in parent order, set for ErrCycle
}

func (e *StructureError) Error() string {
	switch {
	case errors.Is(e.Err, ErrDanglingParent):
		return fmt.Sprintf("record %d: parent %d not in input: %v", e.ID, e.Parent, e.Err)
	case errors.Is(e.Err, ErrCycle):
		ids := make([]string, len(e.Cycle))
		for i, id := range e.Cycle {
			ids[i] = fmt.Sprint(id)
		}
		return fmt.Sprintf("record %d: %v through %s", e.ID, e.Err, strings.Join(ids, " -> "))
	default:
		return fmt.Sprintf("record %d: %v", e.ID, e.Err)
	}
}

func (e *StructureError) Unwrap() error {
	return e.Err
}

// Validate checks that records form a forest: IDs are unique, every parent
// refers to a record in the set and no parent chain loops. It returns nil for
// a valid (including empty) forest, otherwise every problem found joined with
// errors.Join, each one a *StructureError.
func Validate(records []api.FileRecord) error {
	var errs []error

	seen := make(map[int]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			errs = append(errs, &StructureError{Err: ErrDuplicateID, ID: r.ID, Parent: r.Parent})
			continue
		}
		seen[r.ID] = struct{}{}
	}

	idx := BuildIndex(records)
	for _, r := range records {
		if r.IsRoot() {
			continue
		}
		if _, err := idx.Record(r.Parent); err != nil {
			errs = append(errs, &StructureError{Err: ErrDanglingParent, ID: r.ID, Parent: r.Parent})
		}
	}

	errs = append(errs, findCycles(idx, records)...)
	return errors.Join(errs...)
}

// findCycles walks each parent chain once. Settled holds IDs whose chain is
// known to end (at a root, a dangling parent or an already reported cycle).
func findCycles(idx *Index, records []api.FileRecord) []error {
	var errs []error
	settled := roaring64.New()

	for _, start := range records {
		if settled.Contains(bitmapKey(start.ID)) {
			continue
		}

		onPath := roaring64.New()
		var path []int
		cur := start.ID
		for {
			if settled.Contains(bitmapKey(cur)) {
				break
			}
			if onPath.Contains(bitmapKey(cur)) {
				errs = append(errs, cycleError(idx, path, cur))
				break
			}
			r, err := idx.Record(cur)
			if err != nil {
				break
			}
			onPath.Add(bitmapKey(cur))
			path = append(path, cur)
			if r.IsRoot() {
				break
			}
			cur = r.Parent
		}

		for _, id := range path {
			settled.Add(bitmapKey(id))
		}
	}
	return errs
}

func cycleError(idx *Index, path []int, entry int) error {
	var members []int
	for i, id := range path {
		if id == entry {
			members = append(members, path[i:]...)
			break
		}
	}
	r, _ := idx.Record(entry)
	return &StructureError{Err: ErrCycle, ID: entry, Parent: r.Parent, Cycle: members}
}

// bitmapKey maps an ID onto the unsigned bitmap domain. The conversion is
// one-to-one, so negative IDs stay distinct.
func bitmapKey(id int) uint64 {
	return uint64(int64(id))
}
