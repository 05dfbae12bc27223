package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/agentic-research/canopy/api"
)

var ErrInvalidRecord = errors.New("invalid record")

// DecodeRecord converts one generic JSON object (as produced by ojg or
// encoding/json) into a FileRecord. "id" is required; a missing or null
// "parent" means api.NoParent, a missing "size" means 0 and "categories" may
// be null or absent. Numbers that do not fit their field and negative sizes
// are rejected.
func DecodeRecord(v any) (api.FileRecord, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return api.FileRecord{}, fmt.Errorf("%w: expected object, got %T", ErrInvalidRecord, v)
	}

	var r api.FileRecord
	id, present, err := intField(obj, "id")
	if err != nil {
		return r, err
	}
	if !present {
		return r, fmt.Errorf("%w: missing id", ErrInvalidRecord)
	}
	if !fitsInt(id) {
		return r, fmt.Errorf("%w: id %d out of range", ErrInvalidRecord, id)
	}
	r.ID = int(id)

	if raw, ok := obj["name"]; ok && raw != nil {
		name, ok := raw.(string)
		if !ok {
			return r, fmt.Errorf("%w: record %d: name must be a string, got %T", ErrInvalidRecord, r.ID, raw)
		}
		r.Name = name
	}

	parent, present, err := intField(obj, "parent")
	if err != nil {
		return r, fmt.Errorf("record %d: %w", r.ID, err)
	}
	r.Parent = api.NoParent
	if present {
		if !fitsInt(parent) {
			return r, fmt.Errorf("%w: record %d: parent %d out of range", ErrInvalidRecord, r.ID, parent)
		}
		r.Parent = int(parent)
	}

	size, _, err := intField(obj, "size")
	if err != nil {
		return r, fmt.Errorf("record %d: %w", r.ID, err)
	}
	if size < 0 {
		return r, fmt.Errorf("%w: record %d: negative size %d", ErrInvalidRecord, r.ID, size)
	}
	r.Size = size

	r.Categories, err = decodeCategories(obj["categories"])
	if err != nil {
		return r, fmt.Errorf("record %d: %w", r.ID, err)
	}
	return r, nil
}

// intField reads an integral number that fits in an int64. Null counts as
// absent. ojg hands over integers too large for int64 as json.Number.
func intField(obj map[string]any, key string) (int64, bool, error) {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return 0, false, nil
	}
	switch n := raw.(type) {
	case int64:
		return n, true, nil
	case int:
		return int64(n), true, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, false, fmt.Errorf("%w: %s must be an integer, got %v", ErrInvalidRecord, key, n)
		}
		// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
		if n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, false, fmt.Errorf("%w: %s %v out of range", ErrInvalidRecord, key, n)
		}
		return int64(n), true, nil
	case json.Number:
		v, err := n.Int64()
		if errors.Is(err, strconv.ErrRange) {
			return 0, false, fmt.Errorf("%w: %s %s out of range", ErrInvalidRecord, key, n)
		}
		if err != nil {
			return 0, false, fmt.Errorf("%w: %s must be an integer, got %s", ErrInvalidRecord, key, n)
		}
		return v, true, nil
	default:
		return 0, false, fmt.Errorf("%w: %s must be a number, got %T", ErrInvalidRecord, key, raw)
	}
}

func decodeCategories(raw any) ([]string, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: categories must be an array, got %T", ErrInvalidRecord, raw)
	}
	categories := make([]string, 0, len(list))
	for _, item := range list {
		c, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: category must be a string, got %T", ErrInvalidRecord, item)
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func fitsInt(v int64) bool {
	return int64(int(v)) == v
}
