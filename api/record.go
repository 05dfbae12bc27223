package api

// NoParent is the parent value of a root record.
const NoParent = -1

// FileRecord is one node of a file forest.
// Records are values: nothing in canopy mutates a record after it is decoded.
type FileRecord struct {
	// ID is unique within one record set.
	ID int `json:"id"`
	// Name is a display label. It is not guaranteed to be unique.
	Name string `json:"name"`
	// Categories are free-text tags. May be nil.
	Categories []string `json:"categories"`
	// Parent is the ID of the containing node, or NoParent for a root.
	Parent int `json:"parent"`
	// Size is the node's own size in bytes, excluding descendants.
	Size int64 `json:"size"`
}

// IsRoot reports whether the record has no parent.
func (r FileRecord) IsRoot() bool {
	return r.Parent == NoParent
}
