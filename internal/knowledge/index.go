package knowledge

import "fmt"

// Index is the immutable knowledge-base index. It keeps the corpus in its
// original order (the ranker uses that order as a stable tie-break) and
// provides constant-time lookup by entry ID.
type Index struct {
	entries []Entry
	byID    map[string]*Entry
}

// NewIndex validates the entries and builds an index over them. The slice is
// copied, so later mutation of the caller's slice does not affect the index.
func NewIndex(entries []Entry) (*Index, error) {
	copied := make([]Entry, len(entries))
	copy(copied, entries)

	byID := make(map[string]*Entry, len(copied))
	for i := range copied {
		e := &copied[i]
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if _, exists := byID[e.ID]; exists {
			return nil, fmt.Errorf("knowledge: duplicate entry id %q", e.ID)
		}
		byID[e.ID] = e
	}

	return &Index{entries: copied, byID: byID}, nil
}

// ByID returns the entry with the given ID, or nil if it does not exist.
func (idx *Index) ByID(id string) *Entry {
	return idx.byID[id]
}

// Entries returns the corpus in original order. Callers must not modify the
// returned slice.
func (idx *Index) Entries() []Entry {
	return idx.entries
}

// Len returns the number of entries in the index.
func (idx *Index) Len() int {
	return len(idx.entries)
}
