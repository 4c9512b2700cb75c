package adjunct

import "dynadoc/internal/annotation"

// EntryState is the state of a cache entry.
type EntryState int

const (
	EntryAbsent     EntryState = iota // never seen
	EntryInProgress                   // currently being reduced
	EntryDone                         // reduced
)

// String returns a human-readable representation of the EntryState.
func (s EntryState) String() string {
	switch s {
	case EntryAbsent:
		return "absent"
	case EntryInProgress:
		return "in-progress"
	case EntryDone:
		return "done"
	default:
		return "unknown"
	}
}

// Entry is the result of a cache lookup.
type Entry struct {
	State EntryState
	Value annotation.Expr // set when State is EntryDone
}

// Cache maps original annotations, by identity, to their reductions.
//
// A Cache belongs to a single top-level introspection call and is not safe
// for concurrent use. Callers introspecting concurrently must each create
// their own Cache.
type Cache struct {
	entries map[annotation.Expr]Entry
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[annotation.Expr]Entry)}
}

// Access looks up the entry for an original annotation.
func (c *Cache) Access(original annotation.Expr) Entry {
	entry, ok := c.entries[original]
	if !ok {
		return Entry{State: EntryAbsent}
	}

	return entry
}

// Begin marks an original annotation as being reduced.
func (c *Cache) Begin(original annotation.Expr) {
	c.entries[original] = Entry{State: EntryInProgress}
}

// Enter stores the reduction of an original annotation and returns it.
func (c *Cache) Enter(original, reduction annotation.Expr) annotation.Expr {
	c.entries[original] = Entry{State: EntryDone, Value: reduction}
	return reduction
}

// Forget removes the entry for an original annotation.
func (c *Cache) Forget(original annotation.Expr) {
	delete(c.entries, original)
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	return len(c.entries)
}
