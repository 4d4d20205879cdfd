package memtable

// Entry is a single key in a Store. Deleted entries carry an empty value.
type Entry struct {
	Key     []byte
	Value   []byte
	Deleted bool
}

// Store is the ordered key-value structure a MemTable writes through.
//
// Implementations are not safe for concurrent use; MemTable serializes access.
// Slices handed out by Get and Ascend belong to the store and must not be modified.
type Store interface {
	// Put inserts key or replaces its value, reviving a tombstone if present.
	Put(key, value []byte)
	// Delete turns key into a tombstone, inserting one if the key is unknown.
	Delete(key []byte)
	// Get returns the entry for key, including tombstones.
	Get(key []byte) (Entry, bool)
	// ApproximateSize returns the tracked byte footprint of all entries.
	ApproximateSize() uint64
	// Len returns the number of entries, tombstones included.
	Len() int
	// Ascend calls fn for every entry in key order until fn returns false.
	Ascend(fn func(Entry) bool)
}
