// Package memtable implements the in-memory write buffer that absorbs committed
// writes before they are flushed to immutable on-disk tables.
//
// A MemTable owns exactly one Store, chosen once from Settings when the table is
// created. Stores keep their entries ordered by key and track an approximate byte
// footprint so the owner can decide when the buffer is due for a flush.
//
// Deletes are recorded as tombstones: the key stays in the store with an empty value
// and the Deleted flag set, so a delete keeps shadowing older values that live in
// already flushed tables.
package memtable
