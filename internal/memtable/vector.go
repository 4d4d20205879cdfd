package memtable

import (
	"bytes"
	"slices"
)

// sizeofDeleted accounts for the tombstone flag stored next to every key.
const sizeofDeleted = 1

// VectorStore keeps entries in a slice sorted by key. Lookups are a binary search,
// inserts shift the tail of the slice.
type VectorStore struct {
	entries []Entry
	size    uint64
}

func NewVectorStore(initialCapacity int) *VectorStore {
	if initialCapacity < 0 {
		initialCapacity = 0
	}
	return &VectorStore{
		entries: make([]Entry, 0, initialCapacity),
	}
}

func (s *VectorStore) search(key []byte) (int, bool) {
	return slices.BinarySearchFunc(s.entries, key, func(e Entry, k []byte) int {
		return bytes.Compare(e.Key, k)
	})
}

func (s *VectorStore) Put(key, value []byte) {
	idx, found := s.search(key)
	if found {
		e := &s.entries[idx]
		s.size = s.size - uint64(len(e.Value)) + uint64(len(value))
		e.Value = bytes.Clone(value)
		e.Deleted = false
		return
	}

	s.size += uint64(len(key)+len(value)) + sizeofDeleted
	s.entries = slices.Insert(s.entries, idx, Entry{
		Key:   bytes.Clone(key),
		Value: bytes.Clone(value),
	})
}

func (s *VectorStore) Delete(key []byte) {
	idx, found := s.search(key)
	if !found {
		s.size += uint64(len(key)) + sizeofDeleted
		s.entries = slices.Insert(s.entries, idx, Entry{
			Key:     bytes.Clone(key),
			Deleted: true,
		})
		return
	}

	e := &s.entries[idx]
	if e.Deleted {
		return
	}
	s.size -= uint64(len(e.Value))
	e.Value = nil
	e.Deleted = true
}

func (s *VectorStore) Get(key []byte) (Entry, bool) {
	idx, found := s.search(key)
	if !found {
		return Entry{}, false
	}
	return s.entries[idx], true
}

func (s *VectorStore) ApproximateSize() uint64 {
	return s.size
}

func (s *VectorStore) Len() int {
	return len(s.entries)
}

func (s *VectorStore) Ascend(fn func(Entry) bool) {
	for _, e := range s.entries {
		if !fn(e) {
			return
		}
	}
}
