package memtable

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"saloon/internal/metrics"
)

const (
	// VectorMemTable selects VectorStore.
	VectorMemTable = "vector_memtable"

	defaultInitialVecSize = 1024
)

type Settings struct {
	Type              string
	InitialVecSize    int
	WriteBufferSizeMB uint64
}

func DefaultSettings() Settings {
	return Settings{
		Type:           VectorMemTable,
		InitialVecSize: defaultInitialVecSize,
	}
}

func newStore(s Settings) (Store, error) {
	switch s.Type {
	case VectorMemTable, "":
		size := s.InitialVecSize
		if size == 0 {
			size = defaultInitialVecSize
		}
		return NewVectorStore(size), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStoreType, s.Type)
	}
}

// MemTable holds a sorted set of the latest written records. Writes applied through
// Apply are mirrored to the Journal, when one is attached, before they become visible.
type MemTable struct {
	mu sync.RWMutex

	store    Store
	settings Settings
	journal  *Journal

	appliedIndex  uint64
	flushReported bool
}

func New(settings Settings) (*MemTable, error) {
	store, err := newStore(settings)
	if err != nil {
		return nil, err
	}
	return &MemTable{store: store, settings: settings}, nil
}

// Open creates a MemTable backed by a journal in dir and rebuilds its contents
// from whatever the journal already holds.
func Open(settings Settings, dir string, noSync bool) (*MemTable, error) {
	mt, err := New(settings)
	if err != nil {
		return nil, err
	}

	j, err := OpenJournal(dir, noSync)
	if err != nil {
		return nil, err
	}

	err = j.Replay(func(index uint64, muts []Mutation) error {
		if index <= mt.appliedIndex {
			return nil
		}
		mt.applyLocked(muts)
		mt.appliedIndex = index
		return nil
	})
	if err != nil {
		j.Close()
		return nil, fmt.Errorf("replay memtable journal: %w", err)
	}

	mt.journal = j
	mt.updateMetricsLocked()

	slog.Info("memtable opened",
		"type", settings.Type,
		"applied_index", mt.appliedIndex,
		"entries", mt.store.Len(),
		"size", mt.store.ApproximateSize(),
	)

	return mt, nil
}

func (m *MemTable) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.journal == nil {
		return nil
	}
	err := m.journal.Close()
	m.journal = nil
	return err
}

func (m *MemTable) Put(key, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store.Put(key, value)
	m.updateMetricsLocked()
}

func (m *MemTable) Delete(key []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store.Delete(key)
	m.updateMetricsLocked()
}

// Get returns the live value for key. Tombstones read as absent.
func (m *MemTable) Get(key []byte) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.store.Get(key)
	if !ok || e.Deleted {
		return nil, false
	}
	return e.Value, true
}

// Lookup returns the raw entry for key, tombstones included.
func (m *MemTable) Lookup(key []byte) (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.Get(key)
}

func (m *MemTable) Ascend(fn func(Entry) bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.store.Ascend(fn)
}

func (m *MemTable) ApproximateSize() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.ApproximateSize()
}

func (m *MemTable) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.Len()
}

// ShouldFlush reports whether the table reached its configured write buffer size.
func (m *MemTable) ShouldFlush() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.shouldFlushLocked()
}

func (m *MemTable) shouldFlushLocked() bool {
	limit := m.settings.WriteBufferSizeMB << 20
	return limit > 0 && m.store.ApproximateSize() >= limit
}

// AppliedIndex returns the highest raft index applied through Apply.
func (m *MemTable) AppliedIndex() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.appliedIndex
}

// Apply writes the mutations of one committed log index. Indices at or below
// AppliedIndex are ignored, so a batch is never applied twice.
func (m *MemTable) Apply(index uint64, muts []Mutation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index <= m.appliedIndex {
		slog.Debug("skipping already applied index", "index", index, "applied_index", m.appliedIndex)
		return nil
	}

	if m.journal != nil {
		if err := m.journal.Append(index, muts); err != nil {
			return fmt.Errorf("journal append %d: %w", index, err)
		}
	}

	m.applyLocked(muts)
	m.appliedIndex = index
	m.updateMetricsLocked()

	if m.shouldFlushLocked() && !m.flushReported {
		m.flushReported = true
		metrics.MemTableFlushThresholdTotal.Inc()
		slog.Warn("memtable reached write buffer size",
			"size", m.store.ApproximateSize(),
			"limit_mb", m.settings.WriteBufferSizeMB,
		)
	}

	return nil
}

func (m *MemTable) applyLocked(muts []Mutation) {
	for _, mut := range muts {
		switch mut.Kind {
		case MutationPut:
			m.store.Put(mut.Key, mut.Value)
		case MutationDelete:
			m.store.Delete(mut.Key)
		}
	}
}

func (m *MemTable) updateMetricsLocked() {
	metrics.MemTableSizeBytes.Set(float64(m.store.ApproximateSize()))
	metrics.MemTableEntries.Set(float64(m.store.Len()))
}

// DecodeRecords turns raw log records into mutations. Records that fail to decode
// are returned in the joined error and left out of the result.
func DecodeRecords(records [][]byte) ([]Mutation, error) {
	muts := make([]Mutation, 0, len(records))
	var errs []error
	for i, rec := range records {
		var m Mutation
		if err := m.Unmarshal(rec); err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		muts = append(muts, m)
	}
	return muts, errors.Join(errs...)
}
