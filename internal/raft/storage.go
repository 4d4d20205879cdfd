package raft

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"saloon/internal/metrics"
	"saloon/internal/raftpb"

	"github.com/google/uuid"
	"github.com/tidwall/wal"
	"go.etcd.io/etcd/pkg/v3/pbutil"
	"google.golang.org/protobuf/proto"
)

// Storage persists the raft PersistentState. Each call is durable once it returns nil.
type Storage interface {
	Load() (HardState, []*raftpb.Entry, error)
	SaveHardState(term uint64, votedFor uuid.UUID) error
	// SaveEntries replaces every entry at or after from with entries.
	SaveEntries(from uint64, entries []*raftpb.Entry) error
	Close() error
}

type HardState struct {
	Term     uint64
	VotedFor uuid.UUID
}

const (
	RecordTypeEntry     byte = 1
	RecordTypeHardState byte = 2
	RecordTypeTruncate  byte = 3
)

// WALStorage is a Storage backed by an append-only tidwall/wal log. Truncation is
// recorded as a marker so the log itself is never rewritten.
type WALStorage struct {
	mu sync.Mutex

	log        *wal.Log
	nextWALIdx uint64
	lastIndex  uint64
}

func OpenStorage(dir string, noSync bool) (*WALStorage, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}

	opts := *wal.DefaultOptions
	opts.NoSync = noSync
	log, err := wal.Open(dir, &opts)
	if err != nil {
		return nil, fmt.Errorf("wal.Open: %w", err)
	}

	s := &WALStorage{log: log, nextWALIdx: 1}

	hs, entries, err := s.replay()
	if err != nil {
		log.Close()
		return nil, err
	}
	s.lastIndex = uint64(len(entries))

	slog.Info("opened raft storage",
		"dir", dir,
		"term", hs.Term,
		"voted_for", hs.VotedFor,
		"last_index", s.lastIndex,
	)

	return s, nil
}

func (s *WALStorage) Load() (HardState, []*raftpb.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.log == nil {
		return HardState{}, nil, wal.ErrClosed
	}
	return s.replay()
}

func (s *WALStorage) replay() (HardState, []*raftpb.Entry, error) {
	var (
		hs      HardState
		entries []*raftpb.Entry
	)

	empty, err := s.log.IsEmpty()
	if err != nil {
		return hs, nil, fmt.Errorf("wal.IsEmpty: %w", err)
	}
	if empty {
		return hs, nil, nil
	}

	first, err := s.log.FirstIndex()
	if err != nil {
		return hs, nil, fmt.Errorf("wal.FirstIndex: %w", err)
	}
	last, err := s.log.LastIndex()
	if err != nil {
		return hs, nil, fmt.Errorf("wal.LastIndex: %w", err)
	}

	for idx := first; idx <= last; idx++ {
		data, err := s.log.Read(idx)
		if err != nil {
			return hs, nil, fmt.Errorf("wal.Read(%d): %w", idx, err)
		}

		recType, payload, err := unmarshalRecord(data)
		if err != nil {
			return hs, nil, fmt.Errorf("unmarshal record %d: %w", idx, err)
		}

		switch recType {
		case RecordTypeEntry:
			e := &raftpb.Entry{}
			if err := proto.Unmarshal(payload, e); err != nil {
				return hs, nil, fmt.Errorf("entry record %d: %w", idx, err)
			}
			entries = append(entries, e)

		case RecordTypeHardState:
			r := &raftpb.HardState{}
			if err := proto.Unmarshal(payload, r); err != nil {
				return hs, nil, fmt.Errorf("hard state record %d: %w", idx, err)
			}
			if hs, err = hardStateFromRecord(r); err != nil {
				return hs, nil, fmt.Errorf("hard state record %d: %w", idx, err)
			}

		case RecordTypeTruncate:
			r := &raftpb.TruncateMarker{}
			if err := proto.Unmarshal(payload, r); err != nil {
				return hs, nil, fmt.Errorf("truncate record %d: %w", idx, err)
			}
			if r.From == 0 || r.From > uint64(len(entries))+1 {
				return hs, nil, fmt.Errorf("truncate record %d: from %d outside log of %d entries", idx, r.From, len(entries))
			}
			clear(entries[r.From-1:])
			entries = entries[:r.From-1]

		default:
			return hs, nil, fmt.Errorf("record %d: unknown type %d", idx, recType)
		}

		s.nextWALIdx = idx + 1
	}

	slog.Debug("replayed WAL",
		"wal_first", first,
		"wal_last", last,
		"entries", len(entries),
		"term", hs.Term,
	)

	return hs, entries, nil
}

func (s *WALStorage) SaveHardState(term uint64, votedFor uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.log == nil {
		return wal.ErrClosed
	}

	rec := &raftpb.HardState{Term: term}
	if votedFor != uuid.Nil {
		rec.VotedFor = votedFor[:]
	}
	data := marshalRecord(RecordTypeHardState, pbutil.MustMarshal(protoRecord{rec}))

	start := time.Now()
	if err := s.log.Write(s.nextWALIdx, data); err != nil {
		return fmt.Errorf("wal.Write(%d): %w", s.nextWALIdx, err)
	}
	metrics.WALWriteDuration.Observe(time.Since(start).Seconds())
	metrics.WALWritesTotal.Inc()

	s.nextWALIdx++
	return nil
}

func (s *WALStorage) SaveEntries(from uint64, entries []*raftpb.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.log == nil {
		return wal.ErrClosed
	}

	if from == 0 || from > s.lastIndex+1 {
		return fmt.Errorf("save entries from %d: log has %d entries", from, s.lastIndex)
	}

	var batch wal.Batch
	next := s.nextWALIdx
	if from <= s.lastIndex {
		batch.Write(next, marshalRecord(RecordTypeTruncate, pbutil.MustMarshal(protoRecord{&raftpb.TruncateMarker{From: from}})))
		next++
	}
	for i := range entries {
		batch.Write(next, marshalRecord(RecordTypeEntry, pbutil.MustMarshal(protoRecord{entries[i]})))
		next++
	}
	if next == s.nextWALIdx {
		return nil
	}

	start := time.Now()
	if err := s.log.WriteBatch(&batch); err != nil {
		return fmt.Errorf("wal.WriteBatch(%d..%d): %w", s.nextWALIdx, next-1, err)
	}
	metrics.WALWriteDuration.Observe(time.Since(start).Seconds())
	metrics.WALWritesTotal.Add(float64(next - s.nextWALIdx))

	s.nextWALIdx = next
	s.lastIndex = from - 1 + uint64(len(entries))
	return nil
}

func (s *WALStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.log != nil {
		err := s.log.Close()
		s.log = nil
		return err
	}
	return nil
}

// protoRecord frames generated messages through pbutil, which expects gogo-style
// Marshal methods.
type protoRecord struct {
	proto.Message
}

func (r protoRecord) Marshal() ([]byte, error) {
	return proto.Marshal(r.Message)
}

func hardStateFromRecord(r *raftpb.HardState) (HardState, error) {
	hs := HardState{Term: r.GetTerm()}
	if len(r.GetVotedFor()) > 0 {
		id, err := uuid.FromBytes(r.GetVotedFor())
		if err != nil {
			return HardState{}, fmt.Errorf("voted_for: %w", err)
		}
		hs.VotedFor = id
	}
	return hs, nil
}

func marshalRecord(recType byte, payload []byte) []byte {
	buf := make([]byte, 1+binary.MaxVarintLen64+len(payload))
	buf[0] = recType
	n := binary.PutUvarint(buf[1:], uint64(len(payload)))
	copy(buf[1+n:], payload)
	return buf[:1+n+len(payload)]
}

func unmarshalRecord(data []byte) (byte, []byte, error) {
	if len(data) < 2 {
		return 0, nil, io.ErrUnexpectedEOF
	}
	recType := data[0]
	length, n := binary.Uvarint(data[1:])
	if n <= 0 {
		return 0, nil, io.ErrUnexpectedEOF
	}
	start := 1 + n
	end := start + int(length)
	if end > len(data) {
		return 0, nil, io.ErrUnexpectedEOF
	}
	return recType, data[start:end], nil
}
