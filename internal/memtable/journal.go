package memtable

import (
	"fmt"
	"log/slog"
	"os"

	"saloon/internal/memtablepb"
	"saloon/internal/metrics"

	"github.com/tidwall/wal"
	"google.golang.org/protobuf/proto"
)

// Journal mirrors every batch applied to a MemTable so the table can be rebuilt
// after a restart. One journal record holds all mutations of one raft log index.
type Journal struct {
	log  *wal.Log
	next uint64
}

func OpenJournal(dir string, noSync bool) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}

	opts := *wal.DefaultOptions
	opts.NoSync = noSync
	log, err := wal.Open(dir, &opts)
	if err != nil {
		return nil, fmt.Errorf("wal.Open: %w", err)
	}

	last, err := log.LastIndex()
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("wal.LastIndex: %w", err)
	}

	return &Journal{log: log, next: last + 1}, nil
}

func (j *Journal) Append(index uint64, muts []Mutation) error {
	data, err := marshalJournalRecord(index, muts)
	if err != nil {
		return err
	}

	if err := j.log.Write(j.next, data); err != nil {
		return fmt.Errorf("wal.Write(%d): %w", j.next, err)
	}
	j.next++
	metrics.MemTableJournalWritesTotal.Inc()
	return nil
}

// Replay feeds every journal record to fn in write order.
func (j *Journal) Replay(fn func(index uint64, muts []Mutation) error) error {
	first, err := j.log.FirstIndex()
	if err != nil {
		return fmt.Errorf("wal.FirstIndex: %w", err)
	}
	last, err := j.log.LastIndex()
	if err != nil {
		return fmt.Errorf("wal.LastIndex: %w", err)
	}
	if last == 0 {
		return nil
	}

	for idx := first; idx <= last; idx++ {
		data, err := j.log.Read(idx)
		if err != nil {
			return fmt.Errorf("wal.Read(%d): %w", idx, err)
		}
		index, muts, err := unmarshalJournalRecord(data)
		if err != nil {
			return fmt.Errorf("journal record %d: %w", idx, err)
		}
		if err := fn(index, muts); err != nil {
			return err
		}
	}

	slog.Debug("replayed memtable journal", "first", first, "last", last)
	return nil
}

func (j *Journal) Close() error {
	return j.log.Close()
}

func marshalJournalRecord(index uint64, muts []Mutation) ([]byte, error) {
	rec := &memtablepb.JournalRecord{Index: index, Mutations: make([]*memtablepb.Mutation, len(muts))}
	for i := range muts {
		m, err := muts[i].toRecord()
		if err != nil {
			return nil, err
		}
		rec.Mutations[i] = m
	}
	return proto.Marshal(rec)
}

func unmarshalJournalRecord(data []byte) (uint64, []Mutation, error) {
	var rec memtablepb.JournalRecord
	if err := proto.Unmarshal(data, &rec); err != nil {
		return 0, nil, err
	}

	muts := make([]Mutation, 0, len(rec.GetMutations()))
	for _, r := range rec.GetMutations() {
		m, err := mutationFromRecord(r)
		if err != nil {
			return 0, nil, err
		}
		muts = append(muts, m)
	}
	return rec.GetIndex(), muts, nil
}
