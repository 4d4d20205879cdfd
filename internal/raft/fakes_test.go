package raft

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"saloon/internal/memtable"
	"saloon/internal/raftpb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
)

var errDiskFull = errors.New("disk full")

// memStorage is an in-memory Storage whose writes can be made to fail.
type memStorage struct {
	mu sync.Mutex

	hs      HardState
	entries []*raftpb.Entry

	failHardState bool
	failEntries   bool

	hardStateWrites int
	entryWrites     int
}

func (s *memStorage) Load() (HardState, []*raftpb.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hs, append([]*raftpb.Entry(nil), s.entries...), nil
}

func (s *memStorage) SaveHardState(term uint64, votedFor uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failHardState {
		return errDiskFull
	}
	s.hs = HardState{Term: term, VotedFor: votedFor}
	s.hardStateWrites++
	return nil
}

func (s *memStorage) SaveEntries(from uint64, entries []*raftpb.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failEntries {
		return errDiskFull
	}
	if from == 0 || from > uint64(len(s.entries))+1 {
		return fmt.Errorf("save entries from %d: log has %d entries", from, len(s.entries))
	}
	s.entries = append(s.entries[:from-1:from-1], entries...)
	s.entryWrites++
	return nil
}

func (s *memStorage) Close() error { return nil }

func (s *memStorage) setFailHardState(v bool) {
	s.mu.Lock()
	s.failHardState = v
	s.mu.Unlock()
}

func (s *memStorage) state() (HardState, []*raftpb.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hs, append([]*raftpb.Entry(nil), s.entries...)
}

// fakePeer answers RPCs with the configured functions, or fails when they are nil.
type fakePeer struct {
	id uuid.UUID

	mu            sync.Mutex
	requestVote   func(*raftpb.RequestVoteRequest) (*raftpb.RequestVoteResponse, error)
	appendEntries func(*raftpb.AppendEntriesRequest) (*raftpb.AppendEntriesResponse, error)
	appendCalls   []*raftpb.AppendEntriesRequest
}

var errUnreachable = errors.New("peer unreachable")

func newFakePeer() *fakePeer {
	return &fakePeer{id: uuid.New()}
}

func (p *fakePeer) ID() uuid.UUID { return p.id }

func (p *fakePeer) RequestVote(_ context.Context, req *raftpb.RequestVoteRequest) (*raftpb.RequestVoteResponse, error) {
	p.mu.Lock()
	fn := p.requestVote
	p.mu.Unlock()
	if fn == nil {
		return nil, errUnreachable
	}
	return fn(req)
}

func (p *fakePeer) AppendEntries(_ context.Context, req *raftpb.AppendEntriesRequest) (*raftpb.AppendEntriesResponse, error) {
	p.mu.Lock()
	p.appendCalls = append(p.appendCalls, req)
	fn := p.appendEntries
	p.mu.Unlock()
	if fn == nil {
		return nil, errUnreachable
	}
	return fn(req)
}

func (p *fakePeer) appends() []*raftpb.AppendEntriesRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*raftpb.AppendEntriesRequest(nil), p.appendCalls...)
}

// grantAll makes the peer vote for anyone and accept every append.
func (p *fakePeer) grantAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requestVote = func(req *raftpb.RequestVoteRequest) (*raftpb.RequestVoteResponse, error) {
		return &raftpb.RequestVoteResponse{Term: req.Term, Granted: true}, nil
	}
	p.appendEntries = func(req *raftpb.AppendEntriesRequest) (*raftpb.AppendEntriesResponse, error) {
		return &raftpb.AppendEntriesResponse{Term: req.Term, Success: true}, nil
	}
}

func testConfig() Config {
	return Config{
		ID:                  uuid.New(),
		ElectionTimeout:     100 * time.Millisecond,
		HeartbeatInterval:   20 * time.Millisecond,
		TickInterval:        5 * time.Millisecond,
		RPCTimeout:          50 * time.Millisecond,
		MaxEntriesPerAppend: 16,
	}
}

func newTestMemTable(t *testing.T) *memtable.MemTable {
	t.Helper()
	mt, err := memtable.New(memtable.DefaultSettings())
	require.NoError(t, err)
	return mt
}

// newTestNode builds a node that is not started, so tests drive it by calling
// the handlers and tick directly.
func newTestNode(t *testing.T, storage Storage, peers ...Peer) *Node {
	t.Helper()
	n, err := NewNode(testConfig(), storage, newTestMemTable(t), peers)
	require.NoError(t, err)
	t.Cleanup(n.Stop)
	return n
}

func entriesOfTerms(terms ...uint64) []*raftpb.Entry {
	entries := make([]*raftpb.Entry, len(terms))
	for i, term := range terms {
		entries[i] = &raftpb.Entry{Term: term, Records: [][]byte{[]byte(fmt.Sprintf("t%d-i%d", term, i+1))}}
	}
	return entries
}

// assertEntriesEqual compares entries by content; decoded messages carry internal
// state that reflect.DeepEqual would trip over.
func assertEntriesEqual(t *testing.T, want, got []*raftpb.Entry) {
	t.Helper()
	if !assert.Len(t, got, len(want)) {
		return
	}
	for i := range want {
		assert.True(t, proto.Equal(want[i], got[i]), "entry %d: want %v, got %v", i+1, want[i], got[i])
	}
}

func sameEntries(a, b []*raftpb.Entry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !proto.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func putRecords(t *testing.T, kv ...string) [][]byte {
	t.Helper()
	muts := make([]memtable.Mutation, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		muts = append(muts, memtable.PutMutation([]byte(kv[i]), []byte(kv[i+1])))
	}
	records, err := memtable.EncodeMutations(muts...)
	require.NoError(t, err)
	return records
}

func (n *Node) logTerms() []uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	log := n.state.Persistent.Log
	terms := make([]uint64, 0, log.LastIndex())
	for i := uint64(1); i <= log.LastIndex(); i++ {
		term, _ := log.Term(i)
		terms = append(terms, term)
	}
	return terms
}
