package raft

import (
	"context"
	"testing"

	"saloon/internal/raftpb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func voteRequest(term uint64, candidate uuid.UUID, lastIndex, lastTerm uint64) *raftpb.RequestVoteRequest {
	return &raftpb.RequestVoteRequest{
		Term:         term,
		CandidateId:  candidate.String(),
		LastLogIndex: lastIndex,
		LastLogTerm:  lastTerm,
	}
}

func TestRequestVote_GrantsOncePerTerm(t *testing.T) {
	a, b := newFakePeer(), newFakePeer()
	storage := &memStorage{hs: HardState{Term: 4}}
	n := newTestNode(t, storage, a, b)
	ctx := context.Background()

	resp, err := n.RequestVote(ctx, voteRequest(5, a.ID(), 0, 0))
	require.NoError(t, err)
	assert.True(t, resp.Granted)
	assert.Equal(t, uint64(5), resp.Term)

	st := n.Status()
	assert.Equal(t, uint64(5), st.Term)
	assert.Equal(t, a.ID(), st.VotedFor)
	hs, _ := storage.state()
	assert.Equal(t, HardState{Term: 5, VotedFor: a.ID()}, hs)

	resp, err = n.RequestVote(ctx, voteRequest(5, b.ID(), 0, 0))
	require.NoError(t, err)
	assert.False(t, resp.Granted)
	assert.Equal(t, uint64(5), resp.Term)
	assert.Equal(t, a.ID(), n.Status().VotedFor)
}

func TestRequestVote_RepeatedRequestFromSameCandidate(t *testing.T) {
	a := newFakePeer()
	storage := &memStorage{hs: HardState{Term: 1}}
	n := newTestNode(t, storage, a)
	ctx := context.Background()

	for range 3 {
		resp, err := n.RequestVote(ctx, voteRequest(2, a.ID(), 0, 0))
		require.NoError(t, err)
		assert.True(t, resp.Granted)
	}
	// one write for the new term, one for the vote, none for the repeats
	assert.Equal(t, 2, storage.hardStateWrites)
}

func TestRequestVote_RejectsStaleTerm(t *testing.T) {
	a := newFakePeer()
	n := newTestNode(t, &memStorage{hs: HardState{Term: 4}}, a)

	resp, err := n.RequestVote(context.Background(), voteRequest(3, a.ID(), 10, 3))
	require.NoError(t, err)
	assert.False(t, resp.Granted)
	assert.Equal(t, uint64(4), resp.Term)
	assert.Equal(t, uuid.Nil, n.Status().VotedFor)
}

func TestRequestVote_RejectsUnknownCandidateWithoutAdoptingTerm(t *testing.T) {
	n := newTestNode(t, &memStorage{hs: HardState{Term: 2}}, newFakePeer())
	ctx := context.Background()

	resp, err := n.RequestVote(ctx, voteRequest(9, uuid.New(), 0, 0))
	require.NoError(t, err)
	assert.False(t, resp.Granted)

	resp, err = n.RequestVote(ctx, &raftpb.RequestVoteRequest{Term: 9, CandidateId: "not-a-uuid"})
	require.NoError(t, err)
	assert.False(t, resp.Granted)

	assert.Equal(t, uint64(2), n.Status().Term)
}

func TestRequestVote_RejectsCandidateWithOlderLog(t *testing.T) {
	a := newFakePeer()
	storage := &memStorage{hs: HardState{Term: 3}, entries: entriesOfTerms(1, 3, 3)}

	tests := []struct {
		name      string
		lastIndex uint64
		lastTerm  uint64
		granted   bool
	}{
		{"lower last term", 10, 2, false},
		{"same term shorter log", 2, 3, false},
		{"same term same length", 3, 3, true},
		{"same term longer log", 4, 3, true},
		{"higher last term", 1, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &memStorage{hs: storage.hs, entries: storage.entries}
			n := newTestNode(t, s, a)

			resp, err := n.RequestVote(context.Background(), voteRequest(4, a.ID(), tt.lastIndex, tt.lastTerm))
			require.NoError(t, err)
			assert.Equal(t, tt.granted, resp.Granted)
			// the newer term is adopted either way
			assert.Equal(t, uint64(4), resp.Term)
			assert.Equal(t, uint64(4), n.Status().Term)
		})
	}
}

func TestRequestVote_PersistFailureLeavesStateUntouched(t *testing.T) {
	a := newFakePeer()
	storage := &memStorage{hs: HardState{Term: 4}, failHardState: true}
	n := newTestNode(t, storage, a)

	resp, err := n.RequestVote(context.Background(), voteRequest(5, a.ID(), 0, 0))
	require.ErrorIs(t, err, ErrPersist)
	assert.Nil(t, resp)

	st := n.Status()
	assert.Equal(t, uint64(4), st.Term)
	assert.Equal(t, uuid.Nil, st.VotedFor)

	storage.setFailHardState(false)
	resp, err = n.RequestVote(context.Background(), voteRequest(5, a.ID(), 0, 0))
	require.NoError(t, err)
	assert.True(t, resp.Granted)
}

func TestRequestVote_VoteSurvivesRestart(t *testing.T) {
	a, b := newFakePeer(), newFakePeer()
	dir := t.TempDir()

	storage, err := OpenStorage(dir, true)
	require.NoError(t, err)

	cfg := testConfig()
	n, err := NewNode(cfg, storage, newTestMemTable(t), []Peer{a, b})
	require.NoError(t, err)

	resp, err := n.RequestVote(context.Background(), voteRequest(5, a.ID(), 0, 0))
	require.NoError(t, err)
	require.True(t, resp.Granted)

	// crash right after the grant
	n.Stop()
	require.NoError(t, storage.Close())

	storage, err = OpenStorage(dir, true)
	require.NoError(t, err)
	defer storage.Close()

	n, err = NewNode(cfg, storage, newTestMemTable(t), []Peer{a, b})
	require.NoError(t, err)
	defer n.Stop()

	st := n.Status()
	assert.Equal(t, uint64(5), st.Term)
	assert.Equal(t, a.ID(), st.VotedFor)

	resp, err = n.RequestVote(context.Background(), voteRequest(5, b.ID(), 0, 0))
	require.NoError(t, err)
	assert.False(t, resp.Granted)
}
