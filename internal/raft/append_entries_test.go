package raft

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	"saloon/internal/raftpb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendRequest(term uint64, leader uuid.UUID, prevIndex, prevTerm, commit uint64, entries ...*raftpb.Entry) *raftpb.AppendEntriesRequest {
	return &raftpb.AppendEntriesRequest{
		Term:              term,
		LeaderId:          leader.String(),
		PrevLogIndex:      prevIndex,
		PrevLogTerm:       prevTerm,
		Entries:           entries,
		LeaderCommitIndex: commit,
	}
}

func TestAppendEntries_RejectsPrevBeyondLog(t *testing.T) {
	leader := newFakePeer()
	n := newTestNode(t, &memStorage{hs: HardState{Term: 1}, entries: entriesOfTerms(1, 1, 1)}, leader)

	resp, err := n.AppendEntries(context.Background(), appendRequest(1, leader.ID(), 5, 1, 0))
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, uint64(1), resp.Term)
	assert.Equal(t, uint64(4), resp.ConflictIndex)
	assert.Equal(t, []uint64{1, 1, 1}, n.logTerms())
}

func TestAppendEntries_TermMismatchHintsFirstIndexOfTerm(t *testing.T) {
	leader := newFakePeer()
	n := newTestNode(t, &memStorage{hs: HardState{Term: 3}, entries: entriesOfTerms(1, 2, 2, 2)}, leader)

	resp, err := n.AppendEntries(context.Background(), appendRequest(4, leader.ID(), 4, 3, 0))
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, uint64(4), resp.Term)
	assert.Equal(t, uint64(2), resp.ConflictIndex)
}

func TestAppendEntries_RejectsStaleLeader(t *testing.T) {
	leader := newFakePeer()
	n := newTestNode(t, &memStorage{hs: HardState{Term: 5}}, leader)

	resp, err := n.AppendEntries(context.Background(), appendRequest(4, leader.ID(), 0, 0, 0, entriesOfTerms(4)...))
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, uint64(5), resp.Term)
	assert.Empty(t, n.logTerms())
}

func TestAppendEntries_RejectsUnknownLeader(t *testing.T) {
	n := newTestNode(t, &memStorage{hs: HardState{Term: 1}}, newFakePeer())

	resp, err := n.AppendEntries(context.Background(), appendRequest(3, uuid.New(), 0, 0, 0, entriesOfTerms(3)...))
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, uint64(1), n.Status().Term)
	assert.Empty(t, n.logTerms())
}

func TestAppendEntries_HeartbeatRecordsLeaderAndStepsDownCandidate(t *testing.T) {
	leader, other := newFakePeer(), newFakePeer()
	n := newTestNode(t, &memStorage{hs: HardState{Term: 1}}, leader, other)

	n.mu.Lock()
	n.state.Role = Candidate
	n.mu.Unlock()

	resp, err := n.AppendEntries(context.Background(), appendRequest(1, leader.ID(), 0, 0, 0))
	require.NoError(t, err)
	assert.True(t, resp.Success)

	st := n.Status()
	assert.Equal(t, Follower, st.Role)
	assert.Equal(t, leader.ID(), st.LeaderID)
	assert.Equal(t, uint64(1), st.Term)
}

func TestAppendEntries_TruncatesConflictingSuffix(t *testing.T) {
	leader := newFakePeer()
	storage := &memStorage{hs: HardState{Term: 2}, entries: entriesOfTerms(1, 1, 2, 2)}
	n := newTestNode(t, storage, leader)

	resp, err := n.AppendEntries(context.Background(), appendRequest(3, leader.ID(), 1, 1, 0, entriesOfTerms(1, 3, 3)[1:]...))
	require.NoError(t, err)
	require.True(t, resp.Success)

	assert.Equal(t, []uint64{1, 3, 3}, n.logTerms())
	_, persisted := storage.state()
	require.Len(t, persisted, 3)
	assert.Equal(t, uint64(3), persisted[1].Term)
	assert.Equal(t, uint64(3), persisted[2].Term)
}

func TestAppendEntries_OutdatedRequestKeepsLongerLog(t *testing.T) {
	leader := newFakePeer()
	entries := entriesOfTerms(1, 1, 1)
	storage := &memStorage{hs: HardState{Term: 1}, entries: entries}
	n := newTestNode(t, storage, leader)

	resp, err := n.AppendEntries(context.Background(), appendRequest(1, leader.ID(), 0, 0, 0, entries[0]))
	require.NoError(t, err)
	require.True(t, resp.Success)

	assert.Equal(t, []uint64{1, 1, 1}, n.logTerms())
	assert.Zero(t, storage.entryWrites)
}

func TestAppendEntries_PersistFailureLeavesLogUntouched(t *testing.T) {
	leader := newFakePeer()
	storage := &memStorage{hs: HardState{Term: 1}, entries: entriesOfTerms(1), failEntries: true}
	n := newTestNode(t, storage, leader)

	resp, err := n.AppendEntries(context.Background(), appendRequest(1, leader.ID(), 1, 1, 1, entriesOfTerms(1, 1)[1:]...))
	require.ErrorIs(t, err, ErrPersist)
	assert.Nil(t, resp)

	st := n.Status()
	assert.Equal(t, uint64(1), st.LastLogIndex)
	assert.Zero(t, st.CommitIndex)
}

func TestAppendEntries_TermPersistFailureRejectsRequest(t *testing.T) {
	leader := newFakePeer()
	storage := &memStorage{hs: HardState{Term: 1}, failHardState: true}
	n := newTestNode(t, storage, leader)

	_, err := n.AppendEntries(context.Background(), appendRequest(2, leader.ID(), 0, 0, 0, entriesOfTerms(2)...))
	require.ErrorIs(t, err, ErrPersist)

	st := n.Status()
	assert.Equal(t, uint64(1), st.Term)
	assert.Equal(t, uuid.Nil, st.LeaderID)
	assert.Zero(t, st.LastLogIndex)
}

func TestAppendEntries_CommitsAndAppliesOnce(t *testing.T) {
	leader := newFakePeer()
	n := newTestNode(t, &memStorage{hs: HardState{Term: 1}}, leader)
	ctx := context.Background()

	e1 := &raftpb.Entry{Term: 1, Records: putRecords(t, "a", "1")}
	e2 := &raftpb.Entry{Term: 1, Records: putRecords(t, "a", "22", "b", "x")}

	// commit is capped by what this request carries
	resp, err := n.AppendEntries(ctx, appendRequest(1, leader.ID(), 0, 0, 5, e1))
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, uint64(1), n.Status().CommitIndex)

	v, ok := n.mt.Get([]byte("a"))
	require.True(t, ok)
	assert.Equal(t, []byte("1"), v)

	req := appendRequest(1, leader.ID(), 1, 1, 2, e2)
	for range 3 {
		resp, err = n.AppendEntries(ctx, req)
		require.NoError(t, err)
		require.True(t, resp.Success)
	}

	st := n.Status()
	assert.Equal(t, uint64(2), st.CommitIndex)
	assert.Equal(t, uint64(2), st.LastApplied)
	assert.Equal(t, uint64(2), n.mt.AppliedIndex())
	assert.Equal(t, 2, n.mt.Len())
	// a(1)+22(2)+flag, b(1)+x(1)+flag
	assert.Equal(t, uint64(4+3), n.mt.ApproximateSize())

	// a lower leader commit never moves the index back
	resp, err = n.AppendEntries(ctx, appendRequest(1, leader.ID(), 2, 1, 1))
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, uint64(2), n.Status().CommitIndex)
}

func TestAppendEntries_RefusesToOverwriteCommittedEntries(t *testing.T) {
	leader := newFakePeer()
	n := newTestNode(t, &memStorage{hs: HardState{Term: 1}}, leader)
	ctx := context.Background()

	resp, err := n.AppendEntries(ctx, appendRequest(1, leader.ID(), 0, 0, 2, entriesOfTerms(1, 1)...))
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Equal(t, uint64(2), n.Status().CommitIndex)

	resp, err = n.AppendEntries(ctx, appendRequest(2, leader.ID(), 1, 1, 0, entriesOfTerms(1, 2)[1:]...))
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, []uint64{1, 1}, n.logTerms())
}

// TestAppendEntries_LogMatching feeds a follower random windows of several leader
// logs that share prefixes, and checks that whenever the follower holds an entry
// with the same index and term as some leader, the logs agree up to that index.
func TestAppendEntries_LogMatching(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for round := range 40 {
		t.Run(fmt.Sprintf("round-%d", round), func(t *testing.T) {
			leaders := make([]*fakePeer, 4)
			peers := make([]Peer, len(leaders))
			for i := range leaders {
				leaders[i] = newFakePeer()
				peers[i] = leaders[i]
			}

			// leader k leads term k+1 and keeps a prefix of leader k-1's log
			logs := make([][]*raftpb.Entry, len(leaders))
			for k := range logs {
				var base []*raftpb.Entry
				if k > 0 {
					prev := logs[k-1]
					base = append(base, prev[:rng.IntN(len(prev)+1)]...)
				}
				term := uint64(k + 1)
				for i := range 1 + rng.IntN(6) {
					base = append(base, &raftpb.Entry{
						Term:    term,
						Records: [][]byte{[]byte(fmt.Sprintf("r%d-k%d-%d", round, k, i))},
					})
				}
				logs[k] = base
			}

			n := newTestNode(t, &memStorage{}, peers...)
			for range 60 {
				k := rng.IntN(len(leaders))
				leaderLog := logs[k]
				prev := uint64(rng.IntN(len(leaderLog) + 1))
				end := prev + uint64(rng.IntN(len(leaderLog)-int(prev)+1))
				prevTerm, _ := NewLog(leaderLog).Term(prev)

				resp, err := n.AppendEntries(context.Background(),
					appendRequest(uint64(k+1), leaders[k].ID(), prev, prevTerm, 0, leaderLog[prev:end]...))
				require.NoError(t, err)

				if resp.Success && end > 0 {
					got := n.logSnapshot()
					require.GreaterOrEqual(t, len(got), int(end))
					require.True(t, sameEntries(leaderLog[:end], got[:end]), "follower log diverges within the accepted window")
				}
				assertLogMatchesLeaders(t, n.logSnapshot(), logs)
			}
		})
	}
}

func assertLogMatchesLeaders(t *testing.T, got []*raftpb.Entry, leaders [][]*raftpb.Entry) {
	t.Helper()
	for _, leaderLog := range leaders {
		for i := min(len(got), len(leaderLog)) - 1; i >= 0; i-- {
			if got[i].Term == leaderLog[i].Term {
				require.True(t, sameEntries(leaderLog[:i+1], got[:i+1]), "logs share index %d and term but differ before it", i+1)
				break
			}
		}
	}
}

func (n *Node) logSnapshot() []*raftpb.Entry {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state.Persistent.Log.Slice(1, 0)
}
