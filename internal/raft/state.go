package raft

import (
	"github.com/google/uuid"
)

type Role uint8

const (
	Follower Role = iota
	Candidate
	Leader
)

func (r Role) String() string {
	switch r {
	case Follower:
		return "follower"
	case Candidate:
		return "candidate"
	case Leader:
		return "leader"
	default:
		return "unknown"
	}
}

// PersistentState must be on stable storage before it is acted upon.
type PersistentState struct {
	CurrentTerm uint64
	// VotedFor is uuid.Nil when no vote was cast in CurrentTerm.
	VotedFor uuid.UUID
	Log      *Log
}

type VolatileMemberState struct {
	CommitIndex uint64
	LastApplied uint64
}

// VolatileLeaderState keeps one slot per peer, in the order peers were given to NewNode.
type VolatileLeaderState struct {
	NextIndex  []uint64
	MatchIndex []uint64
}

func newLeaderState(peers int, lastIndex uint64) *VolatileLeaderState {
	ls := &VolatileLeaderState{
		NextIndex:  make([]uint64, peers),
		MatchIndex: make([]uint64, peers),
	}
	for i := range ls.NextIndex {
		ls.NextIndex[i] = lastIndex + 1
	}
	return ls
}

// NodeState is owned by Node and only touched with Node.mu held.
// Leader is non-nil exactly when Role is Leader.
type NodeState struct {
	Persistent PersistentState
	Member     VolatileMemberState
	Leader     *VolatileLeaderState

	Role     Role
	LeaderID uuid.UUID
}

// Status is a point-in-time copy of a node's state.
type Status struct {
	ID           uuid.UUID
	Role         Role
	Term         uint64
	VotedFor     uuid.UUID
	LeaderID     uuid.UUID
	CommitIndex  uint64
	LastApplied  uint64
	LastLogIndex uint64
	LastLogTerm  uint64
	NextIndex    []uint64
	MatchIndex   []uint64
}
