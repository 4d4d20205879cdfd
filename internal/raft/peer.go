package raft

import (
	"context"

	"saloon/internal/raftpb"

	"github.com/google/uuid"
)

// Peer is the outbound side of the raft RPCs toward one other cluster member.
type Peer interface {
	ID() uuid.UUID
	RequestVote(ctx context.Context, req *raftpb.RequestVoteRequest) (*raftpb.RequestVoteResponse, error)
	AppendEntries(ctx context.Context, req *raftpb.AppendEntriesRequest) (*raftpb.AppendEntriesResponse, error)
}
