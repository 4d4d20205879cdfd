package transport

import (
	"context"
	"errors"

	"saloon/internal/raft"
	"saloon/internal/raftpb"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RaftHandler is the inbound side of the raft RPCs, implemented by *raft.Node.
type RaftHandler interface {
	RequestVote(ctx context.Context, req *raftpb.RequestVoteRequest) (*raftpb.RequestVoteResponse, error)
	AppendEntries(ctx context.Context, req *raftpb.AppendEntriesRequest) (*raftpb.AppendEntriesResponse, error)
}

type RaftService struct {
	raftpb.UnimplementedRaftServer
	handler RaftHandler
}

func NewRaftService(h RaftHandler) *RaftService {
	return &RaftService{handler: h}
}

func (s *RaftService) RequestVote(ctx context.Context, req *raftpb.RequestVoteRequest) (*raftpb.RequestVoteResponse, error) {
	resp, err := s.handler.RequestVote(ctx, req)
	if err != nil {
		return nil, raftError(err)
	}
	return resp, nil
}

func (s *RaftService) AppendEntries(ctx context.Context, req *raftpb.AppendEntriesRequest) (*raftpb.AppendEntriesResponse, error) {
	resp, err := s.handler.AppendEntries(ctx, req)
	if err != nil {
		return nil, raftError(err)
	}
	return resp, nil
}

func raftError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, raft.ErrStopped):
		return status.Error(codes.Unavailable, "node is stopped")
	case errors.Is(err, raft.ErrPersist):
		return status.Errorf(codes.Internal, "persist: %v", err)
	default:
		return status.Errorf(codes.Internal, "raft: %v", err)
	}
}
