package raft

import (
	"context"
	"fmt"

	"saloon/internal/metrics"
	"saloon/internal/raftpb"

	"github.com/google/uuid"
)

// RequestVote handles a candidate's vote request. Rejections are reported in the
// response; an error means the durable state could not be written and no vote was cast.
// The handler ignores ctx cancellation so a vote that was persisted is never lost.
func (n *Node) RequestVote(_ context.Context, req *raftpb.RequestVoteRequest) (*raftpb.RequestVoteResponse, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.stopped {
		return nil, ErrStopped
	}

	ps := &n.state.Persistent
	resp := &raftpb.RequestVoteResponse{Term: ps.CurrentTerm}

	if req.GetTerm() < ps.CurrentTerm {
		metrics.RaftVotesTotal.WithLabelValues("stale_term").Inc()
		n.logger.Debug("rejecting vote from stale candidate",
			"candidate_id", req.GetCandidateId(),
			"term", ps.CurrentTerm,
			"candidate_term", req.GetTerm(),
		)
		return resp, nil
	}

	candidate, err := uuid.Parse(req.GetCandidateId())
	if err == nil {
		_, err = n.peerSlot(candidate)
	}
	if err != nil {
		metrics.RaftVotesTotal.WithLabelValues("unknown_candidate").Inc()
		n.logger.Warn("rejecting vote from unknown candidate",
			"candidate_id", req.GetCandidateId(),
			"error", err,
		)
		return resp, nil
	}

	if req.GetTerm() > ps.CurrentTerm {
		if err := n.stepDownLocked(req.GetTerm(), uuid.Nil); err != nil {
			return nil, err
		}
		resp.Term = ps.CurrentTerm
	}

	if ps.VotedFor != uuid.Nil && ps.VotedFor != candidate {
		metrics.RaftVotesTotal.WithLabelValues("already_voted").Inc()
		n.logger.Debug("rejecting vote, already voted",
			"candidate_id", candidate,
			"voted_for", ps.VotedFor,
			"term", ps.CurrentTerm,
		)
		return resp, nil
	}

	if !n.candidateUpToDateLocked(req.GetLastLogIndex(), req.GetLastLogTerm()) {
		metrics.RaftVotesTotal.WithLabelValues("log_behind").Inc()
		n.logger.Debug("rejecting vote, candidate log is behind",
			"candidate_id", candidate,
			"candidate_last_index", req.GetLastLogIndex(),
			"candidate_last_term", req.GetLastLogTerm(),
			"last_index", ps.Log.LastIndex(),
			"last_term", ps.Log.LastTerm(),
		)
		return resp, nil
	}

	if ps.VotedFor != candidate {
		if err := n.storage.SaveHardState(ps.CurrentTerm, candidate); err != nil {
			n.logger.Error("failed to persist vote", "candidate_id", candidate, "term", ps.CurrentTerm, "error", err)
			return nil, fmt.Errorf("%w: save vote for %s in term %d: %w", ErrPersist, candidate, ps.CurrentTerm, err)
		}
		ps.VotedFor = candidate
	}

	n.resetElectionDeadlineLocked(n.now())
	metrics.RaftVotesTotal.WithLabelValues("granted").Inc()
	n.logger.Info("granted vote", "candidate_id", candidate, "term", ps.CurrentTerm)

	resp.Granted = true
	return resp, nil
}

// candidateUpToDateLocked compares last log terms first, then last indices.
func (n *Node) candidateUpToDateLocked(lastIndex, lastTerm uint64) bool {
	log := n.state.Persistent.Log
	if lastTerm != log.LastTerm() {
		return lastTerm > log.LastTerm()
	}
	return lastIndex >= log.LastIndex()
}
