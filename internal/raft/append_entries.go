package raft

import (
	"context"
	"fmt"

	"saloon/internal/metrics"
	"saloon/internal/raftpb"

	"github.com/google/uuid"
)

// AppendEntries handles replication and heartbeats from the leader. Log mismatches
// are reported with Success=false and, when possible, a ConflictIndex to retry from.
// New entries are persisted before the reply; an error means nothing was appended.
func (n *Node) AppendEntries(_ context.Context, req *raftpb.AppendEntriesRequest) (*raftpb.AppendEntriesResponse, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.stopped {
		return nil, ErrStopped
	}

	ps := &n.state.Persistent
	resp := &raftpb.AppendEntriesResponse{Term: ps.CurrentTerm}

	if req.GetTerm() < ps.CurrentTerm {
		metrics.RaftAppendEntriesTotal.WithLabelValues("stale_term").Inc()
		n.logger.Debug("rejecting append from stale leader",
			"leader_id", req.GetLeaderId(),
			"term", ps.CurrentTerm,
			"leader_term", req.GetTerm(),
		)
		return resp, nil
	}

	leader, err := uuid.Parse(req.GetLeaderId())
	if err == nil {
		_, err = n.peerSlot(leader)
	}
	if err != nil {
		metrics.RaftAppendEntriesTotal.WithLabelValues("unknown_leader").Inc()
		n.logger.Warn("rejecting append from unknown leader", "leader_id", req.GetLeaderId(), "error", err)
		return resp, nil
	}

	if req.GetTerm() == ps.CurrentTerm && n.state.Role == Leader {
		// two leaders in one term cannot happen unless a peer is broken
		metrics.RaftAppendEntriesTotal.WithLabelValues("conflicting_leader").Inc()
		n.logger.Error("append from another leader in the same term", "leader_id", leader, "term", ps.CurrentTerm)
		return resp, nil
	}

	if err := n.stepDownLocked(req.GetTerm(), leader); err != nil {
		return nil, err
	}
	resp.Term = ps.CurrentTerm
	n.resetElectionDeadlineLocked(n.now())

	log := ps.Log
	prev := req.GetPrevLogIndex()
	if prev > log.LastIndex() {
		resp.ConflictIndex = log.LastIndex() + 1
		metrics.RaftAppendEntriesTotal.WithLabelValues("log_mismatch").Inc()
		n.logger.Debug("rejecting append, log too short",
			"prev_log_index", prev,
			"last_index", log.LastIndex(),
		)
		return resp, nil
	}
	if term, _ := log.Term(prev); term != req.GetPrevLogTerm() {
		resp.ConflictIndex = log.FirstIndexOfTerm(prev)
		metrics.RaftAppendEntriesTotal.WithLabelValues("log_mismatch").Inc()
		n.logger.Debug("rejecting append, term mismatch",
			"prev_log_index", prev,
			"prev_log_term", req.GetPrevLogTerm(),
			"local_term", term,
			"conflict_index", resp.ConflictIndex,
		)
		return resp, nil
	}

	entries := req.GetEntries()
	from, newEntries := n.unmatchedSuffixLocked(prev, entries)
	if len(newEntries) > 0 {
		if from <= n.state.Member.CommitIndex {
			// a leader never rewrites committed entries
			metrics.RaftAppendEntriesTotal.WithLabelValues("committed_conflict").Inc()
			n.logger.Error("leader tried to overwrite committed entry",
				"leader_id", leader,
				"index", from,
				"commit_index", n.state.Member.CommitIndex,
			)
			return resp, nil
		}

		if err := n.storage.SaveEntries(from, newEntries); err != nil {
			n.logger.Error("failed to persist entries", "from", from, "count", len(newEntries), "error", err)
			return nil, fmt.Errorf("%w: save %d entries at %d: %w", ErrPersist, len(newEntries), from, err)
		}
		if from <= log.LastIndex() {
			n.logger.Info("truncating conflicting entries", "from", from, "last_index", log.LastIndex())
			log.TruncateFrom(from)
		}
		log.Append(newEntries...)
	}

	lastNew := prev + uint64(len(entries))
	if leaderCommit := req.GetLeaderCommitIndex(); leaderCommit > n.state.Member.CommitIndex {
		commit := min(leaderCommit, lastNew)
		if commit > n.state.Member.CommitIndex {
			n.state.Member.CommitIndex = commit
		}
	}
	n.applyCommittedLocked()

	metrics.RaftAppendEntriesTotal.WithLabelValues("success").Inc()
	if len(entries) > 0 {
		n.logger.Debug("appended entries",
			"leader_id", leader,
			"prev_log_index", prev,
			"received", len(entries),
			"written", len(newEntries),
			"commit_index", n.state.Member.CommitIndex,
		)
	}

	resp.Success = true
	return resp, nil
}

// unmatchedSuffixLocked skips the incoming entries the log already holds and returns
// the index of the first one that is missing or conflicts, along with the rest.
func (n *Node) unmatchedSuffixLocked(prev uint64, entries []*raftpb.Entry) (uint64, []*raftpb.Entry) {
	log := n.state.Persistent.Log
	for i := range entries {
		index := prev + 1 + uint64(i)
		term, ok := log.Term(index)
		if ok && term == entries[i].GetTerm() {
			continue
		}
		return index, entries[i:]
	}
	return 0, nil
}
