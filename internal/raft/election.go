package raft

import (
	"context"
	"time"

	"saloon/internal/metrics"
	"saloon/internal/raftpb"

	"github.com/google/uuid"
	"go.etcd.io/raft/v3/quorum"
)

// campaignLocked starts an election for the next term. If the new term cannot be
// persisted the node stays where it is and tries again after another timeout.
func (n *Node) campaignLocked(now time.Time) {
	ps := &n.state.Persistent
	term := ps.CurrentTerm + 1

	n.resetElectionDeadlineLocked(now)

	if err := n.storage.SaveHardState(term, n.cfg.ID); err != nil {
		n.logger.Error("failed to persist candidacy, retrying after next timeout", "term", term, "error", err)
		return
	}
	ps.CurrentTerm = term
	ps.VotedFor = n.cfg.ID

	n.state.Role = Candidate
	n.state.Leader = nil
	n.state.LeaderID = uuid.Nil
	n.votes = map[uint64]bool{selfSlot: true}

	metrics.RaftElectionsTotal.Inc()
	n.logger.Info("starting election",
		"term", term,
		"last_log_index", ps.Log.LastIndex(),
		"last_log_term", ps.Log.LastTerm(),
	)

	if n.voters.VoteResult(n.votes) == quorum.VoteWon {
		n.becomeLeaderLocked()
		return
	}

	req := &raftpb.RequestVoteRequest{
		Term:         term,
		CandidateId:  n.cfg.ID.String(),
		LastLogIndex: ps.Log.LastIndex(),
		LastLogTerm:  ps.Log.LastTerm(),
	}
	for i := range n.peers {
		n.goLocked(func() { n.requestVote(i, req) })
	}
}

func (n *Node) requestVote(i int, req *raftpb.RequestVoteRequest) {
	peer := n.peers[i]

	ctx, cancel := context.WithTimeout(n.ctx, n.cfg.RPCTimeout)
	resp, err := peer.RequestVote(ctx, req)
	cancel()

	n.mu.Lock()
	defer n.mu.Unlock()

	if err != nil {
		if !isContextError(n.ctx.Err()) {
			metrics.RaftMessageErrors.WithLabelValues(peer.ID().String(), "request_vote").Inc()
			n.logger.Warn("request vote failed", "peer_id", peer.ID(), "term", req.Term, "error", err)
		}
		return
	}
	n.handleVoteResponseLocked(uint64(i)+1, req.Term, resp)
}

func (n *Node) handleVoteResponseLocked(slot, term uint64, resp *raftpb.RequestVoteResponse) {
	if n.stopped {
		return
	}
	if resp.GetTerm() > n.state.Persistent.CurrentTerm {
		n.logger.Info("vote response carries newer term", "term", n.state.Persistent.CurrentTerm, "peer_term", resp.GetTerm())
		n.observeNewerTermLocked(resp.GetTerm())
		return
	}
	if n.state.Role != Candidate || n.state.Persistent.CurrentTerm != term {
		return
	}

	n.votes[slot] = resp.GetGranted()

	switch n.voters.VoteResult(n.votes) {
	case quorum.VoteWon:
		n.becomeLeaderLocked()
	case quorum.VoteLost:
		n.logger.Info("election lost", "term", term)
	}
}

// becomeLeaderLocked resets the per-peer progress and appends a no-op entry of the
// new term, which lets entries from earlier terms commit once it is replicated.
func (n *Node) becomeLeaderLocked() {
	ps := &n.state.Persistent

	noop := &raftpb.Entry{Term: ps.CurrentTerm}
	index := ps.Log.LastIndex() + 1
	if err := n.storage.SaveEntries(index, []*raftpb.Entry{noop}); err != nil {
		n.logger.Error("failed to persist leader no-op, staying candidate", "term", ps.CurrentTerm, "error", err)
		return
	}

	n.state.Role = Leader
	n.state.LeaderID = n.cfg.ID
	n.state.Leader = newLeaderState(len(n.peers), ps.Log.LastIndex())
	n.votes = nil
	ps.Log.Append(noop)

	metrics.RaftLeaderChangesTotal.Inc()
	n.logger.Info("became leader", "term", ps.CurrentTerm, "last_log_index", ps.Log.LastIndex())

	n.heartbeatDeadline = n.now().Add(n.cfg.HeartbeatInterval)
	n.advanceCommitLocked()
	n.broadcastLocked()
}
