package raft

import (
	"bytes"
	"context"
	"fmt"

	"saloon/internal/metrics"
	"saloon/internal/raftpb"

	"go.etcd.io/raft/v3/quorum"
)

func (n *Node) broadcastLocked() {
	for i := range n.peers {
		n.replicateLocked(i)
	}
}

// replicateLocked starts a replication round toward peer i, or marks that another
// round is wanted once the current one finishes.
func (n *Node) replicateLocked(i int) {
	if n.inflight[i] {
		n.pending[i] = true
		return
	}
	if n.goLocked(func() { n.replicate(i) }) {
		n.inflight[i] = true
		n.pending[i] = false
	}
}

// replicate sends AppendEntries to peer i until it has caught up, the node stops
// leading or an RPC fails.
func (n *Node) replicate(i int) {
	peer := n.peers[i]

	for {
		n.mu.Lock()
		req, ok := n.appendRequestLocked(i)
		if !ok {
			n.inflight[i] = false
			n.mu.Unlock()
			return
		}
		n.mu.Unlock()

		ctx, cancel := context.WithTimeout(n.ctx, n.cfg.RPCTimeout)
		resp, err := peer.AppendEntries(ctx, req)
		cancel()

		n.mu.Lock()
		again := false
		if err != nil {
			if !isContextError(n.ctx.Err()) {
				metrics.RaftMessageErrors.WithLabelValues(peer.ID().String(), "append_entries").Inc()
				n.logger.Warn("append entries failed", "peer_id", peer.ID(), "term", req.Term, "error", err)
			}
		} else {
			again = n.handleAppendResponseLocked(i, req, resp)
		}
		if !again && n.pending[i] {
			n.pending[i] = false
			again = err == nil
		}
		if !again {
			n.inflight[i] = false
			n.mu.Unlock()
			return
		}
		n.mu.Unlock()
	}
}

func (n *Node) appendRequestLocked(i int) (*raftpb.AppendEntriesRequest, bool) {
	if n.stopped || n.state.Role != Leader {
		return nil, false
	}

	log := n.state.Persistent.Log
	next := n.state.Leader.NextIndex[i]
	prevTerm, _ := log.Term(next - 1)

	return &raftpb.AppendEntriesRequest{
		Term:              n.state.Persistent.CurrentTerm,
		LeaderId:          n.cfg.ID.String(),
		PrevLogIndex:      next - 1,
		PrevLogTerm:       prevTerm,
		Entries:           log.Slice(next, n.cfg.MaxEntriesPerAppend),
		LeaderCommitIndex: n.state.Member.CommitIndex,
	}, true
}

// handleAppendResponseLocked updates the progress of peer i and reports whether
// another request should follow right away.
func (n *Node) handleAppendResponseLocked(i int, req *raftpb.AppendEntriesRequest, resp *raftpb.AppendEntriesResponse) bool {
	if n.stopped {
		return false
	}
	if resp.GetTerm() > n.state.Persistent.CurrentTerm {
		n.logger.Info("append response carries newer term",
			"peer_id", n.peers[i].ID(),
			"term", n.state.Persistent.CurrentTerm,
			"peer_term", resp.GetTerm(),
		)
		n.observeNewerTermLocked(resp.GetTerm())
		return false
	}
	if n.state.Role != Leader || n.state.Persistent.CurrentTerm != req.Term {
		return false
	}

	ls := n.state.Leader
	if resp.GetSuccess() {
		match := req.PrevLogIndex + uint64(len(req.Entries))
		if match > ls.MatchIndex[i] {
			ls.MatchIndex[i] = match
		}
		ls.NextIndex[i] = ls.MatchIndex[i] + 1
		n.advanceCommitLocked()
		return ls.NextIndex[i] <= n.state.Persistent.Log.LastIndex()
	}

	if ls.NextIndex[i] <= ls.MatchIndex[i]+1 {
		n.logger.Warn("peer rejected an acknowledged prefix",
			"peer_id", n.peers[i].ID(),
			"next_index", ls.NextIndex[i],
			"match_index", ls.MatchIndex[i],
		)
		return false
	}

	next := ls.NextIndex[i] - 1
	if hint := resp.GetConflictIndex(); hint > 0 && hint < next {
		next = hint
	}
	next = max(next, ls.MatchIndex[i]+1)

	n.logger.Debug("peer rejected append, backing off",
		"peer_id", n.peers[i].ID(),
		"prev_log_index", req.PrevLogIndex,
		"conflict_index", resp.GetConflictIndex(),
		"next_index", next,
	)
	ls.NextIndex[i] = next
	return true
}

type matchIndexer struct {
	self  uint64
	match []uint64
}

func (m matchIndexer) AckedIndex(id uint64) (quorum.Index, bool) {
	if id == selfSlot {
		return quorum.Index(m.self), true
	}
	if id-1 < uint64(len(m.match)) {
		return quorum.Index(m.match[id-1]), true
	}
	return 0, false
}

// advanceCommitLocked moves the commit index to the highest index a majority holds,
// but only when that entry belongs to the current term.
func (n *Node) advanceCommitLocked() {
	if n.state.Role != Leader {
		return
	}

	log := n.state.Persistent.Log
	idx := uint64(n.voters.CommittedIndex(matchIndexer{
		self:  log.LastIndex(),
		match: n.state.Leader.MatchIndex,
	}))
	if idx <= n.state.Member.CommitIndex {
		return
	}
	if term, _ := log.Term(idx); term != n.state.Persistent.CurrentTerm {
		return
	}

	n.logger.Debug("commit index advanced", "from", n.state.Member.CommitIndex, "to", idx)
	n.state.Member.CommitIndex = idx
	n.applyCommittedLocked()
}

// Propose appends records to the leader's log as one entry and starts replicating it.
// It returns once the entry is durable locally; use Wait to block until it is applied.
func (n *Node) Propose(ctx context.Context, records [][]byte) (uint64, uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.stopped {
		return 0, 0, ErrStopped
	}
	if n.state.Role != Leader {
		return 0, 0, fmt.Errorf("%w: leader is %s", ErrNotLeader, n.state.LeaderID)
	}

	ps := &n.state.Persistent
	entry := &raftpb.Entry{Term: ps.CurrentTerm, Records: make([][]byte, len(records))}
	for i, r := range records {
		entry.Records[i] = bytes.Clone(r)
	}
	index := ps.Log.LastIndex() + 1

	metrics.RaftProposalsTotal.Inc()
	if err := n.storage.SaveEntries(index, []*raftpb.Entry{entry}); err != nil {
		metrics.RaftProposalsFailed.Inc()
		n.logger.Error("failed to persist proposal", "index", index, "error", err)
		return 0, 0, fmt.Errorf("%w: save proposal at %d: %w", ErrPersist, index, err)
	}
	ps.Log.Append(entry)

	n.advanceCommitLocked()
	n.broadcastLocked()

	return index, entry.Term, nil
}

// Wait blocks until the entry at index has been applied. It fails with ErrSuperseded
// when a different leader overwrote the entry before it committed.
func (n *Node) Wait(ctx context.Context, index, term uint64) error {
	for {
		n.mu.Lock()
		if n.state.Member.LastApplied >= index {
			got, _ := n.state.Persistent.Log.Term(index)
			n.mu.Unlock()
			if got != term {
				return fmt.Errorf("%w: index %d has term %d, want %d", ErrSuperseded, index, got, term)
			}
			return nil
		}
		if n.stopped {
			n.mu.Unlock()
			return ErrStopped
		}
		ch := n.appliedCh
		n.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-n.ctx.Done():
			return ErrStopped
		case <-ch:
		}
	}
}
