package raft

import (
	"saloon/internal/memtable"
)

// applyCommittedLocked hands every committed but unapplied entry to the memtable,
// in index order. If the memtable refuses an entry, application stops there and is
// retried on the next tick, so no index is skipped.
func (n *Node) applyCommittedLocked() {
	m := &n.state.Member
	if m.LastApplied >= m.CommitIndex {
		return
	}

	from := m.LastApplied
	for m.LastApplied < m.CommitIndex {
		index := m.LastApplied + 1
		entry, ok := n.state.Persistent.Log.Entry(index)
		if !ok {
			n.logger.Error("committed entry missing from log", "index", index, "last_index", n.state.Persistent.Log.LastIndex())
			break
		}

		muts, err := memtable.DecodeRecords(entry.Records)
		if err != nil {
			n.logger.Warn("skipping undecodable records", "index", index, "error", err)
		}

		if err := n.mt.Apply(index, muts); err != nil {
			n.logger.Error("failed to apply entry to memtable", "index", index, "error", err)
			break
		}
		m.LastApplied = index
	}

	if m.LastApplied == from {
		return
	}

	n.logger.Debug("applied entries", "from", from+1, "to", m.LastApplied)
	close(n.appliedCh)
	n.appliedCh = make(chan struct{})
}
