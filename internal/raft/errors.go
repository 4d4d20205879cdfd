package raft

import "errors"

var (
	ErrNotLeader = errors.New("raft: not leader")

	// ErrPersist wraps failures of the durable storage. The change that caused it
	// was not made visible.
	ErrPersist = errors.New("raft: persist state")

	ErrStopped = errors.New("raft: node stopped")

	ErrInvalidConfig = errors.New("raft: invalid config")

	ErrUnknownPeer = errors.New("raft: unknown peer")

	// ErrSuperseded is returned by Wait when the awaited index was overwritten
	// by an entry of another term.
	ErrSuperseded = errors.New("raft: entry superseded")
)
