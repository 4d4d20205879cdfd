package raft

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"saloon/internal/memtable"
	"saloon/internal/metrics"

	"github.com/google/uuid"
	"go.etcd.io/raft/v3/quorum"
)

// selfSlot is this node's voter id in quorum computations; peer i uses i+1.
const selfSlot uint64 = 0

type Node struct {
	mu sync.Mutex

	cfg     Config
	storage Storage
	mt      *memtable.MemTable
	peers   []Peer
	voters  quorum.MajorityConfig
	logger  *slog.Logger

	state NodeState

	electionDeadline  time.Time
	heartbeatDeadline time.Time
	votes             map[uint64]bool

	// one replication round per peer at a time; pending asks for another after it
	inflight []bool
	pending  []bool

	appliedCh chan struct{}

	now  func() time.Time
	rand *rand.Rand

	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	stopped bool
	wg      sync.WaitGroup
}

func NewNode(cfg Config, storage Storage, mt *memtable.MemTable, peers []Peer) (*Node, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if storage == nil || mt == nil {
		return nil, fmt.Errorf("%w: storage and memtable are required", ErrInvalidConfig)
	}

	voters := quorum.MajorityConfig{selfSlot: struct{}{}}
	seen := make(map[uuid.UUID]struct{}, len(peers))
	for i, p := range peers {
		id := p.ID()
		if id == uuid.Nil || id == cfg.ID {
			return nil, fmt.Errorf("%w: peer %d has invalid id %s", ErrInvalidConfig, i, id)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate peer %s", ErrInvalidConfig, id)
		}
		seen[id] = struct{}{}
		voters[uint64(i)+1] = struct{}{}
	}

	hs, entries, err := storage.Load()
	if err != nil {
		return nil, fmt.Errorf("load raft state: %w", err)
	}

	log := NewLog(entries)
	applied := mt.AppliedIndex()
	if applied > log.LastIndex() {
		slog.Warn("memtable is ahead of the raft log, ignoring the surplus",
			"node_id", cfg.ID,
			"memtable_applied", applied,
			"last_log_index", log.LastIndex(),
		)
		applied = log.LastIndex()
	}

	ctx, cancel := context.WithCancel(context.Background())
	n := &Node{
		cfg:     cfg,
		storage: storage,
		mt:      mt,
		peers:   peers,
		voters:  voters,
		logger:  slog.Default().With("node_id", cfg.ID),
		state: NodeState{
			Persistent: PersistentState{
				CurrentTerm: hs.Term,
				VotedFor:    hs.VotedFor,
				Log:         log,
			},
			Member: VolatileMemberState{
				CommitIndex: applied,
				LastApplied: applied,
			},
			Role: Follower,
		},
		inflight:  make([]bool, len(peers)),
		pending:   make([]bool, len(peers)),
		appliedCh: make(chan struct{}),
		now:       time.Now,
		rand:      rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(cfg.ID.ID()))),
		ctx:       ctx,
		cancel:    cancel,
	}
	n.resetElectionDeadlineLocked(n.now())

	metrics.RaftPeersTotal.Set(float64(len(peers)))
	n.logger.Info("raft node created",
		"addr", cfg.Addr,
		"term", hs.Term,
		"voted_for", hs.VotedFor,
		"last_log_index", log.LastIndex(),
		"applied", applied,
		"peers", len(peers),
	)

	return n, nil
}

func (n *Node) ID() uuid.UUID {
	return n.cfg.ID
}

// Start launches the tick loop that drives elections and heartbeats.
func (n *Node) Start() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.started || n.stopped {
		return
	}
	n.started = true
	n.resetElectionDeadlineLocked(n.now())

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.runLoop()
	}()

	n.logger.Info("raft loop started", "tick", n.cfg.TickInterval)
}

// Stop halts the tick loop and waits for outstanding peer RPCs. It is safe to call more than once.
func (n *Node) Stop() {
	n.mu.Lock()
	if n.stopped {
		n.mu.Unlock()
		return
	}
	n.stopped = true
	n.cancel()
	n.mu.Unlock()

	n.wg.Wait()
	metrics.RaftIsLeader.Set(0)
	n.logger.Info("raft node stopped")
}

func (n *Node) runLoop() {
	ticker := time.NewTicker(n.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-n.ctx.Done():
			n.logger.Debug("raft loop stopping")
			return
		case <-ticker.C:
			n.tick(n.now())
		}
	}
}

func (n *Node) tick(now time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.stopped {
		return
	}

	switch n.state.Role {
	case Leader:
		if !now.Before(n.heartbeatDeadline) {
			n.heartbeatDeadline = now.Add(n.cfg.HeartbeatInterval)
			n.broadcastLocked()
		}
	default:
		if !now.Before(n.electionDeadline) {
			n.campaignLocked(now)
		}
	}

	// picks up applies that failed on an earlier attempt
	n.applyCommittedLocked()
	n.updateMetricsLocked()
}

func (n *Node) resetElectionDeadlineLocked(now time.Time) {
	t := n.cfg.ElectionTimeout
	n.electionDeadline = now.Add(t + time.Duration(n.rand.Int64N(int64(t))))
}

func (n *Node) Status() Status {
	n.mu.Lock()
	defer n.mu.Unlock()

	s := Status{
		ID:           n.cfg.ID,
		Role:         n.state.Role,
		Term:         n.state.Persistent.CurrentTerm,
		VotedFor:     n.state.Persistent.VotedFor,
		LeaderID:     n.state.LeaderID,
		CommitIndex:  n.state.Member.CommitIndex,
		LastApplied:  n.state.Member.LastApplied,
		LastLogIndex: n.state.Persistent.Log.LastIndex(),
		LastLogTerm:  n.state.Persistent.Log.LastTerm(),
	}
	if ls := n.state.Leader; ls != nil {
		s.NextIndex = append([]uint64(nil), ls.NextIndex...)
		s.MatchIndex = append([]uint64(nil), ls.MatchIndex...)
	}
	return s
}

// peerSlot maps a node id to its quorum voter id.
func (n *Node) peerSlot(id uuid.UUID) (uint64, error) {
	for i, p := range n.peers {
		if p.ID() == id {
			return uint64(i) + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownPeer, id)
}

// stepDownLocked adopts a newer term as follower and clears the vote. The new term is
// persisted first; on failure nothing changes.
func (n *Node) stepDownLocked(term uint64, leader uuid.UUID) error {
	ps := &n.state.Persistent
	if term > ps.CurrentTerm {
		if err := n.storage.SaveHardState(term, uuid.Nil); err != nil {
			n.logger.Error("failed to persist new term", "term", term, "error", err)
			return fmt.Errorf("%w: save term %d: %w", ErrPersist, term, err)
		}
		ps.CurrentTerm = term
		ps.VotedFor = uuid.Nil
	}
	n.becomeFollowerLocked(leader)
	return nil
}

// observeNewerTermLocked steps down after a peer replied with a newer term. When the
// term cannot be saved the node keeps its role and term; the next reply carrying
// that term retries.
func (n *Node) observeNewerTermLocked(term uint64) {
	if err := n.stepDownLocked(term, uuid.Nil); err != nil {
		metrics.RaftStepDownFailures.Inc()
	}
}

func (n *Node) becomeFollowerLocked(leader uuid.UUID) {
	prev := n.state.Role
	n.state.Role = Follower
	n.state.Leader = nil
	n.state.LeaderID = leader
	n.votes = nil

	if prev != Follower {
		n.resetElectionDeadlineLocked(n.now())
		n.logger.Info("became follower",
			"term", n.state.Persistent.CurrentTerm,
			"previous_role", prev,
			"leader_id", leader,
		)
	}
}

func (n *Node) updateMetricsLocked() {
	if n.state.Role == Leader {
		metrics.RaftIsLeader.Set(1)
	} else {
		metrics.RaftIsLeader.Set(0)
	}
	metrics.RaftTerm.Set(float64(n.state.Persistent.CurrentTerm))
	metrics.RaftCommitIndex.Set(float64(n.state.Member.CommitIndex))
	metrics.RaftAppliedIndex.Set(float64(n.state.Member.LastApplied))
	metrics.RaftLastLogIndex.Set(float64(n.state.Persistent.Log.LastIndex()))
}

// goLocked runs fn in a tracked goroutine unless the node is stopping.
func (n *Node) goLocked(fn func()) bool {
	if n.stopped {
		return false
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		fn()
	}()
	return true
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
