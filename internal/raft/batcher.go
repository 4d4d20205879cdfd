package raft

import (
	"context"
	"errors"
	"sync"
	"time"

	"saloon/internal/metrics"
)

var ErrBatcherClosed = errors.New("raft: batcher closed")

type Proposer interface {
	Propose(ctx context.Context, records [][]byte) (index, term uint64, err error)
}

// Proposal reports where a single record landed: the log entry index and term, and
// the record's position inside that entry.
type Proposal struct {
	Index  uint64
	Term   uint64
	Offset int
	Err    error
}

type pendingProposal struct {
	ctx    context.Context
	record []byte
	respCh chan Proposal
}

// Batcher groups records into one log entry, flushing when maxBatchSize records are
// waiting or maxWait has passed since the first of them arrived. Batches are
// proposed one at a time, in the order they were formed.
type Batcher struct {
	proposer     Proposer
	maxBatchSize int
	maxWait      time.Duration

	// proposals run under the batcher's context, never a caller's
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	pending []pendingProposal
	queue   [][]pendingProposal
	timer   *time.Timer
	closed  bool

	wake chan struct{}
	done chan struct{}
}

func NewBatcher(proposer Proposer, maxBatchSize int, maxWait time.Duration) *Batcher {
	if maxBatchSize <= 0 {
		maxBatchSize = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	b := &Batcher{
		proposer:     proposer,
		maxBatchSize: maxBatchSize,
		maxWait:      maxWait,
		ctx:          ctx,
		cancel:       cancel,
		pending:      make([]pendingProposal, 0, maxBatchSize),
		wake:         make(chan struct{}, 1),
		done:         make(chan struct{}),
	}
	go b.run()
	return b
}

// Propose queues record for the next batch. ctx only covers the wait for that batch:
// a record whose ctx is done before its batch is proposed is answered with ctx.Err()
// and left out, without affecting the rest of the batch.
func (b *Batcher) Propose(ctx context.Context, record []byte) (<-chan Proposal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	respCh := make(chan Proposal, 1)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrBatcherClosed
	}

	b.pending = append(b.pending, pendingProposal{ctx: ctx, record: record, respCh: respCh})

	if len(b.pending) >= b.maxBatchSize {
		b.flushLocked("size")
		return respCh, nil
	}

	if len(b.pending) == 1 {
		b.timer = time.AfterFunc(b.maxWait, func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.flushLocked("timer")
		})
	}

	return respCh, nil
}

// Close proposes what is still waiting and rejects further proposals.
func (b *Batcher) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		<-b.done
		return
	}
	b.closed = true
	b.flushLocked("close")
	b.mu.Unlock()

	b.signal()
	<-b.done
	b.cancel()
}

func (b *Batcher) flushLocked(reason string) {
	if len(b.pending) == 0 {
		return
	}

	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}

	b.queue = append(b.queue, b.pending)
	b.pending = make([]pendingProposal, 0, b.maxBatchSize)

	metrics.BatchFlushTotal.WithLabelValues(reason).Inc()
	b.signal()
}

func (b *Batcher) signal() {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *Batcher) run() {
	defer close(b.done)

	for {
		b.mu.Lock()
		if len(b.queue) == 0 {
			closed := b.closed
			b.mu.Unlock()
			if closed {
				return
			}
			<-b.wake
			continue
		}
		batch := b.queue[0]
		b.queue[0] = nil
		b.queue = b.queue[1:]
		b.mu.Unlock()

		b.propose(batch)
	}
}

func (b *Batcher) propose(batch []pendingProposal) {
	live := make([]pendingProposal, 0, len(batch))
	records := make([][]byte, 0, len(batch))
	for _, p := range batch {
		if err := p.ctx.Err(); err != nil {
			p.respCh <- Proposal{Err: err}
			continue
		}
		live = append(live, p)
		records = append(records, p.record)
	}
	if len(live) == 0 {
		return
	}

	metrics.BatchSize.Observe(float64(len(live)))

	index, term, err := b.proposer.Propose(b.ctx, records)
	for i, p := range live {
		p.respCh <- Proposal{Index: index, Term: term, Offset: i, Err: err}
	}
}
