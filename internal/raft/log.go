package raft

import (
	"saloon/internal/raftpb"
)

// Log is the in-memory replicated log. Indices start at 1; index 0 is the empty
// prefix whose term is 0.
type Log struct {
	entries []*raftpb.Entry
}

func NewLog(entries []*raftpb.Entry) *Log {
	return &Log{entries: entries}
}

func (l *Log) LastIndex() uint64 {
	return uint64(len(l.entries))
}

func (l *Log) LastTerm() uint64 {
	if len(l.entries) == 0 {
		return 0
	}
	return l.entries[len(l.entries)-1].Term
}

// Term returns the term of the entry at i. It reports false when i is past the end.
func (l *Log) Term(i uint64) (uint64, bool) {
	if i == 0 {
		return 0, true
	}
	if i > l.LastIndex() {
		return 0, false
	}
	return l.entries[i-1].Term, true
}

// Entry returns the entry at i. Entries are shared and must not be modified.
func (l *Log) Entry(i uint64) (*raftpb.Entry, bool) {
	if i == 0 || i > l.LastIndex() {
		return nil, false
	}
	return l.entries[i-1], true
}

// Slice returns up to max entries starting at from. A max of zero or less means no limit.
func (l *Log) Slice(from uint64, max int) []*raftpb.Entry {
	if from == 0 {
		from = 1
	}
	if from > l.LastIndex() {
		return nil
	}
	src := l.entries[from-1:]
	if max > 0 && len(src) > max {
		src = src[:max]
	}
	out := make([]*raftpb.Entry, len(src))
	copy(out, src)
	return out
}

// TruncateFrom drops the entry at i and everything after it.
func (l *Log) TruncateFrom(i uint64) {
	if i == 0 {
		i = 1
	}
	if i > l.LastIndex() {
		return
	}
	clear(l.entries[i-1:])
	l.entries = l.entries[:i-1]
}

func (l *Log) Append(entries ...*raftpb.Entry) {
	l.entries = append(l.entries, entries...)
}

// FirstIndexOfTerm walks back from i to the first index holding the same term.
func (l *Log) FirstIndexOfTerm(i uint64) uint64 {
	term, ok := l.Term(i)
	if !ok || i == 0 {
		return i
	}
	for i > 1 && l.entries[i-2].Term == term {
		i--
	}
	return i
}
