package raft

import (
	"testing"

	"saloon/internal/raftpb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_EmptyPrefix(t *testing.T) {
	l := NewLog(nil)

	assert.Zero(t, l.LastIndex())
	assert.Zero(t, l.LastTerm())

	term, ok := l.Term(0)
	assert.True(t, ok)
	assert.Zero(t, term)

	_, ok = l.Term(1)
	assert.False(t, ok)
	_, ok = l.Entry(0)
	assert.False(t, ok)
	assert.Nil(t, l.Slice(1, 0))
}

func TestLog_AppendSliceTruncate(t *testing.T) {
	l := NewLog(nil)
	l.Append(entriesOfTerms(1, 1, 2, 3, 3)...)

	assert.Equal(t, uint64(5), l.LastIndex())
	assert.Equal(t, uint64(3), l.LastTerm())

	e, ok := l.Entry(3)
	require.True(t, ok)
	assert.Equal(t, uint64(2), e.Term)

	s := l.Slice(2, 2)
	require.Len(t, s, 2)
	assert.Equal(t, uint64(1), s[0].Term)
	assert.Equal(t, uint64(2), s[1].Term)

	// the returned slice does not share its backing array with the log
	s[0] = &raftpb.Entry{Term: 99}
	term, _ := l.Term(2)
	assert.Equal(t, uint64(1), term)

	assert.Len(t, l.Slice(0, 0), 5)
	assert.Nil(t, l.Slice(6, 0))

	l.TruncateFrom(3)
	assert.Equal(t, uint64(2), l.LastIndex())
	l.TruncateFrom(10)
	assert.Equal(t, uint64(2), l.LastIndex())
	l.TruncateFrom(0)
	assert.Zero(t, l.LastIndex())
}

func TestLog_FirstIndexOfTerm(t *testing.T) {
	l := NewLog(entriesOfTerms(1, 2, 2, 2, 4))

	assert.Equal(t, uint64(2), l.FirstIndexOfTerm(4))
	assert.Equal(t, uint64(2), l.FirstIndexOfTerm(2))
	assert.Equal(t, uint64(1), l.FirstIndexOfTerm(1))
	assert.Equal(t, uint64(5), l.FirstIndexOfTerm(5))
	assert.Equal(t, uint64(9), l.FirstIndexOfTerm(9))
	assert.Zero(t, l.FirstIndexOfTerm(0))
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "follower", Follower.String())
	assert.Equal(t, "candidate", Candidate.String())
	assert.Equal(t, "leader", Leader.String())
	assert.Equal(t, "unknown", Role(9).String())
}
