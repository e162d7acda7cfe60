package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_CursorStack(t *testing.T) {
	var s CursorStack

	_, ok := s.Pop()
	require.False(t, ok)

	s.Push("")
	s.Push("c1")
	require.Equal(t, 2, s.Len())

	c, ok := s.Pop()
	require.True(t, ok)
	require.Equal(t, "c1", c)

	c, ok = s.Pop()
	require.True(t, ok)
	require.Empty(t, c)

	s.Push("c2")
	s.Clear()
	require.Zero(t, s.Len())
}

func Test_Page(t *testing.T) {
	var p Page

	_, ok := p.Prev()
	require.False(t, ok)

	p = p.Next().Next()
	require.EqualValues(t, 2, p)

	p, ok = p.Prev()
	require.True(t, ok)
	require.EqualValues(t, 1, p)
}

func Test_RequestState(t *testing.T) {
	var s RequestState
	require.Equal(t, IdleStatus, s.Status)
	require.Equal(t, "idle", s.Status.String())

	s.Begin()
	require.True(t, s.Loading())

	s.Fail("boom")
	require.Equal(t, FailedStatus, s.Status)
	require.Equal(t, "boom", s.Message)

	// Message survives until the next request resolves
	s.Begin()
	require.Equal(t, "boom", s.Message)

	s.Succeed()
	require.Equal(t, SucceededStatus, s.Status)
	require.Empty(t, s.Message)
	require.Equal(t, "unknown(9)", RequestStatus(9).String())
}
