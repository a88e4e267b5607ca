package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEntries_OrderedBySeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	id := createTestSession(t, s, "s-1")

	for _, seq := range []int64{3, 1, 2} {
		require.NoError(t, s.WriteEntry(ctx, createTestEntry(id, seq, "append", OutcomeApplied)))
	}

	entries, err := s.ReadEntries(ctx, id)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.Equal(t, int64(i+1), e.Seq)
	}
}

func TestReadEntries_IsolatedBySession(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	a := createTestSession(t, s, "a")
	b := createTestSession(t, s, "b")

	require.NoError(t, s.WriteEntry(ctx, createTestEntry(a, 1, "append", OutcomeApplied)))
	require.NoError(t, s.WriteEntry(ctx, createTestEntry(b, 1, "reset", OutcomeApplied)))
	require.NoError(t, s.WriteEntry(ctx, createTestEntry(b, 2, "edit", OutcomeRejected)))

	entries, err := s.ReadEntries(ctx, a)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	entries, err = s.ReadEntries(ctx, b)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestReadEntries_EmptyNotNil(t *testing.T) {
	s := createTestStore(t)
	id := createTestSession(t, s, "s-1")

	entries, err := s.ReadEntries(context.Background(), id)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestReadSession_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadSession(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCountByOutcome(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	id := createTestSession(t, s, "s-1")

	require.NoError(t, s.WriteEntry(ctx, createTestEntry(id, 1, "edit", OutcomeApplied)))
	require.NoError(t, s.WriteEntry(ctx, createTestEntry(id, 2, "edit", OutcomeRejected)))
	require.NoError(t, s.WriteEntry(ctx, createTestEntry(id, 3, "edit", OutcomeRejected)))

	n, err := s.CountByOutcome(ctx, id, OutcomeRejected)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.CountByOutcome(ctx, id, OutcomeApplied)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
