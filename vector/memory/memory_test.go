package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuri-moraes/agente-ia/vector"
)

func TestEnsureIndex(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.EnsureIndex(ctx, 3))
	// Existing index is left alone.
	require.NoError(t, s.EnsureIndex(ctx, 3))
	assert.ErrorIs(t, s.EnsureIndex(ctx, 4), vector.ErrDimensionMismatch)
}

func TestUpsertBeforeEnsureIndex(t *testing.T) {
	s := NewStore()
	err := s.Upsert(context.Background(), []vector.Item{{ID: "chunk-0", Values: []float32{1, 0, 0}}})
	assert.ErrorIs(t, err, vector.ErrIndexNotFound)

	_, err = s.Query(context.Background(), []float32{1, 0, 0}, 3)
	assert.ErrorIs(t, err, vector.ErrIndexNotFound)
}

func TestQueryRanking(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.EnsureIndex(ctx, 3))

	items := []vector.Item{
		{ID: "chunk-0", Values: []float32{1, 0, 0}, Metadata: map[string]string{"text": "exact"}},
		{ID: "chunk-1", Values: []float32{0.7, 0.7, 0}, Metadata: map[string]string{"text": "close"}},
		{ID: "chunk-2", Values: []float32{0, 0, 1}, Metadata: map[string]string{"text": "far"}},
	}
	require.NoError(t, s.Upsert(ctx, items))

	matches, err := s.Query(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "chunk-0", matches[0].ID)
	assert.Equal(t, "chunk-1", matches[1].ID)
	assert.Equal(t, "exact", matches[0].Metadata["text"])
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestUpsertOverwritesByID(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.EnsureIndex(ctx, 2))

	first := []vector.Item{{ID: "chunk-0", Values: []float32{1, 0}, Metadata: map[string]string{"text": "v1"}}}
	second := []vector.Item{{ID: "chunk-0", Values: []float32{1, 0}, Metadata: map[string]string{"text": "v2"}}}
	require.NoError(t, s.Upsert(ctx, first))
	require.NoError(t, s.Upsert(ctx, second))

	assert.Equal(t, 1, s.Len())

	matches, err := s.Query(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "v2", matches[0].Metadata["text"])
}

func TestQueryEmptyIndex(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.EnsureIndex(ctx, 2))

	matches, err := s.Query(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestUpsertDimensionMismatch(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.EnsureIndex(ctx, 2))

	err := s.Upsert(ctx, []vector.Item{{ID: "chunk-0", Values: []float32{1, 0, 0}}})
	assert.ErrorIs(t, err, vector.ErrDimensionMismatch)
}
