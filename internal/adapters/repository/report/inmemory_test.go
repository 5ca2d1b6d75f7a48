package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rharris115/callable-graph/internal/app/dto"
)

func newLog(graphName string, startedAt time.Time) *dto.InvocationLog {
	return &dto.InvocationLog{
		ID:        uuid.NewString(),
		GraphName: graphName,
		Report: dto.ExecutionReport{
			Success:             true,
			TotalElapsedSeconds: 0.25,
			Components: []dto.ComponentTiming{
				{Name: "hash", ElapsedSeconds: 0.1},
			},
		},
		StartedAt: startedAt,
	}
}

func TestInMemoryStore_SaveAndLoad(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	log := newLog("word-stats", time.Now())

	require.NoError(t, store.Save(ctx, log))

	loaded, err := store.Load(ctx, log.ID)
	require.NoError(t, err)
	assert.Equal(t, log, loaded)
}

func TestInMemoryStore_SaveValidation(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	assert.ErrorIs(t, store.Save(ctx, nil), ErrNilLog)
	assert.ErrorIs(t, store.Save(ctx, &dto.InvocationLog{}), ErrInvalidLogID)
}

func TestInMemoryStore_LoadMissing(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	_, err := store.Load(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrLogNotFound)

	_, err = store.Load(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidLogID)
}

func TestInMemoryStore_ListFiltersAndOrders(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	base := time.Now()

	older := newLog("word-stats", base.Add(-time.Hour))
	newer := newLog("word-stats", base)
	other := newLog("other-graph", base)
	for _, log := range []*dto.InvocationLog{older, newer, other} {
		require.NoError(t, store.Save(ctx, log))
	}

	logs, err := store.List(ctx, "word-stats")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, newer.ID, logs[0].ID)
	assert.Equal(t, older.ID, logs[1].ID)

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestInMemoryStore_Delete(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	log := newLog("word-stats", time.Now())

	require.NoError(t, store.Save(ctx, log))
	require.NoError(t, store.Delete(ctx, log.ID))

	_, err := store.Load(ctx, log.ID)
	assert.ErrorIs(t, err, ErrLogNotFound)
	assert.ErrorIs(t, store.Delete(ctx, log.ID), ErrLogNotFound)
}

func TestInMemoryStore_StoredCopyIsIsolated(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	log := newLog("word-stats", time.Now())

	require.NoError(t, store.Save(ctx, log))
	log.GraphName = "mutated"

	loaded, err := store.Load(ctx, log.ID)
	require.NoError(t, err)
	assert.Equal(t, "word-stats", loaded.GraphName)
}
