package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectStatsEmpty(t *testing.T) {
	w := newTestWorld()

	stats := w.ctx.CollectStats()
	assert.Equal(t, 0, stats.EntityCount)
	assert.Equal(t, 0, stats.GroupCount)
	require.Len(t, stats.Pools, 4)
	for _, p := range stats.Pools {
		assert.Zero(t, p.Live)
		assert.Zero(t, p.Capacity)
	}
}

func TestCollectStatsTracksOccupancy(t *testing.T) {
	w := newTestWorld()
	w.ctx.Group(w.position)

	for i := 0; i < 3; i++ {
		e := w.ctx.CreateEntity()
		w.ctx.Add(e, w.position)
		if i == 0 {
			w.ctx.Add(e, w.health)
		}
	}

	stats := w.ctx.CollectStats()
	assert.Equal(t, 3, stats.EntityCount)
	assert.Equal(t, 1, stats.GroupCount)

	pos := poolStats(stats, "position")
	assert.Equal(t, 3, pos.Live)
	assert.Equal(t, 3, pos.Capacity)
	assert.Equal(t, 0, pos.Free)

	h := poolStats(stats, "health")
	assert.Equal(t, 1, h.Live)
}

func TestCollectStatsAfterRelease(t *testing.T) {
	w := newTestWorld()

	e := w.ctx.CreateEntity()
	w.ctx.Add(e, w.position)
	w.ctx.DestroyEntity(e)

	stats := w.ctx.CollectStats()
	assert.Equal(t, 0, stats.EntityCount)

	pos := poolStats(stats, "position")
	assert.Equal(t, 0, pos.Live)
	assert.Equal(t, 1, pos.Capacity, "released slots stay pooled")
	assert.Equal(t, 1, pos.Free)
}
