package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/drizzle/ecs"
	"github.com/plus3/drizzle/vec"
)

func TestCreateEntity(t *testing.T) {
	w := newTestWorld()

	a := w.ctx.CreateEntity()
	b := w.ctx.CreateEntity()

	assert.NotEqual(t, a, b)
	assert.True(t, w.ctx.Alive(a))
	assert.True(t, w.ctx.Alive(b))
	assert.Equal(t, 2, w.ctx.EntityCount())
}

func TestAddGetComponent(t *testing.T) {
	w := newTestWorld()
	e := w.ctx.CreateEntity()

	pos := ecs.Add[vec.Vec2](w.ctx, e, w.position)
	pos.Set(1, 2)

	got := ecs.Get[vec.Vec2](w.ctx, e, w.position)
	assert.Same(t, pos, got, "Get must return the attached instance")
	assert.Equal(t, vec.New(1, 2), *got)

	assert.True(t, w.ctx.Has(e, w.position))
	assert.False(t, w.ctx.Has(e, w.velocity))
}

func TestAddDuplicatePanics(t *testing.T) {
	w := newTestWorld()
	e := w.ctx.CreateEntity()
	w.ctx.Add(e, w.position)

	assert.Panics(t, func() { w.ctx.Add(e, w.position) })
}

func TestGetAbsentPanics(t *testing.T) {
	w := newTestWorld()
	e := w.ctx.CreateEntity()

	assert.Panics(t, func() { w.ctx.Get(e, w.position) })
}

func TestRemoveComponent(t *testing.T) {
	w := newTestWorld()
	e := w.ctx.CreateEntity()
	w.ctx.Add(e, w.position)

	w.ctx.Remove(e, w.position)
	assert.False(t, w.ctx.Has(e, w.position))

	// removing an absent component is an error, not a no-op
	assert.Panics(t, func() { w.ctx.Remove(e, w.position) })
}

func TestRemoveReturnsSlotToPool(t *testing.T) {
	w := newTestWorld()
	e := w.ctx.CreateEntity()
	w.ctx.Add(e, w.health)

	stats := w.ctx.CollectStats()
	require.Equal(t, 1, poolStats(stats, "health").Live)

	w.ctx.Remove(e, w.health)
	stats = w.ctx.CollectStats()
	assert.Equal(t, 0, poolStats(stats, "health").Live)
	assert.Equal(t, 1, poolStats(stats, "health").Free)
}

func TestDestroyEntity(t *testing.T) {
	w := newTestWorld()
	e := w.ctx.CreateEntity()
	w.ctx.Add(e, w.position)
	w.ctx.Add(e, w.health)

	w.ctx.DestroyEntity(e)

	assert.False(t, w.ctx.Alive(e))
	assert.Equal(t, 0, w.ctx.EntityCount())
	assert.Equal(t, 0, poolStats(w.ctx.CollectStats(), "position").Live)
	assert.Equal(t, 0, poolStats(w.ctx.CollectStats(), "health").Live)
}

func TestStaleHandleDetected(t *testing.T) {
	w := newTestWorld()
	e := w.ctx.CreateEntity()
	w.ctx.DestroyEntity(e)

	// The slot is reused but the generation moved on, so the old handle
	// must not resolve to the new occupant.
	successor := w.ctx.CreateEntity()
	require.Equal(t, e.Index(), successor.Index())
	require.NotEqual(t, e, successor)

	assert.False(t, w.ctx.Alive(e))
	assert.Panics(t, func() { w.ctx.Add(e, w.position) })
	assert.Panics(t, func() { w.ctx.Get(e, w.position) })
	assert.Panics(t, func() { w.ctx.DestroyEntity(e) })
}

func TestRegisterDuplicateNamePanics(t *testing.T) {
	ctx := ecs.NewContext()
	ctx.RegisterComponent("position", ecs.NewVecPool())

	assert.Panics(t, func() {
		ctx.RegisterComponent("position", ecs.NewVecPool())
	})
}

func TestForeignComponentTypePanics(t *testing.T) {
	w := newTestWorld()
	other := ecs.NewContext()
	foreign := other.RegisterComponent("position", ecs.NewVecPool())

	e := w.ctx.CreateEntity()
	assert.Panics(t, func() { w.ctx.Add(e, foreign) })
}

func poolStats(stats ecs.ContextStats, name string) ecs.PoolStats {
	for _, p := range stats.Pools {
		if p.Name == name {
			return p
		}
	}
	return ecs.PoolStats{}
}
