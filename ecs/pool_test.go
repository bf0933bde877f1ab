package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/drizzle/ecs"
	"github.com/plus3/drizzle/vec"
)

func TestVecPoolAllocateRelease(t *testing.T) {
	pool := ecs.NewVecPool()

	a := pool.Allocate()
	b := pool.Allocate()
	assert.NotEqual(t, a, b, "live handles must not alias the same slot")
	assert.Equal(t, 2, pool.Live())

	pool.Release(a)
	assert.Equal(t, 1, pool.Live())

	// The released slot is eligible for immediate reuse.
	c := pool.Allocate()
	assert.Equal(t, a, c)
	assert.Equal(t, 2, pool.Live())
	assert.Equal(t, 2, pool.Cap())
}

func TestVecPoolResetsReusedSlots(t *testing.T) {
	pool := ecs.NewVecPool()

	slot := pool.Allocate()
	v := pool.At(slot).(*vec.Vec2)
	v.Set(3, 4)
	pool.Release(slot)

	reused := pool.Allocate()
	require.Equal(t, slot, reused)
	assert.Equal(t, vec.Vec2{}, *pool.At(reused).(*vec.Vec2), "reused slot must not leak stale data")
}

func TestObjectPoolClearOnAllocate(t *testing.T) {
	pool := ecs.NewObjectPool[health]()

	slot := pool.Allocate()
	h := pool.At(slot).(*health)
	h.Current = 50
	h.Max = 100
	pool.Release(slot)

	reused := pool.Allocate()
	require.Equal(t, slot, reused)
	fresh := pool.At(reused).(*health)
	assert.Equal(t, 0, fresh.Current)
	assert.Equal(t, 0, fresh.Max)
}

func TestObjectPoolZeroesWithoutClearer(t *testing.T) {
	pool := ecs.NewObjectPool[counter]()

	slot := pool.Allocate()
	pool.At(slot).(*counter).Value = 42
	pool.Release(slot)

	reused := pool.Allocate()
	require.Equal(t, slot, reused)
	assert.Equal(t, 0, pool.At(reused).(*counter).Value)
}

func TestPoolLiveCountInvariant(t *testing.T) {
	pool := ecs.NewObjectPool[counter]()

	// live == allocations - releases over an arbitrary interleaving
	slots := make([]int, 0)
	allocs, releases := 0, 0
	for i := 0; i < 100; i++ {
		if i%3 == 2 && len(slots) > 0 {
			pool.Release(slots[0])
			slots = slots[1:]
			releases++
		} else {
			slots = append(slots, pool.Allocate())
			allocs++
		}
		assert.Equal(t, allocs-releases, pool.Live())
	}

	seen := make(map[int]bool)
	for _, s := range slots {
		assert.False(t, seen[s], "slot %d handed out twice", s)
		seen[s] = true
	}
}

func TestPoolMisusePanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func(pool *ecs.VecPool)
	}{
		{"double release", func(pool *ecs.VecPool) {
			slot := pool.Allocate()
			pool.Release(slot)
			pool.Release(slot)
		}},
		{"access after release", func(pool *ecs.VecPool) {
			slot := pool.Allocate()
			pool.Release(slot)
			pool.At(slot)
		}},
		{"release out of range", func(pool *ecs.VecPool) {
			pool.Release(5)
		}},
		{"access out of range", func(pool *ecs.VecPool) {
			pool.At(-1)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() { tt.fn(ecs.NewVecPool()) })
		})
	}
}
