package ecs_test

import "github.com/plus3/drizzle/ecs"

// Common test component types.

type health struct {
	Current int
	Max     int
}

func (h *health) Clear() {
	h.Current = 0
	h.Max = 0
}

// counter deliberately does not implement Clearer; its pool falls back to
// zeroing the slot on allocation.
type counter struct {
	Value int
}

// testWorld bundles a context with a few registered types most tests need.
type testWorld struct {
	ctx      *ecs.Context
	position *ecs.ComponentType
	velocity *ecs.ComponentType
	health   *ecs.ComponentType
	counter  *ecs.ComponentType
}

func newTestWorld() *testWorld {
	ctx := ecs.NewContext()
	return &testWorld{
		ctx:      ctx,
		position: ctx.RegisterComponent("position", ecs.NewVecPool()),
		velocity: ctx.RegisterComponent("velocity", ecs.NewVecPool()),
		health:   ctx.RegisterComponent("health", ecs.NewObjectPool[health]()),
		counter:  ctx.RegisterComponent("counter", ecs.NewObjectPool[counter]()),
	}
}
