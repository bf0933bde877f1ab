package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/drizzle/ecs"
)

// commandSystem queues the operations handed to it and counts executions.
type commandSystem struct {
	queue func(frame *ecs.UpdateFrame)
}

func (s *commandSystem) Execute(frame *ecs.UpdateFrame) {
	if s.queue != nil {
		s.queue(frame)
	}
}

func TestCommandsFlushAtEndOfFrame(t *testing.T) {
	w := newTestWorld()
	scheduler := ecs.NewScheduler(w.ctx)

	var observedDuringFrame int
	scheduler.Register(&commandSystem{queue: func(frame *ecs.UpdateFrame) {
		frame.Commands.Create(w.position, w.velocity)
		observedDuringFrame = w.ctx.EntityCount()
	}})

	scheduler.Once(1.0 / 60.0)

	assert.Equal(t, 0, observedDuringFrame, "creation is deferred past the frame")
	assert.Equal(t, 1, w.ctx.EntityCount())

	g := w.ctx.Group(w.position, w.velocity)
	assert.Equal(t, 1, g.Len())
}

func TestCommandsDestroyWinsOverAttach(t *testing.T) {
	w := newTestWorld()
	e := w.ctx.CreateEntity()
	w.ctx.Add(e, w.position)

	scheduler := ecs.NewScheduler(w.ctx)
	scheduler.Register(&commandSystem{queue: func(frame *ecs.UpdateFrame) {
		frame.Commands.Add(e, w.velocity)
		frame.Commands.Remove(e, w.position)
		frame.Commands.Destroy(e)
		frame.Commands.Destroy(e) // duplicate destroy is tolerated
	}})

	require.NotPanics(t, func() { scheduler.Once(1.0 / 60.0) })
	assert.False(t, w.ctx.Alive(e))
	assert.Equal(t, 0, w.ctx.EntityCount())
}

func TestCommandsDeferRunsLast(t *testing.T) {
	w := newTestWorld()
	scheduler := ecs.NewScheduler(w.ctx)

	var countAtDefer int
	scheduler.Register(&commandSystem{queue: func(frame *ecs.UpdateFrame) {
		frame.Commands.Defer(func() {
			countAtDefer = w.ctx.EntityCount()
		})
		frame.Commands.Create(w.position)
	}})

	scheduler.Once(1.0 / 60.0)
	assert.Equal(t, 1, countAtDefer, "defers run after structural commands")
}
