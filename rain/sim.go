package rain

import (
	"math/rand/v2"

	"github.com/plus3/drizzle/ecs"
	"github.com/plus3/drizzle/vec"
)

// Simulation wires the context, component types, groups, and the system
// pipeline into one ready-to-tick unit. The external driver calls Tick
// once per frame and reads particles back through EachParticle for
// rendering.
type Simulation struct {
	cfg       Config
	ctx       *ecs.Context
	comps     Components
	spawner   *Spawner
	scheduler *ecs.Scheduler
	particles *ecs.Group
}

// New constructs a simulation with the given config and random source.
// Panics if the config is invalid.
func New(cfg Config, rng *rand.Rand) *Simulation {
	cfg.Validate()

	ctx := ecs.NewContext()
	comps := RegisterComponents(ctx)
	spawner := NewSpawner(ctx, comps, cfg, rng)

	scheduler := ecs.NewScheduler(ctx)
	scheduler.Register(NewEmitterSystem(ctx, comps, spawner, cfg))
	scheduler.Register(NewRecycleSystem(ctx, comps, spawner, cfg))
	scheduler.Register(NewGravitySystem(ctx, comps, cfg))
	scheduler.Register(NewDragSystem(ctx, comps, cfg))
	scheduler.Register(NewAccelerateSystem(ctx, comps))
	scheduler.Register(NewMoveSystem(ctx, comps))
	scheduler.Register(NewBounceSystem(ctx, comps, cfg))

	return &Simulation{
		cfg:       cfg,
		ctx:       ctx,
		comps:     comps,
		spawner:   spawner,
		scheduler: scheduler,
		particles: ctx.Group(comps.Position, comps.Appearance),
	}
}

// Tick advances the simulation by dt seconds: one complete pass through
// the system pipeline in its fixed order.
func (s *Simulation) Tick(dt float64) {
	s.scheduler.Once(dt)
}

// Len returns the number of live particles.
func (s *Simulation) Len() int {
	return s.particles.Len()
}

// EachParticle yields each live particle's position (meters, Y-up) and
// appearance for the external renderer. The values are copies; renderers
// must not retain references into the simulation across frames.
func (s *Simulation) EachParticle(fn func(pos vec.Vec2, app Appearance)) {
	s.particles.Each(func(e ecs.Entity, components []any) {
		fn(*components[0].(*vec.Vec2), *components[1].(*Appearance))
	})
}

// Config returns the simulation's configuration.
func (s *Simulation) Config() Config {
	return s.cfg
}

// Context exposes the underlying registry, mainly for tests and the debug
// UI.
func (s *Simulation) Context() *ecs.Context {
	return s.ctx
}

// Scheduler exposes the system pipeline, mainly for execution statistics.
func (s *Simulation) Scheduler() *ecs.Scheduler {
	return s.scheduler
}

// Spawner exposes the particle lifecycle functions.
func (s *Simulation) Spawner() *Spawner {
	return s.spawner
}
