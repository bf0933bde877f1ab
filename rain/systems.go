package rain

import (
	"fmt"
	"math"

	"github.com/plus3/drizzle/ecs"
	"github.com/plus3/drizzle/vec"
)

// The systems below form the fixed per-frame pipeline:
//
//	emit → recycle → gravity → drag → accelerate → move → bounce
//
// Later systems consume state written by earlier ones within the same
// frame (forces accumulate, then are integrated and reset), so the order
// is a total order and must not change. Each system owns its scratch
// vectors; nothing is shared between systems except the pools.

// EmitterSystem creates new particles while the live population is under
// the cap, at most SpawnPerFrame per frame.
type EmitterSystem struct {
	spawner   *Spawner
	particles *ecs.Group
	cap       int
	perFrame  int
}

// NewEmitterSystem creates the emitter over the {Position, Appearance}
// group.
func NewEmitterSystem(ctx *ecs.Context, comps Components, spawner *Spawner, cfg Config) *EmitterSystem {
	return &EmitterSystem{
		spawner:   spawner,
		particles: ctx.Group(comps.Position, comps.Appearance),
		cap:       cfg.MaxParticles,
		perFrame:  cfg.SpawnPerFrame,
	}
}

func (s *EmitterSystem) Execute(frame *ecs.UpdateFrame) {
	for i := 0; i < s.perFrame && s.particles.Len() < s.cap; i++ {
		s.spawner.CreateParticle()
	}
}

// RecycleSystem resets particles that left the simulation bounds. Only
// exits to the left, right, or below the floor count; there is no upper
// bound on Y because rain only ever comes back down.
type RecycleSystem struct {
	spawner   *Spawner
	particles *ecs.Group
	width     float64
}

// NewRecycleSystem creates the recycler over the {Position, Appearance}
// group.
func NewRecycleSystem(ctx *ecs.Context, comps Components, spawner *Spawner, cfg Config) *RecycleSystem {
	return &RecycleSystem{
		spawner:   spawner,
		particles: ctx.Group(comps.Position, comps.Appearance),
		width:     cfg.Width,
	}
}

func (s *RecycleSystem) Execute(frame *ecs.UpdateFrame) {
	s.particles.Each(func(e ecs.Entity, components []any) {
		pos := components[0].(*vec.Vec2)
		if pos.X < 0 || pos.X >= s.width || pos.Y < 0 {
			s.spawner.ResetParticle(e)
		}
	})
}

// GravitySystem adds the weight (0, -g·m) to every rigid body's
// accumulated force.
type GravitySystem struct {
	bodies  *ecs.Group
	gravity float64
}

// NewGravitySystem creates the gravity system over the {RigidBody} group.
func NewGravitySystem(ctx *ecs.Context, comps Components, cfg Config) *GravitySystem {
	return &GravitySystem{
		bodies:  ctx.Group(comps.RigidBody),
		gravity: cfg.Gravity,
	}
}

func (s *GravitySystem) Execute(frame *ecs.UpdateFrame) {
	s.bodies.Each(func(e ecs.Entity, components []any) {
		body := components[0].(*RigidBody)
		body.Force.Y -= s.gravity * body.Mass
	})
}

// DragSystem adds quadratic drag opposing velocity: F = -k·|v|·v. The
// coefficient is derived from the reference drop, not the entity's own
// mass, so every drop shares the same terminal-velocity behavior.
type DragSystem struct {
	movers *ecs.Group
	k      float64
}

// NewDragSystem creates the drag system over the {Velocity, RigidBody}
// group.
func NewDragSystem(ctx *ecs.Context, comps Components, cfg Config) *DragSystem {
	return &DragSystem{
		movers: ctx.Group(comps.Velocity, comps.RigidBody),
		k:      cfg.DragCoefficient(),
	}
}

func (s *DragSystem) Execute(frame *ecs.UpdateFrame) {
	s.movers.Each(func(e ecs.Entity, components []any) {
		vel := components[0].(*vec.Vec2)
		body := components[1].(*RigidBody)
		body.Force.AddScaled(*vel, -s.k*vel.Len())
	})
}

// AccelerateSystem integrates accumulated force into velocity
// (v += F/m·dt) and resets the force. Force accumulation is strictly
// per-frame; the reset here is what makes gravity and drag re-apply
// cleanly next frame.
type AccelerateSystem struct {
	movers *ecs.Group
}

// NewAccelerateSystem creates the integrator over the
// {Velocity, RigidBody} group.
func NewAccelerateSystem(ctx *ecs.Context, comps Components) *AccelerateSystem {
	return &AccelerateSystem{
		movers: ctx.Group(comps.Velocity, comps.RigidBody),
	}
}

func (s *AccelerateSystem) Execute(frame *ecs.UpdateFrame) {
	dt := frame.DeltaTime
	s.movers.Each(func(e ecs.Entity, components []any) {
		vel := components[0].(*vec.Vec2)
		body := components[1].(*RigidBody)
		if body.Mass <= 0 {
			panic(fmt.Sprintf("rain: %v has non-positive mass %g", e, body.Mass))
		}
		vel.AddScaled(body.Force, dt/body.Mass)
		body.Force.Zero()
	})
}

// MoveSystem integrates velocity into position (p += v·dt). Velocity was
// already updated this frame by AccelerateSystem, making the scheme
// semi-implicit Euler; the two systems must stay separate and ordered.
type MoveSystem struct {
	movers *ecs.Group
}

// NewMoveSystem creates the position integrator over the
// {Position, Velocity} group.
func NewMoveSystem(ctx *ecs.Context, comps Components) *MoveSystem {
	return &MoveSystem{
		movers: ctx.Group(comps.Position, comps.Velocity),
	}
}

func (s *MoveSystem) Execute(frame *ecs.UpdateFrame) {
	dt := frame.DeltaTime
	s.movers.Each(func(e ecs.Entity, components []any) {
		pos := components[0].(*vec.Vec2)
		vel := components[1].(*vec.Vec2)
		pos.AddScaled(*vel, dt)
	})
}

// BounceSystem resolves collisions against the single static circular
// obstacle. A particle collides when it is inside the circle and still
// moving toward the center. The response solves for k along the center
// offset n such that the reflected speed honors the restitution
// coefficient, then snaps the particle to the obstacle surface so
// frame-over-frame overlap cannot accumulate.
type BounceSystem struct {
	particles   *ecs.Group
	center      vec.Vec2
	radius      float64
	restitution float64

	n vec.Vec2 // scratch
}

// NewBounceSystem creates the collision system over the
// {Position, Velocity, Appearance} group.
func NewBounceSystem(ctx *ecs.Context, comps Components, cfg Config) *BounceSystem {
	return &BounceSystem{
		particles:   ctx.Group(comps.Position, comps.Velocity, comps.Appearance),
		center:      cfg.ObstacleCenter,
		radius:      cfg.ObstacleRadius,
		restitution: cfg.Restitution,
	}
}

func (s *BounceSystem) Execute(frame *ecs.UpdateFrame) {
	rSq := s.radius * s.radius
	s.particles.Each(func(e ecs.Entity, components []any) {
		pos := components[0].(*vec.Vec2)
		vel := components[1].(*vec.Vec2)

		s.n.Copy(*pos)
		s.n.Sub(s.center)

		distSq := s.n.LenSq()
		if distSq >= rSq {
			return
		}
		approach := s.n.Dot(*vel)
		if approach >= 0 {
			// Inside but already separating; the surface snap of the
			// previous bounce is on its way out.
			return
		}
		if distSq == 0 {
			panic(fmt.Sprintf("rain: %v is exactly at the obstacle center", e))
		}

		// Solve a·k² + b·k + c = 0 for the impulse scale along n. When the
		// restitution target is unreachable the determinant goes negative;
		// clamping to zero degrades to the maximum physically consistent
		// bounce instead of a NaN.
		a := distSq
		b := 2 * approach
		c := (1 - s.restitution*s.restitution) * vel.LenSq()
		det := b*b - 4*a*c
		if det < 0 {
			det = 0
		}
		k := (-b + math.Sqrt(det)) / (2 * a)

		vel.AddScaled(s.n, k)

		pos.Copy(s.center)
		pos.AddScaled(s.n, s.radius/math.Sqrt(distSq))
	})
}
