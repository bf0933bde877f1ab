package rain

import (
	"math/rand/v2"

	"github.com/plus3/drizzle/ecs"
	"github.com/plus3/drizzle/vec"
)

// Spawner owns particle creation and respawning. ResetParticle is the
// single source of truth for fresh-particle state: both creation and
// recycling go through it, so no other code path initializes these fields.
type Spawner struct {
	ctx   *ecs.Context
	comps Components
	cfg   Config
	rng   *rand.Rand
}

// NewSpawner creates a spawner. The random source is injected so tests can
// replay a fixed seed deterministically.
func NewSpawner(ctx *ecs.Context, comps Components, cfg Config, rng *rand.Rand) *Spawner {
	return &Spawner{ctx: ctx, comps: comps, cfg: cfg, rng: rng}
}

// CreateParticle allocates a new entity with the full particle signature
// and resets it to a fresh spawn state.
func (s *Spawner) CreateParticle() ecs.Entity {
	e := s.ctx.CreateEntity()
	s.ctx.Add(e, s.comps.Position)
	s.ctx.Add(e, s.comps.Velocity)
	s.ctx.Add(e, s.comps.RigidBody)
	s.ctx.Add(e, s.comps.Appearance)
	s.ResetParticle(e)
	return e
}

// ResetParticle re-initializes a particle in place: randomized horizontal
// spawn position at the fixed spawn height, randomized downward velocity,
// zero accumulated force, reference drop mass, and the configured
// appearance. Resetting in place instead of destroy-and-recreate keeps
// group membership stable during iteration.
func (s *Spawner) ResetParticle(e ecs.Entity) {
	pos := ecs.Get[vec.Vec2](s.ctx, e, s.comps.Position)
	pos.Set(s.rng.Float64()*s.cfg.Width, s.cfg.SpawnHeight)

	fall := s.cfg.MaxFallSpeed - s.rng.Float64()*(s.cfg.MaxFallSpeed-s.cfg.MinFallSpeed)
	vel := ecs.Get[vec.Vec2](s.ctx, e, s.comps.Velocity)
	vel.Set(0, -fall)

	body := ecs.Get[RigidBody](s.ctx, e, s.comps.RigidBody)
	body.Force.Zero()
	body.Mass = s.cfg.DropMass

	app := ecs.Get[Appearance](s.ctx, e, s.comps.Appearance)
	app.Radius = s.cfg.DropRadius
	app.Color = s.cfg.DropColor
}
