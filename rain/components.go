// Package rain implements a rain particle simulation on top of the pooled
// ECS: gravity, quadratic drag, semi-implicit Euler integration, and a
// restitution-based bounce off a single circular obstacle.
package rain

import (
	"image/color"

	"github.com/plus3/drizzle/ecs"
	"github.com/plus3/drizzle/vec"
)

// RigidBody accumulates force over one frame and carries the particle's
// mass. The force is consumed and reset by AccelerateSystem every frame.
type RigidBody struct {
	Force vec.Vec2
	Mass  float64
}

// Clear resets the body so a reused pool slot never leaks the previous
// owner's force or mass.
func (b *RigidBody) Clear() {
	b.Force.Zero()
	b.Mass = 0
}

// Appearance holds the render radius and color. The simulation core never
// interprets these; they exist for the external renderer.
type Appearance struct {
	Radius float64
	Color  color.RGBA
}

// Clear resets the appearance for pool slot reuse.
func (a *Appearance) Clear() {
	*a = Appearance{}
}

// Components bundles the four registered component types of the
// simulation. Position and Velocity are bare vectors; RigidBody and
// Appearance are struct components with Clear-on-allocate pools.
type Components struct {
	Position   *ecs.ComponentType
	Velocity   *ecs.ComponentType
	RigidBody  *ecs.ComponentType
	Appearance *ecs.ComponentType
}

// RegisterComponents registers the simulation's component types with the
// context.
func RegisterComponents(ctx *ecs.Context) Components {
	return Components{
		Position:   ctx.RegisterComponent("position", ecs.NewVecPool()),
		Velocity:   ctx.RegisterComponent("velocity", ecs.NewVecPool()),
		RigidBody:  ctx.RegisterComponent("rigidBody", ecs.NewObjectPool[RigidBody]()),
		Appearance: ctx.RegisterComponent("appearance", ecs.NewObjectPool[Appearance]()),
	}
}
