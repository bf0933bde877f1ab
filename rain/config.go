package rain

import (
	"fmt"
	"image/color"

	"github.com/plus3/drizzle/vec"
)

// Config holds every tunable constant of the simulation. Values are fixed
// for the lifetime of a Simulation; there is no runtime mutation.
type Config struct {
	// Simulation bounds in meters. Particles exiting left, right, or below
	// the floor are recycled. There is no ceiling: rain falls downward, so
	// particles above the visible area are left alone until they come back
	// down.
	Width  float64
	Height float64

	// Gravity in m/s².
	Gravity float64

	// DropMass and TerminalVelocity define the quadratic drag coefficient
	// k = m·g/v_t², modeling real raindrop terminal-velocity behavior.
	DropMass         float64
	TerminalVelocity float64

	// Single static circular obstacle.
	ObstacleCenter vec.Vec2
	ObstacleRadius float64
	// Restitution is the fraction of approach speed preserved as
	// separating speed after a bounce.
	Restitution float64

	// Fresh particles spawn at a random X in [0, Width) at SpawnHeight,
	// falling with a vertical speed in [MinFallSpeed, MaxFallSpeed).
	SpawnHeight  float64
	MinFallSpeed float64
	MaxFallSpeed float64

	DropRadius float64
	DropColor  color.RGBA

	// MaxParticles caps the live population; SpawnPerFrame limits how many
	// new particles the emitter creates in one frame while under the cap.
	MaxParticles  int
	SpawnPerFrame int

	// TimeStep is the fixed dt in seconds the driver is expected to tick
	// with.
	TimeStep float64
}

// DefaultConfig returns the demo's tuning: a 6×3 m world with a unit
// obstacle at (3,1) and up to 2000 live drops.
func DefaultConfig() Config {
	return Config{
		Width:            6,
		Height:           3,
		Gravity:          9.8,
		DropMass:         0.004,
		TerminalVelocity: 10,
		ObstacleCenter:   vec.New(3, 1),
		ObstacleRadius:   1,
		Restitution:      0.2,
		SpawnHeight:      3,
		MinFallSpeed:     5,
		MaxFallSpeed:     10,
		DropRadius:       0.02,
		DropColor:        color.RGBA{R: 0x3c, G: 0x8a, B: 0xd9, A: 0xff},
		MaxParticles:     2000,
		SpawnPerFrame:    40,
		TimeStep:         1.0 / 60.0,
	}
}

// DragCoefficient derives k from the reference drop mass and terminal
// velocity. At v = TerminalVelocity the drag force exactly cancels
// gravity.
func (c Config) DragCoefficient() float64 {
	return c.DropMass * c.Gravity / (c.TerminalVelocity * c.TerminalVelocity)
}

// Validate panics on configurations that cannot produce a well-defined
// simulation. These are construction-time programming errors, not
// recoverable conditions.
func (c Config) Validate() {
	if c.Width <= 0 || c.Height <= 0 {
		panic(fmt.Sprintf("rain: bounds must be positive, got %gx%g", c.Width, c.Height))
	}
	if c.DropMass <= 0 {
		panic(fmt.Sprintf("rain: drop mass must be positive, got %g", c.DropMass))
	}
	if c.TerminalVelocity <= 0 {
		panic(fmt.Sprintf("rain: terminal velocity must be positive, got %g", c.TerminalVelocity))
	}
	if c.ObstacleRadius <= 0 {
		panic(fmt.Sprintf("rain: obstacle radius must be positive, got %g", c.ObstacleRadius))
	}
	if c.Restitution < 0 || c.Restitution > 1 {
		panic(fmt.Sprintf("rain: restitution must be in [0,1], got %g", c.Restitution))
	}
	if c.MinFallSpeed <= 0 || c.MaxFallSpeed < c.MinFallSpeed {
		panic(fmt.Sprintf("rain: fall speed range [%g,%g) is invalid", c.MinFallSpeed, c.MaxFallSpeed))
	}
	if c.TimeStep <= 0 {
		panic(fmt.Sprintf("rain: time step must be positive, got %g", c.TimeStep))
	}
}
