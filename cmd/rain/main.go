// Command rain runs the rain particle simulation in an Ebiten window.
// The simulation core works in meters with Y pointing up; this driver maps
// world space into pixels (100 px/m, vertically flipped) and draws each
// particle as a filled circle.
package main

import (
	"flag"
	"image/color"
	"math/rand/v2"
	"os"
	"strconv"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/joho/godotenv"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"

	"github.com/plus3/drizzle/ecs/debugui"
	debugui_ebiten "github.com/plus3/drizzle/ecs/debugui/ebiten"
	"github.com/plus3/drizzle/rain"
	"github.com/plus3/drizzle/vec"
)

const pixelsPerMeter = 100

var log = logrus.WithField("component", "rain")

// Game implements ebiten.Game around the simulation with a fixed timestep.
type Game struct {
	sim     *rain.Simulation
	screenW int
	screenH int
	frames  int

	imguiBackend *debugui_ebiten.ImguiBackend
	frameTimer   *debugui.FrameTimer
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if g.imguiBackend != nil {
		g.imguiBackend.BeginFrame()
	}

	g.sim.Tick(g.sim.Config().TimeStep)

	if g.imguiBackend != nil {
		g.imguiBackend.EndFrame()
	}

	g.frames++
	if g.frames%300 == 0 {
		log.WithFields(logrus.Fields{
			"frame":     g.frames,
			"particles": g.sim.Len(),
			"fps":       ebiten.ActualFPS(),
		}).Debug("tick")
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x10, G: 0x14, B: 0x1c, A: 0xff})

	cfg := g.sim.Config()
	cx, cy := g.toScreen(cfg.ObstacleCenter)
	vector.StrokeCircle(screen, cx, cy, float32(cfg.ObstacleRadius*pixelsPerMeter), 1.5,
		color.RGBA{R: 0x6a, G: 0x6f, B: 0x78, A: 0xff}, true)

	g.sim.EachParticle(func(pos vec.Vec2, app rain.Appearance) {
		sx, sy := g.toScreen(pos)
		vector.DrawFilledCircle(screen, sx, sy, float32(app.Radius*pixelsPerMeter), app.Color, true)
	})

	if g.imguiBackend != nil {
		g.imguiBackend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imguiBackend != nil {
		g.imguiBackend.Layout(outsideWidth, outsideHeight)
	}
	return g.screenW, g.screenH
}

// toScreen maps world meters (Y-up) to screen pixels (Y-down).
func (g *Game) toScreen(p vec.Vec2) (float32, float32) {
	return float32(p.X * pixelsPerMeter), float32(float64(g.screenH) - p.Y*pixelsPerMeter)
}

func main() {
	seed := flag.Uint64("seed", envUint64("RAIN_SEED", 1), "random seed for deterministic replay")
	maxParticles := flag.Int("particles", envInt("RAIN_MAX_PARTICLES", 0), "population cap override (0 = default)")
	debug := flag.Bool("debug", false, "show the ImGui stats overlay")
	profileMode := flag.Bool("profile", false, "write a CPU profile to the working directory")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if *profileMode {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	cfg := rain.DefaultConfig()
	if *maxParticles > 0 {
		cfg.MaxParticles = *maxParticles
	}

	rng := rand.New(rand.NewPCG(*seed, *seed))
	sim := rain.New(cfg, rng)

	game := &Game{
		sim:     sim,
		screenW: int(cfg.Width * pixelsPerMeter),
		screenH: int(cfg.Height * pixelsPerMeter),
	}

	if *debug {
		backend := ebitenbackend.NewEbitenBackend()
		imgui.CurrentIO().SetIniFilename("")
		game.imguiBackend = &debugui_ebiten.ImguiBackend{EbitenBackend: backend}
		game.frameTimer = debugui.NewFrameTimer()

		itemType := debugui.RegisterComponents(sim.Context())
		sim.Scheduler().Register(debugui.NewImguiSystem(sim.Context(), itemType))

		perf := debugui.NewPerformanceStats(120)
		debugui.SpawnItem(sim.Context(), itemType, func() {
			perf.Render(sim.Context(), sim.Scheduler(), game.frameTimer.GetDeltaTime())
		})
	}

	log.WithFields(logrus.Fields{
		"seed":      *seed,
		"particles": cfg.MaxParticles,
		"bounds":    []float64{cfg.Width, cfg.Height},
	}).Info("starting simulation")

	ebiten.SetWindowSize(game.screenW, game.screenH)
	ebiten.SetWindowTitle("Rain - drizzle demo")
	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Fatal("game loop exited")
	}
}

// envInt reads an integer from the environment (an optional .env file is
// loaded first), falling back to def.
func envInt(key string, def int) int {
	loadDotenv()
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.WithField("key", key).Warn("ignoring malformed env value")
	}
	return def
}

func envUint64(key string, def uint64) uint64 {
	loadDotenv()
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
		log.WithField("key", key).Warn("ignoring malformed env value")
	}
	return def
}

var dotenvLoaded bool

func loadDotenv() {
	if dotenvLoaded {
		return
	}
	dotenvLoaded = true
	// Missing .env is fine; it only carries optional overrides.
	_ = godotenv.Load()
}
