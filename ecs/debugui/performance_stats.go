package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/drizzle/ecs"
)

// PerformanceStats renders a window with frame timing, storage occupancy,
// and per-system scheduler statistics.
type PerformanceStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

// NewPerformanceStats creates a stats window keeping the given number of
// frame-time samples.
func NewPerformanceStats(historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Render draws the stats window for the current frame.
func (ps *PerformanceStats) Render(ctx *ecs.Context, scheduler *ecs.Scheduler, deltaTime float32) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames

	stats := ctx.CollectStats()

	imgui.Text(fmt.Sprintf("Entities: %d", stats.EntityCount))
	imgui.Text(fmt.Sprintf("Groups: %d", stats.GroupCount))

	var avgFrameTime float32
	for _, ft := range ps.frameHistory {
		avgFrameTime += ft
	}
	avgFrameTime /= float32(ps.historyFrames)

	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg

	if imgui.TreeNodeStr("Component Pools") {
		if imgui.BeginTableV("PoolStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Type")
			imgui.TableSetupColumn("Live")
			imgui.TableSetupColumn("Capacity")
			imgui.TableSetupColumn("Free")
			imgui.TableHeadersRow()

			for _, pool := range stats.Pools {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(pool.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", pool.Live))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", pool.Capacity))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", pool.Free))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Systems") {
		schedStats := scheduler.Stats()
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range schedStats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(sys.LastDuration.Round(time.Microsecond).String())
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.Round(time.Microsecond).String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.Round(time.Microsecond).String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// FrameTimer measures the wall-clock delta between frames.
type FrameTimer struct {
	lastFrameTime time.Time
}

// NewFrameTimer creates a frame timer starting now.
func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

// GetDeltaTime returns the seconds elapsed since the previous call.
func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
