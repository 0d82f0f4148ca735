// Command lgcaviewer is an interactive raylib viewer: it steps a
// simulation every frame and paints the per-cell density and momentum
// fields as a color-mapped grid, pannable and zoomable with a
// toroidal camera, with a raygui checkbox to toggle the body-force
// operator live.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/myousefi2016/lgca/camera"
	"github.com/myousefi2016/lgca/config"
	"github.com/myousefi2016/lgca/kernel"
	"github.com/myousefi2016/lgca/lattice"
	"github.com/myousefi2016/lgca/sim"
)

const (
	panelWidth    = 220
	cellPx        = 6
	viewportW     = 900
	viewportH     = 720
	zoomWheelStep = 1.1
)

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = embedded defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("lgcaviewer: loading config: %v", err)
	}
	cfg.Telemetry.OutputDir = ""

	s, err := sim.New(cfg)
	if err != nil {
		log.Fatalf("lgcaviewer: %v", err)
	}
	defer s.Close()

	worldW := float32(s.Lattice.DimX * cellPx)
	worldH := float32(s.Lattice.DimY * cellPx)
	cam := camera.New(viewportW, viewportH, worldW, worldH)

	rl.InitWindow(viewportW+panelWidth, viewportH, "lgca viewer")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	bodyForceAxis := kernel.AxisX
	if cfg.BodyForce.Dir == "y" {
		bodyForceAxis = kernel.AxisY
	}
	bodyForceOn := s.BodyForceEnabled()
	paused := false

	for !rl.WindowShouldClose() {
		handleCameraInput(cam)

		if rl.IsKeyPressed(rl.KeySpace) {
			paused = !paused
		}
		if !paused {
			s.Step()
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		drawGrid(s, cam)
		toggled := drawPanel(s, viewportW, bodyForceOn, &paused)
		if toggled != bodyForceOn {
			bodyForceOn = toggled
			s.SetBodyForce(bodyForceOn, bodyForceAxis)
		}

		rl.EndDrawing()
	}
}

// handleCameraInput drags the camera with the right mouse button and
// zooms with the scroll wheel.
func handleCameraInput(cam *camera.Camera) {
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		cam.Pan(-delta.X, -delta.Y)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		if wheel > 0 {
			cam.ZoomBy(zoomWheelStep)
		} else {
			cam.ZoomBy(1 / zoomWheelStep)
		}
	}
}

// drawGrid paints one rectangle per fine cell through the camera
// transform, colored by density and tinted by momentum direction,
// with solid cells in a flat gray. Cells entirely outside the visible
// world bounds are skipped; the bounds are clamped to the grid, so
// cells seen across a wrapped world edge are not drawn.
func drawGrid(s *sim.Simulation, cam *camera.Camera) {
	l := s.Lattice
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()

	loX := clampInt(int(minX/cellPx)-1, 0, l.DimX-1)
	hiX := clampInt(int(maxX/cellPx)+1, 0, l.DimX-1)
	// Row y is drawn at world row DimY-1-y, so the visible world rows
	// map to lattice rows in reverse.
	loY := clampInt(l.DimY-1-(int(maxY/cellPx)+1), 0, l.DimY-1)
	hiY := clampInt(l.DimY-1-(int(minY/cellPx)-1), 0, l.DimY-1)

	size := cellPx * cam.Zoom
	for y := loY; y <= hiY; y++ {
		for x := loX; x <= hiX; x++ {
			c := y*l.DimX + x
			wx := float32(x*cellPx) + cellPx/2
			wy := float32((l.DimY-1-y)*cellPx) + cellPx/2
			sx, sy := cam.WorldToScreen(wx, wy)

			color := cellColor(s, c)
			rl.DrawRectangle(int32(sx-size/2), int32(sy-size/2), int32(size)+1, int32(size)+1, color)
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func cellColor(s *sim.Simulation, c int) rl.Color {
	l := s.Lattice
	switch l.CellType[c] {
	case lattice.SolidNoSlip, lattice.SolidSlip:
		return rl.Color{R: 90, G: 90, B: 90, A: 255}
	}

	dens := l.Density[c]
	maxDens := float64(l.Model.NumDir)
	t := float32(dens / maxDens)
	if t > 1 {
		t = 1
	}

	mom := l.Momentum[c]
	speed := math.Hypot(mom.X, mom.Y)
	var hue float32
	if speed > 1e-6 {
		angle := math.Atan2(mom.Y, mom.X)
		hue = float32(angle * 180 / math.Pi)
		if hue < 0 {
			hue += 360
		}
	}

	return rl.ColorFromHSV(hue, 0.6, 0.2+0.8*t)
}

// drawPanel draws the side panel and returns the body-force
// checkbox's current state (the caller applies it, since toggling it
// has to go through the Simulation rather than a local bool).
func drawPanel(s *sim.Simulation, gridW int32, bodyForceOn bool, paused *bool) bool {
	panelX := float32(gridW + 10)
	y := float32(10)

	rl.DrawText(fmt.Sprintf("model: %s", s.Lattice.Model.Kind), int32(panelX), int32(y), 14, rl.RayWhite)
	y += 20
	rl.DrawText(fmt.Sprintf("tick: %d", s.Tick), int32(panelX), int32(y), 14, rl.RayWhite)
	y += 20
	rl.DrawText(fmt.Sprintf("mass: %d", s.Lattice.TotalPopcount()), int32(panelX), int32(y), 14, rl.RayWhite)
	y += 20
	rl.DrawText("drag right mouse: pan", int32(panelX), int32(y), 12, rl.Gray)
	y += 16
	rl.DrawText("scroll: zoom", int32(panelX), int32(y), 12, rl.Gray)
	y += 30

	*paused = gui.CheckBox(rl.Rectangle{X: panelX, Y: y, Width: 20, Height: 20}, "paused", *paused)
	y += 30

	return gui.CheckBox(rl.Rectangle{X: panelX, Y: y, Width: 20, Height: 20}, "body force", bodyForceOn)
}
