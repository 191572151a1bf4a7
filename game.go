package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/vecarrows/arrow"
	"github.com/milk9111/vecarrows/ecs"
	"github.com/milk9111/vecarrows/ecs/component"
	"github.com/milk9111/vecarrows/ecs/entity"
	"github.com/milk9111/vecarrows/ecs/system"
	"github.com/milk9111/vecarrows/gizmo"
	"github.com/milk9111/vecarrows/prefabs"
	"github.com/milk9111/vecarrows/render"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	gridHalfExtent = 5
)

var (
	backgroundColor = color.RGBA{R: 0x18, G: 0x1a, B: 0x20, A: 0xff}
	gridColor       = color.RGBA{R: 0x40, G: 0x44, B: 0x50, A: 0xff}
)

type Options struct {
	Scene   string
	Workers int
	Debug   bool
	Watch   bool
}

type Game struct {
	frames int
	opts   Options

	world     *ecs.World
	scene     *entity.Scene
	scheduler *ecs.Scheduler
	scripts   *system.ScriptMotionSystem
	arrows    *system.VecArrowSystem
	lines     *gizmo.Buffer
	input     *Input
	watcher   *prefabs.Watcher

	projector *render.Projector
	projCam   component.Camera
	projW     int
	projH     int
	raster    render.EbitenRasterizer
}

func NewGame(opts Options) (*Game, error) {
	g := &Game{
		opts:   opts,
		world:  ecs.NewWorld(),
		lines:  gizmo.NewBuffer(256),
		input:  NewInput(),
		raster: render.EbitenRasterizer{Antialias: true},
	}

	g.scripts = system.NewScriptMotionSystem(nil)
	g.scheduler = ecs.NewScheduler(g.scripts, system.NewRollTweenSystem())
	arrows, err := system.AddVecArrowPlugin(g.scheduler, g.lines, arrow.DefaultConfig(), system.WithWorkers(opts.Workers))
	if err != nil {
		return nil, err
	}
	g.arrows = arrows

	if err := g.loadScene(); err != nil {
		return nil, err
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts"))
		if err != nil {
			return nil, fmt.Errorf("watch prefabs: %w", err)
		}
		g.watcher = w
	}
	return g, nil
}

func (g *Game) loadScene() error {
	if g.scene != nil {
		g.scene.Despawn(g.world)
		g.scene = nil
	}
	scene, err := entity.LoadScene(g.world, g.opts.Scene)
	if err != nil {
		return err
	}
	g.scene = scene
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++
	g.lines.Reset()

	g.pollWatcher()
	g.input.Update()
	g.input.Apply(g.world)

	drawGrid(g.lines)
	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if prefabs.IsScriptFile(path) {
				g.scripts.Invalidate(filepath.Base(path))
				slog.Info("script reloaded", "path", path)
				continue
			}
			if filepath.Base(path) != filepath.Base(g.opts.Scene) {
				continue
			}
			if err := g.loadScene(); err != nil {
				slog.Warn("scene reload failed", "path", path, "err", err)
				continue
			}
			slog.Info("scene reloaded", "path", path)
		case err, ok := <-g.watcher.Errors:
			if ok {
				slog.Warn("prefab watcher", "err", err)
			}
		default:
			return
		}
	}
}

func drawGrid(d gizmo.Drawer) {
	for i := -gridHalfExtent; i <= gridHalfExtent; i++ {
		f := float32(i)
		d.DrawSegment(mgl32.Vec3{f, 0, -gridHalfExtent}, mgl32.Vec3{f, 0, gridHalfExtent}, gridColor, 0.01)
		d.DrawSegment(mgl32.Vec3{-gridHalfExtent, 0, f}, mgl32.Vec3{gridHalfExtent, 0, f}, gridColor, 0.01)
	}
}

func (g *Game) camera() component.Camera {
	if e, ok := ecs.First(g.world, component.CameraComponent.Kind()); ok {
		if cam, ok := ecs.Get(g.world, e, component.CameraComponent.Kind()); ok {
			return *cam
		}
	}
	return component.Camera{
		Eye:  mgl32.Vec3{0, 4, 10},
		Up:   mgl32.Vec3{0, 1, 0},
		FOV:  45,
		Near: 0.1,
		Far:  100,
	}
}

func (g *Game) projectorFor(w, h int) *render.Projector {
	cam := g.camera()
	if g.projector != nil && cam == g.projCam && w == g.projW && h == g.projH {
		return g.projector
	}
	p, err := render.NewProjector(cam, w, h)
	if err != nil {
		slog.Warn("bad camera", "err", err)
		return g.projector
	}
	g.projector, g.projCam, g.projW, g.projH = p, cam, w, h
	return p
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	b := screen.Bounds()
	p := g.projectorFor(b.Dx(), b.Dy())
	g.raster.Draw(screen, p, g.lines.Segments())

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("space: %s  [tab] toggle  [wasd/qe] move cube  [o/p] turn  [space] roll", g.input.Space()), 10, 10)
	if g.opts.Debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("frames: %d  fps: %.2f  segments: %d  workers: %d", g.frames, ebiten.ActualFPS(), g.lines.Len(), g.opts.Workers), 10, 26)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
