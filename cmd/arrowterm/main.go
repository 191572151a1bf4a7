// Command arrowterm renders a vector arrow scene in the terminal.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/vecarrows/arrow"
	"github.com/milk9111/vecarrows/ecs"
	"github.com/milk9111/vecarrows/ecs/component"
	"github.com/milk9111/vecarrows/ecs/entity"
	"github.com/milk9111/vecarrows/ecs/system"
	"github.com/milk9111/vecarrows/gizmo"
	"github.com/milk9111/vecarrows/render"
)

func main() {
	sceneName := flag.String("scene", "spin.yaml", "scene prefab in prefabs/")
	workers := flag.Int("workers", 1, "goroutines used to resolve arrows")
	fps := flag.Int("fps", 30, "frames per second")
	logFile := flag.String("log", "", "write logs to this file")
	flag.Parse()

	if *fps <= 0 {
		log.Fatalf("fps must be positive, got %d", *fps)
	}

	// the screen owns the terminal, so logs go to a file or nowhere
	handler := slog.DiscardHandler
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		handler = slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))

	world := ecs.NewWorld()
	lines := gizmo.NewBuffer(64)
	scheduler := ecs.NewScheduler(system.NewScriptMotionSystem(nil))
	if _, err := system.AddVecArrowPlugin(scheduler, lines, arrow.DefaultConfig(), system.WithWorkers(*workers)); err != nil {
		log.Fatal(err)
	}
	if _, err := entity.LoadScene(world, *sceneName); err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(*fps))
	defer ticker.Stop()

	var raster render.TerminalRasterizer
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
					return
				case ev.Key() == tcell.KeyTab:
					ecs.ForEach(world, component.VecArrowComponent.Kind(), func(_ ecs.Entity, a *component.VecArrow) {
						a.Space = a.Space.Toggle()
					})
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			lines.Reset()
			scheduler.Update(world)

			screen.Clear()
			cols, rows := screen.Size()
			if p := projector(world, cols, rows); p != nil {
				raster.Draw(screen, p, lines.Segments())
			}
			screen.Show()
		}
	}
}

func projector(w *ecs.World, cols, rows int) *render.Projector {
	e, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return nil
	}
	cam, ok := ecs.Get(w, e, component.CameraComponent.Kind())
	if !ok {
		return nil
	}
	// cells are roughly twice as tall as they are wide
	p, err := render.NewProjector(*cam, cols, rows*2)
	if err != nil {
		slog.Warn("bad camera", "err", err)
		return nil
	}
	return p
}
