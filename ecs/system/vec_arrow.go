package system

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/milk9111/vecarrows/arrow"
	"github.com/milk9111/vecarrows/ecs"
	"github.com/milk9111/vecarrows/ecs/component"
	"github.com/milk9111/vecarrows/gizmo"
	"golang.org/x/sync/errgroup"
)

// VecArrowSystem draws every VecArrow attached to an entity that has a
// GlobalTransform. It never mutates components.
type VecArrowSystem struct {
	drawer  gizmo.Drawer
	cfg     arrow.Config
	logger  *slog.Logger
	workers int

	// reused by the parallel path
	pairs   []arrowPair
	results []arrowResult
}

type arrowPair struct {
	entity    ecs.Entity
	transform component.GlobalTransform
	arrow     component.VecArrow
}

type arrowResult struct {
	arrow arrow.Arrow
	err   error
}

type VecArrowOption func(*VecArrowSystem)

// WithWorkers resolves arrows on up to n goroutines. Draw calls are still
// submitted in entity order from the calling goroutine.
func WithWorkers(n int) VecArrowOption {
	return func(s *VecArrowSystem) {
		s.workers = n
	}
}

func WithLogger(l *slog.Logger) VecArrowOption {
	return func(s *VecArrowSystem) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewVecArrowSystem(drawer gizmo.Drawer, cfg arrow.Config, opts ...VecArrowOption) (*VecArrowSystem, error) {
	if drawer == nil {
		return nil, fmt.Errorf("vec arrow system: drawer is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("vec arrow system: %w", err)
	}
	s := &VecArrowSystem{
		drawer:  drawer,
		cfg:     cfg,
		logger:  slog.Default(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Config returns a copy of the settings the system was built with.
func (s *VecArrowSystem) Config() arrow.Config {
	return s.cfg
}

func (s *VecArrowSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	if s.workers > 1 {
		s.updateParallel(w)
		return
	}
	ecs.ForEach2(w, component.GlobalTransformComponent.Kind(), component.VecArrowComponent.Kind(), func(e ecs.Entity, t *component.GlobalTransform, a *component.VecArrow) {
		resolved, err := arrow.Resolve(*t, *a, s.cfg)
		if err != nil {
			s.logSkip(e, err)
			return
		}
		arrow.Emit(s.drawer, resolved, s.cfg)
	})
}

func (s *VecArrowSystem) updateParallel(w *ecs.World) {
	s.pairs = s.pairs[:0]
	ecs.ForEach2(w, component.GlobalTransformComponent.Kind(), component.VecArrowComponent.Kind(), func(e ecs.Entity, t *component.GlobalTransform, a *component.VecArrow) {
		s.pairs = append(s.pairs, arrowPair{entity: e, transform: *t, arrow: *a})
	})
	n := len(s.pairs)
	if n == 0 {
		return
	}
	if cap(s.results) < n {
		s.results = make([]arrowResult, n)
	}
	s.results = s.results[:n]

	chunk := (n + s.workers - 1) / s.workers
	var g errgroup.Group
	g.SetLimit(s.workers)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				p := &s.pairs[i]
				resolved, err := arrow.Resolve(p.transform, p.arrow, s.cfg)
				s.results[i] = arrowResult{arrow: resolved, err: err}
			}
			return nil
		})
	}
	_ = g.Wait()

	for i, r := range s.results {
		if r.err != nil {
			s.logSkip(s.pairs[i].entity, r.err)
			continue
		}
		arrow.Emit(s.drawer, r.arrow, s.cfg)
	}
	clear(s.pairs)
	clear(s.results)
}

func (s *VecArrowSystem) logSkip(e ecs.Entity, err error) {
	if !s.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	s.logger.Debug("vec arrow skipped", "entity", e.String(), "reason", err)
}

// AddVecArrowPlugin registers transform propagation followed by the arrow
// pass. cfg is validated once here and is read-only afterwards.
func AddVecArrowPlugin(s *ecs.Scheduler, drawer gizmo.Drawer, cfg arrow.Config, opts ...VecArrowOption) (*VecArrowSystem, error) {
	if s == nil {
		return nil, fmt.Errorf("vec arrow plugin: scheduler is nil")
	}
	arrows, err := NewVecArrowSystem(drawer, cfg, opts...)
	if err != nil {
		return nil, err
	}
	s.Add(NewTransformSystem())
	s.Add(arrows)
	return arrows, nil
}
