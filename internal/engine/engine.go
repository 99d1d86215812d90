// Package engine wires the registry, system graph, and job pool into the
// fixed-timestep simulation core: Engine.Update advances one tick, Run
// drives the tick loop to completion.
package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/strikeengine/strikeengine/internal/ecs"
	"github.com/strikeengine/strikeengine/internal/jobpool"
	"github.com/strikeengine/strikeengine/internal/scheduler"
)

// Engine is the simulation core: a Registry, a leveled system graph, and a
// worker pool that executes each stage's systems concurrently, with a
// barrier between stages.
type Engine struct {
	RunID    uuid.UUID
	Registry *ecs.Registry

	graph  *scheduler.Graph
	stages [][]ecs.System
	pool   *jobpool.Pool
	logger *slog.Logger

	simTimeS float64

	// engagementEntities, if set, are watched by Run: simulation stops early
	// once every one of them is destroyed (spec §6: "run(duration, dt)...
	// terminates...when all engagement entities are destroyed").
	engagementEntities []ecs.Entity
}

// Builder configures an Engine before construction, mirroring the
// register-then-build pattern the rest of the engine's ambient stack uses
// for systems and dependency edges.
type Builder struct {
	registry *ecs.Registry
	graph    *scheduler.Graph
	handles  map[string]scheduler.SystemHandle
	workers  int
	logger   *slog.Logger

	pendingDeps []pendingDependency
}

type pendingDependency struct {
	dependent, prerequisite string
}

// NewBuilder constructs a Builder over a fresh Registry.
func NewBuilder() *Builder {
	return &Builder{
		registry: ecs.NewRegistry(),
		graph:    scheduler.NewGraph(),
		handles:  make(map[string]scheduler.SystemHandle),
		logger:   slog.Default(),
	}
}

// Registry exposes the builder's registry, for entity construction (the
// factory) before the engine starts ticking.
func (b *Builder) Registry() *ecs.Registry { return b.registry }

// Logger overrides the default slog logger.
func (b *Builder) Logger(l *slog.Logger) *Builder {
	b.logger = l
	return b
}

// Workers sets the job pool's worker count. Zero means GOMAXPROCS.
func (b *Builder) Workers(n int) *Builder {
	b.workers = n
	return b
}

// System registers a system, optionally naming the systems it depends on
// (must already be registered, or registered before Build is called).
func (b *Builder) System(s ecs.System, dependsOn ...string) *Builder {
	h := b.graph.AddSystem(s)
	b.handles[s.Name()] = h
	for _, dep := range dependsOn {
		b.pendingDeps = append(b.pendingDeps, pendingDependency{dependent: s.Name(), prerequisite: dep})
	}
	return b
}

// Build resolves the pending dependency edges, levelizes the graph, and
// constructs the Engine with a running job pool. A cycle in the dependency
// graph is a fatal construction-time error (spec §7 class 2).
func (b *Builder) Build() (*Engine, error) {
	for _, dep := range b.pendingDeps {
		dependent, ok := b.handles[dep.dependent]
		if !ok {
			return nil, fmt.Errorf("engine: unknown system %q in dependency edge", dep.dependent)
		}
		prerequisite, ok := b.handles[dep.prerequisite]
		if !ok {
			return nil, fmt.Errorf("engine: unknown prerequisite %q for system %q", dep.prerequisite, dep.dependent)
		}
		if err := b.graph.AddDependency(dependent, prerequisite); err != nil {
			return nil, err
		}
	}

	stages, err := b.graph.ExecutionOrder()
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	runID, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("engine: generate run id: %w", err)
	}

	return &Engine{
		RunID:    runID,
		Registry: b.registry,
		graph:    b.graph,
		stages:   stages,
		pool:     jobpool.New(b.workers),
		logger:   b.logger,
	}, nil
}

// WatchEngagement records the entities Run should treat as the engagement:
// once every one of them is destroyed, Run stops early.
func (e *Engine) WatchEngagement(entities ...ecs.Entity) {
	e.engagementEntities = entities
}

// SimTimeS returns the accumulated simulated time.
func (e *Engine) SimTimeS() float64 { return e.simTimeS }

// Update advances the simulation by one fixed timestep: it runs every
// stage's systems to completion (concurrently within a stage, via the job
// pool, with a barrier between stages) before advancing simulated time.
func (e *Engine) Update(dt float64) {
	for _, stage := range e.stages {
		if len(stage) == 1 {
			stage[0].Update(e.Registry, dt)
			continue
		}
		var wg sync.WaitGroup
		wg.Add(len(stage))
		for _, sys := range stage {
			sys := sys
			e.pool.Submit(func() {
				defer wg.Done()
				sys.Update(e.Registry, dt)
			})
		}
		wg.Wait()
	}
	e.simTimeS += dt
}

// Run ticks the engine at the fixed timestep dt until simulated time
// reaches durationS or every watched engagement entity has been destroyed.
func (e *Engine) Run(durationS, dt float64) {
	for e.simTimeS < durationS {
		if e.engagementConcluded() {
			e.logger.Info("engagement concluded early", "sim_time_s", e.simTimeS, "run_id", e.RunID)
			return
		}
		e.Update(dt)
	}
}

func (e *Engine) engagementConcluded() bool {
	if len(e.engagementEntities) == 0 {
		return false
	}
	for _, ent := range e.engagementEntities {
		if e.Registry.IsAlive(ent) {
			return false
		}
	}
	return true
}

// Close stops the engine's job pool workers.
func (e *Engine) Close() {
	e.pool.Stop()
}
