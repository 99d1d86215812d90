// Package scheduler owns systems and their dependency edges, and compiles
// them into a levelized execution plan: an ordered sequence of stages where
// every system in a stage is safe to run concurrently with the others in
// that stage under the declared dependency graph.
package scheduler

import (
	"errors"
	"fmt"

	"github.com/strikeengine/strikeengine/internal/ecs"
)

// SystemHandle identifies a system registered with a Graph.
type SystemHandle int

// ErrCycleDetected is returned by ExecutionOrder when the dependency edges
// do not form a DAG.
var ErrCycleDetected = errors.New("scheduler: cycle detected in system dependency graph")

// Graph owns a set of systems and the "after(prerequisite, dependent)"
// edges between them, and levelizes them via Kahn's algorithm into
// parallel-safe stages.
//
// This is the spec's general producer→consumer DAG, generalized from the
// teacher's fixed three-bucket Before/Default/After staging (stage.go):
// here any system may declare a prerequisite on any other, and the stage
// count falls out of the graph's longest dependency chain instead of being
// fixed at three.
type Graph struct {
	systems []ecs.System
	names   map[string]SystemHandle

	// prerequisiteOf[h] lists the systems that must run before h.
	prerequisiteOf map[SystemHandle][]SystemHandle
	// dependentsOf[h] lists the systems that must run after h.
	dependentsOf map[SystemHandle][]SystemHandle
}

// NewGraph constructs an empty system graph.
func NewGraph() *Graph {
	return &Graph{
		names:          make(map[string]SystemHandle),
		prerequisiteOf: make(map[SystemHandle][]SystemHandle),
		dependentsOf:   make(map[SystemHandle][]SystemHandle),
	}
}

// AddSystem registers s with the graph and returns its handle. The graph
// takes ownership of s for the purposes of scheduling.
func (g *Graph) AddSystem(s ecs.System) SystemHandle {
	h := SystemHandle(len(g.systems))
	g.systems = append(g.systems, s)
	g.names[s.Name()] = h
	g.prerequisiteOf[h] = nil
	g.dependentsOf[h] = nil
	return h
}

// Handle looks up a previously-registered system by name.
func (g *Graph) Handle(name string) (SystemHandle, bool) {
	h, ok := g.names[name]
	return h, ok
}

// AddDependency records that prerequisite must run, and its effects be
// visible, before dependent runs: an edge from prerequisite to dependent.
// Both handles must already be registered.
func (g *Graph) AddDependency(dependent, prerequisite SystemHandle) error {
	if !g.validHandle(dependent) {
		return fmt.Errorf("scheduler: dependent handle %d is not registered", dependent)
	}
	if !g.validHandle(prerequisite) {
		return fmt.Errorf("scheduler: prerequisite handle %d is not registered", prerequisite)
	}
	g.prerequisiteOf[dependent] = append(g.prerequisiteOf[dependent], prerequisite)
	g.dependentsOf[prerequisite] = append(g.dependentsOf[prerequisite], dependent)
	return nil
}

func (g *Graph) validHandle(h SystemHandle) bool {
	return h >= 0 && int(h) < len(g.systems)
}

// ExecutionOrder returns a levelized topological sort: stage k contains
// every system whose prerequisites are all in stages <k, and that has no
// prerequisite in stage k itself. Order within a stage is unspecified
// (implemented here as registration order, which is merely deterministic
// for test reproducibility — it is not a correctness requirement).
//
// Returns ErrCycleDetected if the edges do not form a DAG.
func (g *Graph) ExecutionOrder() ([][]ecs.System, error) {
	n := len(g.systems)
	indegree := make([]int, n)
	for h := 0; h < n; h++ {
		indegree[h] = len(g.prerequisiteOf[SystemHandle(h)])
	}

	remaining := n
	emitted := make([]bool, n)
	var stages [][]ecs.System

	for remaining > 0 {
		var stage []SystemHandle
		for h := 0; h < n; h++ {
			if !emitted[h] && indegree[h] == 0 {
				stage = append(stage, SystemHandle(h))
			}
		}
		if len(stage) == 0 {
			// Nodes remain but none are ready: the remaining subgraph has a cycle.
			return nil, ErrCycleDetected
		}

		stageSystems := make([]ecs.System, 0, len(stage))
		for _, h := range stage {
			emitted[h] = true
			remaining--
			stageSystems = append(stageSystems, g.systems[h])
		}
		// Decrement indegree of dependents only after the whole stage is
		// marked emitted, so that two stage-mates cannot unblock each other
		// within the same stage.
		for _, h := range stage {
			for _, dep := range g.dependentsOf[h] {
				indegree[dep]--
			}
		}

		stages = append(stages, stageSystems)
	}

	return stages, nil
}
