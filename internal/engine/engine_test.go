package engine

import (
	"testing"

	"github.com/strikeengine/strikeengine/internal/ecs"
)

type recordingSystem struct {
	name string
	log  *[]string
}

func (s *recordingSystem) Name() string { return s.name }
func (s *recordingSystem) Update(_ *ecs.Registry, _ float64) {
	*s.log = append(*s.log, s.name)
}

func TestEngineRunsStagesInDependencyOrder(t *testing.T) {
	b := NewBuilder()
	var log []string
	a := &recordingSystem{name: "A", log: &log}
	bSys := &recordingSystem{name: "B", log: &log}
	c := &recordingSystem{name: "C", log: &log}

	b.System(a)
	b.System(bSys, "A")
	b.System(c, "B")

	eng, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer eng.Close()

	eng.Update(0.01)

	if len(log) != 3 || log[0] != "A" || log[2] != "C" {
		t.Fatalf("unexpected execution order: %v", log)
	}
}

func TestEngineBuildRejectsCycle(t *testing.T) {
	b := NewBuilder()
	var log []string
	a := &recordingSystem{name: "A", log: &log}
	bSys := &recordingSystem{name: "B", log: &log}
	b.System(a, "B")
	b.System(bSys, "A")

	if _, err := b.Build(); err == nil {
		t.Fatalf("expected cycle error")
	}
}

func TestEngineRunStopsWhenEngagementDestroyed(t *testing.T) {
	b := NewBuilder()
	reg := b.Registry()
	e1 := reg.Create()
	e2 := reg.Create()

	eng, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer eng.Close()

	eng.WatchEngagement(e1, e2)
	reg.Destroy(e1)
	reg.Destroy(e2)

	eng.Run(1000, 0.01)

	if eng.SimTimeS() != 0 {
		t.Fatalf("expected Run to stop immediately when engagement already concluded, advanced %v", eng.SimTimeS())
	}
}

func TestEngineRunAdvancesToDuration(t *testing.T) {
	b := NewBuilder()
	eng, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer eng.Close()

	eng.Run(1.0, 0.1)

	if eng.SimTimeS() < 1.0 {
		t.Fatalf("expected sim time to reach duration, got %v", eng.SimTimeS())
	}
}
