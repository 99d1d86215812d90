package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/strikeengine/strikeengine/internal/components"
	"github.com/strikeengine/strikeengine/internal/ecs"
)

func TestGravityMagnitudeAtEarthSurfaceRadius(t *testing.T) {
	reg := ecs.NewRegistry()
	e := reg.Create()
	const radiusM = 6371000.0
	ecs.Add(reg, e, components.Transform{Position: mgl64.Vec3{radiusM, 0, 0}})
	ecs.Add(reg, e, components.Mass{CurrentKg: 10})
	ecs.Add(reg, e, components.ForceAccumulator{})

	NewGravity().Update(reg, 0.01)

	f, _ := ecs.Get[components.ForceAccumulator](reg, e)
	accel := f.TotalForce.Len() / 10
	if math.Abs(accel-9.82) > 0.02 {
		t.Fatalf("gravitational acceleration = %v, want ~9.82", accel)
	}
	if f.TotalForce[0] >= 0 {
		t.Fatalf("force not directed toward origin: %v", f.TotalForce)
	}
}

func TestGravityDoublingRadiusQuartersForce(t *testing.T) {
	reg := ecs.NewRegistry()
	e1 := reg.Create()
	ecs.Add(reg, e1, components.Transform{Position: mgl64.Vec3{1000, 0, 0}})
	ecs.Add(reg, e1, components.Mass{CurrentKg: 1})
	ecs.Add(reg, e1, components.ForceAccumulator{})

	e2 := reg.Create()
	ecs.Add(reg, e2, components.Transform{Position: mgl64.Vec3{2000, 0, 0}})
	ecs.Add(reg, e2, components.Mass{CurrentKg: 1})
	ecs.Add(reg, e2, components.ForceAccumulator{})

	NewGravity().Update(reg, 0.01)

	f1, _ := ecs.Get[components.ForceAccumulator](reg, e1)
	f2, _ := ecs.Get[components.ForceAccumulator](reg, e2)
	ratio := f1.TotalForce.Len() / f2.TotalForce.Len()
	if math.Abs(ratio-4) > 1e-6 {
		t.Fatalf("inverse-square ratio = %v, want 4", ratio)
	}
}

func TestGravitySkipsEntityAtOrigin(t *testing.T) {
	reg := ecs.NewRegistry()
	e := reg.Create()
	ecs.Add(reg, e, components.Transform{})
	ecs.Add(reg, e, components.Mass{CurrentKg: 1})
	ecs.Add(reg, e, components.ForceAccumulator{})

	NewGravity().Update(reg, 0.01)

	f, _ := ecs.Get[components.ForceAccumulator](reg, e)
	if f.TotalForce != (mgl64.Vec3{}) {
		t.Fatalf("expected no force at degenerate radius, got %v", f.TotalForce)
	}
}
