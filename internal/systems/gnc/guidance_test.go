package gnc

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/strikeengine/strikeengine/internal/components"
	"github.com/strikeengine/strikeengine/internal/ecs"
)

func setupMissileAndTarget(t *testing.T, reg *ecs.Registry, law components.GuidanceLaw, n float64) (ecs.Entity, ecs.Entity) {
	t.Helper()
	target := reg.Create()
	ecs.Add(reg, target, components.Transform{Position: mgl64.Vec3{1000, 0, 0}, Orientation: mgl64.QuatIdent()})
	ecs.Add(reg, target, components.Velocity{Linear: mgl64.Vec3{0, 50, 0}})

	missile := reg.Create()
	ecs.Add(reg, missile, components.Guidance{TargetEntity: target, Law: law, N: n, Enabled: true})
	ecs.Add(reg, missile, components.Seeker{HasLock: true, LockedTarget: target})
	ecs.Add(reg, missile, components.NavigationState{
		EstPosition: mgl64.Vec3{0, 0, 0},
		EstVelocity: mgl64.Vec3{300, 0, 0},
		Initialized: true,
	})
	ecs.Add(reg, missile, components.AutopilotCommand{})
	return missile, target
}

func TestGuidancePNProducesNonzeroLateralCommandOnCrossingTarget(t *testing.T) {
	reg := ecs.NewRegistry()
	missile, _ := setupMissileAndTarget(t, reg, components.ProportionalNavigation, 3)

	NewGuidance().Update(reg, 0)

	cmd, _ := ecs.Get[components.AutopilotCommand](reg, missile)
	if cmd.CommandedAccelG.Len() == 0 {
		t.Fatalf("expected nonzero PN command against a crossing target")
	}
}

func TestGuidanceZeroCommandWithoutLock(t *testing.T) {
	reg := ecs.NewRegistry()
	missile, _ := setupMissileAndTarget(t, reg, components.ProportionalNavigation, 3)
	seeker, _ := ecs.Get[components.Seeker](reg, missile)
	seeker.HasLock = false

	NewGuidance().Update(reg, 0)

	cmd, _ := ecs.Get[components.AutopilotCommand](reg, missile)
	if cmd.CommandedAccelG != (mgl64.Vec3{}) {
		t.Fatalf("expected zero command without lock, got %v", cmd.CommandedAccelG)
	}
}

func TestGuidanceZeroCommandWhenNotEnabled(t *testing.T) {
	reg := ecs.NewRegistry()
	missile, _ := setupMissileAndTarget(t, reg, components.ProportionalNavigation, 3)
	g, _ := ecs.Get[components.Guidance](reg, missile)
	g.Enabled = false

	NewGuidance().Update(reg, 0)

	cmd, _ := ecs.Get[components.AutopilotCommand](reg, missile)
	if cmd.CommandedAccelG != (mgl64.Vec3{}) {
		t.Fatalf("expected zero command when guidance disabled")
	}
}

func TestGuidancePNZeroCommandWhenOpeningNotClosing(t *testing.T) {
	reg := ecs.NewRegistry()
	target := reg.Create()
	ecs.Add(reg, target, components.Transform{Position: mgl64.Vec3{1000, 0, 0}, Orientation: mgl64.QuatIdent()})
	ecs.Add(reg, target, components.Velocity{Linear: mgl64.Vec3{1000, 0, 0}}) // receding faster than missile closes

	missile := reg.Create()
	ecs.Add(reg, missile, components.Guidance{TargetEntity: target, Law: components.ProportionalNavigation, N: 3, Enabled: true})
	ecs.Add(reg, missile, components.Seeker{HasLock: true, LockedTarget: target})
	ecs.Add(reg, missile, components.NavigationState{EstPosition: mgl64.Vec3{}, EstVelocity: mgl64.Vec3{10, 0, 0}, Initialized: true})
	ecs.Add(reg, missile, components.AutopilotCommand{})

	NewGuidance().Update(reg, 0)

	cmd, _ := ecs.Get[components.AutopilotCommand](reg, missile)
	if cmd.CommandedAccelG != (mgl64.Vec3{}) {
		t.Fatalf("expected zero command when opening, got %v", cmd.CommandedAccelG)
	}
}

func TestGuidanceAPNAddsTargetAccelerationTerm(t *testing.T) {
	regPN := ecs.NewRegistry()
	missilePN, _ := setupMissileAndTarget(t, regPN, components.ProportionalNavigation, 3)
	NewGuidance().Update(regPN, 0)
	cmdPN, _ := ecs.Get[components.AutopilotCommand](regPN, missilePN)

	regAPN := ecs.NewRegistry()
	missileAPN, targetAPN := setupMissileAndTarget(t, regAPN, components.AugmentedProportionalNavigation, 3)
	ecs.Add(regAPN, targetAPN, components.Mass{CurrentKg: 1, InverseKg: 1})
	force := components.ForceAccumulator{}
	force.Add(mgl64.Vec3{0, 0, 500})
	ecs.Add(regAPN, targetAPN, force)
	NewGuidance().Update(regAPN, 0)
	cmdAPN, _ := ecs.Get[components.AutopilotCommand](regAPN, missileAPN)

	if math.Abs(cmdAPN.CommandedAccelG[2]-cmdPN.CommandedAccelG[2]) < 1e-9 {
		t.Fatalf("expected APN's target-acceleration term to shift the Z command away from PN's")
	}
}
