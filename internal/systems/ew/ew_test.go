package ew

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/strikeengine/strikeengine/internal/components"
	"github.com/strikeengine/strikeengine/internal/ecs"
)

func TestElectronicWarfareRaisesNoiseFloorFromActiveJammer(t *testing.T) {
	reg := ecs.NewRegistry()

	jammer := reg.Create()
	ecs.Add(reg, jammer, components.Transform{Position: mgl64.Vec3{1000, 0, 0}})
	ecs.Add(reg, jammer, components.Jammer{ERPW: 1000, Active: true})

	receiver := reg.Create()
	ecs.Add(reg, receiver, components.Transform{Position: mgl64.Vec3{0, 0, 0}})
	ecs.Add(reg, receiver, components.Antenna{GdB: 20, LambdaM: 0.03, BaseNoiseFloorW: 1e-14})

	NewElectronicWarfare().Update(reg, 0)

	antenna, _ := ecs.Get[components.Antenna](reg, receiver)
	if antenna.NoiseFloorW <= antenna.BaseNoiseFloorW {
		t.Fatalf("expected jammer to raise noise floor above baseline: got %v", antenna.NoiseFloorW)
	}
}

func TestElectronicWarfareResetsToBaselineWhenJammerInactive(t *testing.T) {
	reg := ecs.NewRegistry()

	jammer := reg.Create()
	ecs.Add(reg, jammer, components.Transform{Position: mgl64.Vec3{1000, 0, 0}})
	ecs.Add(reg, jammer, components.Jammer{ERPW: 1000, Active: false})

	receiver := reg.Create()
	ecs.Add(reg, receiver, components.Transform{Position: mgl64.Vec3{0, 0, 0}})
	ecs.Add(reg, receiver, components.Antenna{GdB: 20, LambdaM: 0.03, NoiseFloorW: 999, BaseNoiseFloorW: 1e-14})

	NewElectronicWarfare().Update(reg, 0)

	antenna, _ := ecs.Get[components.Antenna](reg, receiver)
	if antenna.NoiseFloorW != antenna.BaseNoiseFloorW {
		t.Fatalf("expected noise floor reset to baseline with no active jammer, got %v", antenna.NoiseFloorW)
	}
}

func TestElectronicWarfareDispensesChaffAndDecrementsCount(t *testing.T) {
	reg := ecs.NewRegistry()

	dispenser := reg.Create()
	ecs.Add(reg, dispenser, components.Transform{Position: mgl64.Vec3{10, 20, 30}})
	ecs.Add(reg, dispenser, components.CountermeasureDispenser{ChaffCount: 2, DeployChaffCmd: true})

	NewElectronicWarfare().Update(reg, 0)

	d, _ := ecs.Get[components.CountermeasureDispenser](reg, dispenser)
	if d.ChaffCount != 1 {
		t.Fatalf("ChaffCount = %d, want 1", d.ChaffCount)
	}
	if d.DeployChaffCmd {
		t.Fatalf("DeployChaffCmd should be cleared after dispensing")
	}
	if ecs.Count[components.RCSProfile](reg) != 1 {
		t.Fatalf("expected one chaff entity with an RCSProfile")
	}
}

func TestElectronicWarfareDoesNotDispenseWhenCountIsZero(t *testing.T) {
	reg := ecs.NewRegistry()

	dispenser := reg.Create()
	ecs.Add(reg, dispenser, components.Transform{})
	ecs.Add(reg, dispenser, components.CountermeasureDispenser{ChaffCount: 0, DeployChaffCmd: true})

	NewElectronicWarfare().Update(reg, 0)

	if ecs.Count[components.RCSProfile](reg) != 0 {
		t.Fatalf("expected no chaff entity when count is zero")
	}
	d, _ := ecs.Get[components.CountermeasureDispenser](reg, dispenser)
	if !d.DeployChaffCmd {
		t.Fatalf("command should remain set when dispensing fails for lack of inventory")
	}
}
