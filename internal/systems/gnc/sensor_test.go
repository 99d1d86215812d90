package gnc

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/strikeengine/strikeengine/internal/components"
	"github.com/strikeengine/strikeengine/internal/dataservice"
	"github.com/strikeengine/strikeengine/internal/ecs"
)

func writeRCSProfile(t *testing.T, dir, name string, dbsm float64) string {
	t.Helper()
	table := dataservice.RCSTable{
		AzimuthBreakpointsDeg:   []float64{-180, 180},
		ElevationBreakpointsDeg: []float64{-90, 90},
		RCSTableDbsm:            [][]float64{{dbsm, dbsm}, {dbsm, dbsm}},
	}
	data, err := json.Marshal(table)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestSensorRFLocksWithinRangeAndFOV(t *testing.T) {
	dir := t.TempDir()
	profile := writeRCSProfile(t, dir, "target.json", 10) // 10 dBsm = 10 m^2
	rcsDB := dataservice.NewRCSDatabase(dir)
	irDB := dataservice.NewIRDatabase(dir)

	reg := ecs.NewRegistry()

	missile := reg.Create()
	ecs.Add(reg, missile, components.Transform{Orientation: mgl64.QuatIdent()})
	ecs.Add(reg, missile, components.Seeker{Type: components.SeekerRF, FOVDeg: 60, MaxRangeM: 50000, IsActive: true})
	ecs.Add(reg, missile, components.Antenna{
		PtW: 1000, GdB: 30, LambdaM: 0.03,
		NoiseFloorW: 1e-16, BaseNoiseFloorW: 1e-16, SNRThreshdB: 3,
	})

	target := reg.Create()
	ecs.Add(reg, target, components.Transform{Position: mgl64.Vec3{5000, 0, 0}, Orientation: mgl64.QuatIdent()})
	ecs.Add(reg, target, components.Target{RCSM2: 10})
	ecs.Add(reg, target, components.RCSProfile{ProfilePath: profile})

	sensor := NewSensor(rcsDB, irDB)
	sensor.Update(reg, 0)

	seeker, _ := ecs.Get[components.Seeker](reg, missile)
	if !seeker.HasLock {
		t.Fatalf("expected lock, got none")
	}
	if seeker.LockedTarget != target {
		t.Fatalf("locked wrong target: %v", seeker.LockedTarget)
	}
}

func TestSensorRFNoLockBeyondMaxRange(t *testing.T) {
	dir := t.TempDir()
	profile := writeRCSProfile(t, dir, "target.json", 10)
	rcsDB := dataservice.NewRCSDatabase(dir)
	irDB := dataservice.NewIRDatabase(dir)

	reg := ecs.NewRegistry()
	missile := reg.Create()
	ecs.Add(reg, missile, components.Transform{Orientation: mgl64.QuatIdent()})
	ecs.Add(reg, missile, components.Seeker{Type: components.SeekerRF, FOVDeg: 60, MaxRangeM: 1000, IsActive: true})
	ecs.Add(reg, missile, components.Antenna{PtW: 1000, GdB: 30, LambdaM: 0.03, NoiseFloorW: 1e-12, BaseNoiseFloorW: 1e-12, SNRThreshdB: 10})

	target := reg.Create()
	ecs.Add(reg, target, components.Transform{Position: mgl64.Vec3{50000, 0, 0}, Orientation: mgl64.QuatIdent()})
	ecs.Add(reg, target, components.Target{RCSM2: 10})
	ecs.Add(reg, target, components.RCSProfile{ProfilePath: profile})

	NewSensor(rcsDB, irDB).Update(reg, 0)

	seeker, _ := ecs.Get[components.Seeker](reg, missile)
	if seeker.HasLock {
		t.Fatalf("expected no lock beyond max range")
	}
}

func TestSensorInactiveSeekerClearsLock(t *testing.T) {
	reg := ecs.NewRegistry()
	missile := reg.Create()
	ecs.Add(reg, missile, components.Transform{Orientation: mgl64.QuatIdent()})
	ecs.Add(reg, missile, components.Seeker{Type: components.SeekerRF, IsActive: false, HasLock: true})

	NewSensor(dataservice.NewRCSDatabase(t.TempDir()), dataservice.NewIRDatabase(t.TempDir())).Update(reg, 0)

	seeker, _ := ecs.Get[components.Seeker](reg, missile)
	if seeker.HasLock {
		t.Fatalf("expected inactive seeker to clear lock")
	}
}
