package gnc

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/strikeengine/strikeengine/internal/components"
	"github.com/strikeengine/strikeengine/internal/dataservice"
	"github.com/strikeengine/strikeengine/internal/ecs"
	"github.com/strikeengine/strikeengine/internal/mathx"
)

// Sensor resolves every seeker's target lock each tick: it scans the set of
// entities bearing a signature matching the seeker's modality, applies
// geometric gating and a modality-specific detection test, and sets (or
// clears) has_lock/locked_target.
type Sensor struct {
	rcsDB *dataservice.RCSDatabase
	irDB  *dataservice.IRDatabase
}

// NewSensor constructs the system with its injected signature databases.
func NewSensor(rcsDB *dataservice.RCSDatabase, irDB *dataservice.IRDatabase) *Sensor {
	return &Sensor{rcsDB: rcsDB, irDB: irDB}
}

func (*Sensor) Name() string { return "Sensor" }

type targetCandidate struct {
	entity ecs.Entity
	t      components.Transform
}

func (s *Sensor) Update(reg *ecs.Registry, _ float64) {
	targets := make([]targetCandidate, 0)
	ecs.View2(reg, func(e ecs.Entity, t *components.Transform, _ *components.Target) {
		targets = append(targets, targetCandidate{entity: e, t: *t})
	})

	ecs.View2(reg, func(e ecs.Entity, t *components.Transform, seeker *components.Seeker) {
		if !seeker.IsActive {
			seeker.HasLock = false
			seeker.LockedTarget = ecs.NullEntity
			return
		}

		switch seeker.Type {
		case components.SeekerRF:
			s.scanRF(reg, e, t, seeker, targets)
		case components.SeekerIR, components.SeekerIIR:
			s.scanIR(reg, e, t, seeker, targets)
		default:
			seeker.HasLock = false
			seeker.LockedTarget = ecs.NullEntity
		}
	})
}

func (s *Sensor) scanRF(reg *ecs.Registry, self ecs.Entity, t *components.Transform, seeker *components.Seeker, targets []targetCandidate) {
	antenna, ok := ecs.Get[components.Antenna](reg, self)
	if !ok {
		seeker.HasLock = false
		seeker.LockedTarget = ecs.NullEntity
		return
	}

	for _, cand := range targets {
		if cand.entity == self {
			continue
		}
		rcsProfile, ok := ecs.Get[components.RCSProfile](reg, cand.entity)
		if !ok {
			continue
		}
		los := cand.t.Position.Sub(t.Position)
		r := los.Len()
		if !geometricGate(t, los, r, seeker.FOVDeg, seeker.MaxRangeM) {
			continue
		}

		bodyLOS := mathx.RotateWorldToBody(cand.t.Orientation, los.Mul(-1))
		az := math.Atan2(bodyLOS[1], bodyLOS[0]) * mathx.RadToDeg
		el := math.Asin(mathx.Clamp(-bodyLOS[2]/r, -1, 1)) * mathx.RadToDeg

		table, err := s.rcsDB.Get(rcsProfile.ProfilePath)
		if err != nil {
			continue
		}
		sigma := table.LookupM2(az, el)

		g := math.Pow(10, antenna.GdB/10)
		lambdaSq := antenna.LambdaM * antenna.LambdaM
		numerator := antenna.PtW * g * g * lambdaSq * sigma
		denominator := math.Pow(4*math.Pi, 3) * math.Pow(r, 4)
		if denominator <= 0 {
			continue
		}
		pr := numerator / denominator
		if antenna.NoiseFloorW <= 0 {
			continue
		}
		snrdB := 10 * math.Log10(pr/antenna.NoiseFloorW)
		if snrdB > antenna.SNRThreshdB {
			seeker.HasLock = true
			seeker.LockedTarget = cand.entity
			return
		}
	}
	seeker.HasLock = false
	seeker.LockedTarget = ecs.NullEntity
}

const lwirAbsorptionPerM = 0.00015
const mwirAbsorptionPerM = 0.00030

func (s *Sensor) scanIR(reg *ecs.Registry, self ecs.Entity, t *components.Transform, seeker *components.Seeker, targets []targetCandidate) {
	ir, ok := ecs.Get[components.InfraredSeeker](reg, self)
	if !ok {
		seeker.HasLock = false
		seeker.LockedTarget = ecs.NullEntity
		return
	}

	for _, cand := range targets {
		if cand.entity == self {
			continue
		}
		sig, ok := ecs.Get[components.IRSignature](reg, cand.entity)
		if !ok {
			continue
		}
		los := cand.t.Position.Sub(t.Position)
		r := los.Len()
		if !geometricGate(t, los, r, ir.FOVDeg, seeker.MaxRangeM) {
			continue
		}

		bodyLOS := mathx.RotateWorldToBody(cand.t.Orientation, los.Mul(-1))
		az := math.Atan2(bodyLOS[1], bodyLOS[0]) * mathx.RadToDeg
		el := math.Asin(mathx.Clamp(-bodyLOS[2]/r, -1, 1)) * mathx.RadToDeg

		table, err := s.irDB.Get(sig.ProfilePath)
		if err != nil {
			continue
		}
		intensity := table.LookupWattsPerSr(az, el)
		if r < 1e-6 {
			continue
		}
		irradiance := intensity / (r * r)

		absorption := mwirAbsorptionPerM
		if ir.Band == components.BandLWIR {
			absorption = lwirAbsorptionPerM
		}
		altitudeM := t.Position.Len()
		tau := math.Exp(-absorption*r) * math.Exp(-altitudeM/8000.0)

		if irradiance*tau > ir.SensitivityW {
			seeker.HasLock = true
			seeker.LockedTarget = cand.entity
			return
		}
	}
	seeker.HasLock = false
	seeker.LockedTarget = ecs.NullEntity
}

// geometricGate applies the range and field-of-view checks common to every
// seeker modality.
func geometricGate(t *components.Transform, los mgl64.Vec3, r, fovDeg, maxRangeM float64) bool {
	if maxRangeM > 0 && r > maxRangeM {
		return false
	}
	if r < 1e-9 {
		return true
	}
	forward := mathx.RotateBodyToWorld(t.Orientation, mathx.BodyForward)
	angle := mathx.AngleBetween(los, forward)
	return angle <= (fovDeg/2)*mathx.DegToRad
}
