package physics

import (
	"github.com/strikeengine/strikeengine/internal/components"
	"github.com/strikeengine/strikeengine/internal/dataservice"
	"github.com/strikeengine/strikeengine/internal/ecs"
	"github.com/strikeengine/strikeengine/internal/mathx"
)

const (
	standardGravityMS2  = 9.80665
	seaLevelPressurePa  = 101325.0
)

// Propulsion advances each entity's staged motor: burns propellant along
// the piecewise-linear thrust curve, interpolates specific impulse against
// ambient pressure, and jettisons stage mass at burnout.
type Propulsion struct {
	atmosphere *dataservice.AtmosphereTable
}

// NewPropulsion constructs the system with its injected atmosphere
// dependency (design notes §9: explicit construction-time injection, no
// process-wide atmosphere global).
func NewPropulsion(atmosphere *dataservice.AtmosphereTable) *Propulsion {
	return &Propulsion{atmosphere: atmosphere}
}

func (*Propulsion) Name() string { return "Propulsion" }

func (p *Propulsion) Update(reg *ecs.Registry, dt float64) {
	ecs.View4(reg, func(_ ecs.Entity, t *components.Transform, m *components.Mass, pr *components.Propulsion, f *components.ForceAccumulator) {
		if !pr.Active {
			return
		}
		if pr.CurrentStageIx >= len(pr.Stages) {
			pr.Active = false
			return
		}

		stage := &pr.Stages[pr.CurrentStageIx]
		if pr.TimeInStage >= stage.BurnS {
			p.jettisonStage(m, stage)
			pr.CurrentStageIx++
			pr.TimeInStage = 0
			if pr.CurrentStageIx >= len(pr.Stages) {
				pr.Active = false
			}
			return
		}

		thrustN := lookupThrust(stage.ThrustCurve, pr.TimeInStage)
		direction := mathx.RotateBodyToWorld(t.Orientation, mathx.BodyForward)
		f.Add(direction.Mul(thrustN))

		altitudeM := t.Position.Len()
		ambientPa := seaLevelPressurePa
		if p.atmosphere != nil {
			ambientPa = p.atmosphere.Lookup(altitudeM).PressurePa
		}
		pressureRatio := mathx.Clamp(ambientPa/seaLevelPressurePa, 0, 1)
		isp := mathx.Lerp(stage.IspVacuum, stage.IspSeaLevel, pressureRatio)
		if isp > 0 {
			mdot := thrustN / (isp * standardGravityMS2)
			p.depleteMass(m, mdot*dt)
		}

		pr.TimeInStage += dt
	})
}

func (p *Propulsion) jettisonStage(m *components.Mass, stage *components.PropulsionStage) {
	p.depleteMass(m, stage.MassKg)
}

func (p *Propulsion) depleteMass(m *components.Mass, deltaKg float64) {
	m.CurrentKg -= deltaKg
	if m.CurrentKg < m.DryKg {
		m.CurrentKg = m.DryKg
	}
	if m.CurrentKg > 0 {
		m.InverseKg = 1 / m.CurrentKg
	} else {
		m.InverseKg = 0
	}
}

// lookupThrust piecewise-linearly interpolates thrust at time t within the
// stage's thrust curve, clamping to the endpoints outside the curve's
// domain.
func lookupThrust(curve []components.ThrustPoint, t float64) float64 {
	if len(curve) == 0 {
		return 0
	}
	last := len(curve) - 1
	if t <= curve[0].TimeS {
		return curve[0].ThrustN
	}
	if t >= curve[last].TimeS {
		return curve[last].ThrustN
	}
	for i := 0; i < last; i++ {
		a, b := curve[i], curve[i+1]
		if t >= a.TimeS && t <= b.TimeS {
			span := b.TimeS - a.TimeS
			if span <= 0 {
				return a.ThrustN
			}
			frac := (t - a.TimeS) / span
			return mathx.Lerp(a.ThrustN, b.ThrustN, frac)
		}
	}
	return curve[last].ThrustN
}
