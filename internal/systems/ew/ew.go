// Package ew implements Electronic Warfare: jammer noise-floor injection
// into antenna receivers, and chaff/flare countermeasure dispensing.
package ew

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/strikeengine/strikeengine/internal/components"
	"github.com/strikeengine/strikeengine/internal/ecs"
)

// ChaffRCSProfilePath and FlareIRProfilePath name the generic signature
// profiles assigned to countermeasure entities created by a dispenser.
const (
	ChaffRCSProfilePath = "chaff_generic.json"
	FlareIRProfilePath  = "flare_generic.json"
)

type jammerSource struct {
	position mgl64.Vec3
	erpW     float64
}

// ElectronicWarfare must run before Sensor in the scheduling graph: it
// raises antenna noise floors from active jammers and dispenses
// countermeasure entities that Sensor can observe starting next tick.
type ElectronicWarfare struct{}

// NewElectronicWarfare constructs the system.
func NewElectronicWarfare() *ElectronicWarfare { return &ElectronicWarfare{} }

func (*ElectronicWarfare) Name() string { return "ElectronicWarfare" }

func (s *ElectronicWarfare) Update(reg *ecs.Registry, _ float64) {
	jammers := make([]jammerSource, 0)
	ecs.View2(reg, func(_ ecs.Entity, t *components.Transform, j *components.Jammer) {
		if j.Active {
			jammers = append(jammers, jammerSource{position: t.Position, erpW: j.ERPW})
		}
	})

	ecs.View2(reg, func(_ ecs.Entity, t *components.Transform, antenna *components.Antenna) {
		antenna.NoiseFloorW = antenna.BaseNoiseFloorW
		for _, j := range jammers {
			r := t.Position.Sub(j.position).Len()
			if r < 1 {
				r = 1
			}
			powerDensity := j.erpW / (4 * math.Pi * r * r)
			g := math.Pow(10, antenna.GdB/10)
			effectiveAperture := g * antenna.LambdaM * antenna.LambdaM / (4 * math.Pi)
			antenna.NoiseFloorW += powerDensity * effectiveAperture
		}
	})

	s.dispense(reg)
}

func (s *ElectronicWarfare) dispense(reg *ecs.Registry) {
	type deployment struct {
		transform components.Transform
		chaff     bool
		flare     bool
	}
	deployments := make([]deployment, 0)

	ecs.View2(reg, func(_ ecs.Entity, t *components.Transform, d *components.CountermeasureDispenser) {
		dep := deployment{transform: *t}
		if d.DeployChaffCmd && d.ChaffCount > 0 {
			d.ChaffCount--
			d.DeployChaffCmd = false
			dep.chaff = true
		}
		if d.DeployFlareCmd && d.FlareCount > 0 {
			d.FlareCount--
			d.DeployFlareCmd = false
			dep.flare = true
		}
		if dep.chaff || dep.flare {
			deployments = append(deployments, dep)
		}
	})

	for _, dep := range deployments {
		if dep.chaff {
			e := reg.Create()
			ecs.Add(reg, e, dep.transform)
			ecs.Add(reg, e, components.RCSProfile{ProfilePath: ChaffRCSProfilePath})
			ecs.Add(reg, e, components.Target{})
		}
		if dep.flare {
			e := reg.Create()
			ecs.Add(reg, e, dep.transform)
			ecs.Add(reg, e, components.IRSignature{ProfilePath: FlareIRProfilePath})
			ecs.Add(reg, e, components.Target{})
		}
	}
}
