package physics

import (
	"math"

	"github.com/strikeengine/strikeengine/internal/components"
	"github.com/strikeengine/strikeengine/internal/dataservice"
	"github.com/strikeengine/strikeengine/internal/ecs"
	"github.com/strikeengine/strikeengine/internal/mathx"
)

// Aerodynamics computes lift and drag from the aero coefficient database,
// ambient atmosphere, and an optional ground-effect multiplier.
type Aerodynamics struct {
	atmosphere *dataservice.AtmosphereTable
	aeroDB     *dataservice.AeroDatabase
}

// NewAerodynamics constructs the system with its injected dependencies.
func NewAerodynamics(atmosphere *dataservice.AtmosphereTable, aeroDB *dataservice.AeroDatabase) *Aerodynamics {
	return &Aerodynamics{atmosphere: atmosphere, aeroDB: aeroDB}
}

func (*Aerodynamics) Name() string { return "Aerodynamics" }

func (a *Aerodynamics) Update(reg *ecs.Registry, _ float64) {
	ecs.View4(reg, func(_ ecs.Entity, t *components.Transform, v *components.Velocity, ap *components.AerodynamicProfile, f *components.ForceAccumulator) {
		speedSq := v.Linear.Dot(v.Linear)
		if speedSq < 1e-6 {
			ap.CurAoARad = 0
			ap.CurMach = 0
			return
		}

		altitudeM := t.Position.Len()
		atm := a.atmosphere.Lookup(altitudeM)

		speed := math.Sqrt(speedSq)
		vHat := v.Linear.Mul(1 / speed)
		bodyForwardWorld := mathx.RotateBodyToWorld(t.Orientation, mathx.BodyForward)

		mach := speed / atm.SpeedOfSoundMS
		aoa := math.Acos(mathx.Clamp(vHat.Dot(bodyForwardWorld), -1, 1))
		ap.CurMach = mach
		ap.CurAoARad = aoa

		table, err := a.aeroDB.Get(ap.ProfileID)
		if err != nil {
			// §7 class 5: skip this entity's contribution for this tick;
			// the cache does not memoize the failure, so a later tick retries.
			return
		}
		cl, cd := table.Lookup(mach, aoa)

		if ap.WingspanM > 0 {
			aglM := t.Position[1]
			if aglM > 0 && aglM < 2*ap.WingspanM {
				hb := aglM / ap.WingspanM
				hb15 := math.Pow(hb, 1.5)
				k := 33 * hb15 / (1 + 33*hb15)
				cd *= k
				cl *= 1 + 0.5*(1-k)
			}
		}

		q := 0.5 * atm.DensityKgM3 * speedSq
		lift := cl * q * ap.RefAreaM2
		drag := cd * q * ap.RefAreaM2

		dragDir := vHat.Mul(-1)
		f.Add(dragDir.Mul(drag))

		bodyUpWorld := mathx.RotateBodyToWorld(t.Orientation, mathx.BodyUp)
		liftAxis := vHat.Cross(bodyUpWorld)
		liftDir, ok := mathx.SafeNormalize(liftAxis.Cross(vHat), 1e-9)
		if ok {
			f.Add(liftDir.Mul(lift))
		}
	})
}
