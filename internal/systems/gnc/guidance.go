package gnc

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/strikeengine/strikeengine/internal/components"
	"github.com/strikeengine/strikeengine/internal/ecs"
	"github.com/strikeengine/strikeengine/internal/mathx"
)

// Guidance evaluates each locked missile's closed-loop guidance law against
// the missile's own estimated state and the target's ground truth, writing
// a commanded world-frame acceleration (in g) for Control to rotate into
// the body frame and track.
type Guidance struct{}

// NewGuidance constructs the system.
func NewGuidance() *Guidance { return &Guidance{} }

func (*Guidance) Name() string { return "Guidance" }

func (*Guidance) Update(reg *ecs.Registry, _ float64) {
	ecs.View3(reg, func(e ecs.Entity, g *components.Guidance, seeker *components.Seeker, ns *components.NavigationState) {
		cmd, hasCmd := ecs.Get[components.AutopilotCommand](reg, e)
		if !hasCmd {
			return
		}

		if !g.Enabled || !seeker.HasLock || !ns.Initialized {
			cmd.CommandedAccelG = mgl64.Vec3{}
			return
		}

		target := seeker.LockedTarget
		if target == ecs.NullEntity || !reg.IsAlive(target) {
			cmd.CommandedAccelG = mgl64.Vec3{}
			return
		}
		targetTransform, okT := ecs.Get[components.Transform](reg, target)
		targetVelocity, okV := ecs.Get[components.Velocity](reg, target)
		if !okT || !okV {
			cmd.CommandedAccelG = mgl64.Vec3{}
			return
		}

		var accelWorld mgl64.Vec3
		switch g.Law {
		case components.ProportionalNavigation:
			accelWorld = proNav(reg, ns, targetTransform, targetVelocity, target, g.N, false)
		case components.AugmentedProportionalNavigation:
			accelWorld = proNav(reg, ns, targetTransform, targetVelocity, target, g.N, true)
		case components.PurePursuit:
			accelWorld = purePursuit(ns, targetTransform)
		}

		cmd.CommandedAccelG = accelWorld.Mul(1 / standardGravityMS2)
	})
}

// proNav implements Proportional Navigation and, when augmented, adds the
// (N/2)·a_target term of Augmented PN.
func proNav(reg *ecs.Registry, ns *components.NavigationState, targetT *components.Transform, targetV *components.Velocity, target ecs.Entity, n float64, augmented bool) mgl64.Vec3 {
	relPos := targetT.Position.Sub(ns.EstPosition)
	relVel := targetV.Linear.Sub(ns.EstVelocity)

	r := relPos.Len()
	if r < 1e-9 {
		return mgl64.Vec3{}
	}
	losHat := relPos.Mul(1 / r)

	rDot := relVel.Dot(losHat)
	closingV := -rDot
	if closingV < 0 {
		return mgl64.Vec3{}
	}

	omegaLOS := relPos.Cross(relVel).Mul(1 / (r * r))
	accel := omegaLOS.Cross(losHat).Mul(n * closingV)

	if augmented {
		targetAccel := targetAcceleration(reg, target)
		accel = accel.Add(targetAccel.Mul(n / 2))
	}
	return accel
}

// targetAcceleration derives the target's world-frame acceleration from its
// own ForceAccumulator and Mass, if present; otherwise 0 (spec §4.10: "derive
// from target ForceAccumulator/mass if present, else 0").
func targetAcceleration(reg *ecs.Registry, target ecs.Entity) mgl64.Vec3 {
	force, okF := ecs.Get[components.ForceAccumulator](reg, target)
	mass, okM := ecs.Get[components.Mass](reg, target)
	if !okF || !okM || mass.InverseKg <= 0 {
		return mgl64.Vec3{}
	}
	return force.TotalForce.Mul(mass.InverseKg)
}

// purePursuit steers the missile's velocity vector toward the current LOS
// to the target (rather than leading it, as PN does): the commanded
// acceleration is perpendicular to the missile's velocity, in the plane
// containing velocity and LOS, scaled by the angle between them and the
// missile's speed.
func purePursuit(ns *components.NavigationState, targetT *components.Transform) mgl64.Vec3 {
	losHat, okLOS := mathx.SafeNormalize(targetT.Position.Sub(ns.EstPosition), 1e-9)
	velHat, okVel := mathx.SafeNormalize(ns.EstVelocity, 1e-9)
	if !okLOS || !okVel {
		return mgl64.Vec3{}
	}
	axis, okAxis := mathx.SafeNormalize(velHat.Cross(losHat), 1e-9)
	if !okAxis {
		return mgl64.Vec3{}
	}
	angle := mathx.AngleBetween(velHat, losHat)
	return axis.Mul(angle * ns.EstVelocity.Len())
}
