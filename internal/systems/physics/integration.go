package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/strikeengine/strikeengine/internal/components"
	"github.com/strikeengine/strikeengine/internal/ecs"
	"github.com/strikeengine/strikeengine/internal/mathx"
)

// Integration is the terminal physics system: it consumes the tick's
// accumulated forces and torques, advances linear state with RK4 against a
// constant per-tick acceleration, advances angular state with an
// Euler-style update, and clears the accumulator for the next tick.
type Integration struct{}

// NewIntegration constructs the system.
func NewIntegration() *Integration { return &Integration{} }

func (*Integration) Name() string { return "Integration" }

func (*Integration) Update(reg *ecs.Registry, dt float64) {
	ecs.View5(reg, func(_ ecs.Entity, t *components.Transform, v *components.Velocity, m *components.Mass, inertia *components.Inertia, f *components.ForceAccumulator) {
		defer f.Clear()

		if m.InverseKg <= 0 {
			// Static body: still absorbs whatever forces it was sent, but
			// does not move.
			return
		}

		accel := f.TotalForce.Mul(m.InverseKg)
		newPos, newVel := rk4ConstantAccel(t.Position, v.Linear, accel, dt)
		t.Position = newPos
		v.Linear = newVel

		omega := v.Angular
		iOmega := inertia.Tensor.Mul3x1(omega)
		gyroscopic := omega.Cross(iOmega)
		angularAccel := inertia.InverseTensor.Mul3x1(f.TotalTorque.Sub(gyroscopic))

		newOmega := omega.Add(angularAccel.Mul(dt))
		v.Angular = newOmega

		t.Orientation = mathx.IntegrateOrientation(t.Orientation, newOmega, dt)
	})
}

// rk4ConstantAccel integrates (position, velocity) by dt under a constant
// acceleration using classical RK4. Forces are produced once per tick by
// the other physics systems, so the acceleration is held fixed across the
// four sub-stage evaluations rather than resampled from state — this is
// spec-mandated, not a simplification, and it collapses algebraically to
// the exact constant-acceleration kinematic update, which is exactly the
// property the integration round-trip test checks.
func rk4ConstantAccel(p, v, a mgl64.Vec3, dt float64) (mgl64.Vec3, mgl64.Vec3) {
	type state struct {
		p, v mgl64.Vec3
	}
	deriv := func(s state) state {
		return state{p: s.v, v: a}
	}
	scale := func(s state, k float64) state {
		return state{p: s.p.Mul(k), v: s.v.Mul(k)}
	}
	add := func(x, y state) state {
		return state{p: x.p.Add(y.p), v: x.v.Add(y.v)}
	}

	y0 := state{p: p, v: v}
	k1 := deriv(y0)
	k2 := deriv(add(y0, scale(k1, dt/2)))
	k3 := deriv(add(y0, scale(k2, dt/2)))
	k4 := deriv(add(y0, scale(k3, dt)))

	sum := add(add(k1, scale(k2, 2)), add(scale(k3, 2), k4))
	next := add(y0, scale(sum, dt/6))
	return next.p, next.v
}
