// Package mathx collects the small numeric helpers systems share: clamping,
// interpolation, bilinear table lookups, quaternion integration, and
// per-entity-seeded noise generation. Vector and quaternion types themselves
// are github.com/go-gl/mathgl/mgl64, following the teacher's own choice of
// library for 3-D double-precision math (actor.go, event.go, handler.go all
// use mgl64.Vec3).
package mathx

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DegToRad and RadToDeg convert between degrees and radians, used throughout
// the seeker and aspect-angle calculations, which the data tables express in
// degrees.
const (
	DegToRad = math.Pi / 180
	RadToDeg = 180 / math.Pi
)

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates between a and b at parameter t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// SafeNormalize returns v normalized, or the zero vector with ok=false if
// v's length is below eps (guards the "zero-length vector normalization" §7
// numerically-degenerate case).
func SafeNormalize(v mgl64.Vec3, eps float64) (mgl64.Vec3, bool) {
	l := v.Len()
	if l < eps {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// AxisAngleQuat builds the unit quaternion representing a rotation of angle
// radians about axis. If axis has near-zero length (no rotation this tick)
// it returns the identity quaternion.
func AxisAngleQuat(angle float64, axis mgl64.Vec3) mgl64.Quat {
	unitAxis, ok := SafeNormalize(axis, 1e-12)
	if !ok {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatRotate(angle, unitAxis)
}

// IntegrateOrientation advances orientation by the body-frame angular
// velocity omega (rad/s) over dt seconds: builds an axis-angle increment
// from omega*dt, right-multiplies it onto the body-to-world orientation,
// and renormalizes (spec §4.4's "orientation
// updated by axis-angle quaternion from body angular velocity × dt, then
// renormalized").
func IntegrateOrientation(orientation mgl64.Quat, omega mgl64.Vec3, dt float64) mgl64.Quat {
	angle := omega.Len() * dt
	if angle < 1e-15 {
		return orientation.Normalize()
	}
	delta := AxisAngleQuat(angle, omega)
	return orientation.Mul(delta).Normalize()
}

// BilinearInterp2D interpolates value(x) at (xq, yq) over a rectangular grid
// defined by strictly increasing xs, ys breakpoints and a [len(ys)][len(xs)]
// value table, clamping the query point to the table's domain. This backs
// every (Mach, AoA) / (Mach, q) / (azimuth, elevation) lookup in the engine:
// aero coefficients, RCS, IR radiant intensity, and PID gain schedules.
func BilinearInterp2D(xs, ys []float64, table [][]float64, xq, yq float64) float64 {
	ix := breakpointIndex(xs, xq)
	iy := breakpointIndex(ys, yq)

	x0, x1 := xs[ix], xs[ix+1]
	y0, y1 := ys[iy], ys[iy+1]

	var tx float64
	if x1 != x0 {
		tx = Clamp((xq-x0)/(x1-x0), 0, 1)
	}
	var ty float64
	if y1 != y0 {
		ty = Clamp((yq-y0)/(y1-y0), 0, 1)
	}

	v00 := table[iy][ix]
	v10 := table[iy][ix+1]
	v01 := table[iy+1][ix]
	v11 := table[iy+1][ix+1]

	top := Lerp(v00, v10, tx)
	bottom := Lerp(v01, v11, tx)
	return Lerp(top, bottom, ty)
}

// breakpointIndex returns i such that breakpoints[i] <= q <= breakpoints[i+1],
// clamping q to the table domain at either end.
func breakpointIndex(breakpoints []float64, q float64) int {
	n := len(breakpoints)
	if n < 2 {
		return 0
	}
	if q <= breakpoints[0] {
		return 0
	}
	if q >= breakpoints[n-1] {
		return n - 2
	}
	lo, hi := 0, n-2
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if breakpoints[mid] <= q {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// RotateWorldToBody rotates a world-frame vector into the body frame
// described by orientation (the inverse rotation).
func RotateWorldToBody(orientation mgl64.Quat, worldVec mgl64.Vec3) mgl64.Vec3 {
	return orientation.Conjugate().Rotate(worldVec)
}

// RotateBodyToWorld rotates a body-frame vector into the world frame
// described by orientation.
func RotateBodyToWorld(orientation mgl64.Quat, bodyVec mgl64.Vec3) mgl64.Vec3 {
	return orientation.Rotate(bodyVec)
}

// BodyForward is the engine-wide body-forward axis convention (design note
// open question #1: propulsion's +X convention wins; every system that
// needs a forward axis conforms to it).
var BodyForward = mgl64.Vec3{1, 0, 0}

// BodyUp is the body +Z axis, used by Aerodynamics to build the lift plane.
var BodyUp = mgl64.Vec3{0, 0, 1}

// AngleBetween returns the angle in radians between two vectors, using the
// dot product of their normalized forms and guarding the acos domain
// against floating-point overshoot.
func AngleBetween(a, b mgl64.Vec3) float64 {
	au, aok := SafeNormalize(a, 1e-12)
	bu, bok := SafeNormalize(b, 1e-12)
	if !aok || !bok {
		return 0
	}
	return math.Acos(Clamp(au.Dot(bu), -1, 1))
}
