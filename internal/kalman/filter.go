// Package kalman implements the 6-state [position, velocity] linear filter
// used by Navigation to fuse GPS fixes against the inertial propagation
// between fixes.
package kalman

import "github.com/go-gl/mathgl/mgl64"

// ProcessNoiseVariance is the default tunable variance for the
// constant-acceleration process noise model (spec §4.8: "default 0.1").
const ProcessNoiseVariance = 0.1

// Filter6 is a 6-state Kalman filter over [px, py, pz, vx, vy, vz]. State
// and covariance are plain [6]float64 / [6][6]float64 rather than a general
// matrix type, since the dimension never varies.
type Filter6 struct {
	State      [6]float64
	Covariance [6][6]float64
}

// NewFilter6 builds a filter seeded at the given position and velocity with
// an initial covariance of initialVariance on every diagonal entry.
func NewFilter6(position, velocity mgl64.Vec3, initialVariance float64) *Filter6 {
	f := &Filter6{}
	f.State = [6]float64{position[0], position[1], position[2], velocity[0], velocity[1], velocity[2]}
	for i := 0; i < 6; i++ {
		f.Covariance[i][i] = initialVariance
	}
	return f
}

// Position extracts the position sub-state.
func (f *Filter6) Position() mgl64.Vec3 {
	return mgl64.Vec3{f.State[0], f.State[1], f.State[2]}
}

// Velocity extracts the velocity sub-state.
func (f *Filter6) Velocity() mgl64.Vec3 {
	return mgl64.Vec3{f.State[3], f.State[4], f.State[5]}
}

// Predict advances the filter dt seconds under constant-acceleration input
// accel (world frame), per spec §4.8:
//   F: identity with the p += v·dt block.
//   u: (½·dt²·a, dt·a) control input.
//   Q: constant-acceleration process noise scaled by processNoiseVariance.
func (f *Filter6) Predict(accel mgl64.Vec3, dt float64, processNoiseVariance float64) {
	if dt <= 0 {
		return
	}

	var next [6]float64
	for i := 0; i < 3; i++ {
		p := f.State[i]
		v := f.State[i+3]
		a := accel[i]
		next[i] = p + v*dt + 0.5*dt*dt*a
		next[i+3] = v + dt*a
	}
	f.State = next

	fMat := stateTransition(dt)
	f.Covariance = addMat(matMulMat(matMulMat(fMat, f.Covariance), transpose(fMat)), processNoise(dt, processNoiseVariance))
}

// UpdatePosition fuses a noisy position measurement (H selects the position
// subspace, R = σ²·I₃) via the standard Kalman gain/update/covariance
// equations.
func (f *Filter6) UpdatePosition(measured mgl64.Vec3, sigma float64) {
	r := sigma * sigma

	// Innovation: y = z - H x, with H = [I3 | 0].
	var innovation [3]float64
	for i := 0; i < 3; i++ {
		innovation[i] = measured[i] - f.State[i]
	}

	// Innovation covariance S = H P H^T + R, a 3x3 block: the top-left 3x3
	// of P, plus R on the diagonal.
	var s [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s[i][j] = f.Covariance[i][j]
		}
		s[i][i] += r
	}

	sInv, ok := invert3x3(s)
	if !ok {
		// Singular innovation covariance: §7 class 4 numerically-degenerate
		// guard — skip this fusion step rather than divide by zero.
		return
	}

	// Kalman gain K = P H^T S^-1, a 6x3 matrix: K's rows are P's columns
	// restricted to [:, :3], times sInv.
	var gain [6][3]float64
	for i := 0; i < 6; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += f.Covariance[i][k] * sInv[k][j]
			}
			gain[i][j] = sum
		}
	}

	for i := 0; i < 6; i++ {
		var correction float64
		for j := 0; j < 3; j++ {
			correction += gain[i][j] * innovation[j]
		}
		f.State[i] += correction
	}

	// P = (I - K H) P : subtract K times P's first three rows from P.
	var next [6][6]float64
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += gain[i][k] * f.Covariance[k][j]
			}
			next[i][j] = f.Covariance[i][j] - sum
		}
	}
	f.Covariance = next
}

func stateTransition(dt float64) [6][6]float64 {
	var m [6][6]float64
	for i := 0; i < 6; i++ {
		m[i][i] = 1
	}
	for i := 0; i < 3; i++ {
		m[i][i+3] = dt
	}
	return m
}

// processNoise builds the standard constant-acceleration discrete process
// noise matrix, scaled per axis by variance.
func processNoise(dt, variance float64) [6][6]float64 {
	var q [6][6]float64
	dt2 := dt * dt
	dt3 := dt2 * dt
	dt4 := dt3 * dt
	qpp := dt4 / 4 * variance
	qpv := dt3 / 2 * variance
	qvv := dt2 * variance
	for i := 0; i < 3; i++ {
		q[i][i] = qpp
		q[i][i+3] = qpv
		q[i+3][i] = qpv
		q[i+3][i+3] = qvv
	}
	return q
}

func matMulMat(a, b [6][6]float64) [6][6]float64 {
	var out [6][6]float64
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			var sum float64
			for k := 0; k < 6; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

func addMat(a, b [6][6]float64) [6][6]float64 {
	var out [6][6]float64
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			out[i][j] = a[i][j] + b[i][j]
		}
	}
	return out
}

func transpose(a [6][6]float64) [6][6]float64 {
	var out [6][6]float64
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			out[j][i] = a[i][j]
		}
	}
	return out
}

// invert3x3 inverts a 3x3 matrix via the adjugate/determinant method,
// reporting ok=false for a singular (or near-singular) matrix.
func invert3x3(m [3][3]float64) ([3][3]float64, bool) {
	det := m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])

	if det > -1e-12 && det < 1e-12 {
		return [3][3]float64{}, false
	}
	invDet := 1 / det

	var out [3][3]float64
	out[0][0] = (m[1][1]*m[2][2] - m[1][2]*m[2][1]) * invDet
	out[0][1] = (m[0][2]*m[2][1] - m[0][1]*m[2][2]) * invDet
	out[0][2] = (m[0][1]*m[1][2] - m[0][2]*m[1][1]) * invDet
	out[1][0] = (m[1][2]*m[2][0] - m[1][0]*m[2][2]) * invDet
	out[1][1] = (m[0][0]*m[2][2] - m[0][2]*m[2][0]) * invDet
	out[1][2] = (m[0][2]*m[1][0] - m[0][0]*m[1][2]) * invDet
	out[2][0] = (m[1][0]*m[2][1] - m[1][1]*m[2][0]) * invDet
	out[2][1] = (m[0][1]*m[2][0] - m[0][0]*m[2][1]) * invDet
	out[2][2] = (m[0][0]*m[1][1] - m[0][1]*m[1][0]) * invDet
	return out, true
}
