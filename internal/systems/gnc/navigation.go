// Package gnc holds the guidance, navigation, and control systems: Sensor,
// Navigation, Guidance, and Control.
package gnc

import (
	"math"

	"github.com/strikeengine/strikeengine/internal/components"
	"github.com/strikeengine/strikeengine/internal/ecs"
	"github.com/strikeengine/strikeengine/internal/kalman"
	"github.com/strikeengine/strikeengine/internal/mathx"
)

const standardGravityMS2 = 9.80665

// Navigation is the inertial navigation system: it integrates noisy
// accelerometer/gyro measurements into an estimated state every tick and,
// when GPS is present, periodically fuses a noisy position fix via either
// naive overwrite or a 6-state Kalman filter.
type Navigation struct {
	baseSeed int64
	rngs     map[ecs.Entity]*mathx.RNG
	filters  map[ecs.Entity]*kalman.Filter6

	// ProcessNoiseVariance tunes the Kalman predict step's process noise.
	ProcessNoiseVariance float64
}

// NewNavigation constructs the system, seeded for reproducible per-entity
// measurement noise.
func NewNavigation(baseSeed int64) *Navigation {
	return &Navigation{
		baseSeed:              baseSeed,
		rngs:                  make(map[ecs.Entity]*mathx.RNG),
		filters:               make(map[ecs.Entity]*kalman.Filter6),
		ProcessNoiseVariance:  kalman.ProcessNoiseVariance,
	}
}

func (*Navigation) Name() string { return "Navigation" }

func (n *Navigation) Update(reg *ecs.Registry, dt float64) {
	if dt <= 0 {
		return
	}
	ecs.View5(reg, func(e ecs.Entity, t *components.Transform, v *components.Velocity, m *components.Mass, f *components.ForceAccumulator, ns *components.NavigationState) {
		imu, hasIMU := ecs.Get[components.IMU](reg, e)
		if !hasIMU {
			return
		}

		if !ns.Initialized {
			ns.EstPosition = t.Position
			ns.EstVelocity = v.Linear
			ns.EstOrientation = t.Orientation
			ns.Initialized = true
		}

		rng := n.rngFor(e)

		truthAccelWorld := f.TotalForce.Mul(m.InverseKg)
		truthAccelBody := mathx.RotateWorldToBody(ns.EstOrientation, truthAccelWorld)

		accelNoiseSigma := (imu.AccelNoiseGPerSqrtHz * standardGravityMS2) / math.Sqrt(dt)
		measuredAccelBody := truthAccelBody.Add(imu.AccelBiasMS2).Add(rng.GaussianVec3(accelNoiseSigma))

		gyroNoiseSigma := (imu.GyroNoiseRadPerSqrtHr / 60.0) / math.Sqrt(dt)
		measuredOmegaBody := v.Angular.Add(imu.GyroBiasRadS).Add(rng.GaussianVec3(gyroNoiseSigma))

		accelWorld := mathx.RotateBodyToWorld(ns.EstOrientation, measuredAccelBody)
		ns.EstAcceleration = accelWorld
		ns.EstVelocity = ns.EstVelocity.Add(accelWorld.Mul(dt))
		ns.EstPosition = ns.EstPosition.Add(ns.EstVelocity.Mul(dt))
		ns.EstOrientation = mathx.IntegrateOrientation(ns.EstOrientation, measuredOmegaBody, dt)

		gps, hasGPS := ecs.Get[components.GPS](reg, e)
		if !hasGPS || gps.UpdateRateHz <= 0 {
			return
		}

		gps.TimeSinceLastFix += dt
		period := 1.0 / gps.UpdateRateHz
		if gps.TimeSinceLastFix < period {
			return
		}
		gps.TimeSinceLastFix = 0

		measured := t.Position.Add(rng.GaussianVec3(gps.PositionErrorM))

		switch gps.Policy {
		case components.FusionNaive:
			ns.EstPosition = measured
		default:
			filter := n.filterFor(e, ns)
			filter.Predict(accelWorld, period, n.processNoiseVariance())
			filter.UpdatePosition(measured, gps.PositionErrorM)
			ns.EstPosition = filter.Position()
			ns.EstVelocity = filter.Velocity()
			ns.KalmanCovariance = filter.Covariance
			ns.KalmanInitialized = true
		}
	})
}

func (n *Navigation) processNoiseVariance() float64 {
	if n.ProcessNoiseVariance > 0 {
		return n.ProcessNoiseVariance
	}
	return kalman.ProcessNoiseVariance
}

func (n *Navigation) rngFor(e ecs.Entity) *mathx.RNG {
	if r, ok := n.rngs[e]; ok {
		return r
	}
	r := mathx.NewRNG(mathx.EntitySeed(n.baseSeed, "Navigation", e.Index()))
	n.rngs[e] = r
	return r
}

func (n *Navigation) filterFor(e ecs.Entity, ns *components.NavigationState) *kalman.Filter6 {
	if f, ok := n.filters[e]; ok {
		return f
	}
	f := kalman.NewFilter6(ns.EstPosition, ns.EstVelocity, 1.0)
	if ns.KalmanInitialized {
		f.Covariance = ns.KalmanCovariance
	}
	n.filters[e] = f
	return f
}
