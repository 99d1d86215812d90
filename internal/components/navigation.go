package components

import "github.com/go-gl/mathgl/mgl64"

// NavigationState is the missile's self-estimated state, maintained by the
// INS (Navigation system) from noisy IMU/GPS measurements. Guidance reads
// this instead of ground truth, since the missile is not omniscient about
// its own state any more than about the target's.
type NavigationState struct {
	EstPosition    mgl64.Vec3
	EstVelocity    mgl64.Vec3
	EstOrientation mgl64.Quat
	EstAcceleration mgl64.Vec3
	Initialized    bool

	// KalmanCovariance is the 6x6 position/velocity error covariance
	// maintained by the Kalman fusion policy. Unused under the naive
	// overwrite policy.
	KalmanCovariance [6][6]float64
	KalmanInitialized bool
}

// IMU holds the inertial measurement unit's noise model. Owner-mutator:
// Navigation (read-only after the loader sets it).
type IMU struct {
	GyroBiasRadS     mgl64.Vec3
	GyroNoiseRadPerSqrtHr float64

	AccelBiasMS2     mgl64.Vec3
	AccelNoiseGPerSqrtHz float64
}

// FusionPolicy selects how Navigation folds a GPS fix into NavigationState.
type FusionPolicy int

const (
	// FusionKalman runs the 6-state [position, velocity] Kalman filter.
	// Spec default.
	FusionKalman FusionPolicy = iota
	// FusionNaive overwrites est_position with the raw measurement.
	FusionNaive
)

// GPS holds receiver parameters. Owner-mutator: Navigation.
type GPS struct {
	UpdateRateHz     float64
	PositionErrorM   float64
	TimeSinceLastFix float64
	Policy           FusionPolicy
}
