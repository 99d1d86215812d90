package components

import "github.com/strikeengine/strikeengine/internal/ecs"

// SeekerType selects which sensing modality a Seeker uses.
type SeekerType int

const (
	SeekerRF SeekerType = iota
	SeekerIR
	SeekerIIR
	SeekerLaser
)

func (t SeekerType) String() string {
	switch t {
	case SeekerRF:
		return "RF"
	case SeekerIR:
		return "IR"
	case SeekerIIR:
		return "IIR"
	case SeekerLaser:
		return "LASER"
	default:
		return "Unknown"
	}
}

// Seeker is a missile's sensor head. Owner-mutator: Sensor.
type Seeker struct {
	Type           SeekerType
	FOVDeg         float64
	GimbalLimitDeg float64
	MaxRangeM      float64
	IsActive       bool
	HasLock        bool
	// LockedTarget is a weak reference: a handle, never an owner, validated
	// against the registry at every use (design notes §9). ecs.NullEntity
	// means "no lock" (§7 class 6 sentinel).
	LockedTarget ecs.Entity
}

// Band selects an infrared seeker's spectral band.
type Band int

const (
	BandMWIR Band = iota
	BandLWIR
)

func (b Band) String() string {
	if b == BandLWIR {
		return "LWIR"
	}
	return "MWIR"
}

// Antenna is an RF seeker's receiver. Owner-mutator: Sensor; Electronic
// Warfare mutates NoiseFloorW before Sensor runs each tick.
type Antenna struct {
	PtW          float64
	GdB          float64
	LambdaM      float64
	NoiseFloorW  float64
	SNRThreshdB  float64

	// BaseNoiseFloorW is the antenna's quiescent noise floor, restored each
	// tick before EW adds jammer contributions, so that jamming effects
	// don't accumulate tick over tick.
	BaseNoiseFloorW float64
}

// InfraredSeeker is an IR seeker's receiver parameters.
type InfraredSeeker struct {
	SensitivityW float64
	FOVDeg       float64
	Band         Band
}

// RCSProfile points a target at its radar cross-section database. Immutable
// after creation.
type RCSProfile struct {
	ProfilePath string
}

// IRSignature points a target at its infrared signature database.
// Immutable after creation.
type IRSignature struct {
	ProfilePath string
}

// Target marks an entity as a seeker-observable target with a nominal RCS.
// Immutable after creation.
type Target struct {
	RCSM2 float64
}
