package components

import "github.com/go-gl/mathgl/mgl64"

// ControlSurface is a fin actuator's limits and current deflection.
// Owner-mutator: Control.
type ControlSurface struct {
	MaxDeflectionRad float64
	MaxRateRadS      float64
	CurPitchRad      float64
	CurYawRad        float64
}

// AutopilotCommand is the commanded world-frame acceleration, in g, written
// by Guidance and consumed by Control (which rotates it into the body frame).
type AutopilotCommand struct {
	CommandedAccelG mgl64.Vec3
}

// GainSchedule is a bilinear (Mach, dynamic-pressure) gain table for one PID
// term.
type GainSchedule struct {
	MachBreakpoints []float64
	QBreakpoints    []float64
	// Gains[qIndex][machIndex], matching BilinearInterp2D's [y][x] layout.
	Gains [][]float64
}

// AutopilotState is the gain-scheduled PID autopilot's persistent state.
// Owner-mutator: Control.
type AutopilotState struct {
	KpSchedule GainSchedule
	KiSchedule GainSchedule
	KdSchedule GainSchedule

	PitchIntegral     float64
	PitchPreviousErr  float64
	YawIntegral       float64
	YawPreviousErr    float64
}
