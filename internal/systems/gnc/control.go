package gnc

import (
	"math"

	"github.com/strikeengine/strikeengine/internal/components"
	"github.com/strikeengine/strikeengine/internal/dataservice"
	"github.com/strikeengine/strikeengine/internal/ecs"
	"github.com/strikeengine/strikeengine/internal/mathx"
)

// Control is the gain-scheduled PID autopilot: it tracks the commanded body
// acceleration against the estimated acceleration and drives a pair of fin
// actuators within their deflection and slew-rate limits.
type Control struct {
	atmosphere *dataservice.AtmosphereTable
}

// NewControl constructs the system with its injected atmosphere dependency.
func NewControl(atmosphere *dataservice.AtmosphereTable) *Control {
	return &Control{atmosphere: atmosphere}
}

func (*Control) Name() string { return "Control" }

func (c *Control) Update(reg *ecs.Registry, dt float64) {
	if dt <= 0 {
		return
	}
	ecs.View4(reg, func(e ecs.Entity, t *components.Transform, v *components.Velocity, ns *components.NavigationState, cmd *components.AutopilotCommand) {
		state, okState := ecs.Get[components.AutopilotState](reg, e)
		fins, okFins := ecs.Get[components.ControlSurface](reg, e)
		if !okState || !okFins {
			return
		}

		speedSq := v.Linear.Dot(v.Linear)
		speed := math.Sqrt(speedSq)
		altitudeM := t.Position.Len()
		atm := c.atmosphere.Lookup(altitudeM)
		q := 0.5 * atm.DensityKgM3 * speedSq
		mach := 0.0
		if atm.SpeedOfSoundMS > 0 {
			mach = speed / atm.SpeedOfSoundMS
		}

		kp := lookupGain(state.KpSchedule, mach, q)
		ki := lookupGain(state.KiSchedule, mach, q)
		kd := lookupGain(state.KdSchedule, mach, q)

		commandedBody := mathx.RotateWorldToBody(t.Orientation, cmd.CommandedAccelG.Mul(standardGravityMS2))
		estAccelBody := mathx.RotateWorldToBody(t.Orientation, ns.EstAcceleration)

		pitchErr := commandedBody[1] - estAccelBody[1]
		yawErr := commandedBody[2] - estAccelBody[2]

		state.PitchIntegral += pitchErr * dt
		pitchDeriv := (pitchErr - state.PitchPreviousErr) / dt
		state.PitchPreviousErr = pitchErr
		pitchOut := kp*pitchErr + ki*state.PitchIntegral + kd*pitchDeriv

		state.YawIntegral += yawErr * dt
		yawDeriv := (yawErr - state.YawPreviousErr) / dt
		state.YawPreviousErr = yawErr
		yawOut := kp*yawErr + ki*state.YawIntegral + kd*yawDeriv

		fins.CurPitchRad = applyActuatorLimits(fins.CurPitchRad, pitchOut, fins.MaxDeflectionRad, fins.MaxRateRadS, dt)
		fins.CurYawRad = applyActuatorLimits(fins.CurYawRad, yawOut, fins.MaxDeflectionRad, fins.MaxRateRadS, dt)
	})
}

func lookupGain(schedule components.GainSchedule, mach, q float64) float64 {
	if len(schedule.MachBreakpoints) == 0 || len(schedule.QBreakpoints) == 0 || len(schedule.Gains) == 0 {
		return 0
	}
	return mathx.BilinearInterp2D(schedule.MachBreakpoints, schedule.QBreakpoints, schedule.Gains, mach, q)
}

// applyActuatorLimits clamps a PID output to the surface's maximum
// deflection, then rate-limits the step away from the previous tick's value.
func applyActuatorLimits(previous, commanded, maxDeflectionRad, maxRateRadS, dt float64) float64 {
	clamped := mathx.Clamp(commanded, -maxDeflectionRad, maxDeflectionRad)
	maxStep := maxRateRadS * dt
	delta := mathx.Clamp(clamped-previous, -maxStep, maxStep)
	return previous + delta
}
