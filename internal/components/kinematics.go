// Package components holds the plain-data component structs bound to
// entities by the registry. Each type corresponds to a row of the §3 data
// model table; the doc comment on each field names its owning mutator.
package components

import "github.com/go-gl/mathgl/mgl64"

// Transform is an entity's world-space pose. Owner-mutator: Integration.
type Transform struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Scale       mgl64.Vec3
}

// Velocity is an entity's linear (world) and angular (body) rates.
// Owner-mutator: Integration.
type Velocity struct {
	Linear  mgl64.Vec3
	Angular mgl64.Vec3
}

// Mass tracks an entity's mass as propellant burns. Owner-mutator:
// Propulsion (and the entity factory at creation time).
type Mass struct {
	InitialKg float64
	DryKg     float64
	CurrentKg float64
	InverseKg float64
}

// Inertia is an entity's body-frame inertia tensor and its inverse. Set by
// the loader at creation time; systems only read it.
type Inertia struct {
	Tensor        mgl64.Mat3
	InverseTensor mgl64.Mat3
}

// ForceAccumulator collects the forces and torques produced by every force
// producer this tick. Every producer (Gravity, Propulsion, Aerodynamics)
// writes only to entities in its own view, so concurrent accumulation
// within a stage never has two producers racing on the same entity's
// accumulator (see the design notes on parallel force accumulation).
// Integration clears it after consuming it each tick.
type ForceAccumulator struct {
	TotalForce  mgl64.Vec3
	TotalTorque mgl64.Vec3
}

// Add accumulates a force applied at the entity's center of mass (no torque
// contribution).
func (f *ForceAccumulator) Add(force mgl64.Vec3) {
	f.TotalForce = f.TotalForce.Add(force)
}

// AddTorque accumulates a pure torque contribution.
func (f *ForceAccumulator) AddTorque(torque mgl64.Vec3) {
	f.TotalTorque = f.TotalTorque.Add(torque)
}

// Clear zeroes the accumulator. Called by Integration after each tick's
// forces have been consumed.
func (f *ForceAccumulator) Clear() {
	f.TotalForce = mgl64.Vec3{}
	f.TotalTorque = mgl64.Vec3{}
}
