package ecs

// System is a unit of per-tick behavior operating over a registry view.
// Systems are stateless with respect to one another; any state that must
// survive between ticks lives in components or in the system's own private
// fields, never in package-level globals (see the design notes' rejection
// of a process-wide atmosphere manager).
type System interface {
	// Name identifies the system for dependency wiring and logging.
	Name() string
	// Update runs the system's per-tick behavior against reg, advancing by
	// the fixed timestep dt (seconds).
	Update(reg *Registry, dt float64)
}
