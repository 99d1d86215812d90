package physics

import (
	"github.com/strikeengine/strikeengine/internal/components"
	"github.com/strikeengine/strikeengine/internal/ecs"
)

const (
	gravitationalConstant = 6.67430e-11
	earthMassKg           = 5.97219e24
)

// Gravity applies inverse-square gravitational attraction toward the world
// origin (the center of the Earth, in this engine's geocentric frame).
type Gravity struct{}

// NewGravity constructs the system.
func NewGravity() *Gravity { return &Gravity{} }

func (*Gravity) Name() string { return "Gravity" }

func (*Gravity) Update(reg *ecs.Registry, _ float64) {
	ecs.View3(reg, func(_ ecs.Entity, t *components.Transform, m *components.Mass, f *components.ForceAccumulator) {
		r := t.Position.Len()
		if r < 1 {
			return
		}
		magnitude := gravitationalConstant * earthMassKg * m.CurrentKg / (r * r)
		direction := t.Position.Mul(-1 / r)
		f.Add(direction.Mul(magnitude))
	})
}
