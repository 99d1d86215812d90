// Package endgame implements the terminal lethality system: proximity fuzing
// and warhead detonation.
package endgame

import (
	"github.com/strikeengine/strikeengine/internal/components"
	"github.com/strikeengine/strikeengine/internal/ecs"
)

// Endgame checks every fuzed, warhead-carrying missile with a live lock
// against its miss distance and detonates (and, if lethal, destroys the
// target) when within trigger range.
type Endgame struct {
	// pendingDestroy collects entities to destroy after the view finishes
	// iterating, since destroying an entity mid-view would mutate the pool
	// the view is walking.
	pendingDestroy []ecs.Entity
}

// NewEndgame constructs the system.
func NewEndgame() *Endgame { return &Endgame{} }

func (*Endgame) Name() string { return "Endgame" }

func (s *Endgame) Update(reg *ecs.Registry, _ float64) {
	s.pendingDestroy = s.pendingDestroy[:0]

	ecs.View3(reg, func(e ecs.Entity, fuze *components.Fuze, warhead *components.Warhead, seeker *components.Seeker) {
		if warhead.HasDetonated || !seeker.HasLock {
			return
		}
		target := seeker.LockedTarget
		if target == ecs.NullEntity || !reg.IsAlive(target) {
			return
		}
		missileT, okM := ecs.Get[components.Transform](reg, e)
		targetT, okT := ecs.Get[components.Transform](reg, target)
		if !okM || !okT {
			return
		}

		missDistance := targetT.Position.Sub(missileT.Position).Len()
		if missDistance > fuze.TriggerDistanceM {
			return
		}

		warhead.HasDetonated = true
		if missDistance <= warhead.LethalRadiusM {
			s.pendingDestroy = append(s.pendingDestroy, target)
		}
		s.pendingDestroy = append(s.pendingDestroy, e)
	})

	for _, e := range s.pendingDestroy {
		reg.Destroy(e)
	}
}
