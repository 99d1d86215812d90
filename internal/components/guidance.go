package components

import "github.com/strikeengine/strikeengine/internal/ecs"

// GuidanceLaw selects which closed-loop guidance law Guidance evaluates.
type GuidanceLaw int

const (
	ProportionalNavigation GuidanceLaw = iota
	AugmentedProportionalNavigation
	PurePursuit
)

func (l GuidanceLaw) String() string {
	switch l {
	case ProportionalNavigation:
		return "ProportionalNavigation"
	case AugmentedProportionalNavigation:
		return "AugmentedProportionalNavigation"
	case PurePursuit:
		return "PurePursuit"
	default:
		return "Unknown"
	}
}

// Guidance is a missile's targeting configuration. Owner-mutator: Guidance
// system (writes AutopilotCommand on the same entity; this component itself
// is set at creation and only read thereafter).
type Guidance struct {
	TargetEntity ecs.Entity
	Law          GuidanceLaw
	N            float64
	Enabled      bool
}
