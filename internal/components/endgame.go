package components

// FuzeType selects the triggering logic of a Fuze. The spec names only the
// trigger_distance_m contract; proximity is the only fuze type it
// specifies, so this enum exists to let the factory record the profile's
// declared type without StrikeEngine inventing untested behavior for other
// fuze kinds.
type FuzeType int

const (
	FuzeProximity FuzeType = iota
)

// Fuze triggers detonation when within range of the locked target.
// Owner-mutator: Endgame.
type Fuze struct {
	Type            FuzeType
	TriggerDistanceM float64
}

// WarheadType records the profile's declared warhead kind.
type WarheadType int

const (
	WarheadHighExplosive WarheadType = iota
)

// Warhead is a missile's lethality payload. Owner-mutator: Endgame.
type Warhead struct {
	Type           WarheadType
	LethalRadiusM  float64
	HasDetonated   bool
}
