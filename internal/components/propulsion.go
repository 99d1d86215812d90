package components

// ThrustPoint is one (time, thrust) breakpoint of a stage's thrust curve.
type ThrustPoint struct {
	TimeS    float64
	ThrustN  float64
}

// PropulsionStage describes one rocket-motor stage.
type PropulsionStage struct {
	Name        string
	MassKg      float64
	ThrustCurve []ThrustPoint
	IspSeaLevel float64
	IspVacuum   float64
	BurnS       float64
}

// Propulsion is an entity's staged motor state. Owner-mutator: Propulsion
// system.
type Propulsion struct {
	Stages         []PropulsionStage
	CurrentStageIx int
	TimeInStage    float64
	Active         bool
}
