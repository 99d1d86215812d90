package components

// Jammer radiates effective power that raises the noise floor of antennas
// within range. Owner-mutator: Electronic Warfare.
type Jammer struct {
	ERPW   float64
	Active bool
}

// CountermeasureDispenser holds an entity's chaff/flare inventory and
// pending deploy commands. Owner-mutator: Electronic Warfare.
type CountermeasureDispenser struct {
	ChaffCount      int
	FlareCount      int
	DeployChaffCmd  bool
	DeployFlareCmd  bool
}
