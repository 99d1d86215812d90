package factory

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/strikeengine/strikeengine/internal/components"
	"github.com/strikeengine/strikeengine/internal/ecs"
)

// EntityFactory constructs entities in a Registry from decoded profiles,
// adding only the components a profile's components_to_add list names.
type EntityFactory struct {
	reg      *ecs.Registry
	baseDir  string
	byName   map[string]ecs.Entity
	pending  []pendingGuidance
}

type pendingGuidance struct {
	entity     ecs.Entity
	targetName string
}

// NewEntityFactory constructs a factory over reg, resolving profile-relative
// paths (aero/RCS/IR profile files, not used directly here but kept for a
// consistent base directory convention) against baseDir.
func NewEntityFactory(reg *ecs.Registry, baseDir string) *EntityFactory {
	return &EntityFactory{reg: reg, baseDir: baseDir, byName: make(map[string]ecs.Entity)}
}

// EntityByName looks up a previously-built entity by its scenario name.
func (f *EntityFactory) EntityByName(name string) (ecs.Entity, bool) {
	e, ok := f.byName[name]
	return e, ok
}

// BuildScenario constructs every entity the scenario names, resolves
// cross-entity references (Guidance.target_name), and returns the shooter
// and target entities for the caller to watch as the tracked engagement.
func (f *EntityFactory) BuildScenario(scenario *Scenario, profileDir string) (shooter, target ecs.Entity, err error) {
	for _, se := range scenario.Entities {
		profilePath := filepath.Join(profileDir, se.Profile)
		profile, loadErr := LoadProfile(profilePath)
		if loadErr != nil {
			return ecs.NullEntity, ecs.NullEntity, loadErr
		}
		e := f.BuildEntity(profile)
		f.byName[se.Name] = e
	}

	for _, pg := range f.pending {
		targetEntity, ok := f.byName[pg.targetName]
		if !ok {
			return ecs.NullEntity, ecs.NullEntity, fmt.Errorf("factory: guidance target_name %q not found among scenario entities", pg.targetName)
		}
		g, _ := ecs.Get[components.Guidance](f.reg, pg.entity)
		g.TargetEntity = targetEntity
	}

	shooterEntity, ok := f.byName[scenario.Engagement.Shooter]
	if !ok {
		return ecs.NullEntity, ecs.NullEntity, fmt.Errorf("factory: engagement shooter %q not found", scenario.Engagement.Shooter)
	}
	targetEntityFinal, ok := f.byName[scenario.Engagement.Target]
	if !ok {
		return ecs.NullEntity, ecs.NullEntity, fmt.Errorf("factory: engagement target %q not found", scenario.Engagement.Target)
	}
	return shooterEntity, targetEntityFinal, nil
}

// BuildEntity constructs one entity from a decoded profile, adding only the
// components named in components_to_add.
func (f *EntityFactory) BuildEntity(p *Profile) ecs.Entity {
	e := f.reg.Create()

	tags := make(map[string]bool, len(p.Simulation.ComponentsToAdd))
	for _, tag := range p.Simulation.ComponentsToAdd {
		tags[tag] = true
	}

	if tags["Transform"] {
		ecs.Add(f.reg, e, buildTransform(p.InitialState.Transform))
	}
	if tags["Velocity"] {
		ecs.Add(f.reg, e, buildVelocity(p.InitialState.Velocity))
	}
	if tags["Mass"] && p.MassProperties != nil {
		ecs.Add(f.reg, e, buildMass(p.MassProperties))
	}
	if tags["Inertia"] && p.MassProperties != nil {
		ecs.Add(f.reg, e, buildInertia(p.MassProperties))
	}
	if tags["ForceAccumulator"] {
		ecs.Add(f.reg, e, components.ForceAccumulator{})
	}
	if tags["AerodynamicProfile"] && p.Aerodynamics != nil {
		ecs.Add(f.reg, e, components.AerodynamicProfile{
			ProfileID: p.Aerodynamics.ProfileID,
			RefAreaM2: p.Aerodynamics.RefAreaM2,
			WingspanM: p.Aerodynamics.WingspanM,
		})
	}
	if tags["Propulsion"] && p.Propulsion != nil {
		ecs.Add(f.reg, e, buildPropulsion(p.Propulsion))
	}
	if tags["ControlSurface"] && p.Autopilot != nil {
		ecs.Add(f.reg, e, components.ControlSurface{
			MaxDeflectionRad: p.Autopilot.MaxDeflectionRad,
			MaxRateRadS:      p.Autopilot.MaxRateRadS,
		})
	}
	if tags["AutopilotCommand"] {
		ecs.Add(f.reg, e, components.AutopilotCommand{})
	}
	if tags["AutopilotState"] && p.Autopilot != nil {
		ecs.Add(f.reg, e, buildAutopilotState(p.Autopilot))
	}
	if tags["NavigationState"] {
		ecs.Add(f.reg, e, components.NavigationState{})
	}
	if tags["IMU"] && p.IMU != nil {
		ecs.Add(f.reg, e, components.IMU{
			GyroBiasRadS:          p.IMU.GyroBiasRadS.toVec3(),
			GyroNoiseRadPerSqrtHr: p.IMU.GyroNoiseRadPerSqrtHr,
			AccelBiasMS2:          p.IMU.AccelBiasMS2.toVec3(),
			AccelNoiseGPerSqrtHz:  p.IMU.AccelNoiseGPerSqrtHz,
		})
	}
	if tags["GPS"] && p.GPS != nil {
		ecs.Add(f.reg, e, components.GPS{
			UpdateRateHz:   p.GPS.UpdateRateHz,
			PositionErrorM: p.GPS.PositionErrorM,
			Policy:         parseFusionPolicy(p.GPS.FusionPolicy),
		})
	}
	if tags["Guidance"] && p.Guidance != nil {
		ecs.Add(f.reg, e, components.Guidance{
			Law:     parseGuidanceLaw(p.Guidance.Law),
			N:       p.Guidance.N,
			Enabled: p.Guidance.Enabled,
		})
		if p.Guidance.TargetName != "" {
			f.pending = append(f.pending, pendingGuidance{entity: e, targetName: p.Guidance.TargetName})
		}
	}
	if tags["Seeker"] && p.Seeker != nil {
		ecs.Add(f.reg, e, components.Seeker{
			Type:           parseSeekerType(p.Seeker.Type),
			FOVDeg:         p.Seeker.FOVDeg,
			GimbalLimitDeg: p.Seeker.GimbalLimitDeg,
			MaxRangeM:      p.Seeker.MaxRangeM,
			IsActive:       p.Seeker.IsActive,
			LockedTarget:   ecs.NullEntity,
		})
		if tags["Antenna"] && p.Seeker.Antenna != nil {
			ecs.Add(f.reg, e, components.Antenna{
				PtW:             p.Seeker.Antenna.PtW,
				GdB:             p.Seeker.Antenna.GdB,
				LambdaM:         p.Seeker.Antenna.LambdaM,
				NoiseFloorW:     p.Seeker.Antenna.NoiseFloorW,
				BaseNoiseFloorW: p.Seeker.Antenna.NoiseFloorW,
				SNRThreshdB:     p.Seeker.Antenna.SNRThreshdB,
			})
		}
		if tags["InfraredSeeker"] && p.Seeker.IR != nil {
			ecs.Add(f.reg, e, components.InfraredSeeker{
				SensitivityW: p.Seeker.IR.SensitivityW,
				FOVDeg:       p.Seeker.IR.FOVDeg,
				Band:         parseBand(p.Seeker.IR.Band),
			})
		}
	}
	if tags["Target"] && p.TargetSignature != nil {
		ecs.Add(f.reg, e, components.Target{RCSM2: p.TargetSignature.RCSM2})
	}
	if tags["RCSProfile"] && p.TargetSignature != nil && p.TargetSignature.RCSProfile != "" {
		ecs.Add(f.reg, e, components.RCSProfile{ProfilePath: p.TargetSignature.RCSProfile})
	}
	if tags["IRSignature"] && p.TargetSignature != nil && p.TargetSignature.IRProfile != "" {
		ecs.Add(f.reg, e, components.IRSignature{ProfilePath: p.TargetSignature.IRProfile})
	}
	if tags["Fuze"] && p.Endgame != nil {
		ecs.Add(f.reg, e, components.Fuze{Type: components.FuzeProximity, TriggerDistanceM: p.Endgame.FuzeTriggerDistanceM})
	}
	if tags["Warhead"] && p.Endgame != nil {
		ecs.Add(f.reg, e, components.Warhead{Type: components.WarheadHighExplosive, LethalRadiusM: p.Endgame.WarheadLethalRadiusM})
	}
	if tags["Jammer"] && p.EW != nil {
		ecs.Add(f.reg, e, components.Jammer{ERPW: p.EW.JammerERPW, Active: true})
	}
	if tags["CountermeasureDispenser"] && p.EW != nil {
		ecs.Add(f.reg, e, components.CountermeasureDispenser{ChaffCount: p.EW.ChaffCount, FlareCount: p.EW.FlareCount})
	}

	return e
}

func buildTransform(p *vec3PoseJSON) components.Transform {
	if p == nil {
		return components.Transform{Orientation: mgl64.QuatIdent(), Scale: mgl64.Vec3{1, 1, 1}}
	}
	orientation := mgl64.Quat{W: p.OrientationXYZW[3], V: mgl64.Vec3{p.OrientationXYZW[0], p.OrientationXYZW[1], p.OrientationXYZW[2]}}
	if orientation.Len() < 1e-9 {
		orientation = mgl64.QuatIdent()
	}
	return components.Transform{
		Position:    p.PositionM.toVec3(),
		Orientation: orientation.Normalize(),
		Scale:       mgl64.Vec3{1, 1, 1},
	}
}

func buildVelocity(v *velocityJSON) components.Velocity {
	if v == nil {
		return components.Velocity{}
	}
	return components.Velocity{Linear: v.LinearMS.toVec3(), Angular: v.AngularRS.toVec3()}
}

func buildMass(m *massPropertiesJSON) components.Mass {
	inv := 0.0
	if m.InitialKg > 0 {
		inv = 1 / m.InitialKg
	}
	return components.Mass{InitialKg: m.InitialKg, DryKg: m.DryKg, CurrentKg: m.InitialKg, InverseKg: inv}
}

func buildInertia(m *massPropertiesJSON) components.Inertia {
	tensor := mgl64.Mat3FromRows(
		mgl64.Vec3{m.InertiaTensor[0][0], m.InertiaTensor[0][1], m.InertiaTensor[0][2]},
		mgl64.Vec3{m.InertiaTensor[1][0], m.InertiaTensor[1][1], m.InertiaTensor[1][2]},
		mgl64.Vec3{m.InertiaTensor[2][0], m.InertiaTensor[2][1], m.InertiaTensor[2][2]},
	)
	inv := mgl64.Ident3()
	if math.Abs(tensor.Det()) > 1e-12 {
		inv = tensor.Inv()
	}
	return components.Inertia{Tensor: tensor, InverseTensor: inv}
}

func buildPropulsion(p *propulsionJSON) components.Propulsion {
	stages := make([]components.PropulsionStage, 0, len(p.Stages))
	for _, s := range p.Stages {
		curve := make([]components.ThrustPoint, 0, len(s.ThrustCurve))
		for _, tp := range s.ThrustCurve {
			curve = append(curve, components.ThrustPoint{TimeS: tp.TimeS, ThrustN: tp.ThrustN})
		}
		stages = append(stages, components.PropulsionStage{
			Name:        s.Name,
			MassKg:      s.MassKg,
			ThrustCurve: curve,
			IspSeaLevel: s.IspSL,
			IspVacuum:   s.IspVac,
			BurnS:       s.BurnS,
		})
	}
	return components.Propulsion{Stages: stages, Active: len(stages) > 0}
}

func buildGainSchedule(g gainScheduleJSON) components.GainSchedule {
	return components.GainSchedule{MachBreakpoints: g.MachBreakpoints, QBreakpoints: g.QBreakpoints, Gains: g.Gains}
}

func buildAutopilotState(a *autopilotJSON) components.AutopilotState {
	return components.AutopilotState{
		KpSchedule: buildGainSchedule(a.KpSchedule),
		KiSchedule: buildGainSchedule(a.KiSchedule),
		KdSchedule: buildGainSchedule(a.KdSchedule),
	}
}

func parseGuidanceLaw(s string) components.GuidanceLaw {
	switch s {
	case "AugmentedProportionalNavigation":
		return components.AugmentedProportionalNavigation
	case "PurePursuit":
		return components.PurePursuit
	default:
		return components.ProportionalNavigation
	}
}

func parseSeekerType(s string) components.SeekerType {
	switch strings.ToUpper(s) {
	case "IR":
		return components.SeekerIR
	case "IIR":
		return components.SeekerIIR
	case "LASER":
		return components.SeekerLaser
	default:
		return components.SeekerRF
	}
}

func parseBand(s string) components.Band {
	if strings.ToUpper(s) == "LWIR" {
		return components.BandLWIR
	}
	return components.BandMWIR
}

func parseFusionPolicy(s string) components.FusionPolicy {
	if strings.EqualFold(s, "naive") {
		return components.FusionNaive
	}
	return components.FusionKalman
}
