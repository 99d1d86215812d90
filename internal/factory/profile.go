package factory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
)

// Profile is one entity's component configuration, decoded from its profile
// JSON file. Only the sections named in ComponentsToAdd are applied to the
// entity; every other section may be zero-valued or absent.
type Profile struct {
	Name string `json:"name"`

	Simulation struct {
		ComponentsToAdd []string `json:"components_to_add"`
	} `json:"simulation"`

	InitialState struct {
		Transform *vec3PoseJSON `json:"transform"`
		Velocity  *velocityJSON `json:"velocity"`
	} `json:"initial_state"`

	MassProperties *massPropertiesJSON `json:"mass_properties"`
	Propulsion     *propulsionJSON     `json:"propulsion"`
	Aerodynamics   *aerodynamicsJSON   `json:"aerodynamics"`
	Guidance       *guidanceJSON       `json:"guidance"`
	Seeker         *seekerJSON         `json:"seeker"`
	TargetSignature *targetSignatureJSON `json:"target_signature"`
	IMU            *imuJSON            `json:"imu"`
	GPS            *gpsJSON            `json:"gps"`
	Autopilot      *autopilotJSON      `json:"autopilot"`
	EW             *ewJSON             `json:"electronic_warfare"`
	Endgame        *endgameJSON        `json:"endgame"`
}

type vec3JSON [3]float64

func (v vec3JSON) toVec3() mgl64.Vec3 { return mgl64.Vec3{v[0], v[1], v[2]} }

type vec3PoseJSON struct {
	PositionM      vec3JSON `json:"position_m"`
	OrientationXYZW [4]float64 `json:"orientation_xyzw"`
}

type velocityJSON struct {
	LinearMS  vec3JSON `json:"linear_ms"`
	AngularRS vec3JSON `json:"angular_rad_s"`
}

type massPropertiesJSON struct {
	InitialKg    float64     `json:"initial_kg"`
	DryKg        float64     `json:"dry_kg"`
	InertiaTensor [3][3]float64 `json:"inertia_tensor_kgm2"`
}

type thrustPointJSON struct {
	TimeS   float64 `json:"t"`
	ThrustN float64 `json:"n"`
}

type propulsionStageJSON struct {
	Name        string            `json:"name"`
	MassKg      float64           `json:"mass_kg"`
	ThrustCurve []thrustPointJSON `json:"thrust_curve"`
	IspSL       float64           `json:"isp_sl"`
	IspVac      float64           `json:"isp_vac"`
	BurnS       float64           `json:"burn_s"`
}

type propulsionJSON struct {
	Stages []propulsionStageJSON `json:"stages"`
}

type aerodynamicsJSON struct {
	ProfileID string  `json:"profile_id"`
	RefAreaM2 float64 `json:"ref_area_m2"`
	WingspanM float64 `json:"wingspan_m"`
}

type guidanceJSON struct {
	Law        string  `json:"law"`
	N          float64 `json:"n"`
	Enabled    bool    `json:"enabled"`
	TargetName string  `json:"target_name"`
}

type seekerJSON struct {
	Type           string  `json:"type"`
	FOVDeg         float64 `json:"fov_deg"`
	GimbalLimitDeg float64 `json:"gimbal_limit_deg"`
	MaxRangeM      float64 `json:"max_range_m"`
	IsActive       bool    `json:"is_active"`

	Antenna *antennaJSON `json:"antenna"`
	IR      *irSeekerJSON `json:"infrared"`
}

type antennaJSON struct {
	PtW         float64 `json:"pt_w"`
	GdB         float64 `json:"g_db"`
	LambdaM     float64 `json:"lambda_m"`
	NoiseFloorW float64 `json:"noise_floor_w"`
	SNRThreshdB float64 `json:"snr_thresh_db"`
}

type irSeekerJSON struct {
	SensitivityW float64 `json:"sensitivity_w"`
	FOVDeg       float64 `json:"fov_deg"`
	Band         string  `json:"band"`
}

type targetSignatureJSON struct {
	RCSM2       float64 `json:"rcs_m2"`
	RCSProfile  string  `json:"rcs_profile_path"`
	IRProfile   string  `json:"ir_profile_path"`
}

type imuJSON struct {
	GyroBiasRadS          vec3JSON `json:"gyro_bias_rad_s"`
	GyroNoiseRadPerSqrtHr float64  `json:"gyro_noise_rad_per_sqrt_hr"`
	AccelBiasMS2          vec3JSON `json:"accel_bias_ms2"`
	AccelNoiseGPerSqrtHz  float64  `json:"accel_noise_g_per_sqrt_hz"`
}

type gpsJSON struct {
	UpdateRateHz   float64 `json:"update_rate_hz"`
	PositionErrorM float64 `json:"position_error_m"`
	FusionPolicy   string  `json:"fusion_policy"`
}

type gainScheduleJSON struct {
	MachBreakpoints []float64   `json:"mach_breakpoints"`
	QBreakpoints    []float64   `json:"q_breakpoints"`
	Gains           [][]float64 `json:"gains"`
}

type autopilotJSON struct {
	KpSchedule       gainScheduleJSON `json:"kp_schedule"`
	KiSchedule       gainScheduleJSON `json:"ki_schedule"`
	KdSchedule       gainScheduleJSON `json:"kd_schedule"`
	MaxDeflectionRad float64          `json:"max_deflection_rad"`
	MaxRateRadS      float64          `json:"max_rate_rad_s"`
}

type ewJSON struct {
	JammerERPW float64 `json:"jammer_erp_w"`
	ChaffCount int     `json:"chaff_count"`
	FlareCount int     `json:"flare_count"`
}

type endgameJSON struct {
	FuzeTriggerDistanceM float64 `json:"fuze_trigger_distance_m"`
	WarheadLethalRadiusM float64 `json:"warhead_lethal_radius_m"`
}

// LoadProfile reads and decodes an entity profile file from disk.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("factory: read profile %q: %w", path, err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("factory: decode profile %q: %w", path, err)
	}
	return &p, nil
}
