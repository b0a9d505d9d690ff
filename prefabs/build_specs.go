package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is an entity prefab: a name and its components keyed by
// builder name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	Position Vec3Spec `yaml:"position"`
	Scale    float64  `yaml:"scale"`
}

type PhysicsBodyComponentSpec struct {
	Shape          string   `yaml:"shape"`
	Radius         float64  `yaml:"radius"`
	HalfExtents    Vec3Spec `yaml:"half_extents"`
	Mass           float64  `yaml:"mass"`
	LinearDamping  float64  `yaml:"linear_damping"`
	AngularDamping float64  `yaml:"angular_damping"`
}

// PlayerComponentSpec fields are pointers so an explicit 0 in YAML can be
// told apart from a missing key.
type PlayerComponentSpec struct {
	TorqueStrength       *float64 `yaml:"torque_strength"`
	JumpSpeed            *float64 `yaml:"jump_speed"`
	JumpMaxVerticalSpeed *float64 `yaml:"jump_max_vertical_speed"`
	JumpMaxHeight        *float64 `yaml:"jump_max_height"`
	GroundedSpeed        *float64 `yaml:"grounded_speed"`
	GroundLinearDamping  *float64 `yaml:"ground_linear_damping"`
	GroundAngularDamping *float64 `yaml:"ground_angular_damping"`
	AirLinearDamping     *float64 `yaml:"air_linear_damping"`
	AirAngularDamping    *float64 `yaml:"air_angular_damping"`
	MaxSpeed             *float64 `yaml:"max_speed"`
	MaxAngularSpeed      *float64 `yaml:"max_angular_speed"`
	FallHeight           *float64 `yaml:"fall_height"`
	Spawn                Vec3Spec `yaml:"spawn"`
	CameraOffset         Vec3Spec `yaml:"camera_offset"`
}

type CollectibleComponentSpec struct {
	Name   string  `yaml:"name"`
	Phase  float64 `yaml:"phase"`
	Script string  `yaml:"script"`
}

type WindComponentSpec struct {
	Enabled         *bool    `yaml:"enabled"`
	MinStrength     *float64 `yaml:"min_strength"`
	StrengthRange   *float64 `yaml:"strength_range"`
	MinInterval     *float64 `yaml:"min_interval_ms"`
	IntervalJitter  *float64 `yaml:"interval_jitter_ms"`
	IndicatorHeight *float64 `yaml:"indicator_height"`
	LengthScale     *float64 `yaml:"length_scale"`
	GroundedSpeed   *float64 `yaml:"grounded_speed"`
}

type AppearanceComponentSpec struct {
	Color YAMLColor `yaml:"color"`
}
