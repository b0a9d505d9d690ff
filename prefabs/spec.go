package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// WorldSpec describes the fixed level: physics settings, the island grid,
// where flowers grow and where the camera starts.
type WorldSpec struct {
	Name         string       `yaml:"name"`
	Gravity      Vec3Spec     `yaml:"gravity"`
	Friction     float64      `yaml:"friction"`
	Substeps     int          `yaml:"substeps"`
	Background   YAMLColor    `yaml:"background"`
	PickupRadius float64      `yaml:"pickup_radius"`
	Islands      IslandGrid   `yaml:"islands"`
	Flowers      []FlowerSpec `yaml:"flowers"`
	Camera       CameraSpec   `yaml:"camera"`
}

// IslandGrid places one island on every cell from -Radius to Radius along
// both horizontal axes.
type IslandGrid struct {
	Prefab  string  `yaml:"prefab"`
	Spacing float64 `yaml:"spacing"`
	Radius  int     `yaml:"radius"`
	Height  float64 `yaml:"height"`
}

type FlowerSpec struct {
	Prefab   string   `yaml:"prefab"`
	Position Vec3Spec `yaml:"position"`
	Phase    float64  `yaml:"phase"`
}

type CameraSpec struct {
	Position Vec3Spec `yaml:"position"`
	Target   Vec3Spec `yaml:"target"`
	FovY     float64  `yaml:"fov_y"`
}

const (
	defaultFriction     = 5.0
	defaultGridSpacing  = 12.0
	defaultIslandHeight = -0.5
	defaultPickupRadius = 2.0
)

func LoadWorldSpec() (*WorldSpec, error) {
	spec, err := LoadSpec[WorldSpec]("world.yaml")
	if err != nil {
		return nil, err
	}
	spec.applyDefaults()
	return &spec, nil
}

func (s *WorldSpec) applyDefaults() {
	if s.Gravity == nil {
		s.Gravity = Vec3Spec{0, -9.82, 0}
	}
	if s.Friction <= 0 {
		s.Friction = defaultFriction
	}
	if s.PickupRadius <= 0 {
		s.PickupRadius = defaultPickupRadius
	}
	if s.Background.Color == nil {
		s.Background.Color = color.NRGBA{R: 0x7e, G: 0xc0, B: 0xee, A: 0xff}
	}
	if s.Islands.Prefab == "" {
		s.Islands.Prefab = "island.yaml"
	}
	if s.Islands.Spacing <= 0 {
		s.Islands.Spacing = defaultGridSpacing
	}
	if s.Islands.Radius < 0 {
		s.Islands.Radius = 0
	}
	if s.Islands.Height == 0 {
		s.Islands.Height = defaultIslandHeight
	}
	for i := range s.Flowers {
		if s.Flowers[i].Prefab == "" {
			s.Flowers[i].Prefab = "flower.yaml"
		}
	}
	if s.Camera.Position == nil {
		s.Camera.Position = Vec3Spec{0, 15, 20}
	}
	if s.Camera.Target == nil {
		s.Camera.Target = Vec3Spec{0, 5, 0}
	}
}

// Vec3Spec is a [x, y, z] sequence. Missing trailing values are zero.
type Vec3Spec []float64

func (v Vec3Spec) Vec3() mgl64.Vec3 {
	var out mgl64.Vec3
	for i := 0; i < len(v) && i < 3; i++ {
		out[i] = v[i]
	}
	return out
}

// Or returns def when v was not set.
func (v Vec3Spec) Or(def mgl64.Vec3) mgl64.Vec3 {
	if v == nil {
		return def
	}
	return v.Vec3()
}

type YAMLColor struct {
	color.Color
}

// NRGBA returns the color, or def when none was set.
func (c YAMLColor) NRGBA(def color.NRGBA) color.NRGBA {
	if c.Color == nil {
		return def
	}
	return color.NRGBAModel.Convert(c.Color).(color.NRGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
