// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andewx/sph2d/fluid"
	V "github.com/andewx/sph2d/vector"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ScreenConfig holds display settings for the windowed renderer.
type ScreenConfig struct {
	Width     int32 `yaml:"width"`
	Height    int32 `yaml:"height"`
	TargetFPS int32 `yaml:"target_fps"`
}

// PhysicsConfig is the YAML-facing mirror of fluid.Config. It is kept
// as a flat set of scalar fields rather than embedding fluid.Config
// directly so the file format never depends on the vector package's
// array representation.
type PhysicsConfig struct {
	NumParticles    int     `yaml:"num_particles"`
	ParticleRadius  float32 `yaml:"particle_radius"`
	ParticleSpacing float32 `yaml:"particle_spacing"`
	InitialCentreX  float32 `yaml:"initial_centre_x"`
	InitialCentreY  float32 `yaml:"initial_centre_y"`

	GravityX float32 `yaml:"gravity_x"`
	GravityY float32 `yaml:"gravity_y"`

	BoxMinX                float32 `yaml:"box_min_x"`
	BoxMinY                float32 `yaml:"box_min_y"`
	BoxMaxX                float32 `yaml:"box_max_x"`
	BoxMaxY                float32 `yaml:"box_max_y"`
	BoundingBoxRestitution float32 `yaml:"bounding_box_restitution"`

	SmoothingRadius float32 `yaml:"smoothing_radius"`

	Stiffness          float32 `yaml:"stiffness"`
	DesiredRestDensity float32 `yaml:"desired_rest_density"`
	ParticleMass       float32 `yaml:"particle_mass"`

	Viscosity float32 `yaml:"viscosity"`

	SurfaceTension          float32 `yaml:"surface_tension"`
	SurfaceTensionThreshold float32 `yaml:"surface_tension_threshold"`

	PressureLimit float32 `yaml:"pressure_limit"`

	UsePredictedPositions bool `yaml:"use_predicted_positions"`

	NumThreads int `yaml:"num_threads"`

	StepsPerTick int `yaml:"steps_per_tick"`
}

// ToFluidConfig builds the fluid engine's configuration record from the
// YAML-facing fields.
func (p PhysicsConfig) ToFluidConfig() fluid.Config {
	return fluid.Config{
		NumParticles:    p.NumParticles,
		ParticleRadius:  p.ParticleRadius,
		ParticleSpacing: p.ParticleSpacing,
		InitialCentre:   V.Vec2{p.InitialCentreX, p.InitialCentreY},

		Gravity: V.Vec2{p.GravityX, p.GravityY},

		BoundingBox: fluid.AABB{
			Min: V.Vec2{p.BoxMinX, p.BoxMinY},
			Max: V.Vec2{p.BoxMaxX, p.BoxMaxY},
		},
		BoundingBoxRestitution: p.BoundingBoxRestitution,

		SmoothingRadius: p.SmoothingRadius,

		Stiffness:          p.Stiffness,
		DesiredRestDensity: p.DesiredRestDensity,
		ParticleMass:       p.ParticleMass,

		Viscosity: p.Viscosity,

		SurfaceTension:          p.SurfaceTension,
		SurfaceTensionThreshold: p.SurfaceTensionThreshold,

		PressureLimit: p.PressureLimit,

		UsePredictedPositions: p.UsePredictedPositions,

		NumThreads: p.NumThreads,
	}
}

// TelemetryConfig controls the optional stats collector.
type TelemetryConfig struct {
	StatsWindowTicks int    `yaml:"stats_window_ticks"`
	CSVPath          string `yaml:"csv_path"`
}

// Load loads configuration from a YAML file, merging on top of the
// embedded defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	return cfg, nil
}

// WriteYAML writes the configuration to path, used to snapshot the
// effective configuration alongside telemetry output.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
