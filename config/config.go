package config

import (
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/prism/parameter"
	"github.com/lixenwraith/prism/vmath"
)

// EnvPrefix namespaces environment overrides, e.g. PRISM_MAX_RAYS
const EnvPrefix = "PRISM"

// Config holds the tunable knobs of a sandbox instance
// Values are layered: defaults, then YAML file, then environment
type Config struct {
	// Optics
	MaxRays             int     `yaml:"max_rays" envconfig:"MAX_RAYS"`
	StrengthEpsilon     float32 `yaml:"strength_epsilon" envconfig:"STRENGTH_EPSILON"`
	LaserWidth          float32 `yaml:"laser_width" envconfig:"LASER_WIDTH"`
	DefaultFadeDistance float32 `yaml:"default_fade_distance" envconfig:"DEFAULT_FADE_DISTANCE"`
	DebugAssertions     bool    `yaml:"debug_assertions" envconfig:"DEBUG_ASSERTIONS"`

	// Tools
	LongPress          time.Duration `yaml:"long_press" envconfig:"LONG_PRESS"`
	DragThresholdPx    float32       `yaml:"drag_threshold_px" envconfig:"DRAG_THRESHOLD_PX"`
	RotateHelperRadius float32       `yaml:"rotate_helper_radius" envconfig:"ROTATE_HELPER_RADIUS"`
	RotateSnapDegrees  float32       `yaml:"rotate_snap_degrees" envconfig:"ROTATE_SNAP_DEGREES"`

	// World
	Gravity     float32 `yaml:"gravity" envconfig:"GRAVITY"`
	CameraScale float32 `yaml:"camera_scale" envconfig:"CAMERA_SCALE"`

	// Loop and logging
	FrameRate int    `yaml:"frame_rate" envconfig:"FRAME_RATE"`
	LogLevel  string `yaml:"log_level" envconfig:"LOG_LEVEL"`
	LogFile   string `yaml:"log_file" envconfig:"LOG_FILE"`
}

// Default returns the compiled-in configuration
func Default() Config {
	return Config{
		MaxRays:             parameter.MaxRays,
		StrengthEpsilon:     parameter.StrengthEpsilon,
		LaserWidth:          parameter.LaserWidth,
		DefaultFadeDistance: parameter.LaserFadeDistance,

		LongPress:          parameter.LongPressThreshold,
		DragThresholdPx:    parameter.DragThresholdPx,
		RotateHelperRadius: parameter.RotateHelperRadius,
		RotateSnapDegrees:  parameter.RotateSnapDegrees,

		Gravity:     parameter.Gravity,
		CameraScale: parameter.CameraScale,

		FrameRate: int(time.Second / parameter.FrameUpdateInterval),
		LogLevel:  "info",
	}
}

// Load layers an optional YAML file and PRISM_* environment variables over Default
// An empty path skips the file; a missing file is an error
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrapf(err, "read config %s", path)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parse config %s", path)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, errors.Wrap(err, "environment overrides")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the solver and tool machine cannot run with
func (c Config) Validate() error {
	switch {
	case c.MaxRays < 1:
		return errors.Errorf("max_rays must be positive, got %d", c.MaxRays)
	case c.StrengthEpsilon <= 0 || c.StrengthEpsilon >= 1:
		return errors.Errorf("strength_epsilon must be in (0,1), got %v", c.StrengthEpsilon)
	case c.LaserWidth <= 0:
		return errors.Errorf("laser_width must be positive, got %v", c.LaserWidth)
	case c.DefaultFadeDistance <= 0:
		return errors.Errorf("default_fade_distance must be positive, got %v", c.DefaultFadeDistance)
	case c.LongPress < 0:
		return errors.Errorf("long_press must not be negative, got %v", c.LongPress)
	case c.DragThresholdPx < 0:
		return errors.Errorf("drag_threshold_px must not be negative, got %v", c.DragThresholdPx)
	case c.RotateHelperRadius < 0:
		return errors.Errorf("rotate_helper_radius must not be negative, got %v", c.RotateHelperRadius)
	case c.RotateSnapDegrees <= 0:
		return errors.Errorf("rotate_snap_degrees must be positive, got %v", c.RotateSnapDegrees)
	case c.CameraScale <= 0:
		return errors.Errorf("camera_scale must be positive, got %v", c.CameraScale)
	case c.FrameRate < 1:
		return errors.Errorf("frame_rate must be positive, got %d", c.FrameRate)
	}
	return nil
}

// FrameInterval converts FrameRate to a ticker period
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}

// RotateSnap returns the rotate snap step in radians
func (c Config) RotateSnap() float32 {
	return c.RotateSnapDegrees * vmath.Pi / 180
}
