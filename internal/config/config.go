package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// Panel proportions of the window.
	PanelWidthRatio  = 0.3
	SpacerWidthRatio = 0.4
	PanelHeightRatio = 0.5
	PanelMargin      = 20

	// Button dimensions
	ButtonWidth  = 140
	ButtonHeight = 36
	ButtonGap    = 10

	// Compass rose
	RoseSpokes   = 36
	RoseRadius   = 100
	NeedleLength = 20
	NeedleStep   = 1

	IndicatorSize = 50
	StepSpeed     = 5

	TPS = 60

	Threshold = 90.0
	SampleMin = 20.0
	SampleMax = 100.0
)

// ErrInvalid wraps every validation failure returned by Load and Validate.
var ErrInvalid = errors.New("invalid configuration")

// Config holds runtime settings. Zero fields in a loaded file keep defaults.
type Config struct {
	TPS           int      `yaml:"tps" validate:"min=1,max=240"`
	Speed         int      `yaml:"speed" validate:"min=2"` // pixels per tick, same on both axes
	IndicatorSize int      `yaml:"indicator_size" validate:"min=1"`
	Threshold     float64  `yaml:"threshold"`
	SampleMin     float64  `yaml:"sample_min"`
	SampleMax     float64  `yaml:"sample_max" validate:"gtfield=SampleMin"`
	Seed          int64    `yaml:"seed"`
	StoreCommand  []string `yaml:"store_command" validate:"omitempty,dive,required"`
	Chime         bool     `yaml:"chime"`
	MetricsAddr   string   `yaml:"metrics_addr" validate:"omitempty,hostname_port"`
	LogLevel      string   `yaml:"log_level" validate:"oneof=trace debug info warn warning error"`
	WindowWidth   int      `yaml:"window_width" validate:"min=320"`
	WindowHeight  int      `yaml:"window_height" validate:"min=240"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TPS:           TPS,
		Speed:         StepSpeed,
		IndicatorSize: IndicatorSize,
		Threshold:     Threshold,
		SampleMin:     SampleMin,
		SampleMax:     SampleMax,
		StoreCommand:  []string{"python", "store_data.py"},
		Chime:         true,
		LogLevel:      "info",
		WindowWidth:   WindowWidth,
		WindowHeight:  WindowHeight,
	}
}

// Load reads a YAML file over the defaults and validates the result. An empty
// path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Decode(bytes.NewReader(b), &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode reads YAML from r into cfg, rejecting unknown keys.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validateStruct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
