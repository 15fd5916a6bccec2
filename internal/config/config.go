package config

import (
	"fmt"
	"os"

	"github.com/san-kum/pixmorph/internal/morph"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTargetPath = "assets/target.jpg"
	DefaultTheme      = "minimal"
	DefaultLogLevel   = "info"
)

type Config struct {
	TargetPath string       `yaml:"target"`
	Seed       int64        `yaml:"seed"`
	Theme      string       `yaml:"theme"`
	LogLevel   string       `yaml:"log_level"`
	Morph      MorphConfig  `yaml:"morph"`
	Export     ExportConfig `yaml:"export"`
}

type MorphConfig struct {
	Resolution      int     `yaml:"resolution"`
	CellSize        int     `yaml:"cell_size"`
	Step            float64 `yaml:"step"`
	WobbleAmplitude float64 `yaml:"wobble_amplitude"`
	WobbleSpeed     float64 `yaml:"wobble_speed"`
	RefreshRate     float64 `yaml:"refresh_rate"`
}

type ExportConfig struct {
	Every      int `yaml:"every"`
	TailFrames int `yaml:"tail_frames"`
}

func DefaultConfig() *Config {
	p := morph.DefaultParams()
	return &Config{
		TargetPath: DefaultTargetPath,
		Theme:      DefaultTheme,
		LogLevel:   DefaultLogLevel,
		Morph: MorphConfig{
			Resolution:      p.Resolution,
			CellSize:        p.CellSize,
			Step:            p.Step,
			WobbleAmplitude: p.WobbleAmplitude,
			WobbleSpeed:     p.WobbleSpeed,
			RefreshRate:     p.RefreshRate,
		},
		Export: ExportConfig{
			Every:      4,
			TailFrames: 120,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the morph section into engine parameters.
func (c *Config) Params() morph.Params {
	return morph.Params{
		Resolution:      c.Morph.Resolution,
		CellSize:        c.Morph.CellSize,
		Step:            c.Morph.Step,
		WobbleAmplitude: c.Morph.WobbleAmplitude,
		WobbleSpeed:     c.Morph.WobbleSpeed,
		RefreshRate:     c.Morph.RefreshRate,
	}
}

func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if c.Export.Every <= 0 {
		return fmt.Errorf("export every must be positive, got %d", c.Export.Every)
	}
	if c.Export.TailFrames < 0 {
		return fmt.Errorf("export tail frames must not be negative, got %d", c.Export.TailFrames)
	}
	return nil
}
