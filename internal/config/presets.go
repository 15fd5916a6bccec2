package config

import "sort"

// Presets override the morph section of the default config.
var Presets = map[string]MorphConfig{
	"default": {
		Resolution: 200, CellSize: 3, Step: 0.001,
		WobbleAmplitude: 1.2, WobbleSpeed: 4, RefreshRate: 60,
	},
	"quick": {
		Resolution: 200, CellSize: 3, Step: 0.005,
		WobbleAmplitude: 1.2, WobbleSpeed: 4, RefreshRate: 60,
	},
	"calm": {
		Resolution: 200, CellSize: 3, Step: 0.001,
		WobbleAmplitude: 0.4, WobbleSpeed: 2, RefreshRate: 60,
	},
	"jitter": {
		Resolution: 200, CellSize: 3, Step: 0.001,
		WobbleAmplitude: 3, WobbleSpeed: 8, RefreshRate: 60,
	},
	"terminal": {
		Resolution: 48, CellSize: 1, Step: 0.004,
		WobbleAmplitude: 0.6, WobbleSpeed: 4, RefreshRate: 30,
	},
}

// GetPreset returns the default config with the named preset applied, or
// nil if the preset does not exist.
func GetPreset(name string) *Config {
	m, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Morph = m
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
