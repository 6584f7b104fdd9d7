// Package config implements WorldConfig/WeatherConfig YAML decoding and the
// named weather presets (spec.md §4.9). Struct tag-driven decoding is
// grounded on the pack's agent_loader.go, the one example repo that parses
// structured YAML directly rather than through an ORM.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WeatherConfig mirrors internal/environment.Config's shape for YAML
// decoding; the environment package owns the runtime type, this package
// owns the file format.
type WeatherConfig struct {
	RainChance       float64 `yaml:"rain_chance"`
	MaxRainIntensity float64 `yaml:"max_rain_intensity"`
	MaxCloudCover    float64 `yaml:"max_cloud_cover"`
	BaseWindStrength float64 `yaml:"base_wind_strength"`
	WindVariance     float64 `yaml:"wind_variance"`
	EvaporationRate  float64 `yaml:"evaporation_rate"`
	TransitionSpeed  float64 `yaml:"transition_speed"`
}

// WeatherPresets are the named presets from spec.md §4.9: calm, stormy, dry,
// variable. These are Go literals, not loaded from a file — the file loader
// below is for explicit overrides only.
var WeatherPresets = map[string]WeatherConfig{
	"calm": {
		RainChance: 0.02, MaxRainIntensity: 0.2, MaxCloudCover: 0.3,
		BaseWindStrength: 0.1, WindVariance: 0.05, EvaporationRate: 0.01, TransitionSpeed: 0.05,
	},
	"stormy": {
		RainChance: 0.4, MaxRainIntensity: 1.0, MaxCloudCover: 0.9,
		BaseWindStrength: 0.8, WindVariance: 0.3, EvaporationRate: 0.05, TransitionSpeed: 0.2,
	},
	"dry": {
		RainChance: 0.005, MaxRainIntensity: 0.1, MaxCloudCover: 0.15,
		BaseWindStrength: 0.3, WindVariance: 0.1, EvaporationRate: 0.2, TransitionSpeed: 0.05,
	},
	"variable": {
		RainChance: 0.15, MaxRainIntensity: 0.7, MaxCloudCover: 0.6,
		BaseWindStrength: 0.4, WindVariance: 0.4, EvaporationRate: 0.08, TransitionSpeed: 0.3,
	},
}

// WorldConfig is the top-level world configuration document.
type WorldConfig struct {
	Seed               int64          `yaml:"seed"`
	TickDt             float64        `yaml:"tick_dt"`
	WeatherPreset      string         `yaml:"weather_preset"`
	Weather            *WeatherConfig `yaml:"weather,omitempty"` // overrides WeatherPreset if set
	CollisionRadius    float64        `yaml:"collision_radius"`
	RelationalRadius   float64        `yaml:"relational_radius"`
	MemoryDecayRate    float64        `yaml:"memory_decay_rate"`
	ForgetInterval     float64        `yaml:"forget_interval_seconds"`
	EmotionDriftRate   float64        `yaml:"emotion_drift_rate"`
	WorldMindInterval  float64        `yaml:"worldmind_interval_ms"`
	SyncMomentThreshold float64       `yaml:"sync_moment_threshold"`
}

// Default returns the documented default WorldConfig, matching the
// constants named throughout spec.md §4.
func Default() WorldConfig {
	return WorldConfig{
		Seed:                1,
		TickDt:              1.0 / 60.0,
		WeatherPreset:       "calm",
		CollisionRadius:     20,
		RelationalRadius:    80,
		MemoryDecayRate:     0.01,
		ForgetInterval:      10,
		EmotionDriftRate:    0.01,
		WorldMindInterval:   1000,
		SyncMomentThreshold: 0.1,
	}
}

// ResolveWeather returns the effective weather config: the explicit
// override if present, otherwise the named preset.
func (c WorldConfig) ResolveWeather() (WeatherConfig, error) {
	if c.Weather != nil {
		return *c.Weather, nil
	}
	preset, ok := WeatherPresets[c.WeatherPreset]
	if !ok {
		return WeatherConfig{}, fmt.Errorf("unknown weather preset: %q", c.WeatherPreset)
	}
	return preset, nil
}

// Load decodes a WorldConfig from a YAML file at path, starting from
// Default() so a partial override file only needs to name the fields it
// changes.
func Load(path string) (WorldConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return WorldConfig{}, fmt.Errorf("read world config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return WorldConfig{}, fmt.Errorf("parse world config: %w", err)
	}
	return cfg, nil
}
