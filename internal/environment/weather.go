package environment

import "github.com/livingworld/kernel/internal/rng"

// Reading is the weather process's current output.
type Reading struct {
	Rain            bool
	RainIntensity   float64
	CloudCover      float64
	WindStrength    float64
	EvaporationRate float64
}

// Preset names one of the documented weather configuration presets
// (spec.md §4.9): calm, stormy, dry, variable.
type Preset string

const (
	PresetCalm     Preset = "calm"
	PresetStormy   Preset = "stormy"
	PresetDry      Preset = "dry"
	PresetVariable Preset = "variable"
)

// Config parameterizes the weather process's transition probabilities and
// intensity ranges.
type Config struct {
	RainChance        float64
	MaxRainIntensity  float64
	MaxCloudCover     float64
	BaseWindStrength  float64
	WindVariance      float64
	EvaporationRate   float64
	TransitionSpeed   float64 // how fast cloud cover/wind drift toward new targets
}

// Presets maps the named weather presets to concrete configs.
var Presets = map[Preset]Config{
	PresetCalm: {
		RainChance: 0.02, MaxRainIntensity: 0.2, MaxCloudCover: 0.3,
		BaseWindStrength: 0.1, WindVariance: 0.05, EvaporationRate: 0.01, TransitionSpeed: 0.05,
	},
	PresetStormy: {
		RainChance: 0.4, MaxRainIntensity: 1.0, MaxCloudCover: 0.9,
		BaseWindStrength: 0.8, WindVariance: 0.3, EvaporationRate: 0.05, TransitionSpeed: 0.2,
	},
	PresetDry: {
		RainChance: 0.005, MaxRainIntensity: 0.1, MaxCloudCover: 0.15,
		BaseWindStrength: 0.3, WindVariance: 0.1, EvaporationRate: 0.2, TransitionSpeed: 0.05,
	},
	PresetVariable: {
		RainChance: 0.15, MaxRainIntensity: 0.7, MaxCloudCover: 0.6,
		BaseWindStrength: 0.4, WindVariance: 0.4, EvaporationRate: 0.08, TransitionSpeed: 0.3,
	},
}

// Weather is the stochastic process that mutates an Environment each tick.
type Weather struct {
	cfg     Config
	stream  *rng.Stream
	reading Reading
}

// NewWeather creates a Weather process with the given config, drawing all
// stochastic decisions from stream.
func NewWeather(cfg Config, stream *rng.Stream) *Weather {
	return &Weather{cfg: cfg, stream: stream}
}

// NewFromPreset creates a Weather process from a named preset.
func NewFromPreset(preset Preset, stream *rng.Stream) *Weather {
	return NewWeather(Presets[preset], stream)
}

// Reading returns the current weather reading.
func (w *Weather) Reading() Reading { return w.reading }

// Update advances the weather process by dt seconds, per spec.md §4.9:
// rain may start/stop stochastically, cloud cover and wind drift toward
// rain-correlated targets.
func (w *Weather) Update(dt float64) {
	if w.stream.Bool(w.cfg.RainChance * dt) {
		w.reading.Rain = !w.reading.Rain
	}

	targetCloud := 0.1
	targetIntensity := 0.0
	if w.reading.Rain {
		targetCloud = w.cfg.MaxCloudCover
		targetIntensity = w.cfg.MaxRainIntensity
	}
	w.reading.CloudCover = rng.Lerp(w.reading.CloudCover, targetCloud, w.cfg.TransitionSpeed*dt)
	w.reading.RainIntensity = rng.Lerp(w.reading.RainIntensity, targetIntensity, w.cfg.TransitionSpeed*dt)

	windJitter := w.stream.Range(-w.cfg.WindVariance, w.cfg.WindVariance)
	w.reading.WindStrength = rng.Clamp(w.cfg.BaseWindStrength+windJitter, 0, 2)
	w.reading.EvaporationRate = w.cfg.EvaporationRate
}

// Apply mutates env according to the current reading: humidity rises
// during rain, light falls with cloud cover, wind is scaled by wind
// strength (spec.md §4.9).
func (w *Weather) Apply(env *Environment) {
	s := env.Base()
	if w.reading.Rain {
		s.Humidity = rng.Clamp01(s.Humidity + w.reading.RainIntensity*0.02)
	} else {
		s.Humidity = rng.Clamp01(s.Humidity - w.reading.EvaporationRate*0.01)
	}
	s.Light = rng.Clamp01(1 - w.reading.CloudCover)
	mag := 1 + w.reading.WindStrength
	s.WindX *= mag
	s.WindY *= mag
	env.SetBase(s)
}

// ValenceNudge returns the small downward valence nudge rain applies to
// entities caught in it (spec.md §4.9: "Rain may nudge entities' valence
// slightly downward").
func (w *Weather) ValenceNudge() float64 {
	if !w.reading.Rain {
		return 0
	}
	return -0.02 * w.reading.RainIntensity
}
