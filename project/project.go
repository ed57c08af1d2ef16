package project

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-constellation/constellation"
	"github.com/cwbudde/algo-constellation/dsp/core"
	"github.com/cwbudde/algo-constellation/peaks"
)

// Point is a renderer-agnostic projected peak: normalized position in
// [0,1]x[0,1] plus the fade factor carried over from the snapshot.
type Point struct {
	X    float64
	Y    float64
	Fade float64
}

// Config defines the normalization ranges and shaping constants.
type Config struct {
	MinFreq   float64 // Hz, lower edge of the frequency axis
	MaxFreq   float64 // Hz, upper edge of the frequency axis
	LogWeight float64 // blend between log (1) and linear (0) frequency position
	MinDB     float64 // lower edge of the magnitude axis
	MaxDB     float64 // upper edge of the magnitude axis
	Gamma     float64 // power-law compression exponent for the magnitude axis
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the ranges tuned for musical content.
//
// The 0.8/0.2 log/linear blend is deliberate: a pure log axis overcrowds the
// low end and a pure linear axis overcrowds the high end. Gamma spreads
// mid-range magnitudes; it is a visualization tuning knob, not a constant.
func DefaultConfig() Config {
	return Config{
		MinFreq:   80,
		MaxFreq:   12000,
		LogWeight: 0.8,
		MinDB:     -60,
		MaxDB:     -10,
		Gamma:     0.7,
	}
}

// WithFrequencyRange sets the frequency axis clamp range in Hz.
func WithFrequencyRange(minFreq, maxFreq float64) Option {
	return func(cfg *Config) {
		cfg.MinFreq = minFreq
		cfg.MaxFreq = maxFreq
	}
}

// WithLogWeight sets the log/linear frequency position blend in [0, 1].
func WithLogWeight(w float64) Option {
	return func(cfg *Config) {
		cfg.LogWeight = w
	}
}

// WithMagnitudeRange sets the magnitude axis clamp range in dB.
func WithMagnitudeRange(minDB, maxDB float64) Option {
	return func(cfg *Config) {
		cfg.MinDB = minDB
		cfg.MaxDB = maxDB
	}
}

// WithGamma sets the magnitude power-law compression exponent.
func WithGamma(gamma float64) Option {
	return func(cfg *Config) {
		cfg.Gamma = gamma
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// Mapper maps peaks into normalized render coordinates. It is stateless
// after construction and safe for concurrent use.
type Mapper struct {
	cfg      Config
	logRange float64
}

// NewMapper creates a coordinate mapper, failing fast on invalid ranges.
func NewMapper(opts ...Option) (*Mapper, error) {
	cfg := ApplyOptions(opts...)

	if cfg.MinFreq <= 0 {
		return nil, fmt.Errorf("min frequency must be > 0 Hz: %f", cfg.MinFreq)
	}
	if cfg.MaxFreq <= cfg.MinFreq {
		return nil, fmt.Errorf("max frequency must exceed min: %f <= %f", cfg.MaxFreq, cfg.MinFreq)
	}
	if cfg.LogWeight < 0 || cfg.LogWeight > 1 {
		return nil, fmt.Errorf("log weight must be in [0, 1]: %f", cfg.LogWeight)
	}
	if cfg.MaxDB <= cfg.MinDB {
		return nil, fmt.Errorf("max dB must exceed min dB: %f <= %f", cfg.MaxDB, cfg.MinDB)
	}
	if cfg.Gamma <= 0 {
		return nil, fmt.Errorf("gamma must be > 0: %f", cfg.Gamma)
	}

	return &Mapper{
		cfg:      cfg,
		logRange: math.Log10(cfg.MaxFreq / cfg.MinFreq),
	}, nil
}

// Config returns the mapper configuration.
func (m *Mapper) Config() Config {
	return m.cfg
}

// Position maps a peak to normalized (x, y) coordinates in [0,1]x[0,1].
// Out-of-range frequencies and magnitudes are clamped, never rejected.
func (m *Mapper) Position(p peaks.Peak) (x, y float64) {
	cfg := m.cfg

	f := core.Clamp(p.Frequency, cfg.MinFreq, cfg.MaxFreq)
	logPos := math.Log10(f/cfg.MinFreq) / m.logRange
	linPos := (f - cfg.MinFreq) / (cfg.MaxFreq - cfg.MinFreq)
	x = cfg.LogWeight*logPos + (1-cfg.LogWeight)*linPos

	mag := core.Clamp(p.Magnitude, cfg.MinDB, cfg.MaxDB)
	y = math.Pow((mag-cfg.MinDB)/(cfg.MaxDB-cfg.MinDB), cfg.Gamma)

	return core.Clamp(x, 0, 1), core.Clamp(y, 0, 1)
}

// Project maps a snapshot into render points, preserving order and fade.
func (m *Mapper) Project(snapshot []constellation.FadedPeak) []Point {
	out := make([]Point, len(snapshot))
	for i, fp := range snapshot {
		x, y := m.Position(fp.Peak)
		out[i] = Point{X: x, Y: y, Fade: fp.Fade}
	}

	return out
}
