package analyzer

import "github.com/cwbudde/algo-constellation/dsp/window"

// Config defines spectral analysis settings.
type Config struct {
	SampleRate  float64
	FrameLength int // samples per frame, power of two
	Window      window.Type
	FloorDB     float64 // clamp for log-magnitude conversion
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns sensible defaults for live audio analysis.
func DefaultConfig() Config {
	return Config{
		SampleRate:  48000,
		FrameLength: 4096,
		Window:      window.TypeHann,
		FloorDB:     -120,
	}
}

// WithSampleRate sets the input sample rate in Hz.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		cfg.SampleRate = sampleRate
	}
}

// WithFrameLength sets the frame length in samples (must be a power of two).
func WithFrameLength(frameLength int) Option {
	return func(cfg *Config) {
		cfg.FrameLength = frameLength
	}
}

// WithWindow selects the analysis window type.
func WithWindow(t window.Type) Option {
	return func(cfg *Config) {
		cfg.Window = t
	}
}

// WithFloorDB sets the dB floor applied during log-magnitude conversion.
func WithFloorDB(floorDB float64) Option {
	return func(cfg *Config) {
		cfg.FloorDB = floorDB
	}
}

// ApplyOptions applies zero or more options to the default config.
//
// Options record values verbatim; validation happens in New so that an
// invalid configuration refuses to start instead of silently reverting to a
// default that would desynchronize the frequency mapping.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
