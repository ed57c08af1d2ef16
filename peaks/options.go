package peaks

// Strategy selects the thresholding mode used by a Detector.
type Strategy int

const (
	// StrategyFixed compares every candidate against a single global
	// magnitude threshold.
	StrategyFixed Strategy = iota

	// StrategyAdaptive compares every candidate against the local median
	// magnitude plus a configured offset.
	StrategyAdaptive
)

// DetectorConfig defines peak detection settings.
type DetectorConfig struct {
	Strategy         Strategy
	MinPeakHeight    float64 // dB, fixed-strategy global threshold
	MinPeakDistance  int     // bins, local-maximum neighbourhood half-width
	MaxPeaksPerFrame int
	WindowSize       int     // bins, adaptive median half-width
	OffsetDB         float64 // adaptive threshold above local median
}

// DetectorOption mutates a DetectorConfig.
type DetectorOption func(*DetectorConfig)

// DefaultDetectorConfig returns sensible defaults for musical content.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		Strategy:         StrategyFixed,
		MinPeakHeight:    -50,
		MinPeakDistance:  8,
		MaxPeaksPerFrame: 12,
		WindowSize:       16,
		OffsetDB:         6,
	}
}

// WithStrategy selects the thresholding strategy.
func WithStrategy(s Strategy) DetectorOption {
	return func(cfg *DetectorConfig) {
		cfg.Strategy = s
	}
}

// WithMinPeakHeight sets the fixed-strategy magnitude threshold in dB.
func WithMinPeakHeight(db float64) DetectorOption {
	return func(cfg *DetectorConfig) {
		cfg.MinPeakHeight = db
	}
}

// WithMinPeakDistance sets the local-maximum neighbourhood half-width in bins.
func WithMinPeakDistance(bins int) DetectorOption {
	return func(cfg *DetectorConfig) {
		cfg.MinPeakDistance = bins
	}
}

// WithMaxPeaksPerFrame caps the number of peaks reported per spectrum.
func WithMaxPeaksPerFrame(n int) DetectorOption {
	return func(cfg *DetectorConfig) {
		cfg.MaxPeaksPerFrame = n
	}
}

// WithWindowSize sets the adaptive median half-width in bins.
func WithWindowSize(bins int) DetectorOption {
	return func(cfg *DetectorConfig) {
		cfg.WindowSize = bins
	}
}

// WithOffsetDB sets the adaptive threshold offset above the local median.
func WithOffsetDB(db float64) DetectorOption {
	return func(cfg *DetectorConfig) {
		cfg.OffsetDB = db
	}
}

// ApplyDetectorOptions applies zero or more options to the default config.
func ApplyDetectorOptions(opts ...DetectorOption) DetectorConfig {
	cfg := DefaultDetectorConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
