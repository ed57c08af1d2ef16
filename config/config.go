// Package config provides the YAML configuration schema for the
// constellation pipeline and builds configured component instances from it.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-constellation/analyzer"
	"github.com/cwbudde/algo-constellation/constellation"
	"github.com/cwbudde/algo-constellation/dsp/window"
	"github.com/cwbudde/algo-constellation/peaks"
	"github.com/cwbudde/algo-constellation/pipeline"
	"github.com/cwbudde/algo-constellation/project"
)

// Config is the root configuration for the visualization core.
type Config struct {
	Audio         Audio         `yaml:"audio"`
	Detector      Detector      `yaml:"detector"`
	Constellation Constellation `yaml:"constellation"`
	Projection    Projection    `yaml:"projection"`
}

// Audio configures the spectral analyzer.
type Audio struct {
	SampleRate  float64 `yaml:"sample_rate"`
	FrameLength int     `yaml:"frame_length"`
	Window      string  `yaml:"window"`
	FloorDB     float64 `yaml:"floor_db"`
}

// Detector configures peak detection.
type Detector struct {
	Strategy         string  `yaml:"strategy"`
	MinPeakHeight    float64 `yaml:"min_peak_height"`
	MinPeakDistance  int     `yaml:"min_peak_distance"`
	MaxPeaksPerFrame int     `yaml:"max_peaks_per_frame"`
	WindowSize       int     `yaml:"window_size"`
	OffsetDB         float64 `yaml:"offset_db"`
}

// Constellation configures peak retention and fading.
type Constellation struct {
	FadeHorizon float64 `yaml:"fade_horizon"`
	MaxHistory  int     `yaml:"max_history"`
	MinFade     float64 `yaml:"min_fade"`
}

// Projection configures the coordinate normalization layer.
type Projection struct {
	MinFreq   float64 `yaml:"min_freq"`
	MaxFreq   float64 `yaml:"max_freq"`
	LogWeight float64 `yaml:"log_weight"`
	MinDB     float64 `yaml:"min_db"`
	MaxDB     float64 `yaml:"max_db"`
	Gamma     float64 `yaml:"gamma"`
}

var windowTypes = map[string]window.Type{
	"rectangular":     window.TypeRectangular,
	"hann":            window.TypeHann,
	"hamming":         window.TypeHamming,
	"blackman":        window.TypeBlackman,
	"blackman-harris": window.TypeBlackmanHarris4Term,
}

var strategies = map[string]peaks.Strategy{
	"fixed":    peaks.StrategyFixed,
	"adaptive": peaks.StrategyAdaptive,
}

// Default returns the configuration matching every package's defaults.
func Default() Config {
	ac := analyzer.DefaultConfig()
	dc := peaks.DefaultDetectorConfig()
	sc := constellation.DefaultStoreConfig()
	pc := project.DefaultConfig()

	return Config{
		Audio: Audio{
			SampleRate:  ac.SampleRate,
			FrameLength: ac.FrameLength,
			Window:      "hann",
			FloorDB:     ac.FloorDB,
		},
		Detector: Detector{
			Strategy:         "fixed",
			MinPeakHeight:    dc.MinPeakHeight,
			MinPeakDistance:  dc.MinPeakDistance,
			MaxPeaksPerFrame: dc.MaxPeaksPerFrame,
			WindowSize:       dc.WindowSize,
			OffsetDB:         dc.OffsetDB,
		},
		Constellation: Constellation{
			FadeHorizon: sc.FadeHorizon,
			MaxHistory:  sc.MaxHistory,
			MinFade:     sc.MinFade,
		},
		Projection: Projection{
			MinFreq:   pc.MinFreq,
			MaxFreq:   pc.MaxFreq,
			LogWeight: pc.LogWeight,
			MinDB:     pc.MinDB,
			MaxDB:     pc.MaxDB,
			Gamma:     pc.Gamma,
		},
	}
}

// Parse decodes YAML over the defaults, so omitted fields keep their
// default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// Load reads and parses a YAML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	return Parse(data)
}

// Validate checks the fields the string enums cover; numeric ranges are
// validated by the component constructors in Build.
func (c Config) Validate() error {
	if _, ok := windowTypes[c.Audio.Window]; !ok {
		return fmt.Errorf("unknown window type %q", c.Audio.Window)
	}
	if _, ok := strategies[c.Detector.Strategy]; !ok {
		return fmt.Errorf("unknown detection strategy %q", c.Detector.Strategy)
	}

	return nil
}

// Build validates the configuration and constructs the full pipeline plus
// the coordinate mapper.
func (c Config) Build() (*pipeline.Pipeline, *project.Mapper, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	a, err := analyzer.New(
		analyzer.WithSampleRate(c.Audio.SampleRate),
		analyzer.WithFrameLength(c.Audio.FrameLength),
		analyzer.WithWindow(windowTypes[c.Audio.Window]),
		analyzer.WithFloorDB(c.Audio.FloorDB),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("build analyzer: %w", err)
	}

	d, err := peaks.NewDetector(a,
		peaks.WithStrategy(strategies[c.Detector.Strategy]),
		peaks.WithMinPeakHeight(c.Detector.MinPeakHeight),
		peaks.WithMinPeakDistance(c.Detector.MinPeakDistance),
		peaks.WithMaxPeaksPerFrame(c.Detector.MaxPeaksPerFrame),
		peaks.WithWindowSize(c.Detector.WindowSize),
		peaks.WithOffsetDB(c.Detector.OffsetDB),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("build detector: %w", err)
	}

	s, err := constellation.NewStore(
		constellation.WithFadeHorizon(c.Constellation.FadeHorizon),
		constellation.WithMaxHistory(c.Constellation.MaxHistory),
		constellation.WithMinFade(c.Constellation.MinFade),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("build store: %w", err)
	}

	m, err := project.NewMapper(
		project.WithFrequencyRange(c.Projection.MinFreq, c.Projection.MaxFreq),
		project.WithLogWeight(c.Projection.LogWeight),
		project.WithMagnitudeRange(c.Projection.MinDB, c.Projection.MaxDB),
		project.WithGamma(c.Projection.Gamma),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("build mapper: %w", err)
	}

	p, err := pipeline.New(a, d, s)
	if err != nil {
		return nil, nil, err
	}

	return p, m, nil
}
