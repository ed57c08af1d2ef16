package constellation

// StoreConfig defines retention and fade settings for the constellation.
type StoreConfig struct {
	FadeHorizon float64 // seconds an entry stays visible
	MaxHistory  int     // hard cap on retained entries
	MinFade     float64 // lower bound for the fade factor of live entries
}

// StoreOption mutates a StoreConfig.
type StoreOption func(*StoreConfig)

// DefaultStoreConfig returns sensible defaults.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		FadeHorizon: 3.0,
		MaxHistory:  200,
		MinFade:     0.1,
	}
}

// WithFadeHorizon sets the age in seconds beyond which entries are pruned.
func WithFadeHorizon(seconds float64) StoreOption {
	return func(cfg *StoreConfig) {
		cfg.FadeHorizon = seconds
	}
}

// WithMaxHistory sets the hard cap on retained entries.
func WithMaxHistory(n int) StoreOption {
	return func(cfg *StoreConfig) {
		cfg.MaxHistory = n
	}
}

// WithMinFade sets the minimum fade factor reported for live entries.
func WithMinFade(minFade float64) StoreOption {
	return func(cfg *StoreConfig) {
		cfg.MinFade = minFade
	}
}

// ApplyStoreOptions applies zero or more options to the default config.
func ApplyStoreOptions(opts ...StoreOption) StoreConfig {
	cfg := DefaultStoreConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
