package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultBuilds(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	p, m, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if p == nil || m == nil {
		t.Fatal("Build returned nil components")
	}

	if got := p.Analyzer().FrameLength(); got != 4096 {
		t.Fatalf("frame length %d, want 4096", got)
	}
}

func TestParseOverridesOnlySetFields(t *testing.T) {
	cfg, err := Parse([]byte(`
audio:
  sample_rate: 44100
detector:
  strategy: adaptive
  offset_db: 9
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Audio.SampleRate != 44100 {
		t.Fatalf("sample rate %v, want 44100", cfg.Audio.SampleRate)
	}

	// Untouched fields keep their defaults.
	if cfg.Audio.FrameLength != 4096 {
		t.Fatalf("frame length %d, want default 4096", cfg.Audio.FrameLength)
	}

	if cfg.Detector.Strategy != "adaptive" {
		t.Fatalf("strategy %q, want adaptive", cfg.Detector.Strategy)
	}

	if cfg.Detector.OffsetDB != 9 {
		t.Fatalf("offset %v, want 9", cfg.Detector.OffsetDB)
	}

	if cfg.Constellation.FadeHorizon != 3.0 {
		t.Fatalf("fade horizon %v, want default 3.0", cfg.Constellation.FadeHorizon)
	}
}

func TestParseMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("audio: [")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidateRejectsUnknownEnums(t *testing.T) {
	cfg := Default()
	cfg.Audio.Window = "kaiser"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported window")
	}

	cfg = Default()
	cfg.Detector.Strategy = "hybrid"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}

func TestBuildRejectsInvalidNumbers(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"frame length", func(c *Config) { c.Audio.FrameLength = 1000 }},
		{"sample rate", func(c *Config) { c.Audio.SampleRate = -1 }},
		{"peak distance", func(c *Config) { c.Detector.MinPeakDistance = 0 }},
		{"fade horizon", func(c *Config) { c.Constellation.FadeHorizon = 0 }},
		{"min fade", func(c *Config) { c.Constellation.MinFade = 2 }},
		{"frequency range", func(c *Config) { c.Projection.MaxFreq = 10 }},
		{"gamma", func(c *Config) { c.Projection.Gamma = -0.7 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)

			if _, _, err := cfg.Build(); err == nil {
				t.Fatal("expected build error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "constviz.yaml")

	data := []byte("constellation:\n  max_history: 64\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Constellation.MaxHistory != 64 {
		t.Fatalf("max history %d, want 64", cfg.Constellation.MaxHistory)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
