package analyzer

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-constellation/dsp/window"
	"github.com/cwbudde/algo-constellation/internal/testutil"
)

func mustNew(t *testing.T, opts ...Option) *Analyzer {
	t.Helper()

	a, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	return a
}

func TestNewValidation(t *testing.T) {
	cases := []struct {
		name string
		opts []Option
	}{
		{"zero sample rate", []Option{WithSampleRate(0)}},
		{"negative sample rate", []Option{WithSampleRate(-48000)}},
		{"frame length too small", []Option{WithFrameLength(1)}},
		{"frame length not power of two", []Option{WithFrameLength(4095)}},
		{"unknown window", []Option{WithWindow(window.Type(99))}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.opts...); err == nil {
				t.Fatal("expected construction error")
			}
		})
	}
}

func TestNewDefaults(t *testing.T) {
	a := mustNew(t)

	if a.SampleRate() != 48000 {
		t.Fatalf("sample rate %v, want 48000", a.SampleRate())
	}

	if a.FrameLength() != 4096 {
		t.Fatalf("frame length %d, want 4096", a.FrameLength())
	}

	if a.BinCount() != 2048 {
		t.Fatalf("bin count %d, want 2048", a.BinCount())
	}
}

func TestBinFrequencyMapping(t *testing.T) {
	// Frame length 4096 at 48 kHz: bin 0 is DC, bin 2048 is Nyquist.
	a := mustNew(t, WithSampleRate(48000), WithFrameLength(4096))

	if got := a.BinToFrequency(0); got != 0 {
		t.Fatalf("bin 0: got %v Hz, want 0", got)
	}

	if got := a.BinToFrequency(2048); got != 24000 {
		t.Fatalf("bin 2048: got %v Hz, want 24000", got)
	}

	if got := a.BinToFrequency(1); math.Abs(got-11.71875) > 1e-12 {
		t.Fatalf("bin 1: got %v Hz, want 11.71875", got)
	}
}

func TestBinFrequencyRoundTrip(t *testing.T) {
	rates := []float64{44100, 48000, 96000}

	for _, rate := range rates {
		a := mustNew(t, WithSampleRate(rate), WithFrameLength(4096))

		for _, bin := range []int{0, 1, 2, 100, 500, 1023, 2047} {
			if got := a.FrequencyToBin(a.BinToFrequency(bin)); got != bin {
				t.Fatalf("rate %v: round trip of bin %d gave %d", rate, bin, got)
			}
		}
	}
}

func TestFrequencyToBinFloors(t *testing.T) {
	a := mustNew(t, WithSampleRate(48000), WithFrameLength(4096))

	// Frequencies between bin centres floor down.
	f := a.BinToFrequency(100) + a.BinToFrequency(1)/2
	if got := a.FrequencyToBin(f); got != 100 {
		t.Fatalf("mid-bin frequency mapped to %d, want 100", got)
	}
}

func TestAnalyzeFrameLengthMismatch(t *testing.T) {
	a := mustNew(t)

	if _, err := a.Analyze(make([]float64, 1024)); err == nil {
		t.Fatal("expected error for short frame")
	}

	if _, err := a.Analyze(make([]float64, 8192)); err == nil {
		t.Fatal("expected error for long frame")
	}
}

func TestAnalyzeSilence(t *testing.T) {
	// An all-zero frame produces an all-floor spectrum, never NaN or -Inf.
	a := mustNew(t, WithFloorDB(-120))

	spec, err := a.Analyze(testutil.Silence(4096))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(spec) != 2048 {
		t.Fatalf("spectrum length %d, want 2048", len(spec))
	}

	testutil.RequireFinite(t, spec)

	for i, v := range spec {
		if v != -120 {
			t.Fatalf("bin %d: got %v dB, want floor -120", i, v)
		}
	}
}

func TestAnalyzeSineAtBinCentre(t *testing.T) {
	a := mustNew(t, WithSampleRate(48000), WithFrameLength(4096))

	// 100 cycles per frame lands exactly on bin 100 with the periodic window.
	freq := a.BinToFrequency(100)
	frame := testutil.DeterministicSine(freq, 48000, 0.5, 4096)

	spec, err := a.Analyze(frame)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	testutil.RequireFinite(t, spec)

	maxBin := 0
	for i, v := range spec {
		if v > spec[maxBin] {
			maxBin = i
		}
	}

	if maxBin != 100 {
		t.Fatalf("peak at bin %d, want 100", maxBin)
	}

	// A half-amplitude sine reads -6 dBFS at its bin centre.
	testutil.RequireNearlyEqual(t, spec[100], 20*math.Log10(0.5), 0.1)

	// Away from the peak the spectrum sits at the floor.
	if spec[1000] > -100 {
		t.Fatalf("far bin at %v dB, want near floor", spec[1000])
	}
}

func TestAnalyzeNormalizationIsWindowIndependent(t *testing.T) {
	for _, typ := range []window.Type{window.TypeHann, window.TypeHamming, window.TypeBlackman} {
		a := mustNew(t, WithWindow(typ))

		freq := a.BinToFrequency(200)
		frame := testutil.DeterministicSine(freq, 48000, 1.0, 4096)

		spec, err := a.Analyze(frame)
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}

		// Full-scale bin-centre sine reads 0 dBFS under any window.
		testutil.RequireNearlyEqual(t, spec[200], 0, 0.1)
	}
}

func TestAnalyzeScratchDoesNotLeakBetweenCalls(t *testing.T) {
	a := mustNew(t)

	loud := testutil.DeterministicSine(a.BinToFrequency(100), 48000, 1.0, 4096)
	if _, err := a.Analyze(loud); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	spec, err := a.Analyze(testutil.Silence(4096))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	for i, v := range spec {
		if v != a.FloorDB() {
			t.Fatalf("bin %d: got %v dB after silence, want floor", i, v)
		}
	}
}

func TestAnalyzeDoesNotMutateInput(t *testing.T) {
	a := mustNew(t)

	frame := testutil.DeterministicSine(1000, 48000, 0.5, 4096)
	orig := make([]float64, len(frame))
	copy(orig, frame)

	if _, err := a.Analyze(frame); err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, frame, orig, 0)
}
