package analyzer

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-constellation/dsp/core"
	"github.com/cwbudde/algo-constellation/dsp/spectrum"
	"github.com/cwbudde/algo-constellation/dsp/window"
)

// Analyzer converts fixed-length mono audio frames into dB magnitude spectra.
//
// The window coefficients and FFT plan are created once at construction and
// shared read-only across calls. Analyze reuses internal scratch buffers and
// is therefore not safe for concurrent use; run it on the single producer
// context that owns the audio stream.
type Analyzer struct {
	sampleRate  float64
	frameLength int
	floorDB     float64
	binWidth    float64

	coeffs    []float64
	powerGain float64 // normalizes bin power so a full-scale sine reads 0 dB
	plan      *algofft.Plan[complex128]

	// Scratch reused between calls; fully overwritten before being read.
	windowed []float64
	fftIn    []complex128
	fftOut   []complex128
}

// New creates an Analyzer, failing fast on invalid configuration.
func New(opts ...Option) (*Analyzer, error) {
	cfg := ApplyOptions(opts...)

	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("analyzer sample rate must be > 0: %f", cfg.SampleRate)
	}
	if cfg.FrameLength < 2 {
		return nil, fmt.Errorf("analyzer frame length must be >= 2: %d", cfg.FrameLength)
	}
	if !core.IsPowerOfTwo(cfg.FrameLength) {
		return nil, fmt.Errorf("analyzer frame length must be a power of two: %d", cfg.FrameLength)
	}
	if !window.Known(cfg.Window) {
		return nil, fmt.Errorf("unknown analysis window type: %d", cfg.Window)
	}

	plan, err := algofft.NewPlan64(cfg.FrameLength)
	if err != nil {
		return nil, fmt.Errorf("analyzer fft plan: %w", err)
	}

	coeffs := window.Generate(cfg.Window, cfg.FrameLength, window.WithPeriodic())

	sum := 0.0
	for _, w := range coeffs {
		sum += w
	}

	// A full-scale sine at a bin centre produces |X| = sum(w)/2 in each of
	// its two conjugate bins; referencing power to that makes the spectrum
	// read in dBFS regardless of window choice.
	gain := 2 / sum

	return &Analyzer{
		sampleRate:  cfg.SampleRate,
		frameLength: cfg.FrameLength,
		floorDB:     cfg.FloorDB,
		binWidth:    cfg.SampleRate / float64(cfg.FrameLength),
		coeffs:      coeffs,
		powerGain:   gain * gain,
		plan:        plan,
		windowed:    make([]float64, cfg.FrameLength),
		fftIn:       make([]complex128, cfg.FrameLength),
		fftOut:      make([]complex128, cfg.FrameLength),
	}, nil
}

// Analyze windows the frame, transforms it, and returns a freshly allocated
// dB magnitude spectrum of FrameLength/2 bins.
//
// The frame must have exactly the configured length; callers pad or truncate
// beforehand. An all-zero frame yields a spectrum with every bin at the
// configured floor, never NaN or -Inf.
func (a *Analyzer) Analyze(frame []float64) ([]float64, error) {
	if len(frame) != a.frameLength {
		return nil, fmt.Errorf("frame length %d does not match configured %d", len(frame), a.frameLength)
	}

	if err := window.ApplyCoefficientsTo(a.windowed, frame, a.coeffs); err != nil {
		return nil, err
	}

	for i, v := range a.windowed {
		a.fftIn[i] = complex(v, 0)
	}

	if err := a.plan.Forward(a.fftOut, a.fftIn); err != nil {
		return nil, fmt.Errorf("analyzer fft forward: %w", err)
	}

	out := make([]float64, a.frameLength/2)
	spectrum.PowerComplex(out, a.fftOut[:len(out)])

	for i := range out {
		out[i] *= a.powerGain
	}

	spectrum.DBFromPower(out, out, a.floorDB)

	return out, nil
}

// BinToFrequency returns bin * sampleRate / frameLength.
func (a *Analyzer) BinToFrequency(bin int) float64 {
	return float64(bin) * a.binWidth
}

// FrequencyToBin returns the floor-rounded inverse of BinToFrequency.
func (a *Analyzer) FrequencyToBin(freq float64) int {
	// The nudge keeps exact bin-centre frequencies from landing one ulp
	// below an integer quotient.
	return int(math.Floor(freq/a.binWidth + 1e-9))
}

// SampleRate returns the configured sample rate in Hz.
func (a *Analyzer) SampleRate() float64 {
	return a.sampleRate
}

// FrameLength returns the configured frame length in samples.
func (a *Analyzer) FrameLength() int {
	return a.frameLength
}

// BinCount returns the number of spectrum bins produced per frame.
func (a *Analyzer) BinCount() int {
	return a.frameLength / 2
}

// FloorDB returns the configured log-magnitude floor.
func (a *Analyzer) FloorDB() float64 {
	return a.floorDB
}
