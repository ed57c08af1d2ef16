package peaks

import (
	"fmt"
	"sort"
)

// Detector extracts ranked local-maxima peaks from dB magnitude spectra.
//
// A Detector is pure with respect to its inputs: Detect never mutates the
// spectrum and returns the same peak list for the same spectrum and
// timestamp. It reuses internal scratch memory and is therefore not safe for
// concurrent use; run it on the single producer context that owns the
// analysis stream.
type Detector struct {
	cfg    DetectorConfig
	mapper FrequencyMapper

	median []float64 // scratch for adaptive median windows
	cands  []candidate
}

type candidate struct {
	bin       int
	magnitude float64
}

// NewDetector creates a peak detector.
//
// The frequency mapper is required; there is no implicit fallback sample
// rate. Callers without an analyzer instance pass a validated StaticMapper.
func NewDetector(mapper FrequencyMapper, opts ...DetectorOption) (*Detector, error) {
	if mapper == nil {
		return nil, fmt.Errorf("peak detector requires a frequency mapper")
	}

	cfg := ApplyDetectorOptions(opts...)

	if cfg.Strategy != StrategyFixed && cfg.Strategy != StrategyAdaptive {
		return nil, fmt.Errorf("unknown detection strategy: %d", cfg.Strategy)
	}
	if cfg.MinPeakDistance < 1 {
		return nil, fmt.Errorf("min peak distance must be >= 1 bin: %d", cfg.MinPeakDistance)
	}
	if cfg.MaxPeaksPerFrame < 1 {
		return nil, fmt.Errorf("max peaks per frame must be >= 1: %d", cfg.MaxPeaksPerFrame)
	}
	if cfg.Strategy == StrategyAdaptive && cfg.WindowSize < 1 {
		return nil, fmt.Errorf("adaptive window size must be >= 1 bin: %d", cfg.WindowSize)
	}

	return &Detector{cfg: cfg, mapper: mapper}, nil
}

// Config returns the detector configuration.
func (d *Detector) Config() DetectorConfig {
	return d.cfg
}

// Detect scans a dB magnitude spectrum for local maxima and returns at most
// MaxPeaksPerFrame peaks, sorted by descending magnitude with ascending bin
// index as the tie-break.
//
// A spectrum too short to contain a full local-maximum neighbourhood yields
// an empty result; silence and below-threshold content likewise. Detect
// never returns an error: absence of peaks is a legitimate outcome, not a
// failure.
func (d *Detector) Detect(spectrum []float64, timestamp float64) []Peak {
	d.cands = d.cands[:0]

	switch d.cfg.Strategy {
	case StrategyAdaptive:
		d.collectAdaptive(spectrum)
	default:
		d.collectFixed(spectrum)
	}

	if len(d.cands) == 0 {
		return nil
	}

	// Stable keeps earlier (lower-bin) candidates first on equal magnitude.
	sort.SliceStable(d.cands, func(i, j int) bool {
		return d.cands[i].magnitude > d.cands[j].magnitude
	})

	n := len(d.cands)
	if n > d.cfg.MaxPeaksPerFrame {
		n = d.cfg.MaxPeaksPerFrame
	}

	out := make([]Peak, n)
	for i := 0; i < n; i++ {
		c := d.cands[i]
		out[i] = Peak{
			Frequency: d.mapper.BinToFrequency(c.bin),
			Magnitude: c.magnitude,
			Timestamp: timestamp,
			Bin:       c.bin,
		}
	}

	return out
}

func (d *Detector) collectFixed(spectrum []float64) {
	dist := d.cfg.MinPeakDistance
	if len(spectrum) < 2*dist {
		return
	}

	for i := dist; i < len(spectrum)-dist; i++ {
		v := spectrum[i]
		if v <= d.cfg.MinPeakHeight {
			continue
		}

		if d.isStrictMaximum(spectrum, i, dist) {
			d.cands = append(d.cands, candidate{bin: i, magnitude: v})
		}
	}
}

func (d *Detector) collectAdaptive(spectrum []float64) {
	w := d.cfg.WindowSize
	if len(spectrum) < 2*w {
		return
	}

	dist := d.cfg.MinPeakDistance

	for i := w; i < len(spectrum)-w; i++ {
		v := spectrum[i]

		threshold := d.localMedian(spectrum[i-w:i+w]) + d.cfg.OffsetDB
		if v <= threshold {
			continue
		}

		// Same strict neighbourhood test as the fixed strategy, bounded to
		// the bins the iteration range guarantees are present.
		half := dist
		if half > i {
			half = i
		}
		if max := len(spectrum) - 1 - i; half > max {
			half = max
		}

		if d.isStrictMaximum(spectrum, i, half) {
			d.cands = append(d.cands, candidate{bin: i, magnitude: v})
		}
	}
}

// isStrictMaximum reports whether spectrum[i] is strictly greater than every
// neighbour within +/-half bins. A tie with any neighbour disqualifies the
// candidate, so plateau edges never report duplicate adjacent peaks.
func (d *Detector) isStrictMaximum(spectrum []float64, i, half int) bool {
	v := spectrum[i]
	for j := i - half; j <= i+half; j++ {
		if j == i {
			continue
		}
		if spectrum[j] >= v {
			return false
		}
	}

	return true
}

// localMedian computes the median of a window using reusable scratch.
// Even-sized windows take the mean of the two middle values.
func (d *Detector) localMedian(window []float64) float64 {
	if cap(d.median) < len(window) {
		d.median = make([]float64, len(window))
	}
	d.median = d.median[:len(window)]
	copy(d.median, window)

	sort.Float64s(d.median)

	n := len(d.median)
	if n%2 == 1 {
		return d.median[n/2]
	}

	return (d.median[n/2-1] + d.median[n/2]) / 2
}
