package peaks

import "fmt"

// Peak is one detected spectral local maximum.
//
// A Peak is an immutable value: Frequency is fully determined by Bin and the
// sample-rate/frame-length configuration of the analysis that produced it.
type Peak struct {
	Frequency float64 // Hz
	Magnitude float64 // dB
	Timestamp float64 // seconds since stream start
	Bin       int     // index into the source spectrum
}

// FrequencyMapper converts spectrum bin indices to frequencies in Hz.
//
// The analyzer package satisfies this interface; a StaticMapper can stand in
// when no analyzer instance is available.
type FrequencyMapper interface {
	BinToFrequency(bin int) float64
}

// StaticMapper maps bins to frequencies from a fixed sample rate and frame
// length, for callers that detect peaks on externally produced spectra.
//
// Use NewStaticMapper so the configuration is validated up front; a zero
// StaticMapper maps every bin to 0 Hz, which downstream stages reject.
type StaticMapper struct {
	sampleRate  float64
	frameLength int
}

// NewStaticMapper returns a validated bin-to-frequency mapping.
func NewStaticMapper(sampleRate float64, frameLength int) (StaticMapper, error) {
	if sampleRate <= 0 {
		return StaticMapper{}, fmt.Errorf("static mapper sample rate must be > 0: %f", sampleRate)
	}
	if frameLength < 2 {
		return StaticMapper{}, fmt.Errorf("static mapper frame length must be >= 2: %d", frameLength)
	}

	return StaticMapper{sampleRate: sampleRate, frameLength: frameLength}, nil
}

// BinToFrequency returns bin * sampleRate / frameLength.
func (m StaticMapper) BinToFrequency(bin int) float64 {
	if m.frameLength == 0 {
		return 0
	}

	return float64(bin) * m.sampleRate / float64(m.frameLength)
}
