package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Silence returns an all-zero frame.
func Silence(length int) []float64 {
	return make([]float64, length)
}

// FlatSpectrum creates a dB spectrum where every bin sits at floorDB.
func FlatSpectrum(bins int, floorDB float64) []float64 {
	out := make([]float64, bins)
	for i := range out {
		out[i] = floorDB
	}
	return out
}

// SpikeSpectrum creates a flat dB spectrum with isolated spikes.
// Each entry of spikes maps a bin index to its magnitude in dB.
func SpikeSpectrum(bins int, floorDB float64, spikes map[int]float64) []float64 {
	out := FlatSpectrum(bins, floorDB)
	for bin, db := range spikes {
		if bin >= 0 && bin < bins {
			out[bin] = db
		}
	}
	return out
}
