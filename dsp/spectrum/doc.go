// Package spectrum converts complex FFT bins into magnitude, power, and
// log-magnitude representations.
//
// The package intentionally does not implement FFT itself. It operates on
// complex spectrum bins produced by external FFT backends and provides the
// conversions the peak-extraction pipeline needs, with zero-allocation fast
// paths for per-frame streaming use.
package spectrum
