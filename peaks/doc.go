// Package peaks detects ranked local-maxima peaks in magnitude spectra.
//
// Detection supports a fixed global threshold and an adaptive local-median
// threshold, selected once per Detector. Bin-to-frequency conversion is
// delegated to an injected FrequencyMapper so the detector never assumes a
// sample rate of its own.
package peaks
