// Package window generates tapering window coefficients for spectral
// analysis framing.
//
// Only the window families useful for peak extraction are provided; all of
// them are cosine-sum windows evaluated from their published coefficients.
// Coefficients are plain []float64 slices so they can be precomputed once
// and shared read-only between analysis calls.
package window
