// Package analyzer performs windowed spectral analysis of streaming audio
// frames.
//
// Each Analyzer owns a precomputed window, an FFT plan, and reusable scratch
// buffers, so steady-state analysis allocates only the returned spectrum.
package analyzer
