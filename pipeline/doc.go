// Package pipeline composes the analyzer, peak detector, and constellation
// store into the producer-side processing chain of the visualizer.
package pipeline
