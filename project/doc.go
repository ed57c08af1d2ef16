// Package project maps raw peak (frequency, magnitude) values into bounded,
// renderer-agnostic normalized coordinates.
package project
