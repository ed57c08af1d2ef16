// Package constellation retains detected peaks for a bounded time window and
// serves fading snapshots of them.
//
// The store is the only shared mutable state between the audio producer and
// the render consumer; see Store for the locking discipline.
package constellation
