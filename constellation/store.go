package constellation

import (
	"fmt"
	"sync"

	"github.com/cwbudde/algo-constellation/peaks"
)

// Entry is a retained peak plus its admission timestamp, which serves as the
// eviction key. Entries are never mutated after admission; fade is a pure
// function of (now, Timestamp) recomputed per snapshot.
type Entry struct {
	Peak      peaks.Peak
	Timestamp float64
}

// FadedPeak pairs a live peak with its fade factor at snapshot time.
type FadedPeak struct {
	Peak peaks.Peak
	Fade float64
}

// Store is the time-decayed constellation of detected peaks.
//
// Admit and Prune run on the audio producer context, Snapshot on the render
// consumer context. All three are mutually exclusive for the duration of a
// single call, but the lock is only held for bounded slice copies; the
// per-entry fade math runs outside the critical section, so the producer is
// never stalled behind a slow consumer.
type Store struct {
	mu      sync.Mutex
	entries []Entry
	current []peaks.Peak

	fadeHorizon float64
	maxHistory  int
	minFade     float64
}

// NewStore creates a constellation store, failing fast on invalid settings.
func NewStore(opts ...StoreOption) (*Store, error) {
	cfg := ApplyStoreOptions(opts...)

	if cfg.FadeHorizon <= 0 {
		return nil, fmt.Errorf("fade horizon must be > 0 seconds: %f", cfg.FadeHorizon)
	}
	if cfg.MaxHistory < 1 {
		return nil, fmt.Errorf("max history must be >= 1: %d", cfg.MaxHistory)
	}
	if cfg.MinFade < 0 || cfg.MinFade >= 1 {
		return nil, fmt.Errorf("min fade must be in [0, 1): %f", cfg.MinFade)
	}

	return &Store{
		entries:     make([]Entry, 0, cfg.MaxHistory),
		fadeHorizon: cfg.FadeHorizon,
		maxHistory:  cfg.MaxHistory,
		minFade:     cfg.MinFade,
	}, nil
}

// Admit appends the frame's peaks as new entries, replaces the current-frame
// result wholesale, and prunes. Safe to call at audio-callback rate.
//
// Timestamps are expected to be monotonically non-decreasing across calls;
// out-of-order values are tolerated (each entry is pruned against its own
// timestamp) but not repaired.
func (s *Store) Admit(detected []peaks.Peak, now float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range detected {
		s.entries = append(s.entries, Entry{Peak: p, Timestamp: now})
	}

	s.current = s.current[:0]
	s.current = append(s.current, detected...)

	s.pruneLocked(now)
}

// Prune removes entries older than the fade horizon, then evicts the oldest
// entries until the count is at or below the cap. Idempotent; callable after
// capture has stopped so existing entries keep aging out.
func (s *Store) Prune(now float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
}

// pruneLocked runs age pruning before capacity eviction so that eviction only
// ever removes entries that would have survived on age grounds.
func (s *Store) pruneLocked(now float64) {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if now-e.Timestamp <= s.fadeHorizon {
			kept = append(kept, e)
		}
	}
	s.entries = kept

	if excess := len(s.entries) - s.maxHistory; excess > 0 {
		copy(s.entries, s.entries[excess:])
		s.entries = s.entries[:s.maxHistory]
	}
}

// Snapshot returns every live entry paired with its fade factor at now, in
// insertion order. The result is an independent copy; the caller may retain
// or mutate it freely.
func (s *Store) Snapshot(now float64) []FadedPeak {
	s.mu.Lock()
	live := make([]Entry, len(s.entries))
	copy(live, s.entries)
	s.mu.Unlock()

	out := make([]FadedPeak, 0, len(live))
	for _, e := range live {
		age := now - e.Timestamp
		if age > s.fadeHorizon {
			continue
		}

		fade := 1 - age/s.fadeHorizon
		if fade > 1 {
			fade = 1
		}
		if fade < s.minFade {
			fade = s.minFade
		}

		out = append(out, FadedPeak{Peak: e.Peak, Fade: fade})
	}

	return out
}

// Current returns a copy of the most recent single-frame detection result.
func (s *Store) Current() []peaks.Peak {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]peaks.Peak, len(s.current))
	copy(out, s.current)

	return out
}

// Len returns the number of retained entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}
