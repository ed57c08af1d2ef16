package pipeline

import (
	"fmt"

	"github.com/cwbudde/algo-constellation/analyzer"
	"github.com/cwbudde/algo-constellation/constellation"
	"github.com/cwbudde/algo-constellation/peaks"
	"github.com/cwbudde/algo-constellation/project"
)

// Pipeline composes the producer-side analysis chain: frame -> spectrum ->
// peaks -> constellation admission.
//
// Process runs on the audio producer context; Snapshot, Points, and Current
// may run concurrently on a consumer context because they only touch the
// store. Stopping capture simply means no further Process calls; Prune and
// Snapshot keep aging the retained constellation out.
type Pipeline struct {
	analyzer *analyzer.Analyzer
	detector *peaks.Detector
	store    *constellation.Store
}

// New wires an analyzer, detector, and store into a pipeline.
func New(a *analyzer.Analyzer, d *peaks.Detector, s *constellation.Store) (*Pipeline, error) {
	if a == nil {
		return nil, fmt.Errorf("pipeline requires an analyzer")
	}
	if d == nil {
		return nil, fmt.Errorf("pipeline requires a detector")
	}
	if s == nil {
		return nil, fmt.Errorf("pipeline requires a store")
	}

	return &Pipeline{analyzer: a, detector: d, store: s}, nil
}

// Process analyzes one frame, admits the detected peaks at the given
// timestamp, and returns the number of peaks found in this frame.
func (p *Pipeline) Process(frame []float64, timestamp float64) (int, error) {
	spec, err := p.analyzer.Analyze(frame)
	if err != nil {
		return 0, err
	}

	detected := p.detector.Detect(spec, timestamp)
	p.store.Admit(detected, timestamp)

	return len(detected), nil
}

// Snapshot returns the live constellation with fade factors at now.
func (p *Pipeline) Snapshot(now float64) []constellation.FadedPeak {
	return p.store.Snapshot(now)
}

// Points returns the live constellation projected into normalized render
// coordinates at now.
func (p *Pipeline) Points(now float64, m *project.Mapper) []project.Point {
	return m.Project(p.store.Snapshot(now))
}

// Current returns the most recent single-frame detection result.
func (p *Pipeline) Current() []peaks.Peak {
	return p.store.Current()
}

// Prune ages out expired entries without admitting anything new.
func (p *Pipeline) Prune(now float64) {
	p.store.Prune(now)
}

// Analyzer returns the wired analyzer.
func (p *Pipeline) Analyzer() *analyzer.Analyzer {
	return p.analyzer
}

// Store returns the wired store.
func (p *Pipeline) Store() *constellation.Store {
	return p.store
}
