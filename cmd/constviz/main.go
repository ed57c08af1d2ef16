// Command constviz runs the peak-constellation pipeline against a synthetic
// test signal and prints what a renderer would consume.
//
// Usage:
//
//	constviz [flags]
//
// Examples:
//
//	constviz -freq 440 -duration 3s
//	constviz -sweep -fps 60
//	constviz -config constviz.yaml -verbose
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-constellation/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config (defaults built in)")
		duration   = flag.Duration("duration", 2*time.Second, "how long to run")
		freq       = flag.Float64("freq", 440, "test tone frequency in Hz")
		sweep      = flag.Bool("sweep", false, "sweep the tone up two octaves over the run")
		fps        = flag.Float64("fps", 30, "snapshot rate in frames per second")
		strategy   = flag.String("strategy", "", "override detection strategy (fixed or adaptive)")
		verbose    = flag.Bool("verbose", false, "log every frame and snapshot")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
	slog.SetDefault(logger)

	if err := run(*configPath, *strategy, *duration, *freq, *sweep, *fps); err != nil {
		slog.Error("constviz failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, strategy string, duration time.Duration, freq float64, sweep bool, fps float64) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if strategy != "" {
		cfg.Detector.Strategy = strategy
	}

	pipe, mapper, err := cfg.Build()
	if err != nil {
		return err
	}

	a := pipe.Analyzer()
	framePeriod := time.Duration(float64(a.FrameLength()) / a.SampleRate() * float64(time.Second))

	slog.Info("pipeline ready",
		"sample_rate", a.SampleRate(),
		"frame_length", a.FrameLength(),
		"frame_period", framePeriod,
		"strategy", cfg.Detector.Strategy,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	start := time.Now()
	gen := newToneGenerator(a.SampleRate(), a.FrameLength())

	var frames, totalPeaks, snapshots int

	g, ctx := errgroup.WithContext(ctx)

	// Producer: one frame per audio-callback period.
	g.Go(func() error {
		ticker := time.NewTicker(framePeriod)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				now := time.Since(start).Seconds()

				f := freq
				if sweep {
					f = freq * math.Pow(4, now/duration.Seconds())
				}

				frame := gen.nextFrame(f)
				n, err := pipe.Process(frame, now)
				if err != nil {
					return err
				}

				frames++
				totalPeaks += n
				slog.Debug("frame processed", "t", now, "tone", f, "peaks", n)
			}
		}
	})

	// Consumer: snapshot at display cadence, independent of the producer.
	g.Go(func() error {
		ticker := time.NewTicker(time.Duration(float64(time.Second) / fps))
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				now := time.Since(start).Seconds()
				points := pipe.Points(now, mapper)

				snapshots++
				slog.Debug("snapshot", "t", now, "points", len(points))
			}
		}
	})

	if err := g.Wait(); err != nil {
		return err
	}

	now := time.Since(start).Seconds()
	points := pipe.Points(now, mapper)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "frames\t%d\n", frames)
	fmt.Fprintf(w, "snapshots\t%d\n", snapshots)
	fmt.Fprintf(w, "peaks detected\t%d\n", totalPeaks)
	fmt.Fprintf(w, "constellation\t%d\n", pipe.Store().Len())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "x\ty\tfade\tfreq (Hz)\tmag (dB)")

	snapshot := pipe.Snapshot(now)
	for i, p := range points {
		if i >= 10 {
			break
		}
		fmt.Fprintf(w, "%.3f\t%.3f\t%.2f\t%.1f\t%.1f\n",
			p.X, p.Y, p.Fade, snapshot[i].Peak.Frequency, snapshot[i].Peak.Magnitude)
	}

	return w.Flush()
}

// toneGenerator produces successive frames of a phase-continuous sine so
// sweeps stay click-free across frame boundaries.
type toneGenerator struct {
	sampleRate float64
	phase      float64
	frame      []float64
}

func newToneGenerator(sampleRate float64, frameLength int) *toneGenerator {
	return &toneGenerator{
		sampleRate: sampleRate,
		frame:      make([]float64, frameLength),
	}
}

func (g *toneGenerator) nextFrame(freq float64) []float64 {
	step := 2 * math.Pi * freq / g.sampleRate
	for i := range g.frame {
		g.frame[i] = 0.5 * math.Sin(g.phase)
		g.phase += step
		if g.phase > 2*math.Pi {
			g.phase -= 2 * math.Pi
		}
	}

	return g.frame
}
