// Package survey estimates how often each position opens by classifying
// large batches of random hands in parallel.
package survey

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	"github.com/lox/tripledraw/internal/classifier"
	"github.com/lox/tripledraw/internal/deck"
	"github.com/lox/tripledraw/internal/randutil"
	"golang.org/x/sync/errgroup"
)

// Options controls a survey run
type Options struct {
	Hands    int
	Workers  int
	Seed     int64
	Universe deck.Universe
}

// PositionReport summarizes one position
type PositionReport struct {
	Position string
	Hands    int
	Playable int
	// ByRule counts hands by the rule that decided them
	ByRule map[string]int
}

// OpenRate is the fraction of hands that open
func (r PositionReport) OpenRate() float64 {
	if r.Hands == 0 {
		return 0
	}
	return float64(r.Playable) / float64(r.Hands)
}

type workerResult struct {
	hands    int
	playable int
	byRule   map[string]int
}

// Run classifies opts.Hands random hands at each position. Results are
// reproducible for a given seed and worker count.
func Run(ctx context.Context, c *classifier.Classifier, positions []string, opts Options) ([]PositionReport, error) {
	if opts.Hands <= 0 {
		return nil, fmt.Errorf("survey: hands must be positive, got %d", opts.Hands)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = min(runtime.NumCPU(), 8)
	}
	if opts.Universe.Size() == 0 {
		opts.Universe = deck.FullUniverse
	}

	reports := make([]PositionReport, 0, len(positions))
	for _, position := range positions {
		report, err := runPosition(ctx, c, position, workers, opts)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// runPosition deals the same hands at every position for a given seed, so
// reports are directly comparable.
func runPosition(ctx context.Context, c *classifier.Classifier, position string, workers int, opts Options) (PositionReport, error) {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]workerResult, workers)
	seeds := randutil.Split(opts.Seed, workers)

	perWorker := opts.Hands / workers
	remainder := opts.Hands % workers

	for w := 0; w < workers; w++ {
		n := perWorker
		if w < remainder {
			n++
		}
		g.Go(func() error {
			dealer := deck.NewDealer(opts.Universe, randutil.New(seeds[w]))
			res := workerResult{byRule: make(map[string]int)}
			for i := 0; i < n; i++ {
				if i%1024 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				r, err := c.Classify(dealer.DealHand(), position)
				if err != nil {
					return err
				}
				res.hands++
				res.byRule[r.Rule]++
				if r.Playable {
					res.playable++
				}
			}
			results[w] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return PositionReport{}, fmt.Errorf("survey %s: %w", position, err)
	}

	report := PositionReport{Position: position, ByRule: make(map[string]int)}
	for _, res := range results {
		report.Hands += res.hands
		report.Playable += res.playable
		for rule, n := range res.byRule {
			report.ByRule[rule] += n
		}
	}
	return report, nil
}

// Rules returns the rules seen in the report in classifier order
func (r PositionReport) Rules() []string {
	var out []string
	for _, name := range classifier.Rules() {
		if r.ByRule[name] > 0 {
			out = append(out, name)
		}
	}
	return slices.Clip(out)
}
