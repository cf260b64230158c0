package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lox/tripledraw/internal/randutil"
	"github.com/lox/tripledraw/internal/survey"
)

// SurveyCmd estimates open frequencies by classifying random hands
type SurveyCmd struct {
	Hands    int      `short:"n" default:"100000" help:"Hands to deal per position"`
	Workers  int      `short:"w" help:"Parallel workers (0 = NumCPU, max 8)"`
	Seed     int64    `help:"Seed for dealing (0 = random)"`
	Position []string `short:"p" help:"Positions to survey (default all)"`
}

func (cmd *SurveyCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return cmd.run(ctx, g, os.Stdout, os.Stderr)
}

func (cmd *SurveyCmd) run(ctx context.Context, g *Globals, out, logOut io.Writer) error {
	c, cfg, err := g.classifierFor(logOut)
	if err != nil {
		return err
	}
	positions := cmd.Position
	if len(positions) == 0 {
		positions = c.Resolver().Set().Positions()
	}

	seed := randutil.Seed(cmd.Seed)
	start := time.Now()
	reports, err := survey.Run(ctx, c, positions, survey.Options{
		Hands:    cmd.Hands,
		Workers:  cmd.Workers,
		Seed:     seed,
		Universe: cfg.Universe(),
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf(" %s on %s deck ", c.Resolver().Set().Name, cfg.Universe().Name)))
	for _, r := range reports {
		fmt.Fprintf(out, "%-6s %6.2f%%", r.Position, 100*r.OpenRate())
		for _, rule := range r.Rules() {
			fmt.Fprintf(out, "  %s=%d", rule, r.ByRule[rule])
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("%d hands per position, seed %d, %s",
		cmd.Hands, seed, time.Since(start).Round(time.Millisecond))))
	return nil
}
