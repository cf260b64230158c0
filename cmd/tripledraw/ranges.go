package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/tripledraw/internal/notation"
	"github.com/lox/tripledraw/internal/strategy"
)

// RangesCmd prints each position's ranges after inheritance
type RangesCmd struct {
	Position []string `short:"p" help:"Positions to show (default all)"`
}

func (cmd *RangesCmd) Run(g *Globals) error {
	return cmd.run(g, os.Stdout, os.Stderr)
}

func (cmd *RangesCmd) run(g *Globals, out, logOut io.Writer) error {
	c, _, err := g.classifierFor(logOut)
	if err != nil {
		return err
	}
	resolver := c.Resolver()
	positions := cmd.Position
	if len(positions) == 0 {
		positions = resolver.Set().Positions()
	}

	fmt.Fprintln(out, titleStyle.Render(" "+resolver.Set().Name+" "))
	for _, position := range positions {
		eff, err := resolver.Resolve(position)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%s %s\n", labelStyle.Render(position), mutedStyle.Render(strings.Join(eff.Chain, " → ")))
		for _, cat := range strategy.Categories {
			r := eff.Range(cat)
			if len(r.Includes) == 0 && len(r.Excludes) == 0 {
				continue
			}
			fmt.Fprintf(out, "  %-6s %s", cat, describe(r.Includes))
			if len(r.Excludes) > 0 {
				fmt.Fprintf(out, "  except %s", describe(r.Excludes))
			}
			fmt.Fprintln(out)
		}
	}
	return nil
}

func describe(raws []string) string {
	parts := make([]string, 0, len(raws))
	for _, p := range notation.Compile(raws) {
		parts = append(parts, fmt.Sprintf("%s (%s)", p.Raw, p.Describe()))
	}
	return strings.Join(parts, ", ")
}
