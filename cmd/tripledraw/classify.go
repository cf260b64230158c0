package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/tripledraw/internal/deck"
)

// ClassifyCmd classifies hands given on the command line
type ClassifyCmd struct {
	Position string   `short:"p" required:"" help:"Position to classify at"`
	Hands    []string `arg:"" name:"hand" help:"Five cards, e.g. 7s5h4d3c2s"`
}

func (cmd *ClassifyCmd) Run(g *Globals) error {
	return cmd.run(g, os.Stdout, os.Stderr)
}

func (cmd *ClassifyCmd) run(g *Globals, out, logOut io.Writer) error {
	c, _, err := g.classifierFor(logOut)
	if err != nil {
		return err
	}
	for _, raw := range cmd.Hands {
		hand, err := deck.ParseHand(raw)
		if err != nil {
			return fmt.Errorf("hand %q: %w", raw, err)
		}
		res, err := c.Classify(hand, cmd.Position)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s  %s  %s\n", hand.String(), labelStyle.Render(strings.ToUpper(res.Action.String())), res.Category)
		fmt.Fprintf(out, "  %s\n", res.Explanation)
		fmt.Fprintf(out, "  %s\n", mutedStyle.Render("rule: "+res.Rule))
	}
	return nil
}
