package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/tripledraw/internal/strategy"
)

// StrategyCmd groups the strategy file utilities
type StrategyCmd struct {
	Export   StrategyExportCmd   `cmd:"" help:"Write strategy sets to an HCL file"`
	Validate StrategyValidateCmd `cmd:"" help:"Check a strategy file for bad references, cycles and notation"`
}

// StrategyExportCmd writes sets from the library to disk
type StrategyExportCmd struct {
	File  string   `arg:"" name:"file" help:"Destination file" type:"path"`
	Names []string `short:"n" name:"name" help:"Sets to export (default all)"`
}

func (cmd *StrategyExportCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	lib, err := cfg.Library()
	if err != nil {
		return err
	}

	var sets []*strategy.Set
	if len(cmd.Names) == 0 {
		sets = lib.All()
	} else {
		for _, name := range cmd.Names {
			s, ok := lib.Get(name)
			if !ok {
				return fmt.Errorf("unknown strategy %q (have %v)", name, lib.Names())
			}
			sets = append(sets, s)
		}
	}
	if err := strategy.WriteFile(cmd.File, sets...); err != nil {
		return err
	}
	fmt.Printf("Wrote %d strategies to %s\n", len(sets), cmd.File)
	return nil
}

// StrategyValidateCmd loads a strategy file without installing it
type StrategyValidateCmd struct {
	File   string `arg:"" name:"file" help:"Strategy file" type:"existingfile"`
	Strict bool   `help:"Reject unrecognized range notation" default:"true" negatable:""`
}

func (cmd *StrategyValidateCmd) Run(g *Globals) error {
	return cmd.run(os.Stdout)
}

func (cmd *StrategyValidateCmd) run(out io.Writer) error {
	sets, err := strategy.LoadFile(cmd.File, cmd.Strict)
	if err != nil {
		return err
	}
	for _, s := range sets {
		fmt.Fprintf(out, "%s: %d positions %v\n", s.Name, len(s.Positions()), s.Positions())
	}
	return nil
}
