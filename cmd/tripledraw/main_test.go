package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// globals points at a config file that does not exist, so defaults apply
func globals(t *testing.T) *Globals {
	t.Helper()
	return &Globals{Config: filepath.Join(t.TempDir(), "missing.hcl"), NoColor: true}
}

func TestClassifyCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := &ClassifyCmd{Position: "UTG", Hands: []string{"7s5h4d3c2s", "9h6d5c4s2h"}}
	require.NoError(t, cmd.run(globals(t), &out, io.Discard))

	assert.Contains(t, out.String(), "Pat 7-high")
	assert.Contains(t, out.String(), "rule: pat")
	assert.Contains(t, out.String(), "rule: draw1")
}

func TestClassifyCmdErrors(t *testing.T) {
	cmd := &ClassifyCmd{Position: "UTG", Hands: []string{"7s5h4d3c"}}
	assert.Error(t, cmd.run(globals(t), io.Discard, io.Discard))

	cmd = &ClassifyCmd{Position: "EP", Hands: []string{"7s5h4d3c2s"}}
	assert.Error(t, cmd.run(globals(t), io.Discard, io.Discard))
}

func TestRangesCmdShowsInheritedEntries(t *testing.T) {
	var out bytes.Buffer
	cmd := &RangesCmd{Position: []string{"HJ"}}
	require.NoError(t, cmd.run(globals(t), &out, io.Discard))

	s := out.String()
	assert.Contains(t, s, "UTG → HJ")
	assert.Contains(t, s, "8654+")
	assert.Contains(t, s, "8743+")
	assert.Contains(t, s, "except 4567")
}

func TestSurveyCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := &SurveyCmd{Hands: 500, Workers: 2, Seed: 9, Position: []string{"UTG", "BB"}}
	require.NoError(t, cmd.run(context.Background(), globals(t), &out, io.Discard))

	assert.Contains(t, out.String(), "UTG")
	assert.Contains(t, out.String(), "seed 9")
}

func TestStrategyExportThenValidate(t *testing.T) {
	file := filepath.Join(t.TempDir(), "strategies.hcl")
	require.NoError(t, (&StrategyExportCmd{File: file, Names: []string{"single"}}).Run(globals(t)))

	var out bytes.Buffer
	require.NoError(t, (&StrategyValidateCmd{File: file, Strict: true}).run(&out))
	assert.Contains(t, out.String(), "single: 1 positions")
}

func TestStrategyValidateRejectsCycle(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cycle.hcl")
	src := `
strategy "loop" {
  position "A" {
    inherits_from = "B"
  }
  position "B" {
    inherits_from = "A"
  }
}
`
	require.NoError(t, os.WriteFile(file, []byte(src), 0o644))
	assert.Error(t, (&StrategyValidateCmd{File: file, Strict: true}).run(io.Discard))
}
