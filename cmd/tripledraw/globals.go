package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/tripledraw/internal/classifier"
	"github.com/lox/tripledraw/internal/strategy"
	"github.com/lox/tripledraw/internal/trainer"
	"github.com/muesli/termenv"
)

// Globals are flags shared by every subcommand
type Globals struct {
	Config   string `short:"c" help:"Trainer config file" default:"tripledraw.hcl" type:"path"`
	Variant  string `help:"Strategy set to use (six-max, single or one defined in config)"`
	LogLevel string `help:"Override the configured log level"`
	NoColor  bool   `help:"Disable colored output"`
}

// loadConfig reads the config file and applies flag overrides
func (g *Globals) loadConfig() (*trainer.Config, error) {
	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	cfg, err := trainer.LoadConfig(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", g.Config, err)
	}
	if g.Variant != "" {
		cfg.Trainer.Variant = g.Variant
	}
	if g.LogLevel != "" {
		cfg.Trainer.LogLevel = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// classifierFor builds a classifier over the configured strategy, logging to w
func (g *Globals) classifierFor(w io.Writer) (*classifier.Classifier, *trainer.Config, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := cfg.NewLogger(w, "tripledraw")
	set, err := cfg.Strategy(logger)
	if err != nil {
		return nil, nil, err
	}
	return classifier.New(strategy.NewResolver(set, logger), logger), cfg, nil
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)
