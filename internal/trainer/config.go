package trainer

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/tripledraw/internal/classifier"
	"github.com/lox/tripledraw/internal/deck"
	"github.com/lox/tripledraw/internal/fileutil"
	"github.com/lox/tripledraw/internal/randutil"
	"github.com/lox/tripledraw/internal/strategy"
)

// Config is the trainer configuration file. Strategy blocks use the same
// syntax as exported strategy files.
type Config struct {
	Trainer    *Settings           `hcl:"trainer,block"`
	Strategies []strategy.SetBlock `hcl:"strategy,block"`
}

// Settings controls dealing, logging and which strategy set is trained
type Settings struct {
	Variant        string   `hcl:"variant,optional"`
	Deck           string   `hcl:"deck,optional"`
	Positions      []string `hcl:"positions,optional"`
	Seed           int64    `hcl:"seed,optional"`
	StrictNotation bool     `hcl:"strict_notation,optional"`
	StrategyFile   string   `hcl:"strategy_file,optional"`
	LogLevel       string   `hcl:"log_level,optional"`
	LogFile        string   `hcl:"log_file,optional"`
}

// DefaultConfig returns the six-max trainer on a full deck
func DefaultConfig() *Config {
	return &Config{
		Trainer: &Settings{
			Variant:  strategy.SixMax,
			Deck:     "full",
			LogLevel: "info",
			LogFile:  "tripledraw.log",
		},
	}
}

// LoadConfig loads configuration from an HCL file. A missing file yields
// the defaults.
func LoadConfig(filename string) (*Config, error) {
	exists, err := fileutil.Exists(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}
	if !exists {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Trainer == nil {
		c.Trainer = DefaultConfig().Trainer
	}
	t := c.Trainer
	if t.Variant == "" {
		t.Variant = strategy.SixMax
	}
	if t.Deck == "" {
		// The single-seat chart is drilled on the short 2-T deck
		if t.Variant == strategy.Single {
			t.Deck = "low"
		} else {
			t.Deck = "full"
		}
	}
	if t.LogLevel == "" {
		t.LogLevel = "info"
	}
	if t.LogFile == "" {
		t.LogFile = "tripledraw.log"
	}
}

// Validate checks settings that do not depend on the strategy library
func (c *Config) Validate() error {
	if c.Trainer == nil {
		return errors.New("missing trainer block")
	}
	if _, ok := deck.UniverseByName(c.Trainer.Deck); !ok {
		return fmt.Errorf("invalid deck %q (want full or low)", c.Trainer.Deck)
	}
	if _, err := log.ParseLevel(c.Trainer.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Trainer.LogLevel, err)
	}
	return nil
}

// Library builds the strategy library: built-ins, then the config's own
// strategy blocks, then the strategy file if one is set.
func (c *Config) Library() (*strategy.Library, error) {
	sets, err := strategy.BuildAll(c.Strategies, c.Trainer.StrictNotation)
	if err != nil {
		return nil, err
	}
	lib := strategy.NewLibrary(sets...)
	if c.Trainer.StrategyFile != "" {
		if _, err := lib.Import(c.Trainer.StrategyFile, c.Trainer.StrictNotation); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

// NewLogger builds a logger at the configured level writing to w
func (c *Config) NewLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(c.Trainer.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          prefix,
		Level:           level,
	})
}

// Strategy returns the configured strategy set from the library. Range
// entries that do not parse are logged; they never match.
func (c *Config) Strategy(logger *log.Logger) (*strategy.Set, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	lib, err := c.Library()
	if err != nil {
		return nil, err
	}
	set, ok := lib.Get(c.Trainer.Variant)
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (have %v)", c.Trainer.Variant, lib.Names())
	}
	if err := set.ValidateNotation(); err != nil {
		logger.Warn("Strategy has unrecognized range entries; they will never match", "strategy", set.Name, "error", err)
	}
	for _, p := range c.Trainer.Positions {
		if !slices.Contains(set.Positions(), p) {
			return nil, fmt.Errorf("%w: %s not in strategy %s", strategy.ErrUnknownPosition, p, set.Name)
		}
	}
	return set, nil
}

// Universe returns the configured dealing universe
func (c *Config) Universe() deck.Universe {
	u, ok := deck.UniverseByName(c.Trainer.Deck)
	if !ok {
		return deck.FullUniverse
	}
	return u
}

// Build wires a Session from the configuration
func (c *Config) Build(logger *log.Logger, clock quartz.Clock) (*Session, error) {
	set, err := c.Strategy(logger)
	if err != nil {
		return nil, err
	}

	universe := c.Universe()
	seed := randutil.Seed(c.Trainer.Seed)
	logger.Info("Starting trainer", "strategy", set.Name, "deck", universe.Name, "seed", seed)

	resolver := strategy.NewResolver(set, logger)
	return NewSession(Options{
		Dealer:     deck.NewDealer(universe, randutil.New(seed)),
		Classifier: classifier.New(resolver, logger),
		Clock:      clock,
		RNG:        randutil.New(seed + 1),
		Positions:  c.Trainer.Positions,
		Logger:     logger,
	})
}
