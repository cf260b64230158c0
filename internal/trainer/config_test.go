package trainer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coder/quartz"
	"github.com/lox/tripledraw/internal/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tripledraw.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, strategy.SixMax, cfg.Trainer.Variant)
	assert.Equal(t, "full", cfg.Trainer.Deck)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigSingleDefaultsToLowDeck(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
trainer {
  variant = "single"
  seed    = 42
}
`))
	require.NoError(t, err)
	assert.Equal(t, "low", cfg.Trainer.Deck)
	assert.Equal(t, int64(42), cfg.Trainer.Seed)
	assert.Equal(t, "info", cfg.Trainer.LogLevel)
}

func TestConfigBuildWithCustomStrategy(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
trainer {
  variant   = "home"
  positions = ["LP"]
  seed      = 7
  log_level = "debug"
}

strategy "home" {
  position "EP" {
    pat {
      include = ["8s+"]
    }
  }
  position "LP" {
    inherits_from = "EP"
    pat {
      include = ["Ts+"]
    }
  }
}
`))
	require.NoError(t, err)

	s, err := cfg.Build(quietLogger(), quartz.NewMock(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"LP"}, s.Positions())
	assert.Equal(t, "LP", s.Current().Position)
}

func TestConfigBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown variant", `trainer { variant = "nine-max" }`},
		{"bad deck", `trainer { deck = "pinochle" }`},
		{"bad log level", `trainer { log_level = "loud" }`},
		{"unknown position", `trainer { positions = ["LJ"] }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tt.src))
			require.NoError(t, err)
			_, err = cfg.Build(quietLogger(), quartz.NewMock(t))
			assert.Error(t, err)
		})
	}
}

func TestConfigStrictNotation(t *testing.T) {
	src := `
trainer {
  variant         = "typo"
  strict_notation = true
}

strategy "typo" {
  position "A" {
    pat {
      include = ["eight-high"]
    }
  }
}
`
	cfg, err := LoadConfig(writeConfig(t, src))
	require.NoError(t, err)
	_, err = cfg.Build(quietLogger(), quartz.NewMock(t))
	assert.Error(t, err)
}

func TestSampleConfigLoads(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "tripledraw.hcl"))
	require.NoError(t, err)
	assert.Equal(t, strategy.SixMax, cfg.Trainer.Variant)

	lib, err := cfg.Library()
	require.NoError(t, err)
	tight, ok := lib.Get("tight")
	require.True(t, ok)
	assert.Equal(t, []string{"EP", "LP"}, tight.Positions())

	cfg.Trainer.Variant = "tight"
	set, err := cfg.Strategy(quietLogger())
	require.NoError(t, err)
	assert.Equal(t, "tight", set.Name)
}
