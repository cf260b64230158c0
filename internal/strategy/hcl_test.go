package strategy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHCL = `
strategy "home" {
  blocker_rules = true

  position "EP" {
    pat {
      include = ["8s+"]
    }
    draw1 {
      include = ["8654+"]
      exclude = ["4567"]
    }
  }

  position "LP" {
    inherits_from = "EP"
    draw2 {
      include = ["752+"]
    }
  }
}
`

func TestParse(t *testing.T) {
	sets, err := Parse([]byte(sampleHCL), "sample.hcl", true)
	require.NoError(t, err)
	require.Len(t, sets, 1)

	s := sets[0]
	assert.Equal(t, "home", s.Name)
	assert.True(t, s.BlockerRules)
	assert.Equal(t, []string{"EP", "LP"}, s.Positions())

	lp, ok := s.Get("LP")
	require.True(t, ok)
	assert.Equal(t, "EP", lp.InheritsFrom)
	assert.Equal(t, []string{"752+"}, lp.Range(Draw2).Includes)
	assert.True(t, lp.Range(Pat).IsEmpty())
}

func TestParseRejectsBadChains(t *testing.T) {
	src := `
strategy "broken" {
  position "A" {
    inherits_from = "B"
  }
  position "B" {
    inherits_from = "A"
  }
}
`
	_, err := Parse([]byte(src), "broken.hcl", false)
	assert.ErrorIs(t, err, ErrInheritanceCycle)

	src = `
strategy "orphan" {
  position "A" {
    inherits_from = "Z"
  }
}
`
	_, err = Parse([]byte(src), "orphan.hcl", false)
	assert.ErrorIs(t, err, ErrUnknownPosition)
}

func TestParseStrictNotation(t *testing.T) {
	src := `
strategy "typo" {
  position "A" {
    pat {
      include = ["eight"]
    }
  }
}
`
	sets, err := Parse([]byte(src), "typo.hcl", false)
	require.NoError(t, err, "lenient mode keeps unknown entries as literals")
	require.Len(t, sets, 1)

	_, err = Parse([]byte(src), "typo.hcl", true)
	assert.Error(t, err)
}

func TestEncodeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strategies.hcl")
	require.NoError(t, WriteFile(path, DefaultSixMax(), DefaultSingle()))

	sets, err := LoadFile(path, true)
	require.NoError(t, err)
	require.Len(t, sets, 2)

	r1 := NewResolver(DefaultSixMax(), quietLogger())
	r2 := NewResolver(sets[0], quietLogger())
	for _, pos := range DefaultSixMax().Positions() {
		a, err := r1.Resolve(pos)
		require.NoError(t, err)
		b, err := r2.Resolve(pos)
		require.NoError(t, err)
		for _, c := range Categories {
			assert.ElementsMatch(t, a.Range(c).Includes, b.Range(c).Includes)
			assert.ElementsMatch(t, a.Range(c).Excludes, b.Range(c).Excludes)
		}
	}
	assert.True(t, sets[1].BlockerRules)
}

func TestLibraryImportIsAllOrNothing(t *testing.T) {
	dir := t.TempDir()
	lib := NewLibrary()
	before := lib.Names()

	bad := filepath.Join(dir, "bad.hcl")
	require.NoError(t, os.WriteFile(bad, []byte(`
strategy "x" {
  position "A" {
    inherits_from = "A"
  }
}
`), 0o644))
	_, err := lib.Import(bad, false)
	assert.Error(t, err)
	assert.Equal(t, before, lib.Names())

	good := filepath.Join(dir, "good.hcl")
	require.NoError(t, os.WriteFile(good, []byte(sampleHCL), 0o644))
	names, err := lib.Import(good, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"home"}, names)

	_, ok := lib.Get("home")
	assert.True(t, ok)
	_, ok = lib.Get(SixMax)
	assert.True(t, ok)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.hcl"), false)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
