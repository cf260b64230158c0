package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/tripledraw/internal/classifier"
	"github.com/lox/tripledraw/internal/deck"
	"github.com/lox/tripledraw/internal/drill"
	"github.com/lox/tripledraw/internal/randutil"
	"github.com/lox/tripledraw/internal/strategy"
	"github.com/lox/tripledraw/internal/trainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T) (*Model, *trainer.Session) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	s, err := trainer.NewSession(trainer.Options{
		Dealer:     deck.NewDealer(deck.FullUniverse, randutil.New(5)),
		Classifier: classifier.New(strategy.NewResolver(strategy.DefaultSixMax(), logger), logger),
		Clock:      quartz.NewMock(t),
		RNG:        randutil.New(6),
		Logger:     logger,
	})
	require.NoError(t, err)
	m := New(s, logger)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, s
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestAnswerAndAdvance(t *testing.T) {
	m, s := newModel(t)

	m.Update(key("enter"))
	assert.Equal(t, "Choose r (raise) or f (fold) first", m.status)

	m.Update(key("r"))
	require.True(t, s.Answered())
	require.NotNil(t, m.feedback)
	assert.Len(t, m.History(), 1)
	assert.Contains(t, m.View(), m.feedback.Result.Category)

	m.Update(key("f"))
	assert.Len(t, m.History(), 1, "second answer for the same hand is ignored")

	m.Update(key("enter"))
	assert.False(t, s.Answered())
	assert.Nil(t, m.feedback)
	assert.Equal(t, 1, s.State().Score.Played)
}

func TestDrillKeys(t *testing.T) {
	m, s := newModel(t)

	m.Update(key("d"))
	assert.Equal(t, "No mistakes to drill yet", m.status)

	// Answer both ways across hands until a mistake is recorded.
	for i := 0; len(s.State().Mistakes) == 0 && i < 20; i++ {
		if i%2 == 0 {
			m.Update(key("r"))
		} else {
			m.Update(key("f"))
		}
		m.Update(key("enter"))
	}
	require.NotEmpty(t, s.State().Mistakes)

	m.Update(key("d"))
	assert.Equal(t, drill.DrillActive, s.State().Mode)
	assert.Contains(t, m.View(), "DRILL 1/")

	m.Update(key("x"))
	assert.Equal(t, drill.Learning, s.State().Mode)
	assert.Equal(t, "Left drill mode", m.status)
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestReloadKey(t *testing.T) {
	m, s := newModel(t)

	m.Update(key("l"))
	assert.Empty(t, m.status, "reload is a no-op without a loader")

	m.WithReload(func() (*strategy.Set, error) {
		return strategy.DefaultSingle(), nil
	})
	m.Update(key("l"))
	assert.Equal(t, "Loaded strategy single", m.status)
	assert.Equal(t, []string{"Table"}, s.Positions())
}
