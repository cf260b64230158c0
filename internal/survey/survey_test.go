package survey

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/tripledraw/internal/classifier"
	"github.com/lox/tripledraw/internal/deck"
	"github.com/lox/tripledraw/internal/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClassifier() *classifier.Classifier {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	return classifier.New(strategy.NewResolver(strategy.DefaultSixMax(), logger), logger)
}

func TestRunCountsEveryHand(t *testing.T) {
	c := newClassifier()
	reports, err := Run(context.Background(), c, []string{"UTG", "BB"}, Options{
		Hands:   2001,
		Workers: 4,
		Seed:    9,
	})
	require.NoError(t, err)
	require.Len(t, reports, 2)

	for _, r := range reports {
		assert.Equal(t, 2001, r.Hands)
		total := 0
		for _, n := range r.ByRule {
			total += n
		}
		assert.Equal(t, r.Hands, total)
		assert.Contains(t, r.Rules(), "default")
	}

	assert.GreaterOrEqual(t, reports[1].Playable, reports[0].Playable,
		"BB inherits every UTG range and sees the same hands")
}

func TestRunIsReproducible(t *testing.T) {
	c := newClassifier()
	opts := Options{Hands: 500, Workers: 3, Seed: 21, Universe: deck.LowUniverse}

	a, err := Run(context.Background(), c, []string{"CO"}, opts)
	require.NoError(t, err)
	b, err := Run(context.Background(), c, []string{"CO"}, opts)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRunErrors(t *testing.T) {
	c := newClassifier()

	_, err := Run(context.Background(), c, []string{"UTG"}, Options{})
	assert.Error(t, err)

	_, err = Run(context.Background(), c, []string{"LJ"}, Options{Hands: 10, Workers: 2})
	assert.ErrorIs(t, err, strategy.ErrUnknownPosition)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, c, []string{"UTG"}, Options{Hands: 10, Workers: 2})
	assert.ErrorIs(t, err, context.Canceled)
}
