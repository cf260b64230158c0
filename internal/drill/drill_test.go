package drill

import (
	"testing"
	"time"

	"github.com/lox/tripledraw/internal/classifier"
	"github.com/lox/tripledraw/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mistake(hand string) *MistakeRecord {
	m := NewMistake(deck.MustParseHand(hand), "UTG", classifier.Raise,
		classifier.Result{Action: classifier.Fold, Category: "Fold", Explanation: "too weak"},
		time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	return &m
}

func TestStartDrillWithoutMistakesIsNoop(t *testing.T) {
	s := Transition(State{}, StartDrill{})
	assert.Equal(t, Learning, s.Mode)
	assert.False(t, s.Drill.Active)
}

func TestLearningDecisions(t *testing.T) {
	s := Transition(State{}, Decision{Correct: true})
	assert.Equal(t, Score{Played: 1, Correct: 1}, s.Score)
	assert.Empty(t, s.Mistakes)

	s = Transition(s, Decision{Correct: false, Mistake: mistake("As9h7d6c5s")})
	assert.Equal(t, Score{Played: 2, Correct: 1}, s.Score)
	require.Len(t, s.Mistakes, 1)
	assert.Equal(t, classifier.Raise, s.Mistakes[0].UserAction)
	assert.Equal(t, classifier.Fold, s.Mistakes[0].CorrectAction)
}

func TestStartDrillLoadsFirstMistake(t *testing.T) {
	m := mistake("As9h7d6c5s")
	s := Transition(State{}, Decision{Mistake: m})
	s = Transition(s, StartDrill{})

	assert.Equal(t, DrillActive, s.Mode)
	assert.True(t, s.Drill.Active)
	assert.Len(t, s.Drill.Pool, 1)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, m.Hand, cur.Hand)
}

func TestDrillDecisionsOnlyUpdateReview(t *testing.T) {
	s := Transition(State{}, Decision{Mistake: mistake("As9h7d6c5s")})
	s = Transition(s, StartDrill{})

	s = Transition(s, Decision{Correct: false, Mistake: mistake("KsQhJd9c8s")})
	assert.Len(t, s.Mistakes, 1, "drill decisions never append mistakes")
	assert.Equal(t, Score{Played: 1}, s.Score)
	assert.Equal(t, Review{Reviewed: 1}, s.Drill.Review)
}

func TestAdvanceThroughPool(t *testing.T) {
	s := State{}
	for _, h := range []string{"As9h7d6c5s", "KsQhJd9c8s", "KsQh7d4c2s"} {
		s = Transition(s, Decision{Mistake: mistake(h)})
	}
	s = Transition(s, StartDrill{})

	s = Transition(s, Decision{Correct: true})
	s = Transition(s, Advance{})
	assert.Equal(t, 1, s.Drill.Index)

	s = Transition(s, Decision{Correct: true})
	s = Transition(s, Advance{})
	assert.Equal(t, 2, s.Drill.Index)

	s = Transition(s, Decision{Correct: false})
	s = Transition(s, Advance{})
	assert.Equal(t, Learning, s.Mode)
	assert.False(t, s.Drill.Active)
	assert.True(t, s.HasLastReview)
	assert.Equal(t, Review{Reviewed: 3, Correct: 2}, s.LastReview)
	assert.Len(t, s.Mistakes, 3)
}

func TestExitDrillEarly(t *testing.T) {
	s := Transition(State{}, Decision{Mistake: mistake("As9h7d6c5s")})
	s = Transition(s, Decision{Mistake: mistake("KsQhJd9c8s")})
	s = Transition(s, StartDrill{})
	s = Transition(s, ExitDrill{})

	assert.Equal(t, Learning, s.Mode)
	_, ok := s.Current()
	assert.False(t, ok)

	assert.Equal(t, s, Transition(s, ExitDrill{}), "exit outside drill is a no-op")
	assert.Equal(t, s, Transition(s, Advance{}), "advance outside drill is a no-op")
}

func TestTransitionDoesNotMutateInput(t *testing.T) {
	base := Transition(State{}, Decision{Mistake: mistake("As9h7d6c5s")})
	base.Mistakes = append(make([]MistakeRecord, 0, 8), base.Mistakes...)

	a := Transition(base, Decision{Mistake: mistake("KsQhJd9c8s")})
	b := Transition(base, Decision{Mistake: mistake("KsQh7d4c2s")})

	assert.Len(t, base.Mistakes, 1)
	assert.NotEqual(t, a.Mistakes[1].Hand, b.Mistakes[1].Hand)

	drilling := Transition(a, StartDrill{})
	a.Mistakes[0].Category = "changed"
	assert.Equal(t, "Fold", drilling.Drill.Pool[0].Category, "drill works on a snapshot")
}
