// Package drill tracks scoring and mistakes and replays mistakes in drill
// mode. State changes only through Transition, which never mutates its input.
package drill

import (
	"slices"
	"time"

	"github.com/lox/tripledraw/internal/classifier"
	"github.com/lox/tripledraw/internal/deck"
)

// Mode is the trainer mode
type Mode int

const (
	Learning Mode = iota
	DrillActive
	// DrillFinished is transient: a transition that lands here collapses
	// to Learning before returning.
	DrillFinished
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case Learning:
		return "learning"
	case DrillActive:
		return "drill-active"
	case DrillFinished:
		return "drill-finished"
	default:
		return "unknown"
	}
}

// MistakeRecord is a snapshot of one incorrect decision
type MistakeRecord struct {
	Hand          deck.Hand
	Position      string
	UserAction    classifier.Action
	CorrectAction classifier.Action
	Category      string
	Explanation   string
	Timestamp     time.Time
}

// NewMistake captures an incorrect decision
func NewMistake(hand deck.Hand, position string, chosen classifier.Action, res classifier.Result, at time.Time) MistakeRecord {
	return MistakeRecord{
		Hand:          hand,
		Position:      position,
		UserAction:    chosen,
		CorrectAction: res.Action,
		Category:      res.Category,
		Explanation:   res.Explanation,
		Timestamp:     at,
	}
}

// Score counts decisions made while learning
type Score struct {
	Played  int
	Correct int
}

// Review counts decisions made during one drill
type Review struct {
	Reviewed int
	Correct  int
}

// DrillState is the replay position within a snapshot of mistakes
type DrillState struct {
	Active bool
	Pool   []MistakeRecord
	Index  int
	Review Review
}

// State is the whole trainer progress
type State struct {
	Mode     Mode
	Mistakes []MistakeRecord
	Score    Score
	Drill    DrillState
	// LastReview holds the stats of the most recent drill, once one ended
	LastReview    Review
	HasLastReview bool
}

// Current returns the mistake being replayed in drill mode
func (s State) Current() (MistakeRecord, bool) {
	if s.Mode != DrillActive || s.Drill.Index >= len(s.Drill.Pool) {
		return MistakeRecord{}, false
	}
	return s.Drill.Pool[s.Drill.Index], true
}

// Event is an input to Transition
type Event interface {
	event()
}

// Decision reports a submitted action. Mistake must be set when Correct is
// false; it is ignored in drill mode.
type Decision struct {
	Correct bool
	Mistake *MistakeRecord
}

// StartDrill requests drill mode over the current mistakes
type StartDrill struct{}

// Advance moves to the next mistake in drill mode
type Advance struct{}

// ExitDrill leaves drill mode early
type ExitDrill struct{}

func (Decision) event()   {}
func (StartDrill) event() {}
func (Advance) event()    {}
func (ExitDrill) event()  {}

// Transition returns the state after e. Events that do not apply to the
// current mode return s unchanged.
func Transition(s State, e Event) State {
	next := s
	switch e := e.(type) {
	case Decision:
		switch s.Mode {
		case Learning:
			next.Score.Played++
			if e.Correct {
				next.Score.Correct++
			} else if e.Mistake != nil {
				next.Mistakes = append(slices.Clip(s.Mistakes), *e.Mistake)
			}
		case DrillActive:
			next.Drill.Review.Reviewed++
			if e.Correct {
				next.Drill.Review.Correct++
			}
		}

	case StartDrill:
		if s.Mode != Learning || len(s.Mistakes) == 0 {
			return s
		}
		next.Mode = DrillActive
		next.Drill = DrillState{
			Active: true,
			Pool:   slices.Clone(s.Mistakes),
		}

	case Advance:
		if s.Mode != DrillActive {
			return s
		}
		if s.Drill.Index+1 < len(s.Drill.Pool) {
			next.Drill.Index++
		} else {
			next.Mode = DrillFinished
		}

	case ExitDrill:
		if s.Mode != DrillActive {
			return s
		}
		next.Mode = DrillFinished
	}

	if next.Mode == DrillFinished {
		next.LastReview = next.Drill.Review
		next.HasLastReview = true
		next.Drill = DrillState{}
		next.Mode = Learning
	}
	return next
}
