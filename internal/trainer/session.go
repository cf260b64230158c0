// Package trainer runs a practice session: it deals a hand, picks a
// position, checks the player's action against the classifier, records
// mistakes and replays them in drill mode.
package trainer

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/tripledraw/internal/classifier"
	"github.com/lox/tripledraw/internal/deck"
	"github.com/lox/tripledraw/internal/drill"
	"github.com/lox/tripledraw/internal/strategy"
)

// ErrAlreadyAnswered is returned when an action is submitted twice for one hand
var ErrAlreadyAnswered = errors.New("trainer: hand already answered")

// Options configures a Session
type Options struct {
	Dealer     *deck.Dealer
	Classifier *classifier.Classifier
	Clock      quartz.Clock
	RNG        *rand.Rand
	// Positions rotates through these seats; empty means every position
	// in the classifier's strategy set
	Positions []string
	Logger    *log.Logger
}

// Deal is the hand currently in front of the player
type Deal struct {
	Hand     deck.Hand
	Position string
	// Drill is set when the hand is a replayed mistake
	Drill bool
	// DrillIndex and DrillSize locate the hand in the drill pool
	DrillIndex int
	DrillSize  int
}

// Feedback is the outcome of one submitted action
type Feedback struct {
	Deal    Deal
	Chosen  classifier.Action
	Correct bool
	Result  classifier.Result
	// Mistake is set when a learning-mode decision was wrong
	Mistake *drill.MistakeRecord
	Score   drill.Score
	Review  drill.Review
}

// Session is a single player's practice run. It is not safe for concurrent use.
type Session struct {
	dealer     *deck.Dealer
	classifier *classifier.Classifier
	clock      quartz.Clock
	rng        *rand.Rand
	positions  []string
	fixed      bool
	logger     *log.Logger

	state    drill.State
	current  Deal
	result   classifier.Result
	answered bool
}

// NewSession validates opts and deals the first hand
func NewSession(opts Options) (*Session, error) {
	if opts.Dealer == nil || opts.Classifier == nil || opts.RNG == nil {
		return nil, errors.New("trainer: dealer, classifier and rng are required")
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	set := opts.Classifier.Resolver().Set()
	positions := slices.Clone(opts.Positions)
	if len(positions) == 0 {
		positions = set.Positions()
	}
	for _, p := range positions {
		if _, err := opts.Classifier.Resolver().Resolve(p); err != nil {
			return nil, fmt.Errorf("trainer: position %s: %w", p, err)
		}
	}

	s := &Session{
		dealer:     opts.Dealer,
		classifier: opts.Classifier,
		clock:      opts.Clock,
		rng:        opts.RNG,
		positions:  positions,
		fixed:      len(opts.Positions) > 0,
		logger:     opts.Logger.WithPrefix("trainer"),
	}
	if err := s.DealHand(); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns the hand awaiting a decision
func (s *Session) Current() Deal {
	return s.current
}

// State returns a copy of the score, mistakes and drill progress
func (s *Session) State() drill.State {
	st := s.state
	st.Mistakes = slices.Clone(st.Mistakes)
	st.Drill.Pool = slices.Clone(st.Drill.Pool)
	return st
}

// Answered reports whether the current hand already has a decision
func (s *Session) Answered() bool {
	return s.answered
}

// Positions returns the seats the session rotates through
func (s *Session) Positions() []string {
	return slices.Clone(s.positions)
}

// DealHand deals a fresh random hand at a random position. In drill mode
// the current mistake is loaded instead.
func (s *Session) DealHand() error {
	if s.state.Mode == drill.DrillActive {
		return s.loadMistake()
	}
	position := s.positions[s.rng.IntN(len(s.positions))]
	return s.present(Deal{Hand: s.dealer.DealHand(), Position: position})
}

func (s *Session) loadMistake() error {
	m, ok := s.state.Current()
	if !ok {
		return errors.New("trainer: no mistake to replay")
	}
	return s.present(Deal{
		Hand:       m.Hand,
		Position:   m.Position,
		Drill:      true,
		DrillIndex: s.state.Drill.Index,
		DrillSize:  len(s.state.Drill.Pool),
	})
}

func (s *Session) present(d Deal) error {
	res, err := s.classifier.Classify(d.Hand, d.Position)
	if err != nil {
		return err
	}
	s.current, s.result, s.answered = d, res, false
	s.logger.Debug("Dealt hand", "hand", d.Hand.Notation(), "position", d.Position, "drill", d.Drill)
	return nil
}

// RecordAction checks chosen against the correct action for the current
// hand. In learning mode a wrong answer creates one MistakeRecord.
func (s *Session) RecordAction(chosen classifier.Action) (Feedback, error) {
	if s.answered {
		return Feedback{}, ErrAlreadyAnswered
	}

	correct := chosen == s.result.Action
	fb := Feedback{Deal: s.current, Chosen: chosen, Correct: correct, Result: s.result}

	ev := drill.Decision{Correct: correct}
	if !correct && s.state.Mode == drill.Learning {
		m := drill.NewMistake(s.current.Hand, s.current.Position, chosen, s.result, s.clock.Now())
		ev.Mistake = &m
		fb.Mistake = &m
	}
	s.state = drill.Transition(s.state, ev)
	s.answered = true

	fb.Score = s.state.Score
	fb.Review = s.state.Drill.Review
	s.logger.Info("Decision recorded",
		"hand", s.current.Hand.Notation(),
		"position", s.current.Position,
		"chosen", chosen,
		"correct_action", s.result.Action,
		"correct", correct,
		"mode", s.state.Mode)
	return fb, nil
}

// Next moves past the answered hand: the next mistake in drill mode, or a
// fresh deal in learning mode or once the drill pool is exhausted.
func (s *Session) Next() error {
	if s.state.Mode == drill.DrillActive {
		s.state = drill.Transition(s.state, drill.Advance{})
		if s.state.Mode != drill.DrillActive {
			s.logger.Info("Drill finished",
				"reviewed", s.state.LastReview.Reviewed,
				"correct", s.state.LastReview.Correct)
		}
	}
	return s.DealHand()
}

// StartDrill enters drill mode over the mistakes so far. It returns false
// and changes nothing when there are no mistakes.
func (s *Session) StartDrill() (bool, error) {
	next := drill.Transition(s.state, drill.StartDrill{})
	if next.Mode != drill.DrillActive {
		return false, nil
	}
	s.state = next
	s.logger.Info("Drill started", "mistakes", len(next.Drill.Pool))
	return true, s.loadMistake()
}

// ExitDrill leaves drill mode and deals a fresh hand
func (s *Session) ExitDrill() error {
	if s.state.Mode != drill.DrillActive {
		return nil
	}
	s.state = drill.Transition(s.state, drill.ExitDrill{})
	s.logger.Info("Drill exited", "reviewed", s.state.LastReview.Reviewed)
	return s.DealHand()
}

// ReloadStrategy swaps in a new strategy set. Every trained position must
// resolve in the new set, otherwise the old set is kept. An unanswered
// hand is re-classified under the new ranges.
func (s *Session) ReloadStrategy(set *strategy.Set) error {
	positions := s.positions
	if !s.fixed {
		positions = set.Positions()
	}
	check := strategy.NewResolver(set, s.logger)
	for _, p := range positions {
		if _, err := check.Resolve(p); err != nil {
			return fmt.Errorf("trainer: position %s: %w", p, err)
		}
	}

	resolver := s.classifier.Resolver()
	previous := resolver.Set()
	resolver.Replace(set)
	s.positions = slices.Clone(positions)
	s.logger.Info("Strategy reloaded", "from", previous.Name, "to", set.Name)

	if s.answered {
		return nil
	}
	if !slices.Contains(s.positions, s.current.Position) {
		return s.DealHand()
	}
	return s.present(s.current)
}
