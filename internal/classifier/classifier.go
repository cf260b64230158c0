// Package classifier decides the correct opening action for a 2-7 Triple
// Draw hand at a table position.
//
// Classification runs a fixed, ordered list of rules and stops at the
// first one that reaches a decision. The order is part of the contract:
// a pat check runs before the 7-6-5-4 trap override, which runs before any
// generic draw matching. See Rules for the full list.
package classifier

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/tripledraw/internal/deck"
	"github.com/lox/tripledraw/internal/lowball"
	"github.com/lox/tripledraw/internal/notation"
	"github.com/lox/tripledraw/internal/strategy"
)

// Result is the classification of one hand at one position
type Result struct {
	Playable    bool
	Action      Action
	Category    string
	Explanation string
	// Rule names the rule that decided the hand
	Rule string
	// Benchmark is the range entry that matched, when one did
	Benchmark string
}

// Classifier evaluates hands against resolved position strategies
type Classifier struct {
	resolver *strategy.Resolver
	logger   *log.Logger
}

// New creates a classifier backed by resolver
func New(resolver *strategy.Resolver, logger *log.Logger) *Classifier {
	return &Classifier{
		resolver: resolver,
		logger:   logger.WithPrefix("classifier"),
	}
}

// Resolver returns the strategy resolver in use
func (c *Classifier) Resolver() *strategy.Resolver {
	return c.resolver
}

// Classify returns the correct action for hand at position. The only error
// is a strategy resolution failure; the hand must be five distinct cards.
func (c *Classifier) Classify(hand deck.Hand, position string) (Result, error) {
	eff, err := c.resolver.Resolve(position)
	if err != nil {
		return Result{}, fmt.Errorf("classify at %s: %w", position, err)
	}

	values := hand.Values()
	f := &facts{
		values:   values,
		distinct: lowball.Distinct(values),
		suits:    hand.Suits(),
		position: position,
		eff:      eff,
		blockers: c.resolver.Set().BlockerRules,
	}

	for _, r := range rules {
		if res, ok := r.apply(f); ok {
			res.Rule = r.name
			res.Playable = res.Action == Raise
			c.logger.Debug("Classified hand",
				"hand", hand.Notation(),
				"position", position,
				"rule", r.name,
				"action", res.Action,
				"category", res.Category)
			return res, nil
		}
	}

	// The default rule always decides, so this is unreachable.
	panic("classifier: no rule matched")
}

// Rules returns the rule names in evaluation order
func Rules() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return names
}

// facts is everything the rules look at for one hand
type facts struct {
	values   []int
	distinct []int
	suits    []deck.Suit
	position string
	eff      *strategy.Effective
	blockers bool
}

func (f *facts) high() int {
	return slices.Max(f.values)
}

type rule struct {
	name  string
	apply func(f *facts) (Result, bool)
}

// rules is the decision order. The first rule returning true decides.
var rules = []rule{
	{"pat", patRule},
	{"trap", trapRule},
	{"draw1", drawOneRule},
	{"blocker", blockerRule},
	{"draw2", drawTwoRule},
	{"draw3-blocker", drawThreeBlockerRule},
	{"draw3", drawThreeRule},
	{"draw4", drawFourRule},
	{"default", defaultRule},
}

func patRule(f *facts) (Result, bool) {
	v := f.values
	if lowball.HasPair(v) || lowball.HasFlush(f.suits) || lowball.IsStraight(v) || lowball.IsWheel(v) {
		return Result{}, false
	}
	verdict := f.eff.Range(strategy.Pat).Evaluate(notation.Subject{Draw: v, Hand: v})
	switch {
	case verdict.Excluded:
		return excluded(f, lowball.Format(v), verdict.Pattern), true
	case verdict.Matched:
		high := deck.Rank(f.high())
		return Result{
			Action:   Raise,
			Category: fmt.Sprintf("Pat %s-high", high),
			Explanation: fmt.Sprintf("%s is a pat %s-high; %s opens %s.",
				lowball.Format(v), high, f.position, verdict.Pattern.Describe()),
			Benchmark: verdict.Pattern.Raw,
		}, true
	}
	return Result{}, false
}

// trapRule folds any hand whose four lowest distinct values are 7-6-5-4,
// and the 7-6-5-4-3 straight those hands make. Drawing to 7-6-5-4 only
// makes a straight or a rough 8.
func trapRule(f *facts) (Result, bool) {
	trap := len(f.distinct) >= 4 && slices.Equal(f.distinct[:4], []int{4, 5, 6, 7})
	if !trap && !slices.Equal(f.distinct, []int{3, 4, 5, 6, 7}) {
		return Result{}, false
	}
	return Result{
		Action:   Fold,
		Category: "Fold (trap 7-6-5-4)",
		Explanation: "7-6-5-4 is a trap draw: a 3 or 8 completes a straight, " +
			"so it is excluded even when it looks like a qualifying draw 1.",
	}, true
}

// bestFour returns the Draw 1 candidate: the four distinct values, or the
// lowest four when all five differ
func bestFour(f *facts) ([]int, bool) {
	switch len(f.distinct) {
	case 4:
		return f.distinct, true
	case 5:
		return f.distinct[:4], true
	default:
		return nil, false
	}
}

func drawOneRule(f *facts) (Result, bool) {
	draw, ok := bestFour(f)
	if !ok || lowball.IsFourStraight(draw) {
		return Result{}, false
	}
	verdict := f.eff.Range(strategy.Draw1).Evaluate(notation.Subject{Draw: draw, Hand: f.values})
	switch {
	case verdict.Excluded:
		return excluded(f, lowball.Format(draw), verdict.Pattern), true
	case verdict.Matched:
		label := lowball.Format(draw)
		if verdict.Pattern.Kind == notation.BlockerBenchmark {
			pair := deck.Rank(verdict.Pattern.Pair)
			label = fmt.Sprintf("%s, %s-%s blocker", label, pair, pair)
		}
		return Result{
			Action:   Raise,
			Category: fmt.Sprintf("Draw 1 (%s)", label),
			Explanation: fmt.Sprintf("Drawing one to %s meets %s at %s.",
				lowball.Format(draw), verdict.Pattern.Describe(), f.position),
			Benchmark: verdict.Pattern.Raw,
		}, true
	}
	return Result{}, false
}

// blockerRule covers 6-3-2 and 7-6-2 shapes with a high card above 8.
// They open only when a pair of 2s blocks opponents' best draws.
func blockerRule(f *facts) (Result, bool) {
	if !f.blockers || f.high() <= 8 {
		return Result{}, false
	}
	if !lowball.Contains(f.values, 6, 3, 2) && !lowball.Contains(f.values, 7, 6, 2) {
		return Result{}, false
	}
	label := lowball.Format(f.distinct)
	if lowball.Count(f.values, 2) >= 2 {
		return Result{
			Action:   Raise,
			Category: fmt.Sprintf("Draw 1 (%s, 2-2 blocker)", label),
			Explanation: fmt.Sprintf("%s is weak on its own, but the pair of 2s blocks "+
				"the best draws, which makes it an open.", label),
		}, true
	}
	return Result{
		Action:   Fold,
		Category: "Fold (no 2-2 blocker)",
		Explanation: fmt.Sprintf("%s with a high card above 8 only opens with a pair of 2s "+
			"as blockers.", label),
	}, true
}

func drawTwoRule(f *facts) (Result, bool) {
	if !slices.Contains(f.values, 2) {
		return Result{}, false
	}
	others := slices.DeleteFunc(slices.Clone(f.distinct), func(v int) bool { return v == 2 })
	if len(others) < 2 {
		return Result{}, false
	}
	draw := []int{2, others[0], others[1]}
	verdict := f.eff.Range(strategy.Draw2).Evaluate(notation.Subject{Draw: draw, Hand: f.values})
	switch {
	case verdict.Excluded:
		return excluded(f, lowball.Format(draw), verdict.Pattern), true
	case verdict.Matched:
		return Result{
			Action:   Raise,
			Category: fmt.Sprintf("Draw 2 (%s)", lowball.Format(draw)),
			Explanation: fmt.Sprintf("Keeping %s and drawing two meets %s at %s.",
				lowball.Format(draw), verdict.Pattern.Describe(), f.position),
			Benchmark: verdict.Pattern.Raw,
		}, true
	}
	return Result{}, false
}

func drawThreeBlockerRule(f *facts) (Result, bool) {
	if !f.blockers {
		return Result{}, false
	}
	twos, threes := lowball.Count(f.values, 2), lowball.Count(f.values, 3)
	var label string
	switch {
	case twos == 2 && threes == 2:
		label = "3-3-2-2"
	case twos >= 3:
		for _, kicker := range []int{3, 4, 7} {
			if slices.Contains(f.values, kicker) {
				label = fmt.Sprintf("%s-2-2-2", deck.Rank(kicker))
				break
			}
		}
	}
	if label == "" {
		return Result{}, false
	}
	return Result{
		Action:   Raise,
		Category: fmt.Sprintf("Draw 3 (%s blocker)", label),
		Explanation: fmt.Sprintf("%s draws three to a weak low, but holding extra low cards "+
			"removes them from opponents' draws.", label),
	}, true
}

func drawThreeRule(f *facts) (Result, bool) {
	if len(f.distinct) < 2 {
		return Result{}, false
	}
	return drawRange(f, strategy.Draw3, 3, f.distinct[:2])
}

func drawFourRule(f *facts) (Result, bool) {
	return drawRange(f, strategy.Draw4, 4, f.distinct[:1])
}

func drawRange(f *facts, c strategy.Category, n int, draw []int) (Result, bool) {
	verdict := f.eff.Range(c).Evaluate(notation.Subject{Draw: draw, Hand: f.values})
	switch {
	case verdict.Excluded:
		return excluded(f, lowball.Format(draw), verdict.Pattern), true
	case verdict.Matched:
		return Result{
			Action:   Raise,
			Category: fmt.Sprintf("Draw %d (%s)", n, lowball.Format(draw)),
			Explanation: fmt.Sprintf("%s opens drawing %d with %s.",
				f.position, n, verdict.Pattern.Describe()),
			Benchmark: verdict.Pattern.Raw,
		}, true
	}
	return Result{}, false
}

func defaultRule(f *facts) (Result, bool) {
	return Result{
		Action:      Fold,
		Category:    "Fold",
		Explanation: fmt.Sprintf("Below the %s minimum: %s.", f.position, MinimumHands(f.eff)),
	}, true
}

func excluded(f *facts, label string, p notation.Pattern) Result {
	return Result{
		Action:   Fold,
		Category: fmt.Sprintf("Fold (excluded %s)", p.Raw),
		Explanation: fmt.Sprintf("%s matches %s, which %s excludes explicitly.",
			label, p.Describe(), f.position),
		Benchmark: p.Raw,
	}
}

// MinimumHands summarizes the first include of each category, which is
// the loosest hand a player should remember for the position
func MinimumHands(eff *strategy.Effective) string {
	var parts []string
	for _, c := range strategy.Categories {
		patterns := eff.Range(c).IncludePatterns()
		if len(patterns) == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s", c, patterns[0].Describe()))
	}
	if len(parts) == 0 {
		return "no playable hands"
	}
	return strings.Join(parts, ", ")
}
