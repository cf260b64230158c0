// Package notation parses and evaluates the compact range notation used in
// opening strategies: thresholds like "8s+", draw benchmarks like "8654+" or
// "732+", blocker benchmarks like "6322+", rank literals like "4567" or
// "3222", and the wildcard "all".
//
// Patterns are parsed once when a strategy is loaded. A string that fits
// none of the forms becomes a malformed literal which never matches;
// ParseStrict reports it instead.
package notation

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/lox/tripledraw/internal/deck"
	"github.com/lox/tripledraw/internal/lowball"
)

// ErrMalformed is returned by ParseStrict for strings outside the grammar
var ErrMalformed = errors.New("notation: malformed pattern")

// Kind identifies a pattern variant
type Kind int

const (
	Literal Kind = iota
	Wildcard
	ThresholdHigh
	PatBenchmark
	FourCardBenchmark
	ThreeCardBenchmark
	BlockerBenchmark
)

// String returns the variant name
func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Wildcard:
		return "wildcard"
	case ThresholdHigh:
		return "threshold"
	case PatBenchmark:
		return "pat-benchmark"
	case FourCardBenchmark:
		return "four-card-benchmark"
	case ThreeCardBenchmark:
		return "three-card-benchmark"
	case BlockerBenchmark:
		return "blocker-benchmark"
	default:
		return "unknown"
	}
}

// Pattern is one parsed range entry
type Pattern struct {
	Raw  string
	Kind Kind

	// Values holds benchmark or literal values, ascending
	Values []int
	// Threshold is the highest allowed card for ThresholdHigh
	Threshold int
	// Base and Pair describe a BlockerBenchmark: both Base cards plus two
	// copies of Pair
	Base []int
	Pair int

	malformed bool
}

// Subject is what a pattern is matched against. Draw is the candidate
// draw (or the whole hand for pat checks); Hand is the full value multiset
// used by blocker and paired-literal patterns. Both are ascending.
type Subject struct {
	Draw []int
	Hand []int
}

// Parse parses raw leniently. Unrecognized strings become a malformed
// literal that never matches.
func Parse(raw string) Pattern {
	p, _ := parse(raw)
	return p
}

// ParseStrict parses raw and fails on strings outside the grammar
func ParseStrict(raw string) (Pattern, error) {
	p, ok := parse(raw)
	if !ok {
		return p, fmt.Errorf("%w: %q", ErrMalformed, raw)
	}
	return p, nil
}

// Compile parses each entry leniently, keeping declared order
func Compile(raws []string) []Pattern {
	patterns := make([]Pattern, len(raws))
	for i, raw := range raws {
		patterns[i] = Parse(raw)
	}
	return patterns
}

// Validate reports every malformed entry in raws
func Validate(raws []string) error {
	var errs []error
	for _, raw := range raws {
		if _, err := ParseStrict(raw); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func parse(raw string) (Pattern, bool) {
	s := strings.TrimSpace(raw)
	p := Pattern{Raw: raw, Kind: Literal}

	if strings.EqualFold(s, "all") {
		p.Kind = Wildcard
		return p, true
	}

	if body, ok := strings.CutSuffix(s, "s+"); ok {
		values, ok := parseRanks(body)
		if !ok || len(values) != 1 {
			p.malformed = true
			return p, false
		}
		p.Kind = ThresholdHigh
		p.Threshold = values[0]
		return p, true
	}

	if body, ok := strings.CutSuffix(s, "+"); ok {
		values, ok := parseRanks(body)
		if !ok {
			p.malformed = true
			return p, false
		}
		switch len(values) {
		case 5:
			p.Kind = PatBenchmark
		case 4:
			if values[2] == values[3] {
				p.Kind = BlockerBenchmark
				p.Base = []int{values[0], values[1]}
				p.Pair = values[3]
			} else {
				p.Kind = FourCardBenchmark
			}
		case 3:
			p.Kind = ThreeCardBenchmark
		default:
			p.malformed = true
			return p, false
		}
		p.Values = sorted(values)
		return p, true
	}

	values, ok := parseRanks(s)
	if !ok || len(values) == 0 {
		p.malformed = true
		return p, false
	}
	p.Values = sorted(values)
	return p, true
}

// parseRanks reads a run of rank symbols; "10" is accepted for ten
func parseRanks(s string) ([]int, bool) {
	s = strings.ReplaceAll(s, "10", "T")
	values := make([]int, 0, len(s))
	for i := 0; i < len(s); i++ {
		r, err := deck.ParseRank(s[i])
		if err != nil {
			return nil, false
		}
		values = append(values, int(r))
	}
	return values, true
}

func sorted(values []int) []int {
	out := slices.Clone(values)
	slices.Sort(out)
	return out
}

// Malformed reports whether the entry fell outside the grammar
func (p Pattern) Malformed() bool {
	return p.malformed
}

// DrawSize is the candidate size a benchmark compares against, or 0 when
// the pattern does not constrain it
func (p Pattern) DrawSize() int {
	switch p.Kind {
	case PatBenchmark:
		return 5
	case FourCardBenchmark:
		return 4
	case ThreeCardBenchmark:
		return 3
	default:
		return 0
	}
}

// Match evaluates the pattern against a subject
func (p Pattern) Match(s Subject) bool {
	switch p.Kind {
	case Wildcard:
		return true
	case ThresholdHigh:
		return len(s.Draw) > 0 && slices.Max(s.Draw) <= p.Threshold
	case PatBenchmark, FourCardBenchmark, ThreeCardBenchmark:
		return len(s.Draw) == p.DrawSize() && lowball.Compare(s.Draw, p.Values) <= 0
	case BlockerBenchmark:
		return lowball.Contains(s.Hand, p.Base...) && lowball.Count(s.Hand, p.Pair) >= 2
	case Literal:
		return p.matchLiteral(s)
	default:
		return false
	}
}

func (p Pattern) matchLiteral(s Subject) bool {
	if p.malformed {
		return false
	}
	if !lowball.HasPair(p.Values) {
		return slices.Equal(sorted(s.Draw), p.Values)
	}
	for _, v := range lowball.Distinct(p.Values) {
		if lowball.Count(s.Hand, v) < lowball.Count(p.Values, v) {
			return false
		}
	}
	return true
}

// Describe renders the pattern for player feedback
func (p Pattern) Describe() string {
	switch p.Kind {
	case Wildcard:
		return "any hand"
	case ThresholdHigh:
		return fmt.Sprintf("%s-high or better", deck.Rank(p.Threshold))
	case PatBenchmark, FourCardBenchmark, ThreeCardBenchmark:
		return lowball.Format(p.Values) + " or better"
	case BlockerBenchmark:
		return fmt.Sprintf("%s with %s-%s blocker", lowball.Format(p.Base), deck.Rank(p.Pair), deck.Rank(p.Pair))
	default:
		if p.malformed {
			return fmt.Sprintf("%q (unrecognized)", p.Raw)
		}
		return "exactly " + lowball.Format(p.Values)
	}
}

// First returns the first pattern matching s, if any
func First(patterns []Pattern, s Subject) (Pattern, bool) {
	for _, p := range patterns {
		if p.Match(s) {
			return p, true
		}
	}
	return Pattern{}, false
}
