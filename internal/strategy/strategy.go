// Package strategy holds per-position opening ranges and resolves them
// through each position's inheritance chain.
package strategy

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/tripledraw/internal/notation"
)

var (
	// ErrUnknownPosition is returned when a position or inherits_from target does not exist
	ErrUnknownPosition = errors.New("strategy: unknown position")
	// ErrInheritanceCycle is returned when an inheritance chain loops back on itself
	ErrInheritanceCycle = errors.New("strategy: inheritance cycle")
	// ErrDuplicatePosition is returned when a set declares the same position twice
	ErrDuplicatePosition = errors.New("strategy: duplicate position")
)

// Category is a range bucket: pat hands or a draw of one to four cards
type Category int

const (
	Pat Category = iota
	Draw1
	Draw2
	Draw3
	Draw4
	numCategories
)

// Categories lists every category in declaration order
var Categories = []Category{Pat, Draw1, Draw2, Draw3, Draw4}

// String returns the configuration key for the category
func (c Category) String() string {
	switch c {
	case Pat:
		return "pat"
	case Draw1:
		return "draw1"
	case Draw2:
		return "draw2"
	case Draw3:
		return "draw3"
	case Draw4:
		return "draw4"
	default:
		return "unknown"
	}
}

// Range is an ordered include list with explicit exclude exceptions
type Range struct {
	Includes []string
	Excludes []string
}

// IsEmpty reports whether the range declares nothing
func (r Range) IsEmpty() bool {
	return len(r.Includes) == 0 && len(r.Excludes) == 0
}

// PositionStrategy is one seat's own ranges plus an optional parent
type PositionStrategy struct {
	Position     string
	InheritsFrom string
	Ranges       [numCategories]Range
}

// Range returns the position's own range for a category
func (p PositionStrategy) Range(c Category) Range {
	return p.Ranges[c]
}

// Set is a named collection of position strategies. BlockerRules enables
// the hard-coded blocker carve-outs used by the single-position trainer.
type Set struct {
	Name         string
	BlockerRules bool

	positions []PositionStrategy
	index     map[string]int
	version   uint64
}

// NewSet builds and validates a set. Positions keep their declared order.
func NewSet(name string, blockerRules bool, positions ...PositionStrategy) (*Set, error) {
	s := &Set{
		Name:         name,
		BlockerRules: blockerRules,
		positions:    slices.Clone(positions),
	}
	if err := s.reindex(); err != nil {
		return nil, err
	}
	if err := s.checkChains(); err != nil {
		return nil, err
	}
	return s, nil
}

// MustNewSet is NewSet that panics on error, for built-in sets and tests
func MustNewSet(name string, blockerRules bool, positions ...PositionStrategy) *Set {
	s, err := NewSet(name, blockerRules, positions...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Set) reindex() error {
	index := make(map[string]int, len(s.positions))
	for i, p := range s.positions {
		if _, ok := index[p.Position]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicatePosition, p.Position)
		}
		index[p.Position] = i
	}
	s.index = index
	return nil
}

// checkChains walks every position to its root. A walk longer than the
// number of positions can only happen on a cycle.
func (s *Set) checkChains() error {
	for _, p := range s.positions {
		if _, err := s.chain(p.Position); err != nil {
			return err
		}
	}
	return nil
}

// chain returns the ancestry of position, root first
func (s *Set) chain(position string) ([]string, error) {
	var chain []string
	current := position
	for steps := 0; current != ""; steps++ {
		i, ok := s.index[current]
		if !ok {
			if current == position {
				return nil, fmt.Errorf("%w: %s", ErrUnknownPosition, current)
			}
			return nil, fmt.Errorf("%w: %s inherits from %s", ErrUnknownPosition, chain[0], current)
		}
		if steps >= len(s.positions) {
			return nil, fmt.Errorf("%w: %s", ErrInheritanceCycle, position)
		}
		chain = append([]string{current}, chain...)
		current = s.positions[i].InheritsFrom
	}
	return chain, nil
}

// Positions returns position names in declared order
func (s *Set) Positions() []string {
	names := make([]string, len(s.positions))
	for i, p := range s.positions {
		names[i] = p.Position
	}
	return names
}

// Get returns a position's own strategy
func (s *Set) Get(position string) (PositionStrategy, bool) {
	i, ok := s.index[position]
	if !ok {
		return PositionStrategy{}, false
	}
	p := s.positions[i]
	for c := range p.Ranges {
		p.Ranges[c] = Range{
			Includes: slices.Clone(p.Ranges[c].Includes),
			Excludes: slices.Clone(p.Ranges[c].Excludes),
		}
	}
	return p, true
}

// Put adds or replaces a position. The set is left untouched if the
// change would break an inheritance chain.
func (s *Set) Put(p PositionStrategy) error {
	prev := slices.Clone(s.positions)
	prevIndex := s.index

	if i, ok := s.index[p.Position]; ok {
		s.positions[i] = p
	} else {
		s.positions = append(s.positions, p)
	}
	err := s.reindex()
	if err == nil {
		err = s.checkChains()
	}
	if err != nil {
		s.positions, s.index = prev, prevIndex
		return err
	}
	s.version++
	return nil
}

// Version increases on every successful Put
func (s *Set) Version() uint64 {
	return s.version
}

// ValidateNotation reports malformed range entries across all positions
func (s *Set) ValidateNotation() error {
	var errs []error
	for _, p := range s.positions {
		for _, c := range Categories {
			r := p.Ranges[c]
			if err := notation.Validate(slices.Concat(r.Includes, r.Excludes)); err != nil {
				errs = append(errs, fmt.Errorf("%s %s: %w", p.Position, c, err))
			}
		}
	}
	return errors.Join(errs...)
}
