package strategy

import (
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/tripledraw/internal/notation"
)

// EffectiveRange is a range after inheritance: ancestor entries first,
// the position's own entries last, each parsed once.
type EffectiveRange struct {
	Includes []string
	Excludes []string

	includes []notation.Pattern
	excludes []notation.Pattern
}

func newEffectiveRange(includes, excludes []string) EffectiveRange {
	return EffectiveRange{
		Includes: includes,
		Excludes: excludes,
		includes: notation.Compile(includes),
		excludes: notation.Compile(excludes),
	}
}

// Verdict is the outcome of evaluating a range against a subject
type Verdict struct {
	Excluded bool
	Matched  bool
	Pattern  notation.Pattern
}

// Evaluate checks excludes first, then includes in declared order.
// A matching exclude wins even when an include would also match.
func (r EffectiveRange) Evaluate(s notation.Subject) Verdict {
	if p, ok := notation.First(r.excludes, s); ok {
		return Verdict{Excluded: true, Pattern: p}
	}
	if p, ok := notation.First(r.includes, s); ok {
		return Verdict{Matched: true, Pattern: p}
	}
	return Verdict{}
}

// IncludePatterns returns the parsed includes in priority order
func (r EffectiveRange) IncludePatterns() []notation.Pattern {
	return slices.Clone(r.includes)
}

// Effective is the resolved range set for one position
type Effective struct {
	Position string
	// Chain lists the ancestry root first, ending with Position
	Chain []string

	ranges [numCategories]EffectiveRange
}

// Range returns the effective range for a category
func (e *Effective) Range(c Category) EffectiveRange {
	r := e.ranges[c]
	r.Includes = slices.Clone(r.Includes)
	r.Excludes = slices.Clone(r.Excludes)
	return r
}

// clone copies the exported slices so callers cannot reach the cache
func (e *Effective) clone() *Effective {
	out := *e
	out.Chain = slices.Clone(e.Chain)
	return &out
}

// Resolver merges each position's ranges with its ancestors and memoizes
// the result until the underlying set changes.
type Resolver struct {
	mu      sync.Mutex
	set     *Set
	version uint64
	cache   map[string]*Effective
	logger  *log.Logger
}

// NewResolver creates a resolver over set
func NewResolver(set *Set, logger *log.Logger) *Resolver {
	return &Resolver{
		set:     set,
		version: set.Version(),
		cache:   make(map[string]*Effective),
		logger:  logger.WithPrefix("resolver"),
	}
}

// Set returns the strategy set being resolved
func (r *Resolver) Set() *Set {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.set
}

// Replace swaps in a new set and drops every cached resolution
func (r *Resolver) Replace(set *Set) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set = set
	r.version = set.Version()
	clear(r.cache)
	r.logger.Debug("Strategy set replaced", "set", set.Name, "positions", len(set.Positions()))
}

// Resolve returns the effective ranges for position. Unknown positions and
// inheritance cycles are returned as errors.
func (r *Resolver) Resolve(position string) (*Effective, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v := r.set.Version(); v != r.version {
		r.version = v
		clear(r.cache)
	}
	if e, ok := r.cache[position]; ok {
		return e.clone(), nil
	}

	chain, err := r.set.chain(position)
	if err != nil {
		r.logger.Warn("Failed to resolve position", "position", position, "error", err)
		return nil, err
	}

	e := &Effective{Position: position, Chain: chain}
	for _, c := range Categories {
		var includes, excludes []string
		for _, name := range chain {
			own, _ := r.set.Get(name)
			includes = append(includes, own.Ranges[c].Includes...)
			excludes = append(excludes, own.Ranges[c].Excludes...)
		}
		e.ranges[c] = newEffectiveRange(slices.Clip(includes), slices.Clip(excludes))
	}

	r.cache[position] = e
	r.logger.Debug("Resolved position", "position", position, "chain", chain)
	return e.clone(), nil
}
