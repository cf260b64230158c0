package strategy

import (
	"fmt"
	"slices"
	"sync"
)

// Library holds the strategy sets available to a trainer. Imports replace
// the whole library or nothing.
type Library struct {
	mu   sync.RWMutex
	sets map[string]*Set
}

// NewLibrary creates a library seeded with the built-in sets plus extras.
// Extras replace built-ins of the same name.
func NewLibrary(extra ...*Set) *Library {
	l := &Library{sets: Defaults()}
	for _, s := range extra {
		l.sets[s.Name] = s
	}
	return l
}

// Get returns a set by name
func (l *Library) Get(name string) (*Set, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.sets[name]
	return s, ok
}

// Names returns the set names, sorted
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.namesLocked()
}

// All returns every set ordered by name
func (l *Library) All() []*Set {
	l.mu.RLock()
	defer l.mu.RUnlock()
	sets := make([]*Set, 0, len(l.sets))
	for _, name := range l.namesLocked() {
		sets = append(sets, l.sets[name])
	}
	return sets
}

func (l *Library) namesLocked() []string {
	names := make([]string, 0, len(l.sets))
	for name := range l.sets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Import loads sets from filename and merges them over the current
// library. Any parse or validation failure leaves the library unchanged.
func (l *Library) Import(filename string, strict bool) ([]string, error) {
	sets, err := LoadFile(filename, strict)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", filename, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	next := make(map[string]*Set, len(l.sets)+len(sets))
	for name, s := range l.sets {
		next[name] = s
	}
	names := make([]string, 0, len(sets))
	for _, s := range sets {
		next[s.Name] = s
		names = append(names, s.Name)
	}
	l.sets = next
	return names, nil
}
