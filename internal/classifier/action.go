package classifier

import (
	"fmt"
	"strings"
)

// Action is the opening decision for a dealt hand
type Action int

const (
	Fold Action = iota
	Raise
)

// String returns the action name
func (a Action) String() string {
	switch a {
	case Fold:
		return "fold"
	case Raise:
		return "raise"
	default:
		return "unknown"
	}
}

// ParseAction accepts "raise"/"r" and "fold"/"f" in any case
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "raise", "r":
		return Raise, nil
	case "fold", "f":
		return Fold, nil
	default:
		return Fold, fmt.Errorf("unknown action %q", s)
	}
}
