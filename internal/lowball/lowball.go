// Package lowball implements 2-7 comparison and shape detection over value
// multisets. Aces are always 14 and straights and flushes count against a
// hand, so the lowest sequence wins.
package lowball

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lox/tripledraw/internal/deck"
)

// Compare orders two equal-sized value multisets under 2-7 rules. Both are
// sorted descending and compared position by position; the first smaller
// value wins. It returns -1 when a is better (lower), 1 when b is better and
// 0 when they are equal. Inputs of different size panic.
func Compare(a, b []int) int {
	if len(a) != len(b) {
		panic(fmt.Sprintf("lowball: compare size mismatch %d != %d", len(a), len(b)))
	}
	x, y := Descending(a), Descending(b)
	for i := range x {
		switch {
		case x[i] < y[i]:
			return -1
		case x[i] > y[i]:
			return 1
		}
	}
	return 0
}

// Descending returns a sorted copy, highest value first
func Descending(values []int) []int {
	out := slices.Clone(values)
	slices.SortFunc(out, func(a, b int) int { return b - a })
	return out
}

// Distinct returns the distinct values in ascending order
func Distinct(values []int) []int {
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}

// Count returns how many times v appears in values
func Count(values []int, v int) int {
	n := 0
	for _, x := range values {
		if x == v {
			n++
		}
	}
	return n
}

// Contains reports whether every value in want appears in values
func Contains(values []int, want ...int) bool {
	for _, v := range want {
		if !slices.Contains(values, v) {
			return false
		}
	}
	return true
}

// HasPair reports whether any value appears at least twice
func HasPair(values []int) bool {
	return len(Distinct(values)) < len(values)
}

// HasFlush reports whether all five suits are identical
func HasFlush(suits []deck.Suit) bool {
	if len(suits) != deck.HandSize {
		return false
	}
	for _, s := range suits[1:] {
		if s != suits[0] {
			return false
		}
	}
	return true
}

// IsStraight reports whether the distinct values hold five consecutive
// integers. A-2-3-4-5 is not caught here; see IsWheel.
func IsStraight(values []int) bool {
	d := Distinct(values)
	if len(d) < 5 {
		return false
	}
	return hasRun(d, 5)
}

// IsWheel reports whether the value set is exactly {2,3,4,5,14}. In 2-7 the
// wheel is not a straight by adjacency but it still disqualifies a pat hand.
func IsWheel(values []int) bool {
	return slices.Equal(Distinct(values), []int{2, 3, 4, 5, 14}) && len(values) == 5
}

// IsFourStraight reports whether a four-card draw is four consecutive values
func IsFourStraight(values []int) bool {
	d := Distinct(values)
	return len(d) == 4 && hasRun(d, 4)
}

// hasRun reports whether sorted distinct values contain n consecutive integers
func hasRun(sorted []int, n int) bool {
	run := 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1]+1 {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 1
		}
	}
	return n <= 1
}

// Format renders values highest first with rank symbols, e.g. "8-6-5-4"
func Format(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range Descending(values) {
		parts = append(parts, deck.Rank(v).String())
	}
	return strings.Join(parts, "-")
}
