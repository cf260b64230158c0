package deck

import (
	"fmt"
	"slices"
	"strings"
)

// HandSize is the number of cards dealt to a 2-7 Triple Draw player
const HandSize = 5

// Hand is a dealt five-card hand in dealt order
type Hand [HandSize]Card

// NewHand builds a Hand from exactly five distinct cards
func NewHand(cards []Card) (Hand, error) {
	var h Hand
	if len(cards) != HandSize {
		return h, fmt.Errorf("hand needs %d cards, got %d", HandSize, len(cards))
	}
	seen := make(map[Card]bool, HandSize)
	for i, c := range cards {
		if seen[c] {
			return h, fmt.Errorf("duplicate card %s", c.Notation())
		}
		seen[c] = true
		h[i] = c
	}
	return h, nil
}

// ParseHand parses five cards in "8s6h5d3c2s" notation. Spaces are ignored.
func ParseHand(s string) (Hand, error) {
	cards, err := ParseCards(s)
	if err != nil {
		return Hand{}, err
	}
	return NewHand(cards)
}

// MustParseHand parses a hand and panics on error (for tests)
func MustParseHand(s string) Hand {
	h, err := ParseHand(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse hand '%s': %v", s, err))
	}
	return h
}

// ParseCards parses a string of card notation into a slice of cards.
// Format: "8s6h5d3c2s" where each card is [Rank][Suit]
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string length: %d (must be even)", len(s))
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		rank, err := ParseRank(s[i])
		if err != nil {
			return nil, fmt.Errorf("invalid rank at position %d: %w", i, err)
		}
		suit, err := ParseSuit(s[i+1])
		if err != nil {
			return nil, fmt.Errorf("invalid suit at position %d: %w", i+1, err)
		}
		cards = append(cards, Card{Rank: rank, Suit: suit})
	}

	return cards, nil
}

// Values returns the hand's value multiset sorted ascending
func (h Hand) Values() []int {
	values := make([]int, HandSize)
	for i, c := range h {
		values[i] = c.Value()
	}
	slices.Sort(values)
	return values
}

// Suits returns the suits in dealt order
func (h Hand) Suits() []Suit {
	suits := make([]Suit, HandSize)
	for i, c := range h {
		suits[i] = c.Suit
	}
	return suits
}

// String renders the hand with suit glyphs in dealt order
func (h Hand) String() string {
	parts := make([]string, HandSize)
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Notation renders the hand in parseable ASCII notation
func (h Hand) Notation() string {
	var b strings.Builder
	for _, c := range h {
		b.WriteString(c.Notation())
	}
	return b.String()
}
