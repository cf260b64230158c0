package deck

import (
	rand "math/rand/v2"
)

// Universe is the set of ranks and suits a Dealer draws from
type Universe struct {
	Name  string
	Ranks []Rank
	Suits []Suit
}

var allSuits = []Suit{Spades, Hearts, Diamonds, Clubs}

// FullUniverse is the standard 52-card deck
var FullUniverse = Universe{
	Name:  "full",
	Ranks: []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace},
	Suits: allSuits,
}

// LowUniverse restricts dealing to 2 through T, which keeps practice
// focused on the hands that actually decide opening ranges.
var LowUniverse = Universe{
	Name:  "low",
	Ranks: []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten},
	Suits: allSuits,
}

// UniverseByName returns the named universe ("full" or "low")
func UniverseByName(name string) (Universe, bool) {
	switch name {
	case "full", "":
		return FullUniverse, true
	case "low":
		return LowUniverse, true
	default:
		return Universe{}, false
	}
}

// Size is the number of distinct cards in the universe
func (u Universe) Size() int {
	return len(u.Ranks) * len(u.Suits)
}

// Dealer deals random five-card hands from a Universe
type Dealer struct {
	universe Universe
	rng      *rand.Rand
}

// NewDealer creates a dealer. The universe must hold at least HandSize cards.
func NewDealer(universe Universe, rng *rand.Rand) *Dealer {
	if universe.Size() < HandSize {
		panic("deck: universe too small to deal a hand")
	}
	return &Dealer{universe: universe, rng: rng}
}

// Universe returns the dealer's card universe
func (d *Dealer) Universe() Universe {
	return d.universe
}

// DealHand draws five distinct cards. Already-used rank+suit pairs are
// redrawn, so the hand never holds the same card twice.
func (d *Dealer) DealHand() Hand {
	var h Hand
	used := make(map[Card]bool, HandSize)
	for i := 0; i < HandSize; {
		card := Card{
			Rank: d.universe.Ranks[d.rng.IntN(len(d.universe.Ranks))],
			Suit: d.universe.Suits[d.rng.IntN(len(d.universe.Suits))],
		}
		if used[card] {
			continue
		}
		used[card] = true
		h[i] = card
		i++
	}
	return h
}
