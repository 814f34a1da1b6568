package deck

import (
	"math/bits"
	"strings"
)

// SuitSet is a bitmask of candidate suits
type SuitSet uint8

// AllSuits contains every suit
const AllSuits SuitSet = 1<<NumSuits - 1

// SuitSetOf returns a set containing exactly the given suits
func SuitSetOf(suits ...Suit) SuitSet {
	var s SuitSet
	for _, suit := range suits {
		s |= 1 << suit
	}
	return s
}

func (s SuitSet) Has(suit Suit) bool        { return s&(1<<suit) != 0 }
func (s SuitSet) Without(suit Suit) SuitSet { return s &^ (1 << suit) }
func (s SuitSet) Len() int                  { return bits.OnesCount8(uint8(s)) }

// Single returns the only suit in the set, if there is exactly one
func (s SuitSet) Single() (Suit, bool) {
	if s.Len() != 1 {
		return 0, false
	}
	return Suit(bits.TrailingZeros8(uint8(s))), true
}

// RankSet is a bitmask of candidate ranks
type RankSet uint8

// AllRanks contains every rank
const AllRanks RankSet = 1<<NumRanks - 1

// RankSetOf returns a set containing exactly the given ranks
func RankSetOf(ranks ...Rank) RankSet {
	var s RankSet
	for _, r := range ranks {
		s |= 1 << (r - 1)
	}
	return s
}

func (s RankSet) Has(r Rank) bool        { return s&(1<<(r-1)) != 0 }
func (s RankSet) Without(r Rank) RankSet { return s &^ (1 << (r - 1)) }
func (s RankSet) Len() int               { return bits.OnesCount8(uint8(s)) }

// Single returns the only rank in the set, if there is exactly one
func (s RankSet) Single() (Rank, bool) {
	if s.Len() != 1 {
		return 0, false
	}
	return Rank(bits.TrailingZeros8(uint8(s)) + 1), true
}

// Set is a set of card identities, one bit per Card.Index
type Set uint32

// FullSet contains every card identity
const FullSet Set = 1<<NumCards - 1

// SetOf builds a set from the given cards
func SetOf(cards ...Card) Set {
	var s Set
	for _, c := range cards {
		s = s.With(c)
	}
	return s
}

// Product returns every card whose suit is in suits and rank is in ranks
func Product(suits SuitSet, ranks RankSet) Set {
	var s Set
	for _, suit := range Suits {
		if !suits.Has(suit) {
			continue
		}
		for _, r := range Ranks {
			if ranks.Has(r) {
				s = s.With(NewCard(suit, r))
			}
		}
	}
	return s
}

func (s Set) Has(c Card) bool     { return s&(1<<c.Index()) != 0 }
func (s Set) With(c Card) Set     { return s | 1<<c.Index() }
func (s Set) Without(c Card) Set  { return s &^ (1 << c.Index()) }
func (s Set) And(o Set) Set       { return s & o }
func (s Set) AndNot(o Set) Set    { return s &^ o }
func (s Set) Or(o Set) Set        { return s | o }
func (s Set) Len() int            { return bits.OnesCount32(uint32(s)) }
func (s Set) Empty() bool         { return s == 0 }
func (s Set) SubsetOf(o Set) bool { return s&^o == 0 }

// Single returns the only card in the set, if there is exactly one
func (s Set) Single() (Card, bool) {
	if s.Len() != 1 {
		return Card{}, false
	}
	return CardAt(bits.TrailingZeros32(uint32(s))), true
}

// Cards lists the members in index order
func (s Set) Cards() []Card {
	cards := make([]Card, 0, s.Len())
	for v := uint32(s); v != 0; v &= v - 1 {
		cards = append(cards, CardAt(bits.TrailingZeros32(v)))
	}
	return cards
}

// String renders the set as a space separated list of cards
func (s Set) String() string {
	cards := s.Cards()
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// Counts holds a multiplicity for every card identity
type Counts [NumCards]uint8

// FullCounts returns the composition of a complete deck
func FullCounts() Counts {
	var c Counts
	for i := range c {
		c[i] = uint8(CardAt(i).Copies())
	}
	return c
}

// CountsOf tallies the given cards
func CountsOf(cards ...Card) Counts {
	var c Counts
	for _, card := range cards {
		c[card.Index()]++
	}
	return c
}

// Get returns the multiplicity of card
func (c *Counts) Get(card Card) int { return int(c[card.Index()]) }

// Add increments the multiplicity of card
func (c *Counts) Add(card Card) { c[card.Index()]++ }

// Remove decrements the multiplicity of card. Removing a card that is not
// present means the caller's bookkeeping is broken, so it panics.
func (c *Counts) Remove(card Card) {
	if c[card.Index()] == 0 {
		panic("deck: removing " + card.String() + " with zero remaining copies")
	}
	c[card.Index()]--
}

// Total returns the number of cards counted
func (c *Counts) Total() int {
	total := 0
	for _, n := range c {
		total += int(n)
	}
	return total
}

// Present returns the set of identities with a non-zero count
func (c *Counts) Present() Set {
	var s Set
	for i, n := range c {
		if n > 0 {
			s |= 1 << i
		}
	}
	return s
}
