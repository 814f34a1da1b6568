package deck

import "fmt"

// Suit represents a firework colour
type Suit uint8

const (
	Red Suit = iota
	Yellow
	Green
	Blue
	White
)

// NumSuits is the number of suits in the deck
const NumSuits = 5

// Suits lists every suit in canonical order
var Suits = [NumSuits]Suit{Red, Yellow, Green, Blue, White}

// String returns the single-letter representation of a suit
func (s Suit) String() string {
	switch s {
	case Red:
		return "r"
	case Yellow:
		return "y"
	case Green:
		return "g"
	case Blue:
		return "b"
	case White:
		return "w"
	default:
		return "?"
	}
}

// Name returns the long name of a suit
func (s Suit) Name() string {
	switch s {
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case White:
		return "white"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the five suits
func (s Suit) Valid() bool {
	return s < NumSuits
}

// Rank represents a card value, 1 through 5
type Rank uint8

const (
	One Rank = iota + 1
	Two
	Three
	Four
	Five
)

// NumRanks is the number of ranks per suit
const NumRanks = 5

// Ranks lists every rank in ascending order
var Ranks = [NumRanks]Rank{One, Two, Three, Four, Five}

// String returns the digit for the rank
func (r Rank) String() string {
	if !r.Valid() {
		return "?"
	}
	return string(rune('0' + r))
}

// Valid reports whether r is between 1 and 5
func (r Rank) Valid() bool {
	return r >= One && r <= Five
}

// Copies returns how many copies of each card of rank r are in the deck
func (r Rank) Copies() int {
	switch r {
	case One:
		return 3
	case Two, Three, Four:
		return 2
	case Five:
		return 1
	default:
		return 0
	}
}

// Card represents a single Hanabi card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// NumCards is the number of distinct card identities
const NumCards = NumSuits * NumRanks

// Index maps the card to a dense index in [0, NumCards)
func (c Card) Index() int {
	return int(c.Suit)*NumRanks + int(c.Rank) - 1
}

// CardAt is the inverse of Card.Index
func CardAt(index int) Card {
	return Card{Suit: Suit(index / NumRanks), Rank: Rank(index%NumRanks + 1)}
}

// Valid reports whether both attributes are in range
func (c Card) Valid() bool {
	return c.Suit.Valid() && c.Rank.Valid()
}

// String returns the string representation of a card (e.g., "r3")
func (c Card) String() string {
	return c.Suit.String() + c.Rank.String()
}

// Copies returns the multiplicity of this card in a full deck
func (c Card) Copies() int {
	return c.Rank.Copies()
}

// ParseCard parses the two-character form produced by Card.String
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card %q: expected suit letter and rank digit", s)
	}
	var suit Suit = NumSuits
	for _, candidate := range Suits {
		if candidate.String()[0] == s[0] {
			suit = candidate
			break
		}
	}
	if !suit.Valid() {
		return Card{}, fmt.Errorf("invalid card %q: unknown suit %q", s, s[0])
	}
	rank := Rank(s[1] - '0')
	if !rank.Valid() {
		return Card{}, fmt.Errorf("invalid card %q: rank must be 1-5", s)
	}
	return NewCard(suit, rank), nil
}

// MustParseCards parses a list of cards and panics on error. Intended for tests
// and fixed fixtures.
func MustParseCards(strs ...string) []Card {
	cards := make([]Card, len(strs))
	for i, s := range strs {
		c, err := ParseCard(s)
		if err != nil {
			panic(err)
		}
		cards[i] = c
	}
	return cards
}
