package game

import (
	"slices"

	"github.com/lox/hanabi/internal/deck"
)

// Status describes whether and how a game ended
type Status uint8

const (
	InProgress Status = iota
	Perfect           // every firework completed
	Exhausted         // the final round after the deck ran out finished
	FuseOut           // the last fuse token was lost
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case Perfect:
		return "perfect"
	case Exhausted:
		return "deck exhausted"
	case FuseOut:
		return "fuse out"
	default:
		return "unknown"
	}
}

// Board is the public part of the game state: everything every player can
// see regardless of seat. Fields are only mutated inside this package, so a
// *Board handed to a strategy is read-only.
type Board struct {
	opts     Options
	piles    Piles
	discards []deck.Card // in discard order
	hints    int
	fuses    int
	deckSize int
	turn     int
	player   int
	endgame  int // turns left once the deck is empty, -1 before that
	status   Status
}

func newBoard(opts Options, deckSize int) Board {
	return Board{
		opts:     opts,
		hints:    opts.Hints,
		fuses:    opts.Fuses,
		deckSize: deckSize,
		endgame:  -1,
	}
}

// Options returns the rules the game is played under
func (b *Board) Options() Options { return b.opts }

// Piles returns a copy of the fireworks and discard counts
func (b *Board) Piles() Piles { return b.piles }

// Firework returns the height of the firework for suit s
func (b *Board) Firework(s deck.Suit) int { return b.piles.Fireworks[s] }

// Fireworks returns all firework heights
func (b *Board) Fireworks() [deck.NumSuits]int { return b.piles.Fireworks }

// Discards returns the discard pile in the order cards were discarded
func (b *Board) Discards() []deck.Card { return slices.Clone(b.discards) }

// Hints returns the number of clock tokens available
func (b *Board) Hints() int { return b.hints }

// Fuses returns the number of fuse tokens left
func (b *Board) Fuses() int { return b.fuses }

// DeckSize returns the number of cards left to draw
func (b *Board) DeckSize() int { return b.deckSize }

// Turn returns the zero-based turn number
func (b *Board) Turn() int { return b.turn }

// Player returns the seat whose turn it is
func (b *Board) Player() int { return b.player }

// EndgameTurns returns the turns left after the deck ran out, or -1 while
// cards remain to be drawn
func (b *Board) EndgameTurns() int { return b.endgame }

// Status returns whether the game is over and why
func (b *Board) Status() Status { return b.status }

// Over reports whether the game has ended
func (b *Board) Over() bool { return b.status != InProgress }

// Score returns the game score under the configured rule variant
func (b *Board) Score() int {
	if b.status == FuseOut && b.opts.ZeroScoreOnFuseOut {
		return 0
	}
	return b.piles.Score()
}

// Playable reports whether c can be played right now
func (b *Board) Playable(c deck.Card) bool { return b.piles.Playable(c) }

// Dead reports whether c can never be played
func (b *Board) Dead(c deck.Card) bool { return b.piles.Dead(c) }

// Critical reports whether c is the last live copy of a needed card
func (b *Board) Critical(c deck.Card) bool { return b.piles.Critical(c) }

func (b *Board) clone() *Board {
	c := *b
	c.discards = slices.Clone(b.discards)
	return &c
}
