package game

import "fmt"

const (
	MinPlayers = 2
	MaxPlayers = 5

	// MaxScore is the score with every firework complete
	MaxScore = 25
)

// Options are the rule parameters of one game.
type Options struct {
	Players  int
	HandSize int
	Hints    int // clock tokens available at the start and the maximum held
	Fuses    int // misplays allowed before the game is lost

	// AllowEmptyHints permits hints that match no slot in the target's hand.
	AllowEmptyHints bool

	// ZeroScoreOnFuseOut scores a game lost on fuses as 0 instead of the
	// firework total at the moment of the last misplay.
	ZeroScoreOnFuseOut bool
}

// DefaultOptions returns the standard rules for the given player count.
func DefaultOptions(players int) Options {
	handSize := 5
	if players >= 4 {
		handSize = 4
	}
	return Options{
		Players:  players,
		HandSize: handSize,
		Hints:    8,
		Fuses:    3,
	}
}

// Validate checks the options describe a playable game.
func (o Options) Validate() error {
	if o.Players < MinPlayers || o.Players > MaxPlayers {
		return fmt.Errorf("%w: players must be between %d and %d, got %d", ErrInvalidOptions, MinPlayers, MaxPlayers, o.Players)
	}
	if o.HandSize < 1 {
		return fmt.Errorf("%w: hand size must be positive, got %d", ErrInvalidOptions, o.HandSize)
	}
	if o.Players*o.HandSize >= 50 {
		return fmt.Errorf("%w: %d hands of %d cards do not fit in the deck", ErrInvalidOptions, o.Players, o.HandSize)
	}
	if o.Hints < 1 {
		return fmt.Errorf("%w: hint tokens must be positive, got %d", ErrInvalidOptions, o.Hints)
	}
	if o.Fuses < 1 {
		return fmt.Errorf("%w: fuse tokens must be positive, got %d", ErrInvalidOptions, o.Fuses)
	}
	return nil
}
