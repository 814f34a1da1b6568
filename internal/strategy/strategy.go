// Package strategy defines the contract between the simulation driver and the
// players that decide moves.
//
// A Player only ever sees the game through a *game.BorrowedView, which does
// not contain the player's own cards. A Factory builds a fresh set of Players
// for every game so no state can leak from one game into the next.
package strategy

import "github.com/lox/hanabi/internal/game"

// Player decides moves for one seat of one game.
type Player interface {
	// Start is called once with the initial deal before the first turn.
	Start(view *game.BorrowedView)

	// Decide returns the action for the player's turn.
	Decide(view *game.BorrowedView, history *game.History) game.Action

	// Observe is called on every player after each action, including the
	// acting player, with the view as it is after the action.
	Observe(view *game.BorrowedView, rec game.Record)
}

// Factory creates the players for a game.
type Factory interface {
	Name() string

	// NewGame returns one Player per seat. The seed lets randomised
	// strategies replay the same choices for the same game.
	NewGame(opts game.Options, seed int64) []Player
}

// Cheater is implemented by factories whose players read information a real
// player would not have. Their results are reported apart from fair ones.
type Cheater interface {
	Cheats() bool
}

// IsCheating reports whether f is a cheating factory
func IsCheating(f Factory) bool {
	c, ok := f.(Cheater)
	return ok && c.Cheats()
}
