// Package game implements the rules of Hanabi and the restricted views that
// strategies decide from.
//
// The main type is State, which owns the deck, every hand, the public Board
// and the History of a single game.
//
// # Basic Usage
//
// Deal a game and play it turn by turn:
//
//	s, err := game.New(seed, game.DefaultOptions(3))
//	if err != nil {
//	    return err
//	}
//	for !s.Over() {
//	    view := s.Borrow(s.CurrentPlayer())
//	    action := choose(view) // strategy code
//	    if _, err := s.Apply(action); err != nil {
//	        return err // *IllegalActionError
//	    }
//	}
//
// # Views
//
// A strategy never receives a *State. It receives a *BorrowedView built by
// State.Borrow, which holds every other player's cards and the public
// knowledge of all slots, but not the viewer's own cards: the slice is simply
// not copied into the view. BorrowedView.Snapshot produces an *OwnedView with
// the same restriction that can be kept across turns and narrowed privately.
//
// # Deterministic Testing
//
// Use WithDeck to deal from a known card order:
//
//	s, err := game.New(0, game.DefaultOptions(2), game.WithDeck(cards))
//
// The design follows a state-per-game approach where each game is
// independent, supporting concurrent execution of many games.
package game
