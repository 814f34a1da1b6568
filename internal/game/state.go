package game

import (
	"fmt"
	"slices"

	"github.com/lox/hanabi/internal/deck"
)

// State is the authoritative game state. It is owned by the single game
// simulation that created it; strategies only ever see it through views.
type State struct {
	opts    Options
	deck    *deck.Deck
	cards   [][]deck.Card // per seat, slot 0 is the oldest card
	info    [][]Knowledge // public knowledge, parallel to cards
	board   Board
	history History
	epoch   uint64 // bumped on every mutation, checked by borrowed views
}

// StateOption configures a State during creation.
type StateOption func(*stateConfig)

type stateConfig struct {
	order []deck.Card
}

// WithDeck deals from a fixed card order instead of shuffling by seed. The
// cards must be a permutation of the standard deck.
func WithDeck(cards []deck.Card) StateOption {
	return func(c *stateConfig) {
		c.order = cards
	}
}

// New shuffles a deck from seed and deals a new game.
//
// Example usage:
//
//	s, err := game.New(42, game.DefaultOptions(3))
//	if err != nil {
//	    return err
//	}
//	view := s.Borrow(s.CurrentPlayer())
func New(seed int64, opts Options, stateOpts ...StateOption) (*State, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	cfg := &stateConfig{}
	for _, opt := range stateOpts {
		opt(cfg)
	}

	var d *deck.Deck
	if cfg.order != nil {
		var err error
		d, err = deck.NewOrderedDeck(cfg.order)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
		}
	} else {
		d = deck.NewDeckFromSeed(seed)
	}

	s := &State{
		opts:  opts,
		deck:  d,
		cards: make([][]deck.Card, opts.Players),
		info:  make([][]Knowledge, opts.Players),
	}
	for p := range opts.Players {
		s.cards[p] = make([]deck.Card, 0, opts.HandSize)
		s.info[p] = make([]Knowledge, 0, opts.HandSize)
		for range opts.HandSize {
			card, _ := d.Draw()
			s.cards[p] = append(s.cards[p], card)
			s.info[p] = append(s.info[p], NewKnowledge())
		}
	}
	s.board = newBoard(opts, d.Remaining())
	return s, nil
}

// Options returns the rules of the game
func (s *State) Options() Options { return s.opts }

// Board returns the public board
func (s *State) Board() *Board { return &s.board }

// History returns the public history
func (s *State) History() *History { return &s.history }

// CurrentPlayer returns the seat whose turn it is
func (s *State) CurrentPlayer() int { return s.board.player }

// Over reports whether the game has ended
func (s *State) Over() bool { return s.board.Over() }

// Score returns the current score
func (s *State) Score() int { return s.board.Score() }

// Hand returns the true cards of player. Only driver-side code (transcripts,
// invariant checks, tests) holds a *State, so this is not reachable from a
// strategy.
func (s *State) Hand(player int) []deck.Card { return slices.Clone(s.cards[player]) }

// Knowledge returns the public knowledge of each slot in player's hand
func (s *State) Knowledge(player int) []Knowledge { return slices.Clone(s.info[player]) }

// DeckCards returns the undrawn cards, top first
func (s *State) DeckCards() []deck.Card { return s.deck.Cards() }

// Borrow returns a read-only view of the state for player. It references
// the live state and must not be used once the state has changed. Building
// it copies only slice headers, and the viewer's own card slice is left out
// entirely.
func (s *State) Borrow(player int) *BorrowedView {
	cards := make([][]deck.Card, len(s.cards))
	for p := range s.cards {
		if p != player {
			cards[p] = s.cards[p]
		}
	}
	return &BorrowedView{viewData{
		viewer: player,
		board:  &s.board,
		cards:  cards,
		info:   s.info,
		epoch:  &s.epoch,
		at:     s.epoch,
	}}
}

// LegalActions lists the actions the current player may take
func (s *State) LegalActions() []Action {
	return s.Borrow(s.board.player).LegalActions()
}

// Apply performs action for the current player and advances the turn. An
// illegal action leaves the state untouched and returns an
// *IllegalActionError.
func (s *State) Apply(a Action) (Record, error) {
	player := s.board.player
	if err := checkAction(&s.board, player, s.handSize, s.matchCount, a); err != nil {
		return Record{}, err
	}

	rec := Record{Turn: s.board.turn, Player: player, Action: a}
	drewLast := false

	switch a.Kind {
	case PlayAction:
		card := s.take(player, a.Slot)
		rec.Card = card
		rec.Success = s.board.piles.Play(card)
		if rec.Success {
			if card.Rank == deck.Five && s.board.hints < s.opts.Hints {
				s.board.hints++
			}
		} else {
			s.board.fuses--
			s.board.discards = append(s.board.discards, card)
		}
		rec.Drew, drewLast = s.draw(player)

	case DiscardAction:
		card := s.take(player, a.Slot)
		rec.Card = card
		s.board.piles.Discard(card)
		s.board.discards = append(s.board.discards, card)
		if s.board.hints < s.opts.Hints {
			s.board.hints++
		}
		rec.Drew, drewLast = s.draw(player)

	case HintAction:
		s.board.hints--
		for slot, card := range s.cards[a.Target] {
			matched := a.Hint.Matches(card)
			s.info[a.Target][slot].Apply(a.Hint, matched)
			if matched {
				rec.Matched = append(rec.Matched, slot)
			}
		}
	}

	if s.board.endgame > 0 && !drewLast {
		s.board.endgame--
	}

	switch {
	case s.board.fuses == 0:
		s.board.status = FuseOut
	case s.board.piles.Complete():
		s.board.status = Perfect
	case s.board.endgame == 0:
		s.board.status = Exhausted
	}

	rec.Hints = s.board.hints
	rec.Fuses = s.board.fuses
	s.board.turn++
	s.board.player = (player + 1) % s.opts.Players
	s.history.append(rec)
	s.epoch++

	return rec.clone(), nil
}

// take removes the card in slot from player's hand
func (s *State) take(player, slot int) deck.Card {
	card := s.cards[player][slot]
	s.cards[player] = slices.Delete(s.cards[player], slot, slot+1)
	s.info[player] = slices.Delete(s.info[player], slot, slot+1)
	return card
}

// draw appends the top card to player's hand. The second result is true
// when this draw emptied the deck, which starts the final round.
func (s *State) draw(player int) (drew, last bool) {
	card, ok := s.deck.Draw()
	if !ok {
		return false, false
	}
	s.cards[player] = append(s.cards[player], card)
	s.info[player] = append(s.info[player], NewKnowledge())
	s.board.deckSize = s.deck.Remaining()
	if s.board.deckSize == 0 {
		s.board.endgame = s.opts.Players
		return true, true
	}
	return true, false
}

func (s *State) handSize(player int) int { return len(s.cards[player]) }

func (s *State) matchCount(target int, h Hint) int {
	n := 0
	for _, c := range s.cards[target] {
		if h.Matches(c) {
			n++
		}
	}
	return n
}

// Validate checks the invariants that must hold in every reachable state:
// card conservation, firework heights and token bounds.
func (s *State) Validate() error {
	total := deck.CountsOf(s.deck.Cards()...)
	for p := range s.cards {
		if len(s.cards[p]) != len(s.info[p]) {
			return &InvariantError{Reason: fmt.Sprintf("player %d has %d cards but %d knowledge slots", p, len(s.cards[p]), len(s.info[p]))}
		}
		for _, c := range s.cards[p] {
			total.Add(c)
		}
	}
	for _, c := range s.board.discards {
		total.Add(c)
	}
	if deck.CountsOf(s.board.discards...) != s.board.piles.Discarded {
		return &InvariantError{Reason: "discard pile and discard counts disagree"}
	}
	for _, suit := range deck.Suits {
		h := s.board.piles.Fireworks[suit]
		if h < 0 || h > deck.NumRanks {
			return &InvariantError{Reason: fmt.Sprintf("firework %s has height %d", suit.Name(), h)}
		}
		for r := 1; r <= h; r++ {
			total.Add(deck.NewCard(suit, deck.Rank(r)))
		}
	}
	if total != deck.FullCounts() {
		return &InvariantError{Reason: "card conservation broken"}
	}
	if s.board.hints < 0 || s.board.hints > s.opts.Hints {
		return &InvariantError{Reason: fmt.Sprintf("hint tokens %d outside [0, %d]", s.board.hints, s.opts.Hints)}
	}
	if s.board.fuses < 0 || s.board.fuses > s.opts.Fuses {
		return &InvariantError{Reason: fmt.Sprintf("fuse tokens %d outside [0, %d]", s.board.fuses, s.opts.Fuses)}
	}
	if s.board.deckSize != s.deck.Remaining() {
		return &InvariantError{Reason: "board deck size disagrees with the deck"}
	}
	return nil
}

// checkAction validates a for player. It is shared by the engine and by
// views so that legal-action enumeration and enforcement cannot drift.
func checkAction(b *Board, player int, handSize func(int) int, matchCount func(int, Hint) int, a Action) error {
	illegal := func(reason string) error {
		return &IllegalActionError{Player: player, Turn: b.turn, Action: a, Reason: reason}
	}
	if b.Over() {
		return illegal("game is over")
	}
	switch a.Kind {
	case PlayAction, DiscardAction:
		if a.Slot < 0 || a.Slot >= handSize(player) {
			return illegal(fmt.Sprintf("slot %d out of range for hand of %d", a.Slot, handSize(player)))
		}
	case HintAction:
		if a.Target < 0 || a.Target >= b.opts.Players {
			return illegal(fmt.Sprintf("no player %d", a.Target))
		}
		if a.Target == player {
			return illegal("cannot hint yourself")
		}
		if !a.Hint.Valid() {
			return illegal("hint names no suit or rank")
		}
		if b.hints <= 0 {
			return illegal("no hint tokens left")
		}
		if !b.opts.AllowEmptyHints && matchCount(a.Target, a.Hint) == 0 {
			return illegal("hint matches no card")
		}
	default:
		return illegal("unknown action kind")
	}
	return nil
}
