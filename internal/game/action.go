package game

import (
	"fmt"

	"github.com/lox/hanabi/internal/deck"
)

// ActionKind identifies the three moves available on a turn
type ActionKind uint8

const (
	PlayAction ActionKind = iota
	DiscardAction
	HintAction
)

func (k ActionKind) String() string {
	switch k {
	case PlayAction:
		return "play"
	case DiscardAction:
		return "discard"
	case HintAction:
		return "hint"
	default:
		return "unknown"
	}
}

// HintKind is the attribute a hint names
type HintKind uint8

const (
	SuitHint HintKind = iota
	RankHint
)

// Hint names a single suit or rank.
type Hint struct {
	Kind HintKind
	Suit deck.Suit
	Rank deck.Rank
}

// NumHints is the number of distinct hints that can be given to one player
const NumHints = deck.NumSuits + deck.NumRanks

// SuitOf returns a hint naming suit
func SuitOf(s deck.Suit) Hint { return Hint{Kind: SuitHint, Suit: s} }

// RankOf returns a hint naming rank
func RankOf(r deck.Rank) Hint { return Hint{Kind: RankHint, Rank: r} }

// AllHints returns every hint in canonical order: suits, then ranks 1-5.
func AllHints() []Hint {
	hints := make([]Hint, 0, NumHints)
	for _, s := range deck.Suits {
		hints = append(hints, SuitOf(s))
	}
	for _, r := range deck.Ranks {
		hints = append(hints, RankOf(r))
	}
	return hints
}

// Index is the position of the hint in AllHints
func (h Hint) Index() int {
	if h.Kind == SuitHint {
		return int(h.Suit)
	}
	return deck.NumSuits + int(h.Rank) - 1
}

// Matches reports whether the hint is literally true of c
func (h Hint) Matches(c deck.Card) bool {
	if h.Kind == SuitHint {
		return c.Suit == h.Suit
	}
	return c.Rank == h.Rank
}

// Valid reports whether the named attribute exists
func (h Hint) Valid() bool {
	switch h.Kind {
	case SuitHint:
		return h.Suit.Valid()
	case RankHint:
		return h.Rank.Valid()
	default:
		return false
	}
}

func (h Hint) String() string {
	if h.Kind == SuitHint {
		return h.Suit.Name()
	}
	return h.Rank.String() + "s"
}

// Action is a move chosen by the acting player. Slot is used by plays and
// discards; Target and Hint by hints. Target is an absolute seat index.
type Action struct {
	Kind   ActionKind
	Slot   int
	Target int
	Hint   Hint
}

// Play returns an action playing the card in slot
func Play(slot int) Action { return Action{Kind: PlayAction, Slot: slot} }

// Discard returns an action discarding the card in slot
func Discard(slot int) Action { return Action{Kind: DiscardAction, Slot: slot} }

// Give returns an action giving hint h to target
func Give(target int, h Hint) Action { return Action{Kind: HintAction, Target: target, Hint: h} }

// HintSuit returns an action telling target which slots hold suit s
func HintSuit(target int, s deck.Suit) Action { return Give(target, SuitOf(s)) }

// HintRank returns an action telling target which slots hold rank r
func HintRank(target int, r deck.Rank) Action { return Give(target, RankOf(r)) }

func (a Action) String() string {
	switch a.Kind {
	case PlayAction, DiscardAction:
		return fmt.Sprintf("%s slot %d", a.Kind, a.Slot)
	case HintAction:
		return fmt.Sprintf("hint player %d %s", a.Target, a.Hint)
	default:
		return "unknown action"
	}
}
