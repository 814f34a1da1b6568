// Package random implements the example strategy: uniformly random legal
// moves with configurable hint and play probabilities.
package random

import (
	rand "math/rand/v2"

	"github.com/lox/hanabi/internal/game"
	"github.com/lox/hanabi/internal/randutil"
	"github.com/lox/hanabi/internal/strategy"
)

const (
	DefaultHintProbability = 0.4
	DefaultPlayProbability = 0.2
)

// Factory builds random players. The zero value uses the default
// probabilities.
type Factory struct {
	HintProbability float64
	PlayProbability float64
}

// NewFactory returns a factory with the given probabilities
func NewFactory(hint, play float64) *Factory {
	return &Factory{HintProbability: hint, PlayProbability: play}
}

func (f *Factory) Name() string { return "random" }

func (f *Factory) NewGame(opts game.Options, seed int64) []strategy.Player {
	hint, play := f.HintProbability, f.PlayProbability
	if hint == 0 && play == 0 {
		hint, play = DefaultHintProbability, DefaultPlayProbability
	}
	players := make([]strategy.Player, opts.Players)
	for seat := range players {
		players[seat] = &Player{
			rng:  randutil.New(randutil.Derive(seed, uint64(seat))),
			hint: hint,
			play: play,
		}
	}
	return players
}

// Player picks random legal moves
type Player struct {
	rng  *rand.Rand
	hint float64
	play float64
}

func (p *Player) Start(*game.BorrowedView) {}

func (p *Player) Observe(*game.BorrowedView, game.Record) {}

func (p *Player) Decide(view *game.BorrowedView, _ *game.History) game.Action {
	legal := view.LegalActions()

	var hints []game.Action
	for _, a := range legal {
		if a.Kind == game.HintAction {
			hints = append(hints, a)
		}
	}

	if len(hints) > 0 && p.rng.Float64() < p.hint {
		return hints[p.rng.IntN(len(hints))]
	}

	slot := p.rng.IntN(view.HandSize(view.Viewer()))
	if p.rng.Float64() < p.play {
		return game.Play(slot)
	}
	return game.Discard(slot)
}
