// Package info implements the information strategy: a fair player that
// encodes more than the literal hint by choosing among hints according to a
// convention every player decodes identically.
package info

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/hanabi/internal/deck"
	"github.com/lox/hanabi/internal/game"
	"github.com/lox/hanabi/internal/strategy"
)

const (
	// hintThreshold is the score a hint needs to be worth a token when the
	// player could discard instead
	hintThreshold = 5.0

	riskyPlayProbability = 0.6
	latePlayProbability  = 0.5
)

// Factory builds information players
type Factory struct {
	Logger *log.Logger
}

var _ strategy.Factory = (*Factory)(nil)

// NewFactory returns a factory whose players log their reasoning to logger
func NewFactory(logger *log.Logger) *Factory {
	return &Factory{Logger: logger}
}

func (f *Factory) Name() string { return "info" }

func (f *Factory) NewGame(opts game.Options, _ int64) []strategy.Player {
	logger := f.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	players := make([]strategy.Player, opts.Players)
	for seat := range players {
		players[seat] = &Player{seat: seat, opts: opts, logger: logger.With("seat", seat)}
	}
	return players
}

// Player is one seat playing the convention
type Player struct {
	seat   int
	opts   game.Options
	public *Public
	logger *log.Logger
}

// Public returns the player's copy of the convention state
func (p *Player) Public() *Public { return p.public }

func (p *Player) Start(view *game.BorrowedView) {
	p.public = NewPublic(view.Options())
}

func (p *Player) Observe(_ *game.BorrowedView, rec game.Record) {
	p.public.Observe(rec)
}

func (p *Player) Decide(view *game.BorrowedView, _ *game.History) game.Action {
	board := view.Board()
	own := view.Snapshot()
	for slot, s := range p.public.Hands[p.seat] {
		own.Narrow(slot, s.Allowed)
	}

	beliefs := own.Beliefs()
	for slot, b := range beliefs {
		if b.Empty() {
			game.Invariantf("player %d has no possible card for slot %d", p.seat, slot)
		}
	}

	piles := board.Piles()
	playable, dead := piles.PlayableSet(), piles.DeadSet()

	for slot, b := range beliefs {
		if b.SubsetOf(playable) {
			p.logger.Debug("playing known playable card", "slot", slot, "belief", b)
			return game.Play(slot)
		}
	}

	if board.Fuses() > 1 {
		for slot, s := range p.public.Hands[p.seat] {
			if s.Rec == PlayNow && playProbability(own, slot, playable) >= riskyPlayProbability {
				p.logger.Debug("playing on a stale play hint", "slot", slot)
				return game.Play(slot)
			}
		}
	}

	var best candidate
	if board.Hints() > 0 {
		best = p.bestHint(view)
		if best.ok && best.score >= hintThreshold {
			p.logger.Debug("giving hint", "action", best.action, "rec", best.reading.Rec, "score", best.score)
			return best.action
		}
	}

	if board.DeckSize() == 0 && board.Fuses() > 1 {
		slot, prob := -1, 0.0
		for s := range beliefs {
			if pr := playProbability(own, s, playable); pr > prob {
				slot, prob = s, pr
			}
		}
		if slot >= 0 && prob >= latePlayProbability {
			p.logger.Debug("playing a likely card in the final round", "slot", slot, "p", prob)
			return game.Play(slot)
		}
	}

	if board.Hints() < p.opts.Hints {
		for slot, b := range beliefs {
			if b.SubsetOf(dead) {
				return game.Discard(slot)
			}
		}
		if chop := p.public.Chop(p.seat); chop >= 0 {
			return game.Discard(chop)
		}
	} else if best.ok {
		p.logger.Debug("spending a token at the hint limit", "action", best.action, "score", best.score)
		return best.action
	}

	return game.Discard(safestDiscard(own, &piles))
}

type candidate struct {
	ok      bool
	action  game.Action
	reading Reading
	score   float64
}

// bestHint scores every truthful hint in the canonical order: teammates by
// seat offset, then hint index. Ties keep the earliest.
func (p *Player) bestHint(view game.View) candidate {
	var best candidate
	n := view.NumPlayers()
	for off := 1; off < n; off++ {
		target := (p.seat + off) % n
		hand := view.Hand(target)
		for _, h := range game.AllHints() {
			matched := view.Matches(target, h)
			if len(matched) == 0 {
				continue
			}
			r := p.public.Interpret(target, h, matched)
			truth := hand[r.Focus]
			if !r.Allowed.Has(truth) {
				continue
			}
			score := p.scoreHint(view, r, truth)
			if !best.ok || score > best.score {
				best = candidate{ok: true, action: game.Give(target, h), reading: r, score: score}
			}
		}
	}
	return best
}

func (p *Player) scoreHint(view game.View, r Reading, truth deck.Card) float64 {
	pub := p.public
	chop := pub.Chop(r.Target)
	switch r.Rec {
	case PlayNow:
		if pub.KnownPlayable(r.Target, r.Focus) || p.duplicated(view, r, truth) {
			return 0
		}
		return 10 + float64(deck.NumRanks-int(truth.Rank))
	case Keep:
		if r.Focus == chop && pub.Piles.Critical(truth) {
			return 15 + float64(truth.Rank)
		}
		return 0.5
	case Trash:
		if r.Focus == chop {
			return 1
		}
	}
	return 0
}

// duplicated reports whether another slot is already publicly known to be a
// playable copy of truth
func (p *Player) duplicated(view game.View, r Reading, truth deck.Card) bool {
	pub := p.public
	for player, hand := range pub.Hands {
		for slot, s := range hand {
			if player == r.Target && slot == r.Focus {
				continue
			}
			if !pub.KnownPlayable(player, slot) {
				continue
			}
			if player == p.seat {
				if c, ok := s.Belief().Single(); ok && c == truth {
					return true
				}
				continue
			}
			if view.Hand(player)[slot] == truth {
				return true
			}
		}
	}
	return false
}

// playProbability weighs the belief about slot by unseen copies
func playProbability(own *game.OwnedView, slot int, playable deck.Set) float64 {
	total, good := 0, 0
	for _, w := range own.Weights(slot) {
		total += w.Weight
		if playable.Has(w.Card) {
			good += w.Weight
		}
	}
	if total == 0 {
		return 0
	}
	return float64(good) / float64(total)
}

// safestDiscard returns the slot least likely to hold a critical card
func safestDiscard(own *game.OwnedView, piles *game.Piles) int {
	best, bestRisk := 0, 2.0
	for slot := range own.HandSize(own.Viewer()) {
		total, critical := 0, 0
		for _, w := range own.Weights(slot) {
			total += w.Weight
			if piles.Critical(w.Card) {
				critical += w.Weight
			}
		}
		risk := 1.0
		if total > 0 {
			risk = float64(critical) / float64(total)
		}
		if risk < bestRisk {
			best, bestRisk = slot, risk
		}
	}
	return best
}
