// Package transcript prints a game as it is played: one log line per turn,
// and every hand with its public knowledge when the logger is at debug level.
package transcript

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/hanabi/internal/deck"
	"github.com/lox/hanabi/internal/game"
	"github.com/lox/hanabi/internal/simulator"
)

// Printer is a simulator.Observer writing to a charmbracelet logger
type Printer struct {
	logger *log.Logger
	suits  [deck.NumSuits]lipgloss.Style
}

var _ simulator.Observer = (*Printer)(nil)

var suitColors = [deck.NumSuits]lipgloss.Color{
	deck.Red:    "#FF6B6B",
	deck.Yellow: "#FFEAA7",
	deck.Green:  "#96CEB4",
	deck.Blue:   "#74B9FF",
	deck.White:  "#FAFAFA",
}

// New returns a printer. Cards are coloured with renderer, which decides
// whether the output supports colour; nil uses the default renderer.
func New(logger *log.Logger, renderer *lipgloss.Renderer) *Printer {
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	p := &Printer{logger: logger}
	for _, s := range deck.Suits {
		p.suits[s] = renderer.NewStyle().Foreground(suitColors[s]).Bold(true)
	}
	return p
}

func (p *Printer) OnStart(state *game.State) {
	board := state.Board()
	p.logger.Info("Game started",
		"players", state.Options().Players,
		"deck", board.DeckSize(),
		"hints", board.Hints(),
		"fuses", board.Fuses())
	p.hands(state)
}

func (p *Printer) OnRecord(state *game.State, rec game.Record) {
	board := state.Board()
	p.logger.Info(p.describe(rec),
		"turn", rec.Turn,
		"player", rec.Player,
		"hints", rec.Hints,
		"fuses", rec.Fuses,
		"deck", board.DeckSize(),
		"score", board.Score())
	if rec.Action.Kind != game.HintAction {
		p.logger.Debug("Fireworks", "piles", p.fireworks(board))
	}
	p.hands(state)
}

func (p *Printer) OnEnd(res simulator.GameResult) {
	p.logger.Info("Game over", "status", res.Status, "score", res.Score, "turns", res.Turns)
}

func (p *Printer) describe(rec game.Record) string {
	a := rec.Action
	switch a.Kind {
	case game.PlayAction:
		if rec.Success {
			return fmt.Sprintf("Played %s from slot %d", p.card(rec.Card), a.Slot)
		}
		return fmt.Sprintf("Misplayed %s from slot %d", p.card(rec.Card), a.Slot)
	case game.DiscardAction:
		return fmt.Sprintf("Discarded %s from slot %d", p.card(rec.Card), a.Slot)
	case game.HintAction:
		return fmt.Sprintf("Told player %d about %s in slots %v", a.Target, a.Hint, rec.Matched)
	default:
		return a.String()
	}
}

// hands logs every hand at debug level
func (p *Printer) hands(state *game.State) {
	if p.logger.GetLevel() > log.DebugLevel {
		return
	}
	for player := range state.Options().Players {
		p.logger.Debug("Hand", "player", player, "cards", p.hand(state.Hand(player), state.Knowledge(player)))
	}
}

// hand renders each card followed by what its holder knows, e.g. "r3[ry 3]"
func (p *Printer) hand(cards []deck.Card, knowledge []game.Knowledge) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = fmt.Sprintf("%s[%s]", p.card(c), knowledge[i])
	}
	return strings.Join(parts, " ")
}

func (p *Printer) fireworks(board *game.Board) string {
	parts := make([]string, 0, deck.NumSuits)
	for _, s := range deck.Suits {
		parts = append(parts, p.suits[s].Render(fmt.Sprintf("%s%d", s, board.Firework(s))))
	}
	return strings.Join(parts, " ")
}

func (p *Printer) card(c deck.Card) string {
	return p.suits[c.Suit].Render(c.String())
}
