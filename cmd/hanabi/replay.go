package main

import (
	"github.com/lox/hanabi/internal/game"
	"github.com/lox/hanabi/internal/simulator"
	"github.com/lox/hanabi/internal/strategy/catalog"
	"github.com/lox/hanabi/internal/transcript"
)

type ReplayCmd struct {
	Seed     int64  `default:"0" help:"Seed of the game to replay"`
	Players  int    `short:"p" default:"2" help:"Number of players (2-5)"`
	Strategy string `short:"s" default:"info" help:"Strategy to play"`
	Hands    bool   `help:"Show every hand with its public knowledge after each turn"`
	Explain  bool   `help:"Log the reasoning of strategies that explain their moves (implies --hands)"`

	ZeroOnFuseOut   bool `name:"zero-on-fuse-out" help:"Score 0 when the last fuse is lost"`
	AllowEmptyHints bool `help:"Allow hints that match no card"`
}

func (c *ReplayCmd) Run(g *Globals) error {
	out := setupTranscriptLogger(c.Hands || c.Explain || g.Debug, g.NoColor)

	explain := out.WithPrefix("why")
	if !c.Explain {
		explain = nil
	}
	factory, err := catalog.Lookup(c.Strategy, explain)
	if err != nil {
		return err
	}

	opts := game.DefaultOptions(c.Players)
	opts.ZeroScoreOnFuseOut = c.ZeroOnFuseOut
	opts.AllowEmptyHints = c.AllowEmptyHints

	printer := transcript.New(out, renderer(g.NoColor))
	_, err = simulator.RunGame(c.Seed, opts, factory, printer)
	return err
}
