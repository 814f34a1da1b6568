package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/lox/hanabi/internal/fileutil"
	"github.com/lox/hanabi/internal/game"
	"github.com/lox/hanabi/internal/report"
	"github.com/lox/hanabi/internal/simulator"
	"github.com/lox/hanabi/internal/strategy/catalog"
)

type SimCmd struct {
	Players   int           `short:"p" default:"2" help:"Number of players (2-5)"`
	Strategy  string        `short:"s" default:"info" help:"Strategy to play (see 'hanabi strategies')"`
	Seeds     int           `short:"n" default:"1000" help:"Number of games"`
	SeedStart int64         `default:"0" help:"First seed"`
	Threads   int           `short:"t" default:"0" help:"Worker goroutines (0 = number of CPUs)"`
	Budget    time.Duration `help:"Stop starting games after this long (0 = no limit)"`
	WinScore  int           `default:"25" help:"Score counted as a win"`

	ZeroOnFuseOut   bool `name:"zero-on-fuse-out" help:"Score 0 when the last fuse is lost"`
	AllowEmptyHints bool `help:"Allow hints that match no card"`

	JSON     string `name:"json" type:"path" help:"Write the summary as JSON to this file"`
	Progress bool   `help:"Show a progress bar"`
}

func (c *SimCmd) Run(g *Globals) error {
	logger := setupLogger(g.Debug)
	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	factory, err := catalog.Lookup(c.Strategy, nil)
	if err != nil {
		return err
	}

	opts := game.DefaultOptions(c.Players)
	opts.ZeroScoreOnFuseOut = c.ZeroOnFuseOut
	opts.AllowEmptyHints = c.AllowEmptyHints

	threads := c.Threads
	if threads == 0 {
		threads = runtime.NumCPU()
	}

	cfg := simulator.BatchConfig{
		Factory:   factory,
		Options:   opts,
		SeedStart: c.SeedStart,
		Seeds:     c.Seeds,
		Threads:   threads,
		WinScore:  c.WinScore,
		Budget:    c.Budget,
		Logger:    &logger,
	}

	var bar *progressBar
	if c.Progress {
		bar = newProgressBar(os.Stderr, factory.Name(), c.Seeds, colorProfile(g.NoColor))
		cfg.OnResult = bar.OnResult
	}

	r, err := simulator.RunBatch(ctx, cfg)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}

	cell := report.CellFrom(r, c.SeedStart)
	tbl := &report.Table{}
	tbl.Add(cell)
	fmt.Println(tbl.Render(renderer(g.NoColor)))

	s := cell.Stats
	fmt.Printf("games %d  median %.1f  95%% CI [%.4f, %.4f]  elapsed %s\n",
		s.Games, s.Median, s.CILow, s.CIHigh, r.Elapsed.Round(time.Millisecond))

	printFailures(r)

	if c.JSON != "" {
		if err := fileutil.WriteJSONAtomic(c.JSON, cell); err != nil {
			return err
		}
		logger.Info().Str("path", c.JSON).Msg("Wrote summary")
	}
	return nil
}

// printFailures lists the first failed seeds so they can be replayed
func printFailures(r *simulator.BatchReport) {
	if len(r.Failures) == 0 {
		return
	}
	seeds := make([]string, 0, 10)
	for _, f := range r.Failures[:min(len(r.Failures), 10)] {
		seeds = append(seeds, strconv.FormatInt(f.Seed, 10))
	}
	fmt.Printf("%d games ended on an illegal action, seeds: %s\n", len(r.Failures), strings.Join(seeds, " "))
}
