package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/lox/hanabi/internal/config"
	"github.com/lox/hanabi/internal/report"
	"github.com/lox/hanabi/internal/simulator"
	"github.com/lox/hanabi/internal/strategy/catalog"
)

type TableCmd struct {
	Config   string `short:"c" default:"experiments.hcl" type:"existingfile" help:"Experiment file"`
	Output   string `short:"o" type:"path" help:"Write the table as markdown to this file"`
	JSON     string `name:"json" type:"path" help:"Write every cell as JSON to this file"`
	Progress bool   `help:"Show a progress bar per cell"`
}

func (c *TableCmd) Run(g *Globals) error {
	logger := setupLogger(g.Debug)
	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	f, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := f.Validate(); err != nil {
		return fmt.Errorf("%s: %w", c.Config, err)
	}
	budget, err := f.BudgetDuration()
	if err != nil {
		return err
	}

	tbl := &report.Table{}
	for _, cell := range f.Cells() {
		if ctx.Err() != nil {
			break
		}
		factory, err := catalog.Lookup(cell.Strategy, nil)
		if err != nil {
			return err
		}

		cfg := simulator.BatchConfig{
			Factory:   factory,
			Options:   cell.Options,
			SeedStart: f.SeedStart,
			Seeds:     cell.Seeds,
			Threads:   f.Threads,
			WinScore:  f.WinScore,
			Budget:    budget,
			Logger:    &logger,
		}
		var bar *progressBar
		if c.Progress {
			label := fmt.Sprintf("%s %dp", cell.Experiment, cell.Options.Players)
			bar = newProgressBar(os.Stderr, label, cell.Seeds, colorProfile(g.NoColor))
			cfg.OnResult = bar.OnResult
		}

		r, err := simulator.RunBatch(ctx, cfg)
		if bar != nil {
			bar.Finish()
		}
		if err != nil {
			return fmt.Errorf("experiment %s with %d players: %w", cell.Experiment, cell.Options.Players, err)
		}
		printFailures(r)

		row := report.CellFrom(r, f.SeedStart)
		row.Strategy = cell.Experiment
		tbl.Add(row)
	}

	if len(tbl.Cells) == 0 {
		return errors.New("interrupted before any experiment finished")
	}

	fmt.Println(tbl.Render(renderer(g.NoColor)))

	if c.Output != "" {
		if err := tbl.WriteMarkdown(c.Output); err != nil {
			return err
		}
		logger.Info().Str("path", c.Output).Msg("Wrote results table")
	}
	if c.JSON != "" {
		if err := tbl.WriteJSON(c.JSON); err != nil {
			return err
		}
		logger.Info().Str("path", c.JSON).Msg("Wrote results")
	}
	return nil
}
