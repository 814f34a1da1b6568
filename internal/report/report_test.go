package report

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/hanabi/internal/game"
	"github.com/lox/hanabi/internal/simulator"
	"github.com/lox/hanabi/internal/statistics"
	"github.com/lox/hanabi/internal/strategy/cheat"
)

func cell(strategy string, players int, cheating bool, mean float64) Cell {
	return Cell{
		Strategy: strategy,
		Players:  players,
		Cheating: cheating,
		Stats:    statistics.Summary{Games: 100, Mean: mean, StdError: 0.25, WinRate: 0.1, WinStdErr: 0.03},
	}
}

func sampleTable() *Table {
	t := &Table{}
	t.Add(cell("cheat", 2, true, 24.5))
	t.Add(cell("info", 3, false, 20))
	t.Add(cell("info", 2, false, 19))
	t.Add(cell("random", 2, false, 1.5))
	return t
}

func TestRowsAndColumns(t *testing.T) {
	tbl := sampleTable()
	assert.Equal(t, []string{"info", "random", "cheat"}, tbl.Strategies())
	assert.Equal(t, []int{2, 3}, tbl.PlayerCounts())

	c, ok := tbl.Lookup("info", 3)
	require.True(t, ok)
	assert.Equal(t, 20.0, c.Stats.Mean)
	_, ok = tbl.Lookup("random", 3)
	assert.False(t, ok)
}

func TestAddReplacesCell(t *testing.T) {
	tbl := sampleTable()
	tbl.Add(cell("info", 2, false, 21))

	assert.Len(t, tbl.Cells, 4)
	c, _ := tbl.Lookup("info", 2)
	assert.Equal(t, 21.0, c.Stats.Mean)
}

func TestFormatCell(t *testing.T) {
	c := cell("info", 2, false, 17.5)
	assert.Equal(t, "17.5000 ± 0.2500, 10.00% ± 3.00%", FormatCell(c))

	c.Stats.Failures = 2
	c.Stopped = true
	assert.Equal(t, "17.5000 ± 0.2500, 10.00% ± 3.00% [2 failed] (partial)", FormatCell(c))
}

func TestMarkdown(t *testing.T) {
	want := strings.Join([]string{
		"| strategy | 2 players | 3 players |",
		"| --- | --- | --- |",
		"| info | 19.0000 ± 0.2500, 10.00% ± 3.00% | 20.0000 ± 0.2500, 10.00% ± 3.00% |",
		"| random | 1.5000 ± 0.2500, 10.00% ± 3.00% | - |",
		"| cheat (cheats) | 24.5000 ± 0.2500, 10.00% ± 3.00% | - |",
		"",
	}, "\n")
	assert.Equal(t, want, sampleTable().Markdown())
}

func TestRenderPlain(t *testing.T) {
	var buf bytes.Buffer
	out := sampleTable().Render(lipgloss.NewRenderer(&buf))

	assert.NotContains(t, out, "\x1b[", "no colour without a terminal")
	assert.Contains(t, out, "3 players")
	assert.Contains(t, out, "cheat (cheats)")
	assert.Contains(t, out, "1.5000 ± 0.2500")

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 7, "top border, header, separator, three rows, bottom border")
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	tbl := sampleTable()

	md := filepath.Join(dir, "results.md")
	require.NoError(t, tbl.WriteMarkdown(md))
	data, err := os.ReadFile(md)
	require.NoError(t, err)
	assert.Equal(t, tbl.Markdown(), string(data))

	js := filepath.Join(dir, "results.json")
	require.NoError(t, tbl.WriteJSON(js))
	data, err = os.ReadFile(js)
	require.NoError(t, err)

	var decoded Table
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, tbl.Cells, decoded.Cells)
}

func TestCellFromBatch(t *testing.T) {
	r, err := simulator.RunBatch(context.Background(), simulator.BatchConfig{
		Factory:   cheat.Factory{},
		Options:   game.DefaultOptions(2),
		SeedStart: 7,
		Seeds:     8,
		Threads:   2,
	})
	require.NoError(t, err)

	c := CellFrom(r, 7)
	assert.Equal(t, "cheat", c.Strategy)
	assert.Equal(t, 2, c.Players)
	assert.True(t, c.Cheating)
	assert.Equal(t, int64(7), c.SeedStart)
	assert.Equal(t, 8, c.Stats.Games)
	assert.Len(t, c.Stats.Histogram, statistics.MaxScore+1)
}
