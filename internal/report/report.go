// Package report builds the results table of a set of batches and renders it
// for the terminal, as markdown, or as JSON.
package report

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/hanabi/internal/fileutil"
	"github.com/lox/hanabi/internal/simulator"
	"github.com/lox/hanabi/internal/statistics"
)

// Cell is the result of one strategy at one player count
type Cell struct {
	Strategy  string             `json:"strategy"`
	Players   int                `json:"players"`
	Cheating  bool               `json:"cheating"`
	SeedStart int64              `json:"seed_start"`
	Stopped   bool               `json:"stopped,omitempty"`
	Elapsed   time.Duration      `json:"elapsed_ns"`
	Stats     statistics.Summary `json:"stats"`
}

// CellFrom summarises a batch report
func CellFrom(r *simulator.BatchReport, seedStart int64) Cell {
	return Cell{
		Strategy:  r.Strategy,
		Players:   r.Players,
		Cheating:  r.Cheating,
		SeedStart: seedStart,
		Stopped:   r.Stopped,
		Elapsed:   r.Elapsed,
		Stats:     r.Tally.Summary(),
	}
}

// Table is a grid of cells: one row per strategy, one column per player count
type Table struct {
	Cells []Cell `json:"cells"`
}

// Add appends a cell, replacing any earlier cell for the same strategy and
// player count
func (t *Table) Add(c Cell) {
	for i, old := range t.Cells {
		if old.Strategy == c.Strategy && old.Players == c.Players {
			t.Cells[i] = c
			return
		}
	}
	t.Cells = append(t.Cells, c)
}

// Strategies returns the row names: fair strategies first, each group in the
// order cells were added
func (t *Table) Strategies() []string {
	var fair, cheating []string
	for _, c := range t.Cells {
		if slices.Contains(fair, c.Strategy) || slices.Contains(cheating, c.Strategy) {
			continue
		}
		if c.Cheating {
			cheating = append(cheating, c.Strategy)
		} else {
			fair = append(fair, c.Strategy)
		}
	}
	return append(fair, cheating...)
}

// PlayerCounts returns the column headings in ascending order
func (t *Table) PlayerCounts() []int {
	var counts []int
	for _, c := range t.Cells {
		if !slices.Contains(counts, c.Players) {
			counts = append(counts, c.Players)
		}
	}
	slices.SortFunc(counts, cmp.Compare)
	return counts
}

// Lookup returns the cell for a strategy and player count
func (t *Table) Lookup(strategy string, players int) (Cell, bool) {
	for _, c := range t.Cells {
		if c.Strategy == strategy && c.Players == players {
			return c, true
		}
	}
	return Cell{}, false
}

func (t *Table) cheating(strategy string) bool {
	for _, c := range t.Cells {
		if c.Strategy == strategy {
			return c.Cheating
		}
	}
	return false
}

// grid returns the header and body rows shared by every renderer
func (t *Table) grid() ([]string, [][]string) {
	counts := t.PlayerCounts()
	headers := []string{"strategy"}
	for _, n := range counts {
		headers = append(headers, strconv.Itoa(n)+" players")
	}

	var rows [][]string
	for _, s := range t.Strategies() {
		name := s
		if t.cheating(s) {
			name += " (cheats)"
		}
		row := []string{name}
		for _, n := range counts {
			c, ok := t.Lookup(s, n)
			if !ok {
				row = append(row, "-")
				continue
			}
			row = append(row, FormatCell(c))
		}
		rows = append(rows, row)
	}
	return headers, rows
}

// FormatCell renders mean and win rate with their standard errors, e.g.
// "17.2345 ± 0.0441, 1.20% ± 0.11%"
func FormatCell(c Cell) string {
	s := c.Stats
	text := fmt.Sprintf("%.4f ± %.4f, %.2f%% ± %.2f%%", s.Mean, s.StdError, 100*s.WinRate, 100*s.WinStdErr)
	if s.Failures > 0 {
		text += fmt.Sprintf(" [%d failed]", s.Failures)
	}
	if c.Stopped {
		text += " (partial)"
	}
	return text
}

// Render draws the table for a terminal. Styles come from renderer, which
// decides the colour profile.
func (t *Table) Render(renderer *lipgloss.Renderer) string {
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	headerStyle := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).Padding(0, 1)
	cellStyle := renderer.NewStyle().Padding(0, 1)
	cheatStyle := cellStyle.Foreground(lipgloss.Color("#626262"))

	headers, rows := t.grid()
	strategies := t.Strategies()
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(renderer.NewStyle().Foreground(lipgloss.Color("#626262"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row < len(strategies) && t.cheating(strategies[row]):
				return cheatStyle
			default:
				return cellStyle
			}
		}).
		String()
}

// Markdown renders the table as a GitHub markdown table
func (t *Table) Markdown() string {
	headers, rows := t.grid()

	var b strings.Builder
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(headers)) + "\n")
	for _, row := range rows {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	return b.String()
}

// WriteMarkdown writes the markdown table to path
func (t *Table) WriteMarkdown(path string) error {
	return fileutil.WriteFileAtomic(path, []byte(t.Markdown()), 0o644)
}

// WriteJSON writes every cell with its full summary to path
func (t *Table) WriteJSON(path string) error {
	return fileutil.WriteJSONAtomic(path, t)
}
