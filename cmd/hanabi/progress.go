package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/muesli/termenv"

	"github.com/lox/hanabi/internal/simulator"
)

// progressBar redraws a single line after every game of a batch
type progressBar struct {
	mu       sync.Mutex
	out      io.Writer
	bar      progress.Model
	label    string
	total    int
	done     int
	failed   int
	lastDraw time.Time
}

func newProgressBar(out io.Writer, label string, total int, profile termenv.Profile) *progressBar {
	return &progressBar{
		out:   out,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(40), progress.WithColorProfile(profile)),
		label: label,
		total: total,
	}
}

// OnResult matches simulator.BatchConfig.OnResult
func (p *progressBar) OnResult(_ simulator.GameResult, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	if err != nil {
		p.failed++
	}
	// redraw at most every 50ms, and always on the last game
	if p.done < p.total && time.Since(p.lastDraw) < 50*time.Millisecond {
		return
	}
	p.lastDraw = time.Now()
	p.draw()
}

func (p *progressBar) draw() {
	pct := float64(p.done) / float64(p.total)
	line := fmt.Sprintf("\r%s %s %d/%d", p.label, p.bar.ViewAs(pct), p.done, p.total)
	if p.failed > 0 {
		line += fmt.Sprintf(" (%d failed)", p.failed)
	}
	fmt.Fprint(p.out, line)
}

// Finish ends the progress line
func (p *progressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.draw()
	fmt.Fprintln(p.out)
}
