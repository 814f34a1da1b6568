package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/hanabi/internal/strategy/catalog"
)

var warningColor = lipgloss.Color("#FFEAA7")

type StrategiesCmd struct{}

func (c *StrategiesCmd) Run(g *Globals) error {
	r := renderer(g.NoColor)
	name := r.NewStyle().Bold(true).Width(8)
	warn := r.NewStyle().Foreground(warningColor)

	for _, e := range catalog.List() {
		line := name.Render(e.Name) + " " + e.Description
		if e.Cheating {
			line += " " + warn.Render("(cheats)")
		}
		fmt.Println(line)
	}
	return nil
}
