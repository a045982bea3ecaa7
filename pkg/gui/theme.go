package gui

import (
	"github.com/fatih/color"
)

// Theme is used for coloring the rig output
type Theme struct {
	Title   *color.Color
	Bold    *color.Color
	Balance *color.Color
	Rate    *color.Color
	Crew    *color.Color
	Prime   *color.Color
	Binary  *color.Color
	Multi   *color.Color
	Good    *color.Color
	Bad     *color.Color
	Warn    *color.Color
	Tip     *color.Color
}

// NewTheme returns the basic theme. Colors are forced on or off regardless
// of what fatih/color detects on stdout, since SSH sessions never write to
// stdout.
func NewTheme(enabled bool) Theme {
	t := Theme{
		Title:   color.New(color.Bold, color.FgHiCyan),
		Bold:    color.New(color.Bold),
		Balance: color.New(color.FgHiYellow),
		Rate:    color.New(color.FgHiGreen),
		Crew:    color.New(color.FgHiMagenta),
		Prime:   color.New(color.FgHiGreen),
		Binary:  color.New(color.FgHiCyan),
		Multi:   color.New(color.FgHiMagenta),
		Good:    color.New(color.FgHiGreen),
		Bad:     color.New(color.FgHiRed),
		Warn:    color.New(color.FgHiYellow),
		Tip:     color.New(color.FgHiCyan),
	}
	for _, c := range []*color.Color{t.Title, t.Bold, t.Balance, t.Rate, t.Crew, t.Prime, t.Binary, t.Multi, t.Good, t.Bad, t.Warn, t.Tip} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return t
}
