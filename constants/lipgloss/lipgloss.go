package lipgloss

import (
	lg "github.com/charmbracelet/lipgloss"
)

var (
	Red    = lg.NewStyle().Foreground(lg.Color("#F04C56"))
	Green  = lg.NewStyle().Foreground(lg.Color("#3FB950"))
	Yellow = lg.NewStyle().Foreground(lg.Color("#E3B341"))
	Info   = lg.NewStyle().Foreground(lg.Color("#58A6FF")).Bold(true)
	Muted  = lg.NewStyle().Foreground(lg.Color("#8B949E"))

	BoxStyle = lg.NewStyle().
			Border(lg.RoundedBorder()).
			BorderForeground(lg.Color("#58A6FF")).
			Padding(0, 1)
)
