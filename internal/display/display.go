// Package display renders the controller status as a terminal panel and
// runs a live view that follows the status tracker.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sweeney/heater-controller/internal/control"
	"github.com/sweeney/heater-controller/internal/report"
	"github.com/sweeney/heater-controller/internal/status"
)

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleFg = lipgloss.Color("51")
	colorBorder  = lipgloss.Color("62")
	colorLabel   = lipgloss.Color("252")
	colorDim     = lipgloss.Color("240")
	colorReady   = lipgloss.Color("42")
	colorActive  = lipgloss.Color("196")
	colorWarn    = lipgloss.Color("220")
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorTitleFg)
	labelStyle  = lipgloss.NewStyle().Foreground(colorLabel).Width(10)
	dimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorWarn)
	readyStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorReady)
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(colorActive)
)

// Lamp glyphs.
const (
	lampOn  = "●"
	lampOff = "○"
)

func lamp(on bool, style lipgloss.Style) string {
	if on {
		return style.Render(lampOn)
	}
	return dimStyle.Render(lampOff)
}

func row(label, value string) string {
	return labelStyle.Render(label) + value
}

// StatusLine returns the display text for the latest record, clipped to the
// display width.
func StatusLine(snap status.Snapshot) string {
	if !snap.Sampled() {
		return "Waiting for first sample..."
	}
	return report.Clip(report.FormatLine(snap.Record), report.DisplayWidth)
}

// Render draws the status panel for snap.
func Render(snap status.Snapshot) string {
	line := StatusLine(snap)
	if snap.Sampled() && !snap.Record.Present() {
		line = warnStyle.Render(line)
	}

	heater := dimStyle.Render(control.HeaterOff.String())
	if snap.Heater == control.HeaterOn {
		heater = activeStyle.Render(control.HeaterOn.String())
	}

	decision := "-"
	if snap.Sampled() {
		decision = snap.Decision.String()
	}

	th := snap.Config.Settings.Thresholds
	c := snap.Counts

	rows := []string{
		titleStyle.Render("Heater Controller"),
		"",
		line,
		"",
		row("Heater", heater),
		row("Ready", lamp(snap.Output.Ready, readyStyle)),
		row("Active", lamp(snap.Output.Active, activeStyle)),
		row("Decision", decision),
		row("Band", fmt.Sprintf("%.1f .. %.1f", float64(th.Low), float64(th.High))),
		"",
		row("Cycles", fmt.Sprintf("%d", snap.Cycles)),
		row("Uptime", uptime(snap.Uptime())),
		row("Events", fmt.Sprintf("on %d  off %d  lost %d  restored %d",
			c.HeaterOn, c.HeaterOff, c.SensorLost, c.SensorRestored)),
	}

	return panelStyle.Render(strings.Join(rows, "\n"))
}

func uptime(d time.Duration) string {
	d = d.Truncate(time.Second)
	days := int(d.Hours()) / 24
	h := int(d.Hours()) % 24
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
	}
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
