package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"bytemomo/barracuda/internal/domain"
)

// Severity colors follow the usual security-tool palette.
var (
	colorCritical = lipgloss.Color("#FF0000")
	colorHigh     = lipgloss.Color("#FF6B6B")
	colorMedium   = lipgloss.Color("#FFD93D")
	colorLow      = lipgloss.Color("#6BCB77")
	colorInfo     = lipgloss.Color("#4D96FF")
	colorMuted    = lipgloss.Color("#6B7280")

	headerStyle = lipgloss.NewStyle().Bold(true)
	urlStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00D4AA")).Underline(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
)

func severityStyle(s domain.Severity) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch s {
	case domain.SeverityCritical:
		return base.Foreground(colorCritical)
	case domain.SeverityHigh:
		return base.Foreground(colorHigh)
	case domain.SeverityMedium:
		return base.Foreground(colorMedium)
	case domain.SeverityLow:
		return base.Foreground(colorLow)
	case domain.SeverityInfo:
		return base.Foreground(colorInfo)
	default:
		return base.Foreground(colorMuted)
	}
}

// display renders scan progress and the final summary. It doubles as
// the scanner's progress observer, so writes are serialized.
type display struct {
	mu    sync.Mutex
	w     io.Writer
	quiet bool
}

func newDisplay(w io.Writer, quiet bool) *display {
	return &display{w: w, quiet: quiet}
}

func (d *display) PluginStarted(name string) {
	if d.quiet {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.w, "%s %s\n", mutedStyle.Render("[run ]"), name)
}

func (d *display) PluginCompleted(name string, findings int) {
	if d.quiet {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.w, "%s %s: %d finding(s)\n", mutedStyle.Render("[done]"), name, findings)
}

func (d *display) PluginFailed(name string, err error) {
	if d.quiet {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.w, "%s %s: %v\n", severityStyle(domain.SeverityHigh).Render("[fail]"), name, err)
}

// Summary prints the sorted findings and the per-severity counts.
func (d *display) Summary(result *domain.ScanResult) {
	d.mu.Lock()
	defer d.mu.Unlock()

	result.SortBySeverity()

	fmt.Fprintln(d.w)
	fmt.Fprintln(d.w, headerStyle.Render("Scan results for ")+urlStyle.Render(result.Target))
	fmt.Fprintln(d.w, mutedStyle.Render(strings.Repeat("-", 48)))

	if result.Total() == 0 {
		fmt.Fprintln(d.w, "No vulnerabilities found.")
		return
	}

	for _, v := range result.Vulnerabilities {
		fmt.Fprintf(d.w, "%s %s\n", severityStyle(v.Severity).Render("["+string(v.Severity)+"]"), v.Title)
		fmt.Fprintf(d.w, "       %s\n", urlStyle.Render(v.URL))
		if v.Description != "" {
			fmt.Fprintf(d.w, "       %s\n", v.Description)
		}
	}

	fmt.Fprintln(d.w, mutedStyle.Render(strings.Repeat("-", 48)))
	breakdown := result.SeverityBreakdown()
	parts := make([]string, 0, len(breakdown))
	for _, sev := range []domain.Severity{
		domain.SeverityCritical,
		domain.SeverityHigh,
		domain.SeverityMedium,
		domain.SeverityLow,
		domain.SeverityInfo,
	} {
		parts = append(parts, severityStyle(sev).Render(fmt.Sprintf("%s: %d", sev, breakdown[sev])))
	}
	fmt.Fprintf(d.w, "Total: %d  %s\n", result.Total(), strings.Join(parts, "  "))
}
