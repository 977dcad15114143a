// Package report renders terminal quick-looks for study output: styled
// summary rows, asciigraph traces, and braille-canvas portraits. It is
// presentation only; callers do all computation first.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

var (
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(18)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	graphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

// Section renders a study heading.
func Section(title string) string {
	return sectionStyle.Render(strings.ToUpper(title))
}

// Row renders one aligned "label value" line.
func Row(label, format string, args ...any) string {
	return labelStyle.Render(label) + valueStyle.Render(fmt.Sprintf(format, args...))
}

// Status marks an estimate as trustworthy or not.
func Status(ok bool) string {
	if ok {
		return okStyle.Render("ok")
	}
	return warnStyle.Render("unstable")
}

// Chart renders a full-width trace of data. Series shorter than two
// samples render as nothing.
func Chart(data []float64, caption string) string {
	if len(data) < 2 {
		return ""
	}
	g := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	return graphStyle.Render(g)
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Sparkline compresses data into a one-line bar trace of the given
// width, for per-run lines in batch summaries.
func Sparkline(data []float64, width int) string {
	if width < 1 {
		return ""
	}
	if len(data) == 0 {
		return strings.Repeat("─", width)
	}

	lo, hi := data[0], data[0]
	for _, v := range data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	step := len(data) / width
	if step < 1 {
		step = 1
	}
	var b strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		norm := (data[i*step] - lo) / span
		idx := int(norm * float64(len(sparkRunes)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkRunes) {
			idx = len(sparkRunes) - 1
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}
