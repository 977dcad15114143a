package report

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSectionUppercases(t *testing.T) {
	if got := Section("damping sweep"); !strings.Contains(got, "DAMPING SWEEP") {
		t.Fatalf("Section output %q missing heading text", got)
	}
}

func TestRowFormatsValue(t *testing.T) {
	got := Row("period", "%.3f s", 6.2832)
	if !strings.Contains(got, "period") || !strings.Contains(got, "6.283 s") {
		t.Fatalf("Row output %q missing label or value", got)
	}
}

func TestStatus(t *testing.T) {
	if got := Status(true); !strings.Contains(got, "ok") {
		t.Fatalf("Status(true) = %q", got)
	}
	if got := Status(false); !strings.Contains(got, "unstable") {
		t.Fatalf("Status(false) = %q", got)
	}
}

func TestChartIncludesCaption(t *testing.T) {
	data := make([]float64, 200)
	for i := range data {
		data[i] = math.Sin(float64(i) / 10)
	}
	got := Chart(data, "theta vs time")
	if !strings.Contains(got, "theta vs time") {
		t.Fatal("chart output missing caption")
	}
}

func TestChartShortSeries(t *testing.T) {
	if got := Chart([]float64{1}, "one"); got != "" {
		t.Fatalf("expected empty chart, got %q", got)
	}
}

func TestSparklineWidth(t *testing.T) {
	data := make([]float64, 64)
	for i := range data {
		data[i] = float64(i)
	}
	got := Sparkline(data, 16)
	if n := utf8.RuneCountInString(got); n != 16 {
		t.Fatalf("sparkline width = %d, want 16", n)
	}
	runes := []rune(got)
	if runes[0] != '▁' || runes[len(runes)-1] != '█' {
		t.Fatalf("sparkline %q does not rise from low to high", got)
	}
}

func TestSparklineFlatAndEmpty(t *testing.T) {
	if got := Sparkline([]float64{2, 2, 2, 2}, 4); utf8.RuneCountInString(got) != 4 {
		t.Fatalf("flat sparkline %q has wrong width", got)
	}
	if got := Sparkline(nil, 4); got != "────" {
		t.Fatalf("empty sparkline = %q", got)
	}
}

func traceLines(t *testing.T, out string) [][]rune {
	t.Helper()
	trimmed := strings.TrimRight(out, "\n")
	var rows [][]rune
	for _, line := range strings.Split(trimmed, "\n") {
		rows = append(rows, []rune(line))
	}
	return rows
}

func TestTraceDimensions(t *testing.T) {
	xs := []float64{0, 1, 2, 3}
	ys := []float64{0, 1, 2, 3}
	out := Trace(xs, ys, 10, 5)

	rows := traceLines(t, out)
	if len(rows) != 5 {
		t.Fatalf("trace has %d rows, want 5", len(rows))
	}
	for i, row := range rows {
		if len(row) != 10 {
			t.Fatalf("row %d has %d cells, want 10", i, len(row))
		}
	}
}

func TestTraceHitsCorners(t *testing.T) {
	xs := []float64{0, 1}
	ys := []float64{0, 1}
	rows := traceLines(t, Trace(xs, ys, 10, 5))

	// Increasing line runs bottom-left to top-right.
	if rows[len(rows)-1][0] == 0x2800 {
		t.Fatal("bottom-left cell is empty")
	}
	if rows[0][len(rows[0])-1] == 0x2800 {
		t.Fatal("top-right cell is empty")
	}
}

func TestTraceSkipsNonFinite(t *testing.T) {
	xs := []float64{0, 1, 2, 3, 4}
	ys := []float64{0, 1, math.NaN(), 3, 4}
	out := Trace(xs, ys, 10, 5)
	if out == "" {
		t.Fatal("trace with a NaN gap should still render")
	}
}

func TestTraceDegenerate(t *testing.T) {
	if got := Trace(nil, nil, 10, 5); got != "" {
		t.Fatalf("empty trace = %q", got)
	}
	if got := Trace([]float64{1}, []float64{1}, 10, 5); got != "" {
		t.Fatalf("single-point trace = %q", got)
	}
	if got := Trace([]float64{1, 2}, []float64{1, 2}, 0, 5); got != "" {
		t.Fatalf("zero-width trace = %q", got)
	}
}

func TestCanvasSetAndBounds(t *testing.T) {
	c := newCanvas(2, 2)
	c.set(0, 0)
	c.set(3, 7)
	c.set(-1, 0)
	c.set(0, 8) // below the surface, ignored

	if c.cells[0][0] != 0x2800|0x1 {
		t.Fatalf("cell (0,0) = %#x", c.cells[0][0])
	}
	if c.cells[1][1] != 0x2800|0x80 {
		t.Fatalf("cell (1,1) = %#x", c.cells[1][1])
	}
}
