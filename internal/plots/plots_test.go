package plots

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kswierk/physlab/internal/bfield"
	"github.com/kswierk/physlab/internal/geom"
)

func sine(n int) Series {
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i) * 0.1
		ys[i] = math.Sin(xs[i])
	}
	return Series{Label: "sin", X: xs, Y: ys}
}

func mustStat(t *testing.T, path string) os.FileInfo {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	return info
}

func TestFigureWritesPNG(t *testing.T) {
	r := New(t.TempDir(), false)

	path, err := r.Figure("wave", "Wave", "t / s", "θ / rad", sine(100))
	if err != nil {
		t.Fatalf("Figure: %v", err)
	}
	if filepath.Ext(path) != ".png" {
		t.Fatalf("expected png path, got %s", path)
	}
	if info := mustStat(t, path); info.Size() == 0 {
		t.Fatal("figure file is empty")
	}
}

func TestFigureWritesSVG(t *testing.T) {
	r := New(t.TempDir(), true)

	path, err := r.Figure("wave", "Wave", "t / s", "θ / rad", sine(100))
	if err != nil {
		t.Fatalf("Figure: %v", err)
	}
	if filepath.Ext(path) != ".svg" {
		t.Fatalf("expected svg path, got %s", path)
	}
	if info := mustStat(t, path); info.Size() == 0 {
		t.Fatal("figure file is empty")
	}
}

func TestFigureScatterSeries(t *testing.T) {
	r := New(t.TempDir(), false)

	s := sine(40)
	s.Points = true
	path, err := r.Figure("dots", "Dots", "x", "y", s)
	if err != nil {
		t.Fatalf("Figure: %v", err)
	}
	mustStat(t, path)
}

func TestFigureCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "figures")
	r := New(dir, false)

	if _, err := r.Figure("wave", "Wave", "x", "y", sine(10)); err != nil {
		t.Fatalf("Figure: %v", err)
	}
	mustStat(t, filepath.Join(dir, "wave.png"))
}

func TestFigureRejectsNoSeries(t *testing.T) {
	r := New(t.TempDir(), false)

	if _, err := r.Figure("empty", "Empty", "x", "y"); err == nil {
		t.Fatal("expected error for figure without series")
	}
}

func TestFigureRejectsLengthMismatch(t *testing.T) {
	r := New(t.TempDir(), false)

	bad := Series{X: []float64{1, 2, 3}, Y: []float64{1, 2}}
	if _, err := r.Figure("bad", "Bad", "x", "y", bad); err == nil {
		t.Fatal("expected error for mismatched series")
	}
}

func planeGrid(t *testing.T) *bfield.Grid {
	t.Helper()
	coil, err := geom.NewCoil(1, 1, r3.Vec{}, 32)
	if err != nil {
		t.Fatalf("NewCoil: %v", err)
	}
	return bfield.SampleGrid(coil.Segments(), -2, 2, 8)
}

func TestQuiverWritesFile(t *testing.T) {
	r := New(t.TempDir(), false)

	path, err := r.Quiver("plane", "Field directions", "y / m", "z / m", planeGrid(t))
	if err != nil {
		t.Fatalf("Quiver: %v", err)
	}
	if info := mustStat(t, path); info.Size() == 0 {
		t.Fatal("quiver file is empty")
	}
}

func TestHeatmapWritesFile(t *testing.T) {
	r := New(t.TempDir(), false)

	path, err := r.Heatmap("mag", "Field magnitude", "y / m", "z / m", planeGrid(t))
	if err != nil {
		t.Fatalf("Heatmap: %v", err)
	}
	if info := mustStat(t, path); info.Size() == 0 {
		t.Fatal("heatmap file is empty")
	}
}

func TestQuiverRejectsNilGrid(t *testing.T) {
	r := New(t.TempDir(), false)

	if _, err := r.Quiver("plane", "Field", "y", "z", nil); err == nil {
		t.Fatal("expected error for nil grid")
	}
}

func TestFieldGridLayout(t *testing.T) {
	g := planeGrid(t)
	f := fieldGrid{g}

	c, r := f.Dims()
	if c != 8 || r != 8 {
		t.Fatalf("Dims() = (%d, %d), want (8, 8)", c, r)
	}
	if got := f.X(0); got != -2 {
		t.Fatalf("X(0) = %v, want -2", got)
	}
	if got := f.Y(7); got != 2 {
		t.Fatalf("Y(7) = %v, want 2", got)
	}

	v := f.Vector(3, 4)
	b := g.At(3, 4).B
	if v.X != b.Y || v.Y != b.Z {
		t.Fatalf("Vector(3,4) = %+v, want in-plane components of %+v", v, b)
	}
	if got, want := f.Z(3, 4), r3.Norm(b); got != want {
		t.Fatalf("Z(3,4) = %v, want %v", got, want)
	}
}
