package plots

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"

	"github.com/kswierk/physlab/internal/bfield"
)

// fieldGrid adapts a sampled plane section to the plotters: columns walk
// the first in-plane coordinate (y), rows the second (z).
type fieldGrid struct {
	g *bfield.Grid
}

func (f fieldGrid) Dims() (c, r int) { return f.g.N, f.g.N }
func (f fieldGrid) X(c int) float64  { return f.g.At(c, 0).At.Y }
func (f fieldGrid) Y(r int) float64  { return f.g.At(0, r).At.Z }

func (f fieldGrid) Vector(c, r int) plotter.XY {
	b := f.g.At(c, r).B
	return plotter.XY{X: b.Y, Y: b.Z}
}

func (f fieldGrid) Z(c, r int) float64 {
	return r3.Norm(f.g.At(c, r).B)
}

// Quiver draws the in-plane field directions over the sampled section.
func (r *Renderer) Quiver(name, title, xlabel, ylabel string, g *bfield.Grid) (string, error) {
	if g == nil || g.N < 2 {
		return "", fmt.Errorf("plots: quiver %s needs a sampled grid", name)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	style(p)

	p.Add(plotter.NewField(fieldGrid{g}))
	return r.save(p, name)
}

// Heatmap draws |B| over the sampled section.
func (r *Renderer) Heatmap(name, title, xlabel, ylabel string, g *bfield.Grid) (string, error) {
	if g == nil || g.N < 2 {
		return "", fmt.Errorf("plots: heatmap %s needs a sampled grid", name)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	style(p)

	p.Add(plotter.NewHeatMap(fieldGrid{g}, palette.Heat(32, 1)))
	return r.save(p, name)
}
