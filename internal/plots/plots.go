// Package plots renders study figures with gonum/plot. Every saver
// returns the path it wrote, PNG by default or SVG when the renderer is
// switched over.
package plots

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

const (
	figWidth  = 8.0 * vg.Inch
	figHeight = 6.0 * vg.Inch
	figDPI    = 150
)

// Series is one labeled data set of a figure. Points switches the series
// from a connected line to discrete markers.
type Series struct {
	Label  string
	X, Y   []float64
	Points bool
}

// Renderer writes figures into one directory.
type Renderer struct {
	Dir string
	SVG bool
}

func New(dir string, svg bool) *Renderer {
	return &Renderer{Dir: dir, SVG: svg}
}

// Figure draws any mix of line and marker series with a shared legend.
func (r *Renderer) Figure(name, title, xlabel, ylabel string, series ...Series) (string, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("plots: figure %s has no series", name)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	style(p)

	for i, s := range series {
		if len(s.X) != len(s.Y) || len(s.X) == 0 {
			return "", fmt.Errorf("plots: series %q of %s has %d/%d samples",
				s.Label, name, len(s.X), len(s.Y))
		}
		pts := make(plotter.XYs, len(s.X))
		for j := range s.X {
			pts[j].X = s.X[j]
			pts[j].Y = s.Y[j]
		}

		if s.Points {
			sc, err := plotter.NewScatter(pts)
			if err != nil {
				return "", err
			}
			sc.GlyphStyle.Shape = plotutil.Shape(i)
			sc.GlyphStyle.Color = plotutil.Color(i)
			sc.GlyphStyle.Radius = vg.Points(2)
			p.Add(sc)
			if s.Label != "" {
				p.Legend.Add(s.Label, sc)
			}
			continue
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return "", err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = plotutil.Color(i)
		p.Add(line)
		if s.Label != "" {
			p.Legend.Add(s.Label, line)
		}
	}
	p.Legend.Top = true

	return r.save(p, name)
}

func style(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	p.X.Tick.Label.Font.Size = vg.Points(10)
	p.Y.Tick.Label.Font.Size = vg.Points(10)
	p.Add(plotter.NewGrid())
}

func (r *Renderer) save(p *plot.Plot, name string) (string, error) {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", fmt.Errorf("plots: cannot create %s: %w", r.Dir, err)
	}
	if r.SVG {
		return r.saveSVG(p, name)
	}
	return r.savePNG(p, name)
}

func (r *Renderer) savePNG(p *plot.Plot, name string) (string, error) {
	c := vgimg.NewWith(
		vgimg.UseWH(figWidth, figHeight),
		vgimg.UseDPI(figDPI),
	)
	p.Draw(draw.New(c))

	path := filepath.Join(r.Dir, name+".png")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("plots: cannot create png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	defer bw.Flush()

	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(bw); err != nil {
		return "", fmt.Errorf("plots: cannot write png: %w", err)
	}
	return path, nil
}

func (r *Renderer) saveSVG(p *plot.Plot, name string) (string, error) {
	c := vgsvg.New(figWidth, figHeight)
	p.Draw(draw.New(c))

	path := filepath.Join(r.Dir, name+".svg")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("plots: cannot create svg: %w", err)
	}
	defer f.Close()

	if _, err := c.WriteTo(f); err != nil {
		return "", fmt.Errorf("plots: cannot write svg: %w", err)
	}
	return path, nil
}
