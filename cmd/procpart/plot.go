package main

import (
	"fmt"

	"github.com/soypat/procpart"
	"github.com/soypat/procpart/config"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const plotSamples = 64

// plotVolume plots the volume over the configured length range at a fixed
// diameter. Configured volume limits are drawn as horizontal lines.
func plotVolume(path string, cfg config.Config, diameter float64) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Octagon volume, diameter %.3f m", diameter)
	p.X.Label.Text = "length [m]"
	p.Y.Label.Text = "volume [m³]"

	lmin, lmax := cfg.Length.Min, cfg.Length.Max
	pts := make(plotter.XYs, plotSamples)
	for i := range pts {
		l := procpart.Mix(lmin, lmax, float64(i)/(plotSamples-1))
		pts[i].X = l
		pts[i].Y = procpart.Volume(diameter, l)
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)
	p.Legend.Add("volume", line)

	if cfg.Volume.Bounded() {
		for _, limit := range []float64{cfg.Volume.Min, cfg.Volume.Max} {
			bound, err := plotter.NewLine(plotter.XYs{{X: lmin, Y: limit}, {X: lmax, Y: limit}})
			if err != nil {
				return err
			}
			bound.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
			p.Add(bound)
		}
	}
	p.Add(plotter.NewGrid())
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
