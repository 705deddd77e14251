// Copyright 2024 The go-horo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xcnv

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/plotter"

	"github.com/go-horo/qtg/qt2100"
)

// measuresPerDay is the fixed cadence of the accumulating "A" print
// modes: 25 tick and 25 tock values per day.
const measuresPerDay = 50

// Graph colors, timegrapher style.
var (
	colValid = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff} // blue
	colError = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff} // red
)

// ErrModeC reports that print mode C has no chart rendering and
// should be routed to CSV export instead.
var ErrModeC = errors.New("xcnv: print mode C has no chart rendering, use CSV export")

// Plot builds a chart for res, according to its print mode: a
// timegrapher-style cumulated-rate plot for the mechanical "A" modes,
// an instantaneous-rate plot for the quartz "B 1S" mode.
//
// cutoff, in days, wraps the time axis of "A" mode charts at regular
// intervals instead of letting them grow to the right; a value of
// zero or less disables the wrapping. It is ignored in mode "B 1S".
func Plot(res *qt2100.Result, cutoff float64) (*hplot.Plot, error) {
	switch res.Print {
	case qt2100.PrintA10s, qt2100.PrintA2m:
		return plotModeA(res, cutoff)
	case qt2100.PrintB1s:
		return plotModeB(res)
	default:
		return nil, ErrModeC
	}
}

func plotModeB(res *qt2100.Result) (*hplot.Plot, error) {
	rates := validRates(res.Values, 0, 1)
	if len(rates) == 0 {
		return nil, fmt.Errorf("xcnv: no valid values to plot")
	}
	mean := stat.Mean(rates, nil)

	var (
		line plotter.XYs
		good plotter.XYs
		bad  plotter.XYs
	)
	for i, v := range res.Values {
		y := v.Rate
		if !v.Valid {
			// Substitute the mean of the valid values, the most
			// neutral stand-in for an erroneous measure.
			y = mean
		}
		pt := plotter.XY{X: float64(i), Y: y}
		line = append(line, pt)
		switch {
		case v.Valid:
			good = append(good, pt)
		default:
			bad = append(bad, pt)
		}
	}

	p := hplot.New()
	p.Title.Text = fmt.Sprintf("Mode %v - %v", res.Print, res.Rate)
	p.Y.Label.Text = "Daily Rate (Sec/Day)"
	p.Add(plotter.NewGrid())

	ln, err := plotter.NewLine(line)
	if err != nil {
		return nil, fmt.Errorf("xcnv: could not build line plotter: %w", err)
	}
	ln.Color = colValid
	p.Add(ln)

	addScatter(p, good, colValid)
	addScatter(p, bad, colError)

	// The rate axis spans at least [-1, +1] sec/day.
	p.Y.Min = math.Min(p.Y.Min, -1)
	p.Y.Max = math.Max(p.Y.Max, 1)
	return p, nil
}

func plotModeA(res *qt2100.Result, cutoff float64) (*hplot.Plot, error) {
	ticks := validRates(res.Values, 0, 2)
	tocks := validRates(res.Values, 1, 2)
	if len(ticks) == 0 || len(tocks) == 0 {
		return nil, fmt.Errorf("xcnv: not enough valid tick/tock values to plot")
	}
	var (
		tickMean = stat.Mean(ticks, nil)
		tockMean = stat.Mean(tocks, nil)
	)

	// Erroneous measures are replaced by the mean of their own
	// half-series, the most neutral value for the cumulated sum.
	rates := make([]float64, len(res.Values))
	for i, v := range res.Values {
		switch {
		case v.Valid:
			rates[i] = v.Rate
		case i%2 == 0:
			rates[i] = tickMean
		default:
			rates[i] = tockMean
		}
	}
	cum := floats.CumSum(make([]float64, len(rates)), rates)

	wrap := 0
	if cutoff > 0 {
		wrap = int(cutoff * measuresPerDay)
	}
	var good, bad plotter.XYs
	for i, y := range cum {
		x := float64(i)
		if wrap > 0 {
			x = float64(i % wrap)
		}
		pt := plotter.XY{X: x / measuresPerDay, Y: y}
		switch {
		case res.Values[i].Valid:
			good = append(good, pt)
		default:
			bad = append(bad, pt)
		}
	}

	p := hplot.New()
	p.Title.Text = fmt.Sprintf("Mode %v - %v", res.Print, res.Rate)
	p.X.Label.Text = "Days"
	p.Y.Label.Text = "Cumulated seconds"
	p.Add(plotter.NewGrid())
	addScatter(p, good, colValid)
	addScatter(p, bad, colError)

	// The time axis spans at least one day.
	p.X.Min = 0
	p.X.Max = math.Max(p.X.Max, 1)
	return p, nil
}

// BeatError returns the beat error of an accumulating "A" mode
// dataset: the sum of the means of the tick and tock half-series.
func BeatError(res *qt2100.Result) (float64, error) {
	switch res.Print {
	case qt2100.PrintA10s, qt2100.PrintA2m:
	default:
		return 0, fmt.Errorf("xcnv: beat error is not defined for print mode %v", res.Print)
	}
	ticks := validRates(res.Values, 0, 2)
	tocks := validRates(res.Values, 1, 2)
	if len(ticks) == 0 || len(tocks) == 0 {
		return 0, fmt.Errorf("xcnv: not enough valid tick/tock values")
	}
	return stat.Mean(ticks, nil) + stat.Mean(tocks, nil), nil
}

func addScatter(p *hplot.Plot, pts plotter.XYs, col color.Color) {
	if len(pts) == 0 {
		return
	}
	s := hplot.NewS2D(pts)
	s.GlyphStyle.Color = col
	p.Add(s)
}

func validRates(vs []qt2100.Value, off, step int) []float64 {
	var xs []float64
	for i := off; i < len(vs); i += step {
		if vs[i].Valid {
			xs = append(xs, vs[i].Rate)
		}
	}
	return xs
}
