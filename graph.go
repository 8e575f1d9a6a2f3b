// Copyright 2019 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package boxstats

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"rescribe.xyz/boxstats/integralimg"
)

const maxticks = 40
const yticknum = 20

var profileColors = []drawing.Color{
	chart.ColorBlue,
	chart.ColorRed,
	chart.ColorAlternateGreen,
	chart.ColorOrange,
	chart.ColorAlternateGray,
}

// Profile is a named series of statistic values along a scan line
type Profile struct {
	Name   string
	Values []float64
}

// RowProfile returns the values of row y of a 2-D grid, in x order
func RowProfile(g *integralimg.Grid[float64], y int) ([]float64, error) {
	r := g.Region()
	if r.Dim() != 2 {
		return nil, fmt.Errorf("%w: profile needs a 2-D grid, got %d-D", integralimg.ErrInvalidRegion, r.Dim())
	}
	line := integralimg.NewRegion(integralimg.Index{r.Index[0], y}, integralimg.Size{r.Size[0], 1})
	it, err := g.Cursor(line)
	if err != nil {
		return nil, err
	}
	vals := make([]float64, 0, r.Size[0])
	for it.Next() {
		vals = append(vals, it.Get())
	}
	return vals, nil
}

// series converts values to a chart series, skipping any NaN
func series(p Profile, c drawing.Color) chart.ContinuousSeries {
	var xvalues, yvalues []float64
	for i, v := range p.Values {
		if math.IsNaN(v) {
			continue
		}
		xvalues = append(xvalues, float64(i))
		yvalues = append(yvalues, v)
	}
	return chart.ContinuousSeries{
		Name:    p.Name,
		XValues: xvalues,
		YValues: yvalues,
		Style: chart.Style{
			StrokeColor: c,
		},
	}
}

// GraphProfile draws the profiles as lines on one chart, written to
// w as a PNG
func GraphProfile(profiles []Profile, title string, xaxis string, w io.Writer) error {
	var all []chart.Series
	var xmax float64
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for i, p := range profiles {
		s := series(p, profileColors[i%len(profileColors)])
		if len(s.XValues) < 2 {
			continue
		}
		for _, v := range s.YValues {
			ymin = math.Min(ymin, v)
			ymax = math.Max(ymax, v)
		}
		xmax = math.Max(xmax, s.XValues[len(s.XValues)-1])
		all = append(all, s)
	}
	if len(all) == 0 {
		return errors.New("Not enough valid values")
	}
	if ymin == ymax {
		ymin--
		ymax++
	}

	var xticks, yticks []chart.Tick
	tickevery := int(xmax) / maxticks
	if tickevery < 1 {
		tickevery = 1
	}
	for x := 0; x <= int(xmax); x += tickevery {
		xticks = append(xticks, chart.Tick{Value: float64(x), Label: fmt.Sprintf("%d", x)})
	}
	for i := 0; i <= yticknum; i++ {
		n := ymin + float64(i)*(ymax-ymin)/yticknum
		yticks = append(yticks, chart.Tick{Value: n, Label: fmt.Sprintf("%.1f", n)})
	}

	graph := chart.Chart{
		Title:  title,
		Width:  1920,
		Height: 1080,
		XAxis: chart.XAxis{
			Name: xaxis,
			Range: &chart.ContinuousRange{
				Min: 0.0,
				Max: xmax,
			},
			Ticks: xticks,
		},
		YAxis: chart.YAxis{
			Name: "Value",
			Range: &chart.ContinuousRange{
				Min: ymin,
				Max: ymax,
			},
			Ticks: yticks,
		},
		Series: all,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}
