// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package integralimg

import (
	"fmt"
	"math"
)

// Window is the box around a cell of an integral image, cropped to
// the input region, summarised by the sum of its values (and their
// squares, for a Pair integral) and its number of cells.
type Window struct {
	Sum, SumSq float64
	Count      int
}

// Mean returns the average value of the cells in the Window
func (w Window) Mean() float64 {
	return meanOf(w.Sum, w.SumSq, float64(w.Count))
}

// Sigma returns the sample standard deviation of the cells in the
// Window. It is only meaningful for windows from a Pair integral.
func (w Window) Sigma() float64 {
	return sigmaOf(w.Sum, w.SumSq, float64(w.Count))
}

// Proportion returns the mean of the Window as a fraction of full
func (w Window) Proportion(full float64) float64 {
	return w.Mean() / full
}

// windower sums the box around a single cell, cropping it to the
// input region.
type windower[A any] struct {
	acc     *Grid[A]
	read    func(A) (float64, float64)
	radius  Size
	input   Region
	corners []Corner
	offsets []Offset
	weights []float64
	corner  Index
}

func newWindower[A any](acc *Grid[A], read func(A) (float64, float64), radius Size, input Region) *windower[A] {
	corners := Corners(acc.Dim())
	w := &windower[A]{
		acc:     acc,
		read:    read,
		radius:  radius,
		input:   input,
		corners: corners,
		offsets: realCorners(corners, radius),
		weights: make([]float64, len(corners)),
		corner:  make(Index, acc.Dim()),
	}
	for k, c := range corners {
		w.weights[k] = float64(c.Weight)
	}
	return w
}

// window sums the box around c. For each corner, a leading
// component past the end of the input region is pulled back to its
// last cell, which covers exactly the part of the box that exists.
// A trailing component before the start of the input region means
// the corner subtracts nothing, so the whole corner is skipped. If
// the accumulator extends before the input region the trailing
// component instead stops on the cell just before it, whose sums
// lie outside the box.
func (w *windower[A]) window(c Index) (Window, error) {
	var win Window
	win.Count = 1
	for d := range c {
		lo := max(c[d]-w.radius[d], w.input.Index[d])
		hi := min(c[d]+w.radius[d], w.input.Upper(d))
		win.Count *= max(hi-lo+1, 0)
	}

	accRegion := w.acc.Region()
	for k, unit := range w.corners {
		include := true
		for d, v := range unit.Offset {
			pos := c[d] + w.offsets[k][d]
			switch {
			case v > 0:
				pos = min(pos, w.input.Upper(d))
			case pos < w.input.Index[d]:
				pos = w.input.Index[d] - 1
				if pos < accRegion.Index[d] {
					include = false
				}
			}
			if !include {
				break
			}
			w.corner[d] = pos
		}
		if !include {
			continue
		}
		v, err := w.acc.At(w.corner)
		if err != nil {
			return win, err
		}
		s, q := w.read(v)
		win.Sum += w.weights[k] * s
		win.SumSq += w.weights[k] * q
	}
	return win, nil
}

// Windower answers repeated Window queries of one radius on an
// integral image, keeping the corner offsets between calls. It is not
// safe for concurrent use.
type Windower struct {
	w *windower[float64]
}

// NewWindower returns a Windower for boxes of radius in acc, cropped
// to the region acc covers
func NewWindower(acc *Grid[float64], radius Size) (*Windower, error) {
	r := acc.Region()
	err := checkQuery(r, radius, r, r)
	if err != nil {
		return nil, err
	}
	return &Windower{w: newWindower(acc, readSum, radius, r)}, nil
}

// Window returns the Window around c
func (w *Windower) Window(c Index) (Window, error) {
	r := w.w.acc.Region()
	if !r.Contains(c) {
		return Window{}, fmt.Errorf("window centre %v outside %v: %w", c, r, ErrInvalidRegion)
	}
	return w.w.window(c)
}

// GetWindow returns the Window of radius around c in an integral
// image, cropped to the region the integral image covers.
func GetWindow(acc *Grid[float64], c Index, radius Size) (Window, error) {
	w, err := NewWindower(acc, radius)
	if err != nil {
		return Window{}, err
	}
	return w.Window(c)
}

// GetSqWindow returns the Window of radius around c in an integral
// image of values and squares.
func GetSqWindow(acc *Grid[Pair], c Index, radius Size) (Window, error) {
	err := checkWindow(acc.Region(), c, radius)
	if err != nil {
		return Window{}, err
	}
	return newWindower(acc, readPair, radius, acc.Region()).window(c)
}

// MeanWindow calculates the mean value of the box of radius around c
func MeanWindow(acc *Grid[float64], c Index, radius Size) (float64, error) {
	w, err := GetWindow(acc, c, radius)
	if err != nil {
		return math.NaN(), err
	}
	return w.Mean(), nil
}

// MeanStdDevWindow calculates the mean and sample standard deviation
// of the box of radius around c
func MeanStdDevWindow(acc *Grid[Pair], c Index, radius Size) (float64, float64, error) {
	w, err := GetSqWindow(acc, c, radius)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	return w.Mean(), w.Sigma(), nil
}

func checkWindow(acc Region, c Index, radius Size) error {
	out := Region{Index: c, Size: make(Size, len(c))}
	for d := range out.Size {
		out.Size[d] = 1
	}
	return checkQuery(acc, radius, acc, out)
}
