// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package integralimg

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

// randomGrid fills a grid over r with integers from 1 to 9
func randomGrid(rng *rand.Rand, r Region) *Grid[int] {
	g, err := NewGrid[int](r)
	if err != nil {
		panic(err)
	}
	for i := range g.Values {
		g.Values[i] = rng.Intn(9) + 1
	}
	return g
}

// cells returns a copy of every Index in r, in scan order
func cells(r Region) []Index {
	g, err := NewGrid[struct{}](r)
	if err != nil {
		return nil
	}
	it, _ := g.Cursor(r)
	var idxs []Index
	for it.Next() {
		idxs = append(idxs, append(Index(nil), it.Index()...))
	}
	return idxs
}

// bruteSum sums every value of in within region that is less than or
// equal to c on every axis
func bruteSum(in *Grid[int], region Region, c Index, square bool) float64 {
	var sum float64
	for _, i := range cells(region) {
		le := true
		for d := range i {
			if i[d] > c[d] {
				le = false
				break
			}
		}
		if !le {
			continue
		}
		v := float64(in.ValueAt(i))
		if square {
			v *= v
		}
		sum += v
	}
	return sum
}

// bruteWindow collects the values of in within radius of c, cropped
// to region
func bruteWindow(in *Grid[int], region Region, c Index, radius Size) []float64 {
	box := Region{Index: make(Index, len(c)), Size: make(Size, len(c))}
	for d := range c {
		box.Index[d] = c[d] - radius[d]
		box.Size[d] = 2*radius[d] + 1
	}
	box = box.Crop(region)
	var vals []float64
	for _, i := range cells(box) {
		vals = append(vals, float64(in.ValueAt(i)))
	}
	return vals
}

func bruteMean(vals []float64) float64 {
	return stat.Mean(vals, nil)
}

// bruteSigma is the unbiased sample standard deviation
func bruteSigma(vals []float64) float64 {
	return stat.StdDev(vals, nil)
}

func near(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}
