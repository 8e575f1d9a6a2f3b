// Copyright 2019 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package preproc

import (
	"errors"
	"image"
	"math"

	"gonum.org/v1/gonum/stat"
)

func tofloats(i []int) []float64 {
	f := make([]float64, len(i))
	for n, v := range i {
		f[n] = float64(v)
	}
	return f
}

func mean(i []int) float64 {
	return stat.Mean(tofloats(i), nil)
}

// stddev is the sample standard deviation, matching the integral
// image version
func stddev(i []int) float64 {
	return stat.StdDev(tofloats(i), nil)
}

func meanstddev(i []int) (float64, float64) {
	m, dev := stat.MeanStdDev(tofloats(i), nil)
	if len(i) < 2 {
		dev = math.NaN()
	}
	return m, dev
}

// gets the pixel values surrounding a point in the image
func surrounding(img *image.Gray, x int, y int, size int) []int {
	b := img.Bounds()
	step := size / 2

	miny := max(y-step, b.Min.Y)
	minx := max(x-step, b.Min.X)
	maxy := min(y+step, b.Max.Y-1)
	maxx := min(x+step, b.Max.X-1)

	var s []int
	for yi := miny; yi <= maxy; yi++ {
		for xi := minx; xi <= maxx; xi++ {
			s = append(s, int(img.GrayAt(xi, yi).Y))
		}
	}
	return s
}

// BinToZeroInv uses a binarized image to set every pixel of the
// original which was binarized to white to white, and leaves the
// rest as they were.
func BinToZeroInv(bin *image.Gray, orig *image.RGBA) (*image.RGBA, error) {
	b := bin.Bounds()
	if !b.Eq(orig.Bounds()) {
		return orig, errors.New("bin and orig images need to be the same dimensions")
	}
	newimg := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if bin.GrayAt(x, y).Y == 255 {
				newimg.Set(x, y, bin.GrayAt(x, y))
			} else {
				newimg.Set(x, y, orig.At(x, y))
			}
		}
	}

	return newimg, nil
}
