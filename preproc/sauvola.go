// Copyright 2019 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package preproc

import (
	"image"
	"image/color"
	"math"

	"rescribe.xyz/boxstats/integralimg"
)

// threshold is Sauvola's threshold for a pixel, given the mean and
// standard deviation of the window around it. A window of a single
// pixel has no deviation.
func threshold(m, dev, ksize float64) uint8 {
	if math.IsNaN(dev) {
		dev = 0
	}
	t := m * (1 + ksize*((dev/128)-1))
	return uint8(math.Max(0, math.Min(255, t)))
}

// Implements Sauvola's algorithm for text binarization, see paper
// "Adaptive document image binarization" (2000)
//
// This is the brute force version, which collects every window
// separately, so is very slow for large windows.
func Sauvola(img *image.Gray, ksize float64, windowsize int) *image.Gray {
	b := img.Bounds()
	new := image.NewGray(b)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			window := surrounding(img, x, y, windowsize)
			m, dev := meanstddev(window)
			if img.GrayAt(x, y).Y < threshold(m, dev, ksize) {
				new.SetGray(x, y, color.Gray{0})
			} else {
				new.SetGray(x, y, color.Gray{255})
			}
		}
	}

	return new
}

// Implements Sauvola's algorithm using Integral Images, see paper
// "Efficient Implementation of Local Adaptive Thresholding Techniques Using Integral Images"
// and
// https://stackoverflow.com/questions/13110733/computing-image-integral
func IntegralSauvola(img *image.Gray, ksize float64, windowsize int) (*image.Gray, error) {
	integrals, err := Integrals(img)
	if err != nil {
		return nil, err
	}
	return PreCalcedSauvola(integrals, img, ksize, windowsize)
}

// Integrals builds the integral image of the pixels of img and
// their squares, for use with PreCalcedSauvola
func Integrals(img *image.Gray) (*integralimg.Grid[integralimg.Pair], error) {
	g, err := integralimg.FromGray(img)
	if err != nil {
		return nil, err
	}
	return integralimg.AccumulateSquares(g, g.Region(), nil)
}

// PreCalcedSauvola Implements Sauvola's algorithm using precalculated Integral Images
func PreCalcedSauvola(integrals *integralimg.Grid[integralimg.Pair], img *image.Gray, ksize float64, windowsize int) (*image.Gray, error) {
	b := img.Bounds()
	new := image.NewGray(b)

	r := integrals.Region()
	radius := integralimg.UniformRadius(2, windowsize/2)
	means, devs, err := integralimg.MeanSigma(integrals, radius, r, r, nil)
	if err != nil {
		return nil, err
	}

	idx := make(integralimg.Index, 2)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			idx[0], idx[1] = x, y
			m, err := means.At(idx)
			if err != nil {
				return nil, err
			}
			dev := devs.ValueAt(idx)
			if img.GrayAt(x, y).Y < threshold(m, dev, ksize) {
				new.SetGray(x, y, color.Gray{0})
			} else {
				new.SetGray(x, y, color.Gray{255})
			}
		}
	}

	return new, nil
}
