// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package integralimg

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// FromGray returns a 2 dimensional grid of the pixels of img, with x
// as axis 0 and y as axis 1. The pixels are copied.
func FromGray(img *image.Gray) (*Grid[uint8], error) {
	b := img.Bounds()
	g, err := NewGrid[uint8](Region{Index: Index{b.Min.X, b.Min.Y}, Size: Size{b.Dx(), b.Dy()}})
	if err != nil {
		return nil, err
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		copy(g.Values[(y-b.Min.Y)*g.Strides[1]:], row)
	}
	return g, nil
}

// ToGray renders a 2 dimensional grid as a gray image, rounding each
// value and clamping it to 0-255. Non-finite values become 0.
func ToGray(g *Grid[float64]) (*image.Gray, error) {
	r := g.Region()
	if r.Dim() != 2 {
		return nil, fmt.Errorf("cannot make an image from %d dimensions: %w", r.Dim(), ErrInvalidRegion)
	}
	img := image.NewGray(image.Rect(r.Index[0], r.Index[1], r.Index[0]+r.Size[0], r.Index[1]+r.Size[1]))
	it, err := g.Cursor(r)
	if err != nil {
		return nil, err
	}
	for it.Next() {
		i := it.Index()
		img.SetGray(i[0], i[1], color.Gray{Y: clamp8(it.Get())})
	}
	return img, nil
}

// Scaled returns a copy of g with every value scaled so that the
// largest finite value becomes 255. If there is no positive finite
// value the copy is unscaled.
func Scaled(g *Grid[float64]) (*Grid[float64], error) {
	var top float64
	for _, v := range g.Values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) && v > top {
			top = v
		}
	}
	scaled, err := NewGrid[float64](g.Region())
	if err != nil {
		return nil, err
	}
	for i, v := range g.Values {
		if top == 0 {
			scaled.Values[i] = v
			continue
		}
		scaled.Values[i] = v * 255 / top
	}
	return scaled, nil
}

// ToGrayScaled is like ToGray, but first scales every value so that
// the largest finite value maps to 255.
func ToGrayScaled(g *Grid[float64]) (*image.Gray, error) {
	scaled, err := Scaled(g)
	if err != nil {
		return nil, err
	}
	return ToGray(scaled)
}

// SliceZ returns the 2 dimensional plane of a 3 dimensional grid at
// z, which must be inside the grid.
func SliceZ(g *Grid[float64], z int) (*Grid[float64], error) {
	r := g.Region()
	if r.Dim() != 3 {
		return nil, fmt.Errorf("cannot slice %d dimensions: %w", r.Dim(), ErrInvalidRegion)
	}
	plane := Region{Index: Index{r.Index[0], r.Index[1], z}, Size: Size{r.Size[0], r.Size[1], 1}}
	it, err := g.Cursor(plane)
	if err != nil {
		return nil, err
	}
	s, err := NewGrid[float64](Region{Index: Index{r.Index[0], r.Index[1]}, Size: Size{r.Size[0], r.Size[1]}})
	if err != nil {
		return nil, err
	}
	i := 0
	for it.Next() {
		s.Values[i] = it.Get()
		i++
	}
	return s, nil
}

// Stack returns a 3 dimensional grid of the frames, which must all
// have the same bounds, with the frame number as axis 2.
func Stack(frames []*image.Gray) (*Grid[uint8], error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames to stack: %w", ErrInvalidRegion)
	}
	b := frames[0].Bounds()
	g, err := NewGrid[uint8](Region{Index: Index{b.Min.X, b.Min.Y, 0}, Size: Size{b.Dx(), b.Dy(), len(frames)}})
	if err != nil {
		return nil, err
	}
	for z, f := range frames {
		if !f.Bounds().Eq(b) {
			return nil, fmt.Errorf("frame %d bounds %v differ from %v: %w", z, f.Bounds(), b, ErrInvalidRegion)
		}
		plane, err := FromGray(f)
		if err != nil {
			return nil, err
		}
		copy(g.Values[z*g.Strides[2]:], plane.Values)
	}
	return g, nil
}

func clamp8(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(math.Round(v))
}
