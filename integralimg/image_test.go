// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package integralimg

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func grayImg(w, h int, f func(x, y int) uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: f(x, y)})
		}
	}
	return img
}

func TestFromGray(t *testing.T) {
	img := grayImg(4, 3, func(x, y int) uint8 { return uint8(x + 10*y) })
	sub := img.SubImage(image.Rect(1, 1, 4, 3)).(*image.Gray)

	g, err := FromGray(sub)
	if err != nil {
		t.Fatalf("FromGray failed: %v", err)
	}
	if !g.Region().Equal(NewRegion(Index{1, 1}, Size{3, 2})) {
		t.Errorf("Grid region is %v", g.Region())
	}
	for y := 1; y < 3; y++ {
		for x := 1; x < 4; x++ {
			if v := g.ValueAt(Index{x, y}); v != sub.GrayAt(x, y).Y {
				t.Errorf("Grid at %d,%d is %d, expected %d", x, y, v, sub.GrayAt(x, y).Y)
			}
		}
	}
}

func TestToGray(t *testing.T) {
	g, _ := FromSlice(NewRegion(Index{0, 0}, Size{3, 2}), []float64{
		-4, 0.4, 12.5,
		254.6, 300, math.NaN(),
	})
	img, err := ToGray(g)
	if err != nil {
		t.Fatalf("ToGray failed: %v", err)
	}
	expected := []uint8{0, 0, 13, 255, 255, 0}
	for i, v := range expected {
		x, y := i%3, i/3
		if got := img.GrayAt(x, y).Y; got != v {
			t.Errorf("Pixel %d,%d is %d, expected %d", x, y, got, v)
		}
	}

	one, _ := NewGrid[float64](NewRegion(Index{0}, Size{3}))
	if _, err := ToGray(one); err == nil {
		t.Errorf("ToGray of a 1 dimensional grid succeeded")
	}
}

func TestScaled(t *testing.T) {
	cases := []struct {
		name     string
		values   []float64
		expected []float64
	}{
		{"volume", []float64{0, 5, 10, math.NaN(), 2, 20}, []float64{0, 63.75, 127.5, math.NaN(), 25.5, 255}},
		{"inf", []float64{math.Inf(1), 1, 2, 4, 0, 0}, []float64{math.Inf(1), 63.75, 127.5, 255, 0, 0}},
		{"nonpositive", []float64{0, -1, 0, -3, 0, 0}, []float64{0, -1, 0, -3, 0, 0}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g, err := FromSlice(NewRegion(Index{0, 0, 0}, Size{3, 1, 2}), append([]float64(nil), c.values...))
			if err != nil {
				t.Fatalf("Could not create grid: %v", err)
			}
			scaled, err := Scaled(g)
			if err != nil {
				t.Fatalf("Scaled failed: %v", err)
			}
			for i, v := range c.expected {
				got := scaled.Values[i]
				if got != v && !(math.IsNaN(got) && math.IsNaN(v)) {
					t.Errorf("Value %d is %v, expected %v", i, got, v)
				}
				orig := g.Values[i]
				if orig != c.values[i] && !(math.IsNaN(orig) && math.IsNaN(c.values[i])) {
					t.Errorf("Value %d of the input changed to %v", i, orig)
				}
			}
		})
	}
}

func TestStack(t *testing.T) {
	frames := []*image.Gray{
		grayImg(3, 3, func(x, y int) uint8 { return 10 }),
		grayImg(3, 3, func(x, y int) uint8 { return 20 }),
		grayImg(3, 3, func(x, y int) uint8 { return 60 }),
	}
	vol, err := Stack(frames)
	if err != nil {
		t.Fatalf("Stack failed: %v", err)
	}
	mean, err := BoxMean(vol, Size{0, 0, 1}, nil)
	if err != nil {
		t.Fatalf("BoxMean failed: %v", err)
	}
	for z, expected := range []float64{15, 30, 40} {
		plane, err := SliceZ(mean, z)
		if err != nil {
			t.Fatalf("SliceZ failed: %v", err)
		}
		for _, v := range plane.Values {
			if !near(v, expected) {
				t.Errorf("Frame %d mean is %v, expected %v", z, v, expected)
			}
		}
	}

	frames = append(frames, grayImg(2, 3, func(x, y int) uint8 { return 0 }))
	if _, err := Stack(frames); err == nil {
		t.Errorf("Stack of frames with different bounds succeeded")
	}
}
