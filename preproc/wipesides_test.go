// Copyright 2019 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package preproc

import (
	"fmt"
	"image"
	"image/color"
	"testing"
)

// binpage draws a binarized page: black edge shadows in the first
// and last 3 columns, and every fourth row black between x=15 and
// x=45
func binpage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 60, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 60; x++ {
			v := uint8(255)
			if x < 3 || x >= 57 || (x >= 15 && x < 45 && y%4 == 0) {
				v = 0
			}
			img.SetGray(x, y, color.Gray{v})
		}
	}
	return img
}

func TestWipeSides(t *testing.T) {
	cases := []struct {
		thresh   float64
		wsize    int
		minwidth int
		low      int
		high     int
	}{
		{0.06, 5, 10, 13, 46},
		{0.06, 5, 90, 0, 60},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("%0.2f_%d_%d", c.thresh, c.wsize, c.minwidth), func(t *testing.T) {
			orig := binpage()
			actual, err := Wipe(orig, c.wsize, c.thresh, c.minwidth)
			if err != nil {
				t.Fatalf("Wipe failed: %v", err)
			}
			b := orig.Bounds()
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					expected := orig.GrayAt(x, y).Y
					if x < c.low || x >= c.high {
						expected = 255
					}
					if got := actual.GrayAt(x, y).Y; got != expected {
						t.Fatalf("Pixel %d,%d is %d, expected %d", x, y, got, expected)
					}
				}
			}
		})
	}
}

func TestFindEdges(t *testing.T) {
	c, err := newColumns(binpage())
	if err != nil {
		t.Fatalf("newColumns failed: %v", err)
	}
	if p := c.proportion(30, 1); p != 0.25 {
		t.Errorf("Proportion of text column is %v, expected 0.25", p)
	}
	if p := c.proportion(0, 3); p != 1 {
		t.Errorf("Proportion of shadow is %v, expected 1", p)
	}
	low, high := c.findedges(5, 0.06)
	if low != 13 || high != 46 {
		t.Errorf("Found edges %d, %d, expected 13, 46", low, high)
	}
	if len(c.windowers) != 3 {
		t.Errorf("%d strip widths have windowers, expected one each for 1, 3 and 5", len(c.windowers))
	}
}
