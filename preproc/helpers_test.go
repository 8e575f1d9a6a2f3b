// Copyright 2019 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package preproc

import (
	"flag"
	"image"
	"image/color"
)

var slow = flag.Bool("slow", false, "include slow tests")

// page draws a light page with dark lines of "text" in the middle,
// and dark shadows down both edges
func page(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(230 - (x+y)%7)
			switch {
			case x < 3 || x >= w-3:
				v = 30
			case x >= w/4 && x < w*3/4 && y%6 < 2:
				v = 20
			}
			img.SetGray(x, y, color.Gray{v})
		}
	}
	return img
}

func imgsequal(img1 *image.Gray, img2 *image.Gray) bool {
	b := img1.Bounds()
	if !b.Eq(img2.Bounds()) {
		return false
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img1.GrayAt(x, y) != img2.GrayAt(x, y) {
				return false
			}
		}
	}
	return true
}
