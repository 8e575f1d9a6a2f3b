// Copyright 2019 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package preproc

import (
	"image"
	"image/color"

	"rescribe.xyz/boxstats/integralimg"
)

// columns answers questions about the ink in vertical strips of a
// binarized image, using its integral image.
type columns struct {
	integral *integralimg.Grid[float64]
	b        image.Rectangle
	// windowers by strip width
	windowers map[int]*integralimg.Windower
}

func newColumns(img *image.Gray) (columns, error) {
	g, err := integralimg.FromGray(img)
	if err != nil {
		return columns{}, err
	}
	integral, err := integralimg.Accumulate(g, g.Region(), nil)
	if err != nil {
		return columns{}, err
	}
	return columns{integral: integral, b: img.Bounds(), windowers: make(map[int]*integralimg.Windower)}, nil
}

// proportion returns the proportion of black pixels in the full
// height strip of width size centred on x
func (c columns) proportion(x int, size int) float64 {
	wr, ok := c.windowers[size]
	if !ok {
		var err error
		wr, err = integralimg.NewWindower(c.integral, integralimg.Size{size / 2, c.b.Dy()})
		if err != nil {
			return 1
		}
		c.windowers[size] = wr
	}
	w, err := wr.Window(integralimg.Index{x, c.b.Min.Y})
	if err != nil {
		return 1
	}
	return 1 - w.Proportion(255)
}

// findbestedge goes through every vertical line from x to x+w to
// find the one with the lowest proportion of black pixels.
func (c columns) findbestedge(x int, w int) int {
	if w == 1 {
		return x
	}

	bestx := x
	best := c.proportion(x, 1)
	right := min(x+w, c.b.Max.X)
	for ; x < right; x++ {
		prop := c.proportion(x, 1)
		if prop < best {
			best = prop
			bestx = x
		}
	}

	return bestx
}

// findedges finds the edges of the main content, by moving a window of wsize
// from the middle of the image to the left and right, stopping when it reaches
// a point at which there is a lower proportion of black pixels than thresh.
func (c columns) findedges(wsize int, thresh float64) (int, int) {
	mid := c.b.Min.X + c.b.Dx()/2
	lowedge, highedge := c.b.Min.X, c.b.Max.X

	for x := mid; x < c.b.Max.X-wsize/2; x++ {
		if c.proportion(x, wsize) <= thresh {
			highedge = c.findbestedge(x, wsize)
			break
		}
	}

	for x := mid; x > c.b.Min.X; x-- {
		if c.proportion(x, wsize) <= thresh {
			lowedge = c.findbestedge(x, wsize)
			break
		}
	}

	return lowedge, highedge
}

// wipesides fills the sections of image not within the boundaries
// of lowedge and highedge with white
func wipesides(img *image.Gray, lowedge int, highedge int) *image.Gray {
	b := img.Bounds()
	new := image.NewGray(b)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if x < lowedge || x >= highedge {
				new.SetGray(x, y, color.Gray{255})
			} else {
				new.SetGray(x, y, img.GrayAt(x, y))
			}
		}
	}

	return new
}

// Wipe fills the sections of a binarized image which fall outside
// the content area with white. If the content area found is narrower
// than minWidthPerc percent of the image width it is assumed to be
// wrong, and the image is returned unchanged.
func Wipe(img *image.Gray, wsize int, thresh float64, minWidthPerc int) (*image.Gray, error) {
	c, err := newColumns(img)
	if err != nil {
		return nil, err
	}
	lowedge, highedge := c.findedges(wsize, thresh)
	if highedge-lowedge < img.Bounds().Dx()*minWidthPerc/100 {
		return wipesides(img, img.Bounds().Min.X, img.Bounds().Max.X), nil
	}
	return wipesides(img, lowedge, highedge), nil
}
