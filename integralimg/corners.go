// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package integralimg

// Corner is a corner of the unit hypercube, with the sign it takes
// in an inclusion-exclusion sum.
type Corner struct {
	Offset Offset
	Weight int
}

// Corners returns the 2^dim corners of the unit hypercube in scan
// order, axis 0 fastest. Every component of each Offset is -1 or +1,
// and Weight is the product of the components.
func Corners(dim int) []Corner {
	if dim <= 0 {
		return nil
	}
	n := 1 << dim
	corners := make([]Corner, 0, n)
	for bits := 0; bits < n; bits++ {
		c := Corner{Offset: make(Offset, dim), Weight: 1}
		for d := 0; d < dim; d++ {
			c.Offset[d] = -1
			if bits&(1<<d) != 0 {
				c.Offset[d] = 1
			}
			c.Weight *= c.Offset[d]
		}
		corners = append(corners, c)
	}
	return corners
}

// realCorners scales unit corners to a box of the given radius. The
// leading (+1) corner sits on the last cell of the box, and the
// trailing (-1) corner on the cell before the first, as an integral
// image query subtracts the area before the box rather than
// overlapping it.
func realCorners(corners []Corner, radius Size) []Offset {
	offsets := make([]Offset, len(corners))
	for k, c := range corners {
		o := make(Offset, len(c.Offset))
		for d, v := range c.Offset {
			if v > 0 {
				o[d] = radius[d]
			} else {
				o[d] = -(radius[d] + 1)
			}
		}
		offsets[k] = o
	}
	return offsets
}
