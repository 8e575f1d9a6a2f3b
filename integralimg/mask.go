// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package integralimg

// NeighborMask returns the offsets of the neighbours of a cell that
// are visited before it in a forward scan.
//
// If fullyConnected is false only the dim face neighbours are
// returned, each with a single axis set to -1. Otherwise every offset
// of the unit neighbourhood with no positive component is returned,
// except the centre, giving 2^dim-1 offsets.
func NeighborMask(dim int, fullyConnected bool) []Offset {
	if dim <= 0 {
		return nil
	}
	if !fullyConnected {
		mask := make([]Offset, 0, dim)
		for d := 0; d < dim; d++ {
			o := make(Offset, dim)
			o[d] = -1
			mask = append(mask, o)
		}
		return mask
	}

	// walk the 3^dim unit neighbourhood in scan order, axis 0 fastest
	var mask []Offset
	o := make(Offset, dim)
	for d := range o {
		o[d] = -1
	}
	for {
		keep, zero := true, true
		for _, v := range o {
			if v > 0 {
				keep = false
				break
			}
			if v != 0 {
				zero = false
			}
		}
		if keep && !zero {
			mask = append(mask, append(Offset(nil), o...))
		}

		d := 0
		for ; d < dim; d++ {
			if o[d] < 1 {
				o[d]++
				break
			}
			o[d] = -1
		}
		if d == dim {
			break
		}
	}
	return mask
}

// predecessorWeight is the inclusion-exclusion weight of a predecessor
// when building an integral image: -1 times the product of the
// offset's nonzero components.
func predecessorWeight(o Offset) float64 {
	w := -1
	for _, v := range o {
		if v != 0 {
			w *= v
		}
	}
	return float64(w)
}
