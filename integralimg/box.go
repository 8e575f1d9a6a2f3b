// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package integralimg

// BoxMean returns the local mean of every cell of in, over the box
// of radius around it, cropped to in's region.
func BoxMean[T Number](in *Grid[T], radius Size, p Progress) (*Grid[float64], error) {
	r := in.Region()
	acc, err := Accumulate(in, r, p)
	if err != nil {
		return nil, err
	}
	return Mean(acc, radius, r, r, p)
}

// BoxSigma returns the local sample standard deviation of every cell
// of in, over the box of radius around it, cropped to in's region.
func BoxSigma[T Number](in *Grid[T], radius Size, p Progress) (*Grid[float64], error) {
	r := in.Region()
	acc, err := AccumulateSquares(in, r, p)
	if err != nil {
		return nil, err
	}
	return Sigma(acc, radius, r, r, p)
}

// UniformRadius returns a radius of r along each of dim axes
func UniformRadius(dim, r int) Size {
	s := make(Size, dim)
	for d := range s {
		s[d] = r
	}
	return s
}
