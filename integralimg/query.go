// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package integralimg

import (
	"fmt"
	"math"
)

// statFunc derives a statistic from the sum and sum of squares of n
// values.
type statFunc func(sum, sq, n float64) float64

func meanOf(sum, _, n float64) float64 {
	return sum / n
}

// sigmaOf is the sample standard deviation, using the two moment
// formula. It is NaN for n <= 1, and can lose precision when the
// variance is small relative to the mean.
func sigmaOf(sum, sq, n float64) float64 {
	return math.Sqrt((sq - sum*sum/n) / (n - 1))
}

func readSum(v float64) (float64, float64) { return v, 0 }

func readPair(v Pair) (float64, float64) { return v.Sum, v.SumSq }

// Mean sets every cell of outputRegion to the mean of the input
// values within radius of it, given acc, the integral image of the
// input. Boxes which cross the edge of inputRegion are cropped to
// it, and the mean is taken over the cells which remain.
func Mean(acc *Grid[float64], radius Size, inputRegion, outputRegion Region, p Progress) (*Grid[float64], error) {
	out, err := query(acc, readSum, radius, inputRegion, outputRegion, p, meanOf)
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// Sigma sets every cell of outputRegion to the sample standard
// deviation of the input values within radius of it, given acc,
// the integral image of the input and its squares. Boxes are cropped
// to inputRegion as for Mean. Boxes of a single cell give NaN.
func Sigma(acc *Grid[Pair], radius Size, inputRegion, outputRegion Region, p Progress) (*Grid[float64], error) {
	out, err := query(acc, readPair, radius, inputRegion, outputRegion, p, sigmaOf)
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// MeanSigma computes both Mean and Sigma in a single pass
func MeanSigma(acc *Grid[Pair], radius Size, inputRegion, outputRegion Region, p Progress) (*Grid[float64], *Grid[float64], error) {
	out, err := query(acc, readPair, radius, inputRegion, outputRegion, p, meanOf, sigmaOf)
	if err != nil {
		return nil, nil, err
	}
	return out[0], out[1], nil
}

func checkQuery(acc Region, radius Size, inputRegion, outputRegion Region) error {
	err := inputRegion.Validate()
	if err != nil {
		return fmt.Errorf("input region: %w", err)
	}
	err = outputRegion.Validate()
	if err != nil {
		return fmt.Errorf("output region: %w", err)
	}
	dim := acc.Dim()
	if inputRegion.Dim() != dim || outputRegion.Dim() != dim || len(radius) != dim {
		return fmt.Errorf("dimensions differ: accumulator %d, input %d, output %d, radius %d: %w",
			dim, inputRegion.Dim(), outputRegion.Dim(), len(radius), ErrInvalidRegion)
	}
	for d, r := range radius {
		if r < 0 {
			return fmt.Errorf("negative radius %d on axis %d: %w", r, d, ErrInvalidRegion)
		}
	}
	if !inputRegion.IsInside(acc) {
		return fmt.Errorf("input region %v not inside accumulator %v: %w", inputRegion, acc, ErrInvalidRegion)
	}
	if !outputRegion.IsInside(inputRegion) {
		return fmt.Errorf("output region %v not inside input region %v: %w", outputRegion, inputRegion, ErrInvalidRegion)
	}
	return nil
}

// BodyRegion returns the part of outputRegion whose boxes of radius
// can be summed without reaching outside inputRegion: every corner of
// the box, including the trailing corners one cell before it, lies in
// inputRegion.
func BodyRegion(radius Size, inputRegion, outputRegion Region) Region {
	body := NewRegion(inputRegion.Index, inputRegion.Size)
	for d := range body.Index {
		lo := inputRegion.Index[d] + radius[d] + 1
		hi := inputRegion.Upper(d) - radius[d]
		body.Index[d] = lo
		body.Size[d] = max(hi-lo+1, 0)
	}
	if body.Empty() {
		return body
	}
	return body.Crop(outputRegion)
}

// BoundaryFaces splits the cells of outputRegion that are not in body
// into disjoint regions. body must be inside outputRegion, or empty.
func BoundaryFaces(outputRegion, body Region) []Region {
	if body.Empty() {
		return []Region{NewRegion(outputRegion.Index, outputRegion.Size)}
	}
	var faces []Region
	rest := NewRegion(outputRegion.Index, outputRegion.Size)
	for d := range rest.Index {
		if below := body.Index[d] - rest.Index[d]; below > 0 {
			f := NewRegion(rest.Index, rest.Size)
			f.Size[d] = below
			faces = append(faces, f)
		}
		if above := rest.Upper(d) - body.Upper(d); above > 0 {
			f := NewRegion(rest.Index, rest.Size)
			f.Index[d] = body.Upper(d) + 1
			f.Size[d] = above
			faces = append(faces, f)
		}
		rest.Index[d] = body.Index[d]
		rest.Size[d] = body.Size[d]
	}
	return faces
}

func query[A any](acc *Grid[A], read func(A) (float64, float64), radius Size, inputRegion, outputRegion Region, p Progress, stats ...statFunc) ([]*Grid[float64], error) {
	err := checkQuery(acc.Region(), radius, inputRegion, outputRegion)
	if err != nil {
		return nil, err
	}
	p = progressOrNop(p)

	outs := make([]*Grid[float64], len(stats))
	for i := range outs {
		outs[i], err = NewGrid[float64](outputRegion)
		if err != nil {
			return nil, err
		}
	}

	w := newWindower(acc, read, radius, inputRegion)
	body := BodyRegion(radius, inputRegion, outputRegion)
	if !body.Empty() {
		err = queryBody(acc, read, radius, body, w.offsets, w.weights, outs, stats, p)
		if err != nil {
			return outs, err
		}
	}

	for _, face := range BoundaryFaces(outputRegion, body) {
		its := make([]*Cursor[float64], len(outs))
		for i, o := range outs {
			its[i], err = o.Cursor(face)
			if err != nil {
				return outs, err
			}
		}
		for its[0].Next() {
			win, err := w.window(its[0].Index())
			if err != nil {
				return outs, err
			}
			n := float64(win.Count)
			for i, st := range stats {
				if i > 0 {
					its[i].Next()
				}
				its[i].Set(st(win.Sum, win.SumSq, n))
			}
			p.CompletedPixel()
		}
	}

	return outs, nil
}

// queryBody handles cells whose boxes lie fully inside the input
// region, so the box size is fixed and one cursor per corner can
// walk the accumulator in step with the output.
func queryBody[A any](acc *Grid[A], read func(A) (float64, float64), radius Size, body Region, offsets []Offset, weights []float64, outs []*Grid[float64], stats []statFunc, p Progress) error {
	pixels := 1.0
	for _, r := range radius {
		pixels *= float64(2*r + 1)
	}

	cornerIts := make([]*Cursor[A], len(offsets))
	for k, o := range offsets {
		it, err := acc.Cursor(body.Shift(o))
		if err != nil {
			return err
		}
		cornerIts[k] = it
	}
	outIts := make([]*Cursor[float64], len(outs))
	for i, o := range outs {
		it, err := o.Cursor(body)
		if err != nil {
			return err
		}
		outIts[i] = it
	}

	for outIts[0].Next() {
		var sum, sq float64
		for k, it := range cornerIts {
			it.Next()
			s, q := read(it.Get())
			sum += weights[k] * s
			sq += weights[k] * q
		}
		for i, st := range stats {
			if i > 0 {
				outIts[i].Next()
			}
			outIts[i].Set(st(sum, sq, pixels))
		}
		p.CompletedPixel()
	}
	return nil
}
