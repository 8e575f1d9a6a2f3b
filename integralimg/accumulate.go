// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package integralimg

import (
	"fmt"
)

// Pair holds the integral of values and of their squares at a cell
type Pair struct {
	Sum, SumSq float64
}

// predecessor is an already-accumulated cell which contributes to
// the cell currently being accumulated.
type predecessor struct {
	pos    int
	weight float64
}

// sweep holds the fully connected predecessor mask of a grid, with
// the mask offsets converted to positions in the grid's Values.
type sweep struct {
	region  Region
	offsets []Offset
	weights []float64
	deltas  []int
}

func newSweep(r Region, strides []int) *sweep {
	s := &sweep{region: r, offsets: NeighborMask(r.Dim(), true)}
	for _, o := range s.offsets {
		delta := 0
		for d, v := range o {
			delta += v * strides[d]
		}
		s.weights = append(s.weights, predecessorWeight(o))
		s.deltas = append(s.deltas, delta)
	}
	return s
}

// predecessors appends to buf the predecessors of the cell at idx,
// stored at pos, that fall inside the region. Predecessors outside
// the region contribute zero and are left out.
func (s *sweep) predecessors(idx Index, pos int, buf []predecessor) []predecessor {
	buf = buf[:0]
	for k, o := range s.offsets {
		inside := true
		for d, v := range o {
			if idx[d]+v < s.region.Index[d] {
				inside = false
				break
			}
		}
		if inside {
			buf = append(buf, predecessor{pos: pos + s.deltas[k], weight: s.weights[k]})
		}
	}
	return buf
}

func checkAccumulate(in, region Region) error {
	err := region.Validate()
	if err != nil {
		return fmt.Errorf("accumulation region: %w", err)
	}
	if in.Dim() != region.Dim() {
		return fmt.Errorf("accumulation region has %d dimensions, input has %d: %w", region.Dim(), in.Dim(), ErrInvalidRegion)
	}
	if !region.IsInside(in) {
		return fmt.Errorf("accumulation region %v not inside input %v: %w", region, in, ErrInvalidRegion)
	}
	return nil
}

// Accumulate builds the integral image of the input over region, so
// that each cell holds the sum of every input cell in region that is
// less than or equal to it along every axis.
//
// The integral is built in a single forward sweep: each cell adds
// its input value to the inclusion-exclusion sum of the cells before
// it in its unit neighbourhood, which have all been written already.
// The input grid is not modified.
func Accumulate[T Number](in *Grid[T], region Region, p Progress) (*Grid[float64], error) {
	err := checkAccumulate(in.Region(), region)
	if err != nil {
		return nil, err
	}
	p = progressOrNop(p)

	acc, err := NewGrid[float64](region)
	if err != nil {
		return nil, err
	}
	s := newSweep(acc.Region(), acc.Strides)
	buf := make([]predecessor, 0, len(s.offsets))

	inIt, err := in.Cursor(region)
	if err != nil {
		return nil, err
	}
	accIt, err := acc.Cursor(region)
	if err != nil {
		return nil, err
	}
	for inIt.Next() && accIt.Next() {
		sum := float64(inIt.Get())
		for _, pr := range s.predecessors(accIt.Index(), accIt.pos, buf) {
			sum += pr.weight * acc.Values[pr.pos]
		}
		accIt.Set(sum)
		p.CompletedPixel()
	}
	return acc, nil
}

// AccumulateSquares builds the integral image of the input values
// and of their squares over region in one sweep, as Accumulate does.
func AccumulateSquares[T Number](in *Grid[T], region Region, p Progress) (*Grid[Pair], error) {
	err := checkAccumulate(in.Region(), region)
	if err != nil {
		return nil, err
	}
	p = progressOrNop(p)

	acc, err := NewGrid[Pair](region)
	if err != nil {
		return nil, err
	}
	s := newSweep(acc.Region(), acc.Strides)
	buf := make([]predecessor, 0, len(s.offsets))

	inIt, err := in.Cursor(region)
	if err != nil {
		return nil, err
	}
	accIt, err := acc.Cursor(region)
	if err != nil {
		return nil, err
	}
	for inIt.Next() && accIt.Next() {
		v := float64(inIt.Get())
		sum, sq := v, v*v
		for _, pr := range s.predecessors(accIt.Index(), accIt.pos, buf) {
			sum += pr.weight * acc.Values[pr.pos].Sum
			sq += pr.weight * acc.Values[pr.pos].SumSq
		}
		accIt.Set(Pair{Sum: sum, SumSq: sq})
		p.CompletedPixel()
	}
	return acc, nil
}
