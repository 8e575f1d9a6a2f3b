// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package integralimg

import (
	"fmt"
)

// Number is any pixel type that can be fed into an integral image
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Grid is a dense D-dimensional array of values over a Region.
// The value at Index i is stored at Values[offset(i)], with axis 0
// varying fastest, as in an image.Gray where x is axis 0 and y is
// axis 1.
type Grid[T any] struct {
	// Values holds the grid's cells
	Values []T
	// Strides holds the distance in Values between neighbours along
	// each axis
	Strides []int
	// Boundary is returned by ValueAt for any Index outside the region
	Boundary T

	region Region
}

// NewGrid allocates a zeroed grid covering r
func NewGrid[T any](r Region) (*Grid[T], error) {
	g, n, err := emptyGrid[T](r)
	if err != nil {
		return nil, err
	}
	g.Values = make([]T, n)
	return g, nil
}

// FromSlice creates a grid over r backed by vals, which must have
// exactly r.NumCells() elements laid out with axis 0 fastest.
func FromSlice[T any](r Region, vals []T) (*Grid[T], error) {
	g, n, err := emptyGrid[T](r)
	if err != nil {
		return nil, err
	}
	if len(vals) != n {
		return nil, fmt.Errorf("%d values given for region %v of %d cells: %w", len(vals), r, n, ErrInvalidRegion)
	}
	g.Values = vals
	return g, nil
}

// emptyGrid sets up the region and strides of a grid over r, leaving
// Values unset, and returns the number of cells it needs
func emptyGrid[T any](r Region) (*Grid[T], int, error) {
	err := r.Validate()
	if err != nil {
		return nil, 0, err
	}
	g := &Grid[T]{region: NewRegion(r.Index, r.Size)}
	g.Strides = make([]int, r.Dim())
	n := 1
	for d := range g.Strides {
		g.Strides[d] = n
		n *= r.Size[d]
	}
	return g, n, nil
}

// Region returns the region covered by the grid
func (g *Grid[T]) Region() Region {
	return g.region
}

// Dim returns the dimensionality of the grid
func (g *Grid[T]) Dim() int {
	return g.region.Dim()
}

// offset returns the position of i in Values, and whether i is
// inside the grid.
func (g *Grid[T]) offset(i Index) (int, bool) {
	if len(i) != g.region.Dim() {
		return 0, false
	}
	o := 0
	for d, v := range i {
		rel := v - g.region.Index[d]
		if rel < 0 || rel >= g.region.Size[d] {
			return 0, false
		}
		o += rel * g.Strides[d]
	}
	return o, true
}

// At returns the value at i
func (g *Grid[T]) At(i Index) (T, error) {
	o, ok := g.offset(i)
	if !ok {
		var zero T
		return zero, fmt.Errorf("read at %v outside %v: %w", []int(i), g.region, ErrOutOfBounds)
	}
	return g.Values[o], nil
}

// ValueAt returns the value at i, or Boundary if i is outside the grid
func (g *Grid[T]) ValueAt(i Index) T {
	o, ok := g.offset(i)
	if !ok {
		return g.Boundary
	}
	return g.Values[o]
}

// Set stores v at i
func (g *Grid[T]) Set(i Index, v T) error {
	o, ok := g.offset(i)
	if !ok {
		return fmt.Errorf("write at %v outside %v: %w", []int(i), g.region, ErrOutOfBounds)
	}
	g.Values[o] = v
	return nil
}

// Cursor returns a cursor over the cells of r, which must be inside
// the grid.
func (g *Grid[T]) Cursor(r Region) (*Cursor[T], error) {
	if r.Dim() != g.region.Dim() || len(r.Size) != r.Dim() {
		return nil, fmt.Errorf("cursor region %v does not match grid %v: %w", r, g.region, ErrInvalidRegion)
	}
	if !r.IsInside(g.region) {
		return nil, fmt.Errorf("cursor region %v outside %v: %w", r, g.region, ErrOutOfBounds)
	}
	return newCursor(g, r), nil
}
