// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package integralimg

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRegion is returned before any cell is processed when
	// the regions passed to a function are empty, have mismatched
	// dimensions or are not contained where they need to be.
	ErrInvalidRegion = errors.New("invalid region")

	// ErrOutOfBounds is returned when a grid is read or written
	// outside of its region.
	ErrOutOfBounds = errors.New("index out of bounds")
)

// Index is a coordinate in a grid
type Index []int

// Offset is a signed displacement between two Indexes
type Offset []int

// Size is a per-axis extent, or a per-axis radius
type Size []int

// Add returns the Index displaced by o
func (i Index) Add(o Offset) Index {
	n := make(Index, len(i))
	for d := range i {
		n[d] = i[d] + o[d]
	}
	return n
}

// Region is an axis-aligned box of cells, starting at Index and
// extending Size cells along each axis.
type Region struct {
	Index Index
	Size  Size
}

// NewRegion returns a region, copying index and size
func NewRegion(index Index, size Size) Region {
	r := Region{Index: make(Index, len(index)), Size: make(Size, len(size))}
	copy(r.Index, index)
	copy(r.Size, size)
	return r
}

// Dim returns the dimensionality of the region
func (r Region) Dim() int {
	return len(r.Index)
}

// NumCells returns the number of cells in the region
func (r Region) NumCells() int {
	if len(r.Size) == 0 {
		return 0
	}
	n := 1
	for _, s := range r.Size {
		if s <= 0 {
			return 0
		}
		n *= s
	}
	return n
}

// Empty reports whether the region contains no cells
func (r Region) Empty() bool {
	return r.NumCells() == 0
}

// Upper returns the last valid coordinate along an axis
func (r Region) Upper(axis int) int {
	return r.Index[axis] + r.Size[axis] - 1
}

// Contains reports whether i is inside the region
func (r Region) Contains(i Index) bool {
	if len(i) != len(r.Index) {
		return false
	}
	for d := range i {
		if i[d] < r.Index[d] || i[d] > r.Upper(d) {
			return false
		}
	}
	return true
}

// IsInside reports whether every cell of r is also in o. An empty
// region is inside any region of the same dimension.
func (r Region) IsInside(o Region) bool {
	if r.Dim() != o.Dim() {
		return false
	}
	if r.Empty() {
		return true
	}
	for d := range r.Index {
		if r.Index[d] < o.Index[d] || r.Upper(d) > o.Upper(d) {
			return false
		}
	}
	return true
}

// Crop returns the intersection of r and o, which may be empty
func (r Region) Crop(o Region) Region {
	c := NewRegion(r.Index, r.Size)
	for d := range c.Index {
		lo := max(r.Index[d], o.Index[d])
		hi := min(r.Upper(d), o.Upper(d))
		c.Index[d] = lo
		c.Size[d] = max(hi-lo+1, 0)
	}
	return c
}

// Shift returns the region moved by o
func (r Region) Shift(o Offset) Region {
	return Region{Index: r.Index.Add(o), Size: append(Size(nil), r.Size...)}
}

// Equal reports whether two regions cover the same cells
func (r Region) Equal(o Region) bool {
	if r.Dim() != o.Dim() {
		return false
	}
	for d := range r.Index {
		if r.Index[d] != o.Index[d] || r.Size[d] != o.Size[d] {
			return false
		}
	}
	return true
}

// Validate checks that the region is well formed and not empty
func (r Region) Validate() error {
	if r.Dim() == 0 {
		return fmt.Errorf("region has no dimensions: %w", ErrInvalidRegion)
	}
	if len(r.Size) != len(r.Index) {
		return fmt.Errorf("region index has %d dimensions but size has %d: %w", len(r.Index), len(r.Size), ErrInvalidRegion)
	}
	if r.Empty() {
		return fmt.Errorf("region %v is empty: %w", r, ErrInvalidRegion)
	}
	return nil
}

func (r Region) String() string {
	return fmt.Sprintf("{index %v size %v}", []int(r.Index), []int(r.Size))
}
