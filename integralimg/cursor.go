// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package integralimg

// Cursor walks the cells of a region of a Grid in scan order, axis 0
// fastest. Cursors over congruent regions visit corresponding cells
// on the same step, so several can be advanced in lockstep.
//
//	c, _ := g.Cursor(r)
//	for c.Next() {
//		v := c.Get()
//	}
type Cursor[T any] struct {
	grid    *Grid[T]
	region  Region
	idx     Index
	pos     int
	left    int
	started bool
}

func newCursor[T any](g *Grid[T], r Region) *Cursor[T] {
	return &Cursor[T]{
		grid:   g,
		region: NewRegion(r.Index, r.Size),
		idx:    make(Index, r.Dim()),
		left:   r.NumCells(),
	}
}

// Next moves to the next cell, returning false once the region is
// exhausted. It must be called before the first cell is read.
func (c *Cursor[T]) Next() bool {
	if c.left <= 0 {
		return false
	}
	if !c.started {
		copy(c.idx, c.region.Index)
		c.pos, _ = c.grid.offset(c.idx)
		c.started = true
		c.left--
		return true
	}
	c.left--
	for d := range c.idx {
		if c.idx[d] < c.region.Upper(d) {
			c.idx[d]++
			c.pos += c.grid.Strides[d]
			return true
		}
		// wrap this axis back to the start and carry
		c.pos -= (c.idx[d] - c.region.Index[d]) * c.grid.Strides[d]
		c.idx[d] = c.region.Index[d]
	}
	return true
}

// Index returns the coordinate of the current cell. The returned
// slice is reused by the cursor; copy it to keep it.
func (c *Cursor[T]) Index() Index {
	return c.idx
}

// Get returns the value of the current cell
func (c *Cursor[T]) Get() T {
	return c.grid.Values[c.pos]
}

// Set stores v in the current cell
func (c *Cursor[T]) Set(v T) {
	c.grid.Values[c.pos] = v
}
