// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package integralimg

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegion(t *testing.T) {
	r := NewRegion(Index{2, -1}, Size{3, 4})
	if r.NumCells() != 12 {
		t.Errorf("NumCells = %d, expected 12", r.NumCells())
	}
	if r.Upper(0) != 4 || r.Upper(1) != 2 {
		t.Errorf("Upper = %d,%d, expected 4,2", r.Upper(0), r.Upper(1))
	}
	if !r.Contains(Index{4, 2}) || r.Contains(Index{5, 2}) || r.Contains(Index{2, -2}) {
		t.Errorf("Contains is wrong at the edges of %v", r)
	}

	crop := r.Crop(NewRegion(Index{0, 0}, Size{4, 10}))
	if !crop.Equal(NewRegion(Index{2, 0}, Size{2, 3})) {
		t.Errorf("Crop = %v", crop)
	}
	disjoint := r.Crop(NewRegion(Index{10, 10}, Size{2, 2}))
	if !disjoint.Empty() {
		t.Errorf("Crop of disjoint regions = %v, expected empty", disjoint)
	}
	if !crop.IsInside(r) || r.IsInside(crop) {
		t.Errorf("IsInside is wrong for %v and %v", crop, r)
	}

	cases := []struct {
		name string
		r    Region
	}{
		{"nodims", Region{}},
		{"mismatch", Region{Index: Index{0, 0}, Size: Size{1}}},
		{"empty", NewRegion(Index{0, 0}, Size{3, 0})},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := c.r.Validate(); !errors.Is(err, ErrInvalidRegion) {
				t.Errorf("Validate(%v) = %v, expected ErrInvalidRegion", c.r, err)
			}
		})
	}
}

func TestGrid(t *testing.T) {
	g, err := FromSlice(NewRegion(Index{1, 1}, Size{3, 2}), []int{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatalf("Could not create grid: %v", err)
	}

	v, err := g.At(Index{2, 2})
	if err != nil || v != 5 {
		t.Errorf("At(2,2) = %d, %v, expected 5", v, err)
	}
	_, err = g.At(Index{0, 1})
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("At outside grid gave %v, expected ErrOutOfBounds", err)
	}
	err = g.Set(Index{4, 1}, 1)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Set outside grid gave %v, expected ErrOutOfBounds", err)
	}

	g.Boundary = -1
	if g.ValueAt(Index{0, 0}) != -1 || g.ValueAt(Index{3, 1}) != 3 {
		t.Errorf("ValueAt does not honour the boundary value")
	}

	_, err = FromSlice(NewRegion(Index{0}, Size{3}), []int{1, 2})
	if !errors.Is(err, ErrInvalidRegion) {
		t.Errorf("FromSlice with too few values gave %v, expected ErrInvalidRegion", err)
	}
}

var gridSink *Grid[int]

func TestFromSliceUsesValues(t *testing.T) {
	r := NewRegion(Index{-2, 0, 5}, Size{40, 30, 20})
	vals := make([]int, r.NumCells())
	g, err := FromSlice(r, vals)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	if &g.Values[0] != &vals[0] {
		t.Errorf("FromSlice copied its values rather than using them")
	}
	if diff := cmp.Diff([]int{1, 40, 1200}, g.Strides); diff != "" {
		t.Errorf("Strides differ (-want +got):\n%s", diff)
	}

	fromSlice := testing.AllocsPerRun(10, func() {
		gridSink, _ = FromSlice(r, vals)
	})
	newGrid := testing.AllocsPerRun(10, func() {
		gridSink, _ = NewGrid[int](r)
	})
	if fromSlice >= newGrid {
		t.Errorf("FromSlice made %v allocations, expected fewer than the %v of NewGrid", fromSlice, newGrid)
	}
}

func TestCursor(t *testing.T) {
	g, err := FromSlice(NewRegion(Index{0, 0}, Size{3, 3}), []int{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	})
	if err != nil {
		t.Fatalf("Could not create grid: %v", err)
	}

	it, err := g.Cursor(NewRegion(Index{1, 1}, Size{2, 2}))
	if err != nil {
		t.Fatalf("Could not create cursor: %v", err)
	}
	var got []int
	var idxs []Index
	for it.Next() {
		got = append(got, it.Get())
		idxs = append(idxs, append(Index(nil), it.Index()...))
	}
	if diff := cmp.Diff([]int{5, 6, 8, 9}, got); diff != "" {
		t.Errorf("Cursor values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Index{{1, 1}, {2, 1}, {1, 2}, {2, 2}}, idxs); diff != "" {
		t.Errorf("Cursor order mismatch (-want +got):\n%s", diff)
	}
	if it.Next() {
		t.Errorf("Cursor continued past the end of its region")
	}

	_, err = g.Cursor(NewRegion(Index{2, 2}, Size{2, 1}))
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Cursor outside grid gave %v, expected ErrOutOfBounds", err)
	}

	// writing through one cursor is seen by another in lockstep
	w, _ := g.Cursor(NewRegion(Index{0, 0}, Size{3, 1}))
	r, _ := g.Cursor(NewRegion(Index{0, 0}, Size{3, 1}))
	for w.Next() && r.Next() {
		w.Set(w.Get() * 10)
		if r.Get() != w.Get() {
			t.Errorf("Lockstep cursors disagree at %v", r.Index())
		}
	}
}
