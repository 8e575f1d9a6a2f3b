// Copyright 2019 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package boxstats

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"rescribe.xyz/boxstats/integralimg"
)

func TestRowProfile(t *testing.T) {
	g, err := integralimg.FromSlice(integralimg.NewRegion(integralimg.Index{2, 5}, integralimg.Size{3, 2}), []float64{
		1, 2, 3,
		4, 5, 6,
	})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	row, err := RowProfile(g, 6)
	if err != nil {
		t.Fatalf("RowProfile failed: %v", err)
	}
	if diff := cmp.Diff([]float64{4, 5, 6}, row); diff != "" {
		t.Errorf("RowProfile differs (-want +got):\n%s", diff)
	}

	_, err = RowProfile(g, 7)
	if !errors.Is(err, integralimg.ErrOutOfBounds) {
		t.Errorf("RowProfile outside the grid gave %v, expected ErrOutOfBounds", err)
	}

	vol, _ := integralimg.NewGrid[float64](integralimg.NewRegion(integralimg.Index{0, 0, 0}, integralimg.Size{2, 2, 2}))
	_, err = RowProfile(vol, 0)
	if !errors.Is(err, integralimg.ErrInvalidRegion) {
		t.Errorf("RowProfile of a volume gave %v, expected ErrInvalidRegion", err)
	}
}

func TestGraphProfile(t *testing.T) {
	cases := []struct {
		name     string
		profiles []Profile
		err      bool
	}{
		{"two", []Profile{{"mean5", []float64{1, 2, 3, 4, 3}}, {"sigma5", []float64{0.5, math.NaN(), 1, 1.5, 2}}}, false},
		{"flat", []Profile{{"mean1", []float64{7, 7, 7}}}, false},
		{"long", []Profile{{"mean1", make([]float64, 500)}}, false},
		{"short", []Profile{{"mean1", []float64{1}}}, true},
		{"nan", []Profile{{"sigma0", []float64{math.NaN(), math.NaN(), 3}}}, true},
		{"none", nil, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := GraphProfile(c.profiles, "test", "x", &buf)
			if c.err {
				if err == nil {
					t.Fatalf("Expected an error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("GraphProfile failed: %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
				t.Errorf("Output is not a PNG")
			}
		})
	}
}
