// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package boxstats

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseInts(t *testing.T) {
	cases := []struct {
		in       string
		expected []int
		err      bool
	}{
		{"5", []int{5}, false},
		{"1, 5,20", []int{1, 5, 20}, false},
		{"0,", []int{0}, false},
		{"", nil, true},
		{"1,x", nil, true},
		{"-1", nil, true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseInts(c.in)
			if c.err {
				if err == nil {
					t.Errorf("Expected an error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseInts failed: %v", err)
			}
			if diff := cmp.Diff(c.expected, got); diff != "" {
				t.Errorf("ParseInts differs (-want +got):\n%s", diff)
			}
		})
	}
}
