// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package boxstats

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseInts parses a comma separated list of non-negative integers,
// as used for radii on the command line
func ParseInts(s string) ([]int, error) {
	var ints []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		i, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid number %s: %v", f, err)
		}
		if i < 0 {
			return nil, fmt.Errorf("invalid number %d: must not be negative", i)
		}
		ints = append(ints, i)
	}
	if len(ints) == 0 {
		return nil, fmt.Errorf("no numbers in %q", s)
	}
	return ints, nil
}
