// Copyright 2019 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package preproc

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestPreProcMulti(t *testing.T) {
	cases := []struct {
		bintype string
		wipe    bool
	}{
		{"binary", true},
		{"binary", false},
		{"zeroinv", true},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("%s_%v", c.bintype, c.wipe), func(t *testing.T) {
			dir := t.TempDir()
			in := filepath.Join(dir, "pg.1.png")
			err := save(in, page(120, 80))
			if err != nil {
				t.Fatalf("Could not save test page: %v", err)
			}

			done, err := PreProcMulti(in, []float64{0.1, 0.5}, c.bintype, 0, c.wipe, 5, 30)
			if err != nil {
				t.Fatalf("PreProcMulti failed: %v", err)
			}
			expected := []string{filepath.Join(dir, "pg.1_bin0.1.png"), filepath.Join(dir, "pg.1_bin0.5.png")}
			if len(done) != len(expected) {
				t.Fatalf("Got %d paths, expected %d: %v", len(done), len(expected), done)
			}
			for i, p := range done {
				if p != expected[i] {
					t.Errorf("Path %d is %s, expected %s", i, p, expected[i])
				}
				f, err := os.Open(p)
				if err != nil {
					t.Fatalf("Could not open %s: %v", p, err)
				}
				img, _, err := image.Decode(f)
				f.Close()
				if err != nil {
					t.Fatalf("Could not decode %s: %v", p, err)
				}
				if img.Bounds().Dx() != 120 || img.Bounds().Dy() != 80 {
					t.Errorf("%s has bounds %v", p, img.Bounds())
				}
			}
		})
	}

	_, err := PreProcMulti(filepath.Join(t.TempDir(), "missing.png"), []float64{0.5}, "binary", 0, false, 5, 30)
	if err == nil {
		t.Errorf("PreProcMulti of a missing file succeeded")
	}
	_, err = PreProcMulti("whatever.png", []float64{0.5}, "other", 0, false, 5, 30)
	if err == nil {
		t.Errorf("PreProcMulti with an unknown binarization type succeeded")
	}
}
