// Copyright 2019 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package boxstats

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeGray(t *testing.T, fn string, w, h int) {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{uint8(x * 255 / w)})
		}
	}
	f, err := os.Create(fn)
	if err != nil {
		t.Fatalf("Could not create %s: %v", fn, err)
	}
	defer f.Close()
	err = png.Encode(f, img)
	if err != nil {
		t.Fatalf("Could not encode %s: %v", fn, err)
	}
}

func TestPdf(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"mean1.png", "mean5.png"} {
		writeGray(t, filepath.Join(dir, n), 60, 40)
	}

	var p Fpdf
	err := p.Setup()
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	for _, n := range []string{"mean1.png", "mean5.png"} {
		err = p.AddPage(filepath.Join(dir, n), n)
		if err != nil {
			t.Fatalf("AddPage of %s failed: %v", n, err)
		}
	}
	out := filepath.Join(dir, "sheet.pdf")
	err = p.Save(out)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Could not read %s: %v", out, err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Errorf("Output is not a PDF")
	}

	var bad Fpdf
	_ = bad.Setup()
	err = bad.AddPage(filepath.Join(dir, "missing.png"), "missing")
	if err == nil {
		t.Errorf("AddPage of a missing image succeeded")
	}
}

func TestPxToPt(t *testing.T) {
	if v := pxToPt(imgDpi); v != 72 {
		t.Errorf("pxToPt(%d) = %v, expected 72", imgDpi, v)
	}
}
