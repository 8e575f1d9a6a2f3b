// Copyright 2019 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package boxstats

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/jung-kurt/gofpdf"
)

const imgDpi = 150
const captionHeight = 24

// pxToPt converts a pixel value into a pt value (72 pts per inch)
// using imgDpi
func pxToPt(i int) float64 {
	return float64(i) * 72 / imgDpi
}

// Fpdf builds a contact sheet of filtered images, one image per
// page with a caption above it
type Fpdf struct {
	fpdf *gofpdf.Fpdf
}

// Setup creates a new PDF with appropriate settings and fonts
func (p *Fpdf) Setup() error {
	p.fpdf = gofpdf.New("P", "pt", "A4", "")
	p.fpdf.SetFont("Helvetica", "", 12)
	p.fpdf.SetAutoPageBreak(false, float64(0))
	return p.fpdf.Error()
}

// AddPage adds a page to the pdf sized to fit the image at imgpath,
// with caption written above it
func (p *Fpdf) AddPage(imgpath string, caption string) error {
	f, err := os.Open(imgpath)
	if err != nil {
		return fmt.Errorf("Could not open file %s: %v", imgpath, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("Could not decode image: %v", err)
	}
	b := img.Bounds()
	w, h := pxToPt(b.Dx()), pxToPt(b.Dy())
	p.fpdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h + captionHeight})

	p.fpdf.SetXY(0, 0)
	p.fpdf.CellFormat(w, captionHeight, caption, "", 0, "CM", false, 0, "")

	_ = p.fpdf.RegisterImageOptions(imgpath, gofpdf.ImageOptions{})
	p.fpdf.ImageOptions(imgpath, 0, captionHeight, w, h, false, gofpdf.ImageOptions{}, 0, "")

	return p.fpdf.Error()
}

// Save saves the PDF to the file at path
func (p *Fpdf) Save(path string) error {
	return p.fpdf.OutputFileAndClose(path)
}
