// Copyright 2019 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package preproc

// TODO: come up with a way to set a good ksize automatically

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// AutoWsize guesses a Sauvola window size from the width of a page
func AutoWsize(bounds image.Rectangle) int {
	return bounds.Dx() / 60
}

// DecodeGray opens and decodes an image file, returning the original
// and a gray copy of it
func DecodeGray(path string) (image.Image, *image.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("Could not open file %s: %v", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("Could not decode image %s: %v", path, err)
	}
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return img, gray, nil
}

// toRGBA returns img as an *image.RGBA with its origin at 0,0
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// PreProcMulti binarizes and preprocesses an image with multiple binarisation levels.
// inPath: Path of input image.
// ksizes: Slice of k values to pass to Sauvola algorithm
// binType: Type of binarization threshold. binary or zeroinv are currently implemented.
// binWsize: Window size for sauvola binarization algorithm. Set automatically based on resolution if 0.
// wipe: Whether to wipe (clear sides) the image
// wipeWsize: Window size for wiping algorithm
// wipeMinWidthPerc: Minimum percentage of the image width for the content width calculation to be considered valid
// The integral images are calculated once and shared by every k.
func PreProcMulti(inPath string, ksizes []float64, binType string, binWsize int, wipe bool, wipeWsize int, wipeMinWidthPerc int) ([]string, error) {
	outBase := strings.TrimSuffix(inPath, filepath.Ext(inPath))

	var donePaths []string

	if binType != "binary" && binType != "zeroinv" {
		return donePaths, fmt.Errorf("unknown binarization type %s", binType)
	}

	img, gray, err := DecodeGray(inPath)
	if err != nil {
		return donePaths, err
	}

	if binWsize == 0 {
		binWsize = AutoWsize(gray.Bounds())
	}

	if binWsize%2 == 0 {
		binWsize++
	}

	integrals, err := Integrals(gray)
	if err != nil {
		return donePaths, err
	}

	for _, k := range ksizes {
		threshimg, err := PreCalcedSauvola(integrals, gray, k, binWsize)
		if err != nil {
			return donePaths, err
		}

		var clean image.Image = threshimg
		if wipe {
			clean, err = Wipe(threshimg, wipeWsize, k*0.02, wipeMinWidthPerc)
			if err != nil {
				return donePaths, err
			}
		}

		if binType == "zeroinv" {
			clean, err = BinToZeroInv(clean.(*image.Gray), toRGBA(img))
			if err != nil {
				return donePaths, err
			}
		}

		savefn := fmt.Sprintf("%s_bin%0.1f.png", outBase, k)
		err = save(savefn, clean)
		if err != nil {
			return donePaths, err
		}
		donePaths = append(donePaths, savefn)
	}
	return donePaths, nil
}

func save(fn string, img image.Image) error {
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	err = png.Encode(f, img)
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
