// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package boxstats

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"rescribe.xyz/boxstats/integralimg"
	"rescribe.xyz/boxstats/preproc"
)

const (
	StatMean  = "mean"
	StatSigma = "sigma"
)

// Filtered is the local statistic of an image for one radius
type Filtered struct {
	Stat   string
	Radius int
	Grid   *integralimg.Grid[float64]
}

// Name returns the suffix used for files of this result, like
// "sigma5"
func (f Filtered) Name() string {
	return fmt.Sprintf("%s%d", f.Stat, f.Radius)
}

// Image renders the result as a gray image. Sigma values are scaled
// so the largest fills the gray range; means are already in it.
func (f Filtered) Image() (*image.Gray, error) {
	if f.Stat == StatSigma {
		return integralimg.ToGrayScaled(f.Grid)
	}
	return integralimg.ToGray(f.Grid)
}

// FilterGray computes stat for every pixel of img at each radius.
// The summed-area table is built once and shared by every radius.
// Progress is logged to logger, which may be nil.
func FilterGray(img *image.Gray, radii []int, stat string, logger *log.Logger) ([]Filtered, error) {
	if stat != StatMean && stat != StatSigma {
		return nil, fmt.Errorf("unknown statistic %s", stat)
	}
	in, err := integralimg.FromGray(img)
	if err != nil {
		return nil, err
	}
	r := in.Region()
	prog := &integralimg.LogProgress{Logger: logger}

	var sums *integralimg.Grid[float64]
	var pairs *integralimg.Grid[integralimg.Pair]
	prog.Reset("summed-area table", r.NumCells())
	if stat == StatMean {
		sums, err = integralimg.Accumulate(in, r, prog)
	} else {
		pairs, err = integralimg.AccumulateSquares(in, r, prog)
	}
	if err != nil {
		return nil, fmt.Errorf("Error building summed-area table: %w", err)
	}

	var results []Filtered
	for _, radius := range radii {
		f := Filtered{Stat: stat, Radius: radius}
		prog.Reset(f.Name(), r.NumCells())
		rad := integralimg.UniformRadius(2, radius)
		if stat == StatMean {
			f.Grid, err = integralimg.Mean(sums, rad, r, r, prog)
		} else {
			f.Grid, err = integralimg.Sigma(pairs, rad, r, r, prog)
		}
		if err != nil {
			return results, fmt.Errorf("Error finding %s: %w", f.Name(), err)
		}
		results = append(results, f)
	}
	return results, nil
}

// FilterFile filters the image at path with FilterGray, saving each
// result next to it as a PNG named like page_mean5.png. The paths of
// the saved files are returned.
func FilterFile(path string, radii []int, stat string, logger *log.Logger) ([]string, error) {
	var done []string
	_, gray, err := preproc.DecodeGray(path)
	if err != nil {
		return done, err
	}
	results, err := FilterGray(gray, radii, stat, logger)
	if err != nil {
		return done, err
	}
	base := strings.TrimSuffix(path, filepath.Ext(path))
	for _, f := range results {
		fn := fmt.Sprintf("%s_%s.png", base, f.Name())
		err = SavePng(fn, f)
		if err != nil {
			return done, err
		}
		done = append(done, fn)
	}
	return done, nil
}

// SavePng saves the result as a PNG at fn
func SavePng(fn string, f Filtered) error {
	img, err := f.Image()
	if err != nil {
		return err
	}
	out, err := os.Create(fn)
	if err != nil {
		return fmt.Errorf("Could not create file %s: %v", fn, err)
	}
	err = png.Encode(out, img)
	if err != nil {
		out.Close()
		return fmt.Errorf("Could not encode image %s: %v", fn, err)
	}
	return out.Close()
}
