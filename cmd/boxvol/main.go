// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// boxvol finds the local mean or standard deviation of a stack of
// frames, treated as a 3 dimensional volume
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"rescribe.xyz/boxstats"
	"rescribe.xyz/boxstats/integralimg"
	"rescribe.xyz/boxstats/preproc"
)

const usage = `Usage: boxvol [-r radius] [-s stat] [-v] outdir frame...

Stacks the frames, which must all be the same size, into a volume,
and finds the mean or standard deviation of the box around every
voxel. The box spans neighbouring frames as well as each frame, and
is cropped at the edges of the volume. Each frame of the result is
saved in outdir as frame_volSTAT.png.

The radius is either one number, used along every axis, or three
separated by commas for x, y and the frame axis.
`

// null writer to enable non-verbose logging to be discarded
type NullWriter bool

func (w NullWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	radiusstr := flag.String("r", "2", "Box radius, either one number or x,y,z.")
	stat := flag.String("s", boxstats.StatMean, "Statistic to find: mean or sigma.")
	verbose := flag.Bool("v", false, "Verbose")
	flag.Parse()
	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(1)
	}

	var verboselog *log.Logger
	if *verbose {
		verboselog = log.New(os.Stdout, "", log.LstdFlags)
	} else {
		var n NullWriter
		verboselog = log.New(n, "", log.LstdFlags)
	}

	r, err := boxstats.ParseInts(*radiusstr)
	if err != nil {
		log.Fatalf("Invalid radius: %v\n", err)
	}
	var radius integralimg.Size
	switch len(r) {
	case 1:
		radius = integralimg.UniformRadius(3, r[0])
	case 3:
		radius = integralimg.Size(r)
	default:
		log.Fatalf("Radius must have 1 or 3 numbers, got %d\n", len(r))
	}
	if *stat != boxstats.StatMean && *stat != boxstats.StatSigma {
		log.Fatalf("Unknown statistic %s\n", *stat)
	}

	outdir := flag.Arg(0)
	paths := flag.Args()[1:]
	var frames []*image.Gray
	for _, p := range paths {
		_, gray, err := preproc.DecodeGray(p)
		if err != nil {
			log.Fatalln(err)
		}
		frames = append(frames, gray)
	}

	vol, err := integralimg.Stack(frames)
	if err != nil {
		log.Fatalf("Could not stack frames: %v\n", err)
	}

	prog := &integralimg.LogProgress{Logger: verboselog}
	prog.Reset(*stat, 2*vol.Region().NumCells())
	log.Printf("Finding %s of %v volume with radius %v\n", *stat, vol.Region().Size, radius)
	var out *integralimg.Grid[float64]
	if *stat == boxstats.StatMean {
		out, err = integralimg.BoxMean(vol, radius, prog)
	} else {
		out, err = integralimg.BoxSigma(vol, radius, prog)
		if err == nil {
			// one scale for the whole volume, so frames compare
			out, err = integralimg.Scaled(out)
		}
	}
	if err != nil {
		log.Fatalf("Could not find %s: %v\n", *stat, err)
	}

	err = os.MkdirAll(outdir, 0755)
	if err != nil {
		log.Fatalf("Could not create directory %s: %v\n", outdir, err)
	}
	for z, p := range paths {
		plane, err := integralimg.SliceZ(out, z)
		if err != nil {
			log.Fatalf("Could not slice frame %d: %v\n", z, err)
		}
		img, err := integralimg.ToGray(plane)
		if err != nil {
			log.Fatalf("Could not make image of frame %d: %v\n", z, err)
		}
		base := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		fn := filepath.Join(outdir, fmt.Sprintf("%s_vol%s.png", base, *stat))
		f, err := os.Create(fn)
		if err != nil {
			log.Fatalf("Could not create file %s: %v\n", fn, err)
		}
		err = png.Encode(f, img)
		f.Close()
		if err != nil {
			log.Fatalf("Could not encode image: %v\n", err)
		}
		log.Printf("Saved %s\n", fn)
	}
}
