// Copyright 2019 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// preproc binarizes a single image with Sauvola's algorithm and
// wipes the area outside the content.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"

	"rescribe.xyz/boxstats/preproc"
)

const usage = `Usage: preproc [-k ksize] [-bw winsize] [-nowipe] [-ws wipesize] [-t thresh] inimg outimg

Binarize an image using Sauvola's algorithm, computed with integral
images, then wipe the sides of it which are outside the content area.
`

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	ksize := flag.Float64("k", 0.5, "Sauvola k value.")
	binwsize := flag.Int("bw", 0, "Window size for sauvola binarization algorithm. Set automatically based on resolution if not set.")
	nowipe := flag.Bool("nowipe", false, "Disable wiping completely.")
	wipewsize := flag.Int("ws", 5, "Window size for wiping algorithm.")
	thresh := flag.Float64("t", 0.05, "Threshold for the proportion of black pixels below which a window is determined to be the edge.")
	minperc := flag.Int("m", 30, "Minimum percentage of the image width for the content width calculation to be considered valid.")
	flag.Parse()
	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(1)
	}

	_, gray, err := preproc.DecodeGray(flag.Arg(0))
	if err != nil {
		log.Fatalln(err)
	}

	if *binwsize == 0 {
		*binwsize = preproc.AutoWsize(gray.Bounds())
	}
	if *binwsize%2 == 0 {
		*binwsize++
	}

	log.Print("Binarising")
	clean, err := preproc.IntegralSauvola(gray, *ksize, *binwsize)
	if err != nil {
		log.Fatalf("Binarisation failed: %v\n", err)
	}

	if !*nowipe {
		log.Print("Wiping sides")
		clean, err = preproc.Wipe(clean, *wipewsize, *thresh, *minperc)
		if err != nil {
			log.Fatalf("Wiping failed: %v\n", err)
		}
	}

	f, err := os.Create(flag.Arg(1))
	if err != nil {
		log.Fatalf("Could not create file %s: %v\n", flag.Arg(1), err)
	}
	defer f.Close()
	err = png.Encode(f, clean)
	if err != nil {
		log.Fatalf("Could not encode image: %v\n", err)
	}
}
