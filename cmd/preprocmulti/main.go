// Copyright 2019 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// preprocmulti binarizes and wipes an image at several Sauvola k
// values, sharing one set of integral images between them.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"rescribe.xyz/boxstats/preproc"
)

const usage = `Usage: preprocmulti [-bt bintype] [-bw winsize] [-k k1,k2] [-nowipe] [-ws wipesize] inimg

Binarize and preprocess an image, with multiple binarisation levels,
saving images to inimg_bink.png.
`

func parseKs(s string) ([]float64, error) {
	var ks []float64
	for _, f := range strings.Split(s, ",") {
		k, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return ks, fmt.Errorf("invalid k value %s: %v", f, err)
		}
		ks = append(ks, k)
	}
	return ks, nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	binwsize := flag.Int("bw", 0, "Window size for sauvola binarization algorithm. Set automatically based on resolution if not set.")
	btype := flag.String("bt", "binary", "Type of binarization threshold. binary or zeroinv are currently implemented.")
	kstr := flag.String("k", "0.1,0.2,0.3,0.4,0.5", "Comma separated list of k values to binarize with.")
	nowipe := flag.Bool("nowipe", false, "Disable wiping completely.")
	wipewsize := flag.Int("ws", 5, "Window size for wiping algorithm.")
	minperc := flag.Int("m", 30, "Minimum percentage of the image width for the content width calculation to be considered valid.")
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	ksizes, err := parseKs(*kstr)
	if err != nil {
		log.Fatalln(err)
	}

	log.Printf("Processing %s\n", flag.Arg(0))
	done, err := preproc.PreProcMulti(flag.Arg(0), ksizes, *btype, *binwsize, !*nowipe, *wipewsize, *minperc)
	if err != nil {
		log.Fatalln(err)
	}
	for _, p := range done {
		log.Printf("Saved %s\n", p)
	}
}
