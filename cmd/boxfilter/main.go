// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// boxfilter writes the local mean or standard deviation of an image
// for one or more box radii
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"rescribe.xyz/boxstats"
	"rescribe.xyz/boxstats/preproc"
)

const usage = `Usage: boxfilter [-r radii] [-s stat] [-graph row] [-pdf file] [-v] inimg outdir

Finds the mean or standard deviation of the box around every pixel
of an image, for each radius given, saving them as PNGs in outdir
named inimg_statRADIUS.png. The box is cropped at the edges of the
image. Standard deviations are scaled so the largest is white.

inimg and outdir may be s3://bucket/key paths, in which case they
are downloaded from or uploaded to S3.
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
	radiistr := flag.String("r", "1,5,20", "Comma separated list of box radii.")
	stat := flag.String("s", boxstats.StatMean, "Statistic to find: mean or sigma.")
	graphrow := flag.Int("graph", -1, "Graph the statistics along this row of the image.")
	pdfpath := flag.String("pdf", "", "Save a PDF with a page for each radius to this file.")
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

	radii, err := boxstats.ParseInts(*radiistr)
	if err != nil {
		log.Fatalf("Invalid radii: %v\n", err)
	}

	inpath, outdir := flag.Arg(0), flag.Arg(1)
	var conn *boxstats.AwsConn
	tmpdir, err := os.MkdirTemp("", "boxfilter")
	if err != nil {
		log.Fatalf("Could not create temporary directory: %v\n", err)
	}
	defer os.RemoveAll(tmpdir)

	inbucket, inkey, ins3 := boxstats.SplitS3Path(inpath)
	outbucket, outprefix, outs3 := boxstats.SplitS3Path(outdir)
	if ins3 || outs3 {
		conn = &boxstats.AwsConn{Logger: verboselog}
		err = conn.MinimalInit()
		if err != nil {
			log.Fatalln("Error setting up cloud connection:", err)
		}
	}

	if ins3 {
		local := filepath.Join(tmpdir, filepath.Base(inkey))
		log.Printf("Downloading %s\n", inpath)
		err = conn.Download(inbucket, inkey, local)
		if err != nil {
			log.Fatalf("Could not download %s: %v\n", inpath, err)
		}
		inpath = local
	}

	localout := outdir
	if outs3 {
		localout = filepath.Join(tmpdir, "out")
	}
	err = os.MkdirAll(localout, 0755)
	if err != nil {
		log.Fatalf("Could not create directory %s: %v\n", localout, err)
	}

	_, gray, err := preproc.DecodeGray(inpath)
	if err != nil {
		log.Fatalln(err)
	}

	log.Printf("Finding %s for radii %v\n", *stat, radii)
	results, err := boxstats.FilterGray(gray, radii, *stat, verboselog)
	if err != nil {
		log.Fatalln(err)
	}

	base := strings.TrimSuffix(filepath.Base(inpath), filepath.Ext(inpath))
	var saved []string
	var pdf boxstats.Fpdf
	if *pdfpath != "" {
		err = pdf.Setup()
		if err != nil {
			log.Fatalf("Could not set up PDF: %v\n", err)
		}
	}
	var profiles []boxstats.Profile
	for _, f := range results {
		fn := filepath.Join(localout, base+"_"+f.Name()+".png")
		err = boxstats.SavePng(fn, f)
		if err != nil {
			log.Fatalln(err)
		}
		saved = append(saved, fn)
		if *pdfpath != "" {
			err = pdf.AddPage(fn, fmt.Sprintf("%s radius %d", f.Stat, f.Radius))
			if err != nil {
				log.Fatalf("Could not add %s to PDF: %v\n", fn, err)
			}
		}
		if *graphrow >= 0 {
			vals, err := boxstats.RowProfile(f.Grid, *graphrow)
			if err != nil {
				log.Fatalf("Could not get row %d: %v\n", *graphrow, err)
			}
			profiles = append(profiles, boxstats.Profile{Name: f.Name(), Values: vals})
		}
	}

	if *graphrow >= 0 {
		fn := filepath.Join(localout, base+"_graph.png")
		f, err := os.Create(fn)
		if err != nil {
			log.Fatalf("Could not create file %s: %v\n", fn, err)
		}
		title := fmt.Sprintf("%s of %s along row %d", *stat, filepath.Base(inpath), *graphrow)
		err = boxstats.GraphProfile(profiles, title, "x", f)
		f.Close()
		if err != nil {
			log.Fatalf("Could not create graph: %v\n", err)
		}
		saved = append(saved, fn)
	}

	if *pdfpath != "" {
		err = pdf.Save(*pdfpath)
		if err != nil {
			log.Fatalf("Could not save PDF %s: %v\n", *pdfpath, err)
		}
	}

	for _, fn := range saved {
		if !outs3 {
			log.Printf("Saved %s\n", fn)
			continue
		}
		key := strings.TrimSuffix(outprefix, "/") + "/" + filepath.Base(fn)
		key = strings.TrimPrefix(key, "/")
		log.Printf("Uploading %s\n", key)
		err = conn.Upload(outbucket, key, fn)
		if err != nil {
			log.Fatalf("Could not upload %s: %v\n", fn, err)
		}
	}
}
