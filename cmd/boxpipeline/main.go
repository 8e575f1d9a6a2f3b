// Copyright 2019 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// boxpipeline filters or preprocesses every image stored under a
// prefix, uploading the results under another prefix
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"rescribe.xyz/boxstats"
	"rescribe.xyz/boxstats/internal/pipeline"
)

const usage = `Usage: boxpipeline [-c conn] [-d dir] [-r radii] [-s stat] [-pre] [-k k1,k2] [-nowipe] [-up localdir] [-get localdir] [-v] bucket prefix outprefix

Downloads every image in bucket under prefix, processes it, and
uploads the results to bucket under outprefix. This general process
is followed:

- The names of the images under prefix are listed
- Each image is downloaded into a temporary directory
- The image is processed, either finding the local mean or standard
  deviation for each radius, or binarizing it for each k value if
  -pre is given
- The resulting files are uploaded to outprefix/ and removed

With -up, the images in localdir are first checked and uploaded to
prefix/. With -get, the results are downloaded into localdir once
they have all been uploaded.

The connection is either aws, using S3 and the credentials in
~/.aws/credentials, or local, using directories under -d as buckets.
`

func parseFloats(s string) ([]float64, error) {
	var fs []float64
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return fs, fmt.Errorf("invalid k value %s: %v", f, err)
		}
		fs = append(fs, v)
	}
	return fs, nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	connType := flag.String("c", "aws", "connection type: aws or local")
	localdir := flag.String("d", "", "Directory holding buckets for the local connection.")
	radiistr := flag.String("r", "1,5,20", "Comma separated list of box radii.")
	stat := flag.String("s", boxstats.StatMean, "Statistic to find: mean or sigma.")
	pre := flag.Bool("pre", false, "Binarize the images rather than filtering them.")
	kstr := flag.String("k", "0.1,0.2,0.4,0.5", "Comma separated list of k values to binarize with.")
	nowipe := flag.Bool("nowipe", false, "Disable wiping when binarizing.")
	updir := flag.String("up", "", "Upload the images in this directory to prefix first.")
	getdir := flag.String("get", "", "Download the results into this directory.")
	verbose := flag.Bool("v", false, "Verbose")
	flag.Parse()
	if flag.NArg() < 3 {
		flag.Usage()
		os.Exit(1)
	}
	bucket, prefix, outprefix := flag.Arg(0), flag.Arg(1), flag.Arg(2)

	var verboselog *log.Logger
	if *verbose {
		verboselog = log.New(os.Stdout, "", log.LstdFlags)
	} else {
		var n pipeline.NullWriter
		verboselog = log.New(n, "", log.LstdFlags)
	}

	var conn pipeline.MinStorer
	switch *connType {
	case "aws":
		conn = &boxstats.AwsConn{Logger: verboselog}
	case "local":
		conn = &boxstats.LocalConn{TempDir: *localdir, Logger: verboselog}
	default:
		log.Fatalln("Unknown connection type")
	}
	err := conn.Init()
	if err != nil {
		log.Fatalln("Error setting up connection:", err)
	}

	var process pipeline.Process
	if *pre {
		ks, err := parseFloats(*kstr)
		if err != nil {
			log.Fatalln(err)
		}
		process = pipeline.Preprocess(ks, *nowipe)
	} else {
		radii, err := boxstats.ParseInts(*radiistr)
		if err != nil {
			log.Fatalf("Invalid radii: %v\n", err)
		}
		if *stat != boxstats.StatMean && *stat != boxstats.StatSigma {
			log.Fatalf("Unknown statistic %s\n", *stat)
		}
		process = pipeline.Filter(radii, *stat)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *updir != "" {
		log.Printf("Checking images in %s\n", *updir)
		err = pipeline.CheckImages(ctx, *updir)
		if err != nil {
			log.Fatalln(err)
		}
		log.Printf("Uploading images in %s to %s\n", *updir, prefix)
		err = pipeline.UploadImages(ctx, *updir, bucket, prefix, conn)
		if err != nil {
			log.Fatalln(err)
		}
	}

	log.Printf("Processing %s/%s\n", bucket, prefix)
	err = pipeline.ProcessPrefix(ctx, conn, process, pipeline.ImageMatch, bucket, prefix, outprefix)
	if err != nil {
		log.Fatalf("Error processing %s: %v\n", prefix, err)
	}
	log.Printf("Finished, results are in %s/%s\n", bucket, outprefix)

	if *getdir != "" {
		err = os.MkdirAll(*getdir, 0755)
		if err != nil {
			log.Fatalf("Could not create directory %s: %v\n", *getdir, err)
		}
		log.Printf("Downloading results to %s\n", *getdir)
		err = pipeline.DownloadAll(*getdir, bucket, strings.TrimSuffix(outprefix, "/")+"/", conn)
		if err != nil {
			log.Fatalln(err)
		}
	}
}
