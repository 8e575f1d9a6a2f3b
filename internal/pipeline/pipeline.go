// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// pipeline is a package used by the boxpipeline command, which
// downloads images from storage, filters them and uploads the
// results, using channels heavily to coordinate jobs. Note that it
// is considered an "internal" package, not intended for external
// use, and no guarantee is made of the stability of any interfaces
// provided.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"rescribe.xyz/boxstats"
	"rescribe.xyz/boxstats/preproc"
)

type Downloader interface {
	Download(bucket string, key string, fn string) error
	Log(v ...interface{})
}

type DownloadLister interface {
	Download(bucket string, key string, fn string) error
	ListObjects(bucket string, prefix string) ([]string, error)
	Log(v ...interface{})
}

type Uploader interface {
	Log(v ...interface{})
	Upload(bucket string, key string, path string) error
}

// Storer is satisfied by both boxstats.LocalConn and
// boxstats.AwsConn
type Storer interface {
	DeleteObjects(bucket string, keys []string) error
	Download(bucket string, key string, fn string) error
	GetLogger() *log.Logger
	Init() error
	ListObjects(bucket string, prefix string) ([]string, error)
	Log(v ...interface{})
	Upload(bucket string, key string, path string) error
}

type MinStorer interface {
	Storer
	MinimalInit() error
}

// Process reads local file paths from its first channel, and sends
// the paths of any files it creates to its second channel, closing
// it when it returns. Errors are sent to the error channel, after
// which it returns early.
type Process func(context.Context, chan string, chan string, chan error, *log.Logger)

// ImageMatch matches the names of image files that can be processed
var ImageMatch = regexp.MustCompile(`(?i)\.(png|jpe?g|bmp|tiff?|webp)$`)

// download reads keys from a channel and downloads them from bucket
// into dir, putting each successfully downloaded file name into the
// process channel. If an error occurs it is sent to the errc channel
// and the function returns early.
func download(ctx context.Context, dl chan string, process chan string, conn Downloader, bucket string, dir string, errc chan error, logger *log.Logger) {
	for key := range dl {
		select {
		case <-ctx.Done():
			for range dl {
			} // consume the rest of the receiving channel so it isn't blocked
			errc <- ctx.Err()
			close(process)
			return
		default:
		}
		fn := filepath.Join(dir, filepath.Base(key))
		logger.Println("Downloading", key)
		err := conn.Download(bucket, key, fn)
		if err != nil {
			for range dl {
			} // consume the rest of the receiving channel so it isn't blocked
			errc <- err
			close(process)
			return
		}
		process <- fn
	}
	close(process)
}

// up reads file names from a channel and uploads them to bucket with
// the prefix/ prefix, removing the local copy of each file once it
// has been successfully uploaded. The done channel is then written
// to to signal completion. If an error occurs it is sent to the errc
// channel and the function returns early.
func up(ctx context.Context, c chan string, done chan bool, conn Uploader, bucket string, prefix string, errc chan error, logger *log.Logger) {
	for path := range c {
		select {
		case <-ctx.Done():
			for range c {
			} // consume the rest of the receiving channel so it isn't blocked
			errc <- ctx.Err()
			return
		default:
		}
		key := prefix + "/" + filepath.Base(path)
		logger.Println("Uploading", key)
		err := conn.Upload(bucket, key, path)
		if err != nil {
			for range c {
			} // consume the rest of the receiving channel so it isn't blocked
			errc <- err
			return
		}
		err = os.Remove(path)
		if err != nil {
			for range c {
			} // consume the rest of the receiving channel so it isn't blocked
			errc <- err
			return
		}
	}

	done <- true
}

// Filter returns a Process which finds the local stat of each image
// at every radius
func Filter(radii []int, stat string) Process {
	return func(ctx context.Context, in chan string, up chan string, errc chan error, logger *log.Logger) {
		defer close(up)
		for path := range in {
			select {
			case <-ctx.Done():
				for range in {
				} // consume the rest of the receiving channel so it isn't blocked
				errc <- ctx.Err()
				return
			default:
			}
			logger.Println("Filtering", path)
			done, err := boxstats.FilterFile(path, radii, stat, logger)
			if err != nil {
				for range in {
				} // consume the rest of the receiving channel so it isn't blocked
				errc <- fmt.Errorf("Error filtering %s: %w", path, err)
				return
			}
			removeInput(path, logger)
			for _, p := range done {
				up <- p
			}
		}
	}
}

// removeInput deletes a downloaded file once it has been processed,
// logging any failure
func removeInput(path string, logger *log.Logger) {
	err := os.Remove(path)
	if err != nil {
		logger.Printf("Failed to remove %s: %v\n", path, err)
	}
}

// Preprocess returns a Process which binarizes each image at each of
// the thresholds, wiping the sides unless nowipe is set
func Preprocess(thresholds []float64, nowipe bool) Process {
	return func(ctx context.Context, pre chan string, up chan string, errc chan error, logger *log.Logger) {
		defer close(up)
		for path := range pre {
			select {
			case <-ctx.Done():
				for range pre {
				} // consume the rest of the receiving channel so it isn't blocked
				errc <- ctx.Err()
				return
			default:
			}
			logger.Println("Preprocessing", path)
			done, err := preproc.PreProcMulti(path, thresholds, "binary", 0, !nowipe, 5, 30)
			if err != nil {
				for range pre {
				} // consume the rest of the receiving channel so it isn't blocked
				errc <- err
				return
			}
			removeInput(path, logger)
			for _, p := range done {
				up <- p
			}
		}
	}
}

// ProcessPrefix downloads every object in bucket under prefix whose
// name matches match, runs process on them, and uploads the results
// to bucket under outprefix. A temporary working directory is used,
// and removed once finished.
func ProcessPrefix(ctx context.Context, conn Storer, process Process, match *regexp.Regexp, bucket string, prefix string, outprefix string) error {
	dl := make(chan string)
	processc := make(chan string)
	upc := make(chan string)
	// buffered so that no stage blocks sending once ProcessPrefix has
	// returned on the first error
	done := make(chan bool, 1)
	errc := make(chan error, 3)

	d, err := os.MkdirTemp("", "boxpipeline")
	if err != nil {
		return fmt.Errorf("Failed to create temporary directory: %s", err)
	}

	conn.Log("Getting list of objects to download")
	objs, err := conn.ListObjects(bucket, prefix)
	if err != nil {
		_ = os.RemoveAll(d)
		return fmt.Errorf("Failed to get list of files for %s: %s", prefix, err)
	}
	var todl []string
	for _, n := range objs {
		if !match.MatchString(n) {
			conn.Log("Skipping item that doesn't match target", n)
			continue
		}
		todl = append(todl, n)
	}
	if len(todl) == 0 {
		_ = os.RemoveAll(d)
		return fmt.Errorf("No matching files found in %s", prefix)
	}

	outprefix = strings.TrimSuffix(outprefix, "/")

	// these functions will do their jobs when their channels have data
	go download(ctx, dl, processc, conn, bucket, d, errc, conn.GetLogger())
	go process(ctx, processc, upc, errc, conn.GetLogger())
	go up(ctx, upc, done, conn, bucket, outprefix, errc, conn.GetLogger())

	for _, a := range todl {
		dl <- a
	}
	close(dl)

	// wait for either the done or errc channel to be sent to
	select {
	case err = <-errc:
		_ = os.RemoveAll(d)
		return err
	case <-ctx.Done():
		_ = os.RemoveAll(d)
		return ctx.Err()
	case <-done:
		// a stage that fails sends its error before closing its
		// output, so any error is already waiting here
		select {
		case err = <-errc:
			_ = os.RemoveAll(d)
			return err
		default:
		}
	}

	err = os.RemoveAll(d)
	if err != nil {
		return fmt.Errorf("Failed to remove directory %s: %s", d, err)
	}

	return nil
}
