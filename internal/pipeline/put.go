// Copyright 2021 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package pipeline

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// null writer to enable non-verbose logging to be discarded
type NullWriter bool

func (w NullWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

type fileWalk chan string

// Walk sends the path of all files to the channel, with the exception of
// any file which starts with "."
func (f fileWalk) Walk(path string, info os.FileInfo, err error) error {
	if err != nil {
		return err
	}
	// skip files starting with . to prevent automatically generated
	// files like .DS_Store getting in the way
	if strings.HasPrefix(filepath.Base(path), ".") {
		return nil
	}
	if !info.IsDir() {
		f <- path
	}
	return nil
}

// CheckImages checks that all files matching ImageMatch in a
// directory are images that can be decoded (skipping dotfiles)
func CheckImages(ctx context.Context, dir string) error {
	checker := make(fileWalk)
	go func() {
		_ = filepath.Walk(dir, checker.Walk)
		close(checker)
	}()

	n := 0
	for path := range checker {
		select {
		case <-ctx.Done():
			for range checker {
			}
			return ctx.Err()
		default:
		}
		if !ImageMatch.MatchString(path) {
			continue
		}
		f, err := os.Open(path)
		if err != nil {
			for range checker {
			}
			return fmt.Errorf("Opening image %s failed: %v", path, err)
		}
		_, _, err = image.Decode(f)
		f.Close()
		if err != nil {
			for range checker {
			}
			return fmt.Errorf("Decoding image %s failed: %v", path, err)
		}
		n++
	}

	if n == 0 {
		return fmt.Errorf("No images found")
	}

	return nil
}

// UploadImages uploads all image files (except those which start
// with a ".") from a directory into bucket, prefixed with the given
// prefix and a slash.
func UploadImages(ctx context.Context, dir string, bucket string, prefix string, conn Uploader) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("Failed to read directory %s: %v", dir, err)
	}

	prefix = strings.TrimSuffix(prefix, "/")
	for _, file := range files {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		name := file.Name()
		if file.IsDir() || strings.HasPrefix(name, ".") || !ImageMatch.MatchString(name) {
			continue
		}
		path := filepath.Join(dir, name)
		conn.Log("Uploading", path)
		err = conn.Upload(bucket, prefix+"/"+name, path)
		if err != nil {
			return fmt.Errorf("Failed to upload %s: %v", path, err)
		}
	}

	return nil
}

// DownloadAll downloads every object in bucket under prefix into dir
func DownloadAll(dir string, bucket string, prefix string, conn DownloadLister) error {
	objs, err := conn.ListObjects(bucket, prefix)
	if err != nil {
		return fmt.Errorf("Failed to get list of files for %s: %v", prefix, err)
	}
	for _, i := range objs {
		fn := filepath.Join(dir, filepath.Base(i))
		conn.Log("Downloading", i)
		err = conn.Download(bucket, i, fn)
		if err != nil {
			return fmt.Errorf("Failed to download file %s: %v", i, err)
		}
	}
	return nil
}
