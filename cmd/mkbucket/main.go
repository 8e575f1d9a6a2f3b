// Copyright 2019 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

// mkbucket sets up the storage bucket used by boxpipeline.
package main

import (
	"log"
	"os"

	"rescribe.xyz/boxstats"
)

type BucketMaker interface {
	MinimalInit() error
	CreateBucket(name string) error
}

func main() {
	if len(os.Args) != 2 {
		log.Fatal("Usage: mkbucket bucket\n\nSets up a storage bucket on S3 for boxpipeline\n")
	}

	var conn BucketMaker
	conn = &boxstats.AwsConn{Logger: log.New(os.Stdout, "", 0)}
	err := conn.MinimalInit()
	if err != nil {
		log.Fatalln("Failed to set up cloud connection:", err)
	}

	err = conn.CreateBucket(os.Args[1])
	if err != nil {
		log.Fatalln("CreateBucket failed:", err)
	}
}
