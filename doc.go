// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

/*
The boxstats package contains tools for computing local statistics of
images and volumes with summed-area tables, along with the storage,
graphing and PDF output used by its commands.

Introduction

A summed-area table, or integral image, holds at each position the
sum of every input value at or before it along all axes. Once it has
been built, the sum of any axis-aligned box of the input can be found
from the 2^D corners of the box, whatever its size, so a box mean or
box standard deviation costs the same for a radius of 1 or 100. The
integralimg package builds these tables for grids of any number of
dimensions, and answers mean and sigma queries over them, treating
windows which go past the edge of the input as cropped to it.

Commands

The boxfilter command writes the local mean or local standard deviation
of an image for one or more radii:
  boxfilter -r 1,5,20 -s sigma page.png out

It can also graph the statistics along one row of the image, and
collect the filtered images into a PDF:
  boxfilter -r 5,20 -graph 100 -pdf out.pdf page.png out

Paths beginning with s3:// are downloaded from, and uploaded to, S3,
using the AWS credentials in ~/.aws/credentials.

The boxvol command treats a series of frames as a 3-D volume, so that
the box extends across neighbouring frames as well as across each one:
  boxvol -r 2,2,1 out frame1.png frame2.png frame3.png

The preproc and preprocmulti commands binarize page images with
Sauvola's algorithm, using the integral images to find the mean and
standard deviation around each pixel, and wipe the dark areas outside
of the text. These are useful as a first step before OCR.

All of the commands give information on what they do and how they
work with the '-h' flag.
*/
package boxstats
