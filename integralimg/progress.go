// Copyright 2020 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package integralimg

import (
	"log"
)

// Progress receives one signal for every cell completed by a pass
type Progress interface {
	CompletedPixel()
}

// NopProgress discards progress signals
type NopProgress struct{}

func (NopProgress) CompletedPixel() {}

// CountProgress counts progress signals
type CountProgress struct {
	N int
}

func (c *CountProgress) CompletedPixel() {
	c.N++
}

// LogProgress logs a line each time another Step percent of Total
// cells have been completed.
type LogProgress struct {
	Logger *log.Logger
	Name   string
	Total  int
	Step   int

	done, next int
}

func (l *LogProgress) CompletedPixel() {
	l.done++
	if l.Total <= 0 || l.Logger == nil {
		return
	}
	step := l.Step
	if step <= 0 {
		step = 10
	}
	pct := l.done * 100 / l.Total
	if pct >= l.next {
		l.Logger.Printf("%s: %d%% (%d of %d)\n", l.Name, pct, l.done, l.Total)
		l.next = (pct/step + 1) * step
	}
}

// Reset clears the count so the sink can be reused for another pass
func (l *LogProgress) Reset(name string, total int) {
	l.Name = name
	l.Total = total
	l.done, l.next = 0, 0
}

func progressOrNop(p Progress) Progress {
	if p == nil {
		return NopProgress{}
	}
	return p
}
