package ionsrc

import (
	"fmt"
	"io"
)

// Reporter gates run diagnostics to the coordinating rank. Every rank
// computes identically; only rank 0 writes. A nil *Reporter is a valid
// no-op, so numeric code can be tested without any topology setup.
type Reporter struct {
	Rank int
	W    io.Writer
}

func NewReporter(rank int, w io.Writer) *Reporter {
	return &Reporter{Rank: rank, W: w}
}

// Logf writes a line on rank 0 and is silent everywhere else.
func (r *Reporter) Logf(format string, args ...interface{}) {
	if r == nil || r.W == nil || r.Rank != 0 {
		return
	}
	fmt.Fprintf(r.W, format+"\n", args...)
}
