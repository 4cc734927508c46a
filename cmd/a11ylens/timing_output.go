package main

import (
	"fmt"
	"io"

	"a11ylens/internal/observ"
)

func printPhaseTimings(out io.Writer, report observ.Report) {
	if out == nil || len(report.Phases) == 0 {
		return
	}
	if _, err := fmt.Fprint(out, report.String()); err != nil {
		panic(err)
	}
}
