// Package refresh drives the scan-and-render cycle on a fixed period.
//
// A Loop owns its surface. Cycles run on the goroutine that called Run, one
// after the other; ticks that arrive while a cycle is running are dropped by
// the ticker, so a slow cycle delays the next one instead of overlapping it.
package refresh
