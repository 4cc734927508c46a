// Package batch inspects every snapshot file of a directory tree, using a
// bounded pool of workers.
package batch
