// Package scanner walks a directory tree and feeds every regular file into
// an analysis.State. Traversal is sequential: fastwalk runs with a single
// worker, so the state has exactly one writer.
package scanner

import (
	"github.com/jamesainslie/sift/pkg/sift/types"
)

// DefaultRoot is the directory scanned when none is given.
const DefaultRoot = "."

// Options configures the scanner behavior.
type Options struct {
	// Root is the starting directory for the scan.
	Root string

	// OnProgress is called periodically with scan progress updates.
	OnProgress func(types.ScanProgress)
}

// DefaultOptions returns options scanning the working directory.
func DefaultOptions() Options {
	return Options{
		Root: DefaultRoot,
	}
}

// Validate applies defaults for unset values.
func (o *Options) Validate() error {
	if o.Root == "" {
		o.Root = DefaultRoot
	}
	return nil
}
