// pkg/instrument/options.go
package instrument

import (
	"runtime"
)

// DefaultTargetDir is the target root used when none is given
const DefaultTargetDir = "instrumented_java_rt"

// Options configures an instrumentation run
type Options struct {
	// Runtime archive to instrument (rt.jar, *.jmod, or a class tarball)
	ArchivePath string

	// Target root; receives the input/ and output/ trees.
	// Run deletes and recreates it.
	TargetDir string

	// Maximum number of concurrent workers
	// Default: runtime.NumCPU()
	MaxThreads int
}

// DefaultOptions returns options with sensible defaults
func DefaultOptions() *Options {
	return &Options{
		TargetDir:  DefaultTargetDir,
		MaxThreads: runtime.NumCPU(),
	}
}

// Validate checks if options are valid
func (o *Options) Validate() error {
	if o.ArchivePath == "" {
		return ErrArchiveRequired
	}
	if o.TargetDir == "" {
		o.TargetDir = DefaultTargetDir
	}
	if o.MaxThreads <= 0 {
		o.MaxThreads = runtime.NumCPU()
	}
	return nil
}
