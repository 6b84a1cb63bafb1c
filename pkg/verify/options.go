// pkg/verify/options.go
package verify

import "github.com/creativeyann17/go-rtinstrument/pkg/instrument"

// Options configures the verify operation
type Options struct {
	// ArchivePath is the runtime archive the tree was produced from (required)
	ArchivePath string

	// TargetDir is the target root holding input/ and output/
	// Default: instrument.DefaultTargetDir
	TargetDir string

	// Blacklist must match the one used for the run; nil excludes nothing
	Blacklist instrument.Blacklist

	// Verbose enables detailed logging during verification
	Verbose bool

	// Quiet suppresses all output except errors
	Quiet bool
}

// Validate checks if options are valid
func (o *Options) Validate() error {
	if o.ArchivePath == "" {
		return ErrArchiveRequired
	}
	if o.TargetDir == "" {
		o.TargetDir = instrument.DefaultTargetDir
	}
	if o.Quiet {
		o.Verbose = false
	}
	return nil
}
