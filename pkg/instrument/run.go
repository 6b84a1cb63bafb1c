// pkg/instrument/run.go
package instrument

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Run performs a complete instrumentation run: it clears the target root,
// processes the archive and reports elapsed time with the statistics.
// Failing to prepare the target or open the archive is fatal; entry
// failures are not and only show up in the report.
func Run(opts *Options, deps Deps, progressCb ProgressCallback) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if deps.Transformer == nil {
		return nil, ErrTransformerRequired
	}

	if progressCb != nil {
		progressCb(ProgressEvent{Type: EventTargetPrepare, EntryName: opts.TargetDir})
	}
	if err := PrepareTarget(opts.TargetDir); err != nil {
		return nil, err
	}
	if progressCb != nil {
		progressCb(ProgressEvent{Type: EventTargetReady, EntryName: opts.TargetDir})
	}

	started := time.Now()
	result, err := Process(opts, deps, progressCb)
	if err != nil {
		return nil, err
	}

	return &Report{
		Result:      result,
		ArchivePath: opts.ArchivePath,
		TargetDir:   opts.TargetDir,
		Started:     started,
		Elapsed:     time.Since(started),
	}, nil
}

// PrepareTarget recursively deletes dir and recreates it empty.
// The filesystem root and the working directory are never deleted.
func PrepareTarget(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPrepareTarget, dir, err)
	}
	if abs == filepath.VolumeName(abs)+string(filepath.Separator) {
		return fmt.Errorf("%w: %s is the filesystem root", ErrUnsafeTarget, dir)
	}
	if wd, err := os.Getwd(); err == nil && abs == wd {
		return fmt.Errorf("%w: %s is the working directory", ErrUnsafeTarget, dir)
	}

	if err := os.RemoveAll(abs); err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrPrepareTarget, dir, err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrPrepareTarget, dir, err)
	}
	return nil
}
