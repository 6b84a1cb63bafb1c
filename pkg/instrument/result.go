// pkg/instrument/result.go
package instrument

import (
	"sync"
	"sync/atomic"
	"time"
)

// Result contains statistics about a processing pass
type Result struct {
	// Entries left after the blacklist filter (duplicates included)
	EntriesTotal int

	// Entries that completed without error
	EntriesProcessed int

	// Completed entries by classification
	Directories         int
	Passthrough         int
	UnchangedInterfaces int
	UnchangedClasses    int
	Transformed         int

	// Entries recorded in Failures
	Failed int

	// Bytes written to each tree
	InputBytes  uint64
	OutputBytes uint64

	// Per-entry failures (non-fatal), in no particular order
	Failures []*EntryError
}

// Count returns the number of completed entries with the given tag
func (r *Result) Count(tag Tag) int {
	switch tag {
	case TagDirectory:
		return r.Directories
	case TagPassthrough:
		return r.Passthrough
	case TagUnchangedInterface:
		return r.UnchangedInterfaces
	case TagUnchangedClass:
		return r.UnchangedClasses
	case TagTransformed:
		return r.Transformed
	}
	return 0
}

// Skipped returns the number of classes the transformer did not change.
// Interfaces are tracked separately and are not counted as skipped.
func (r *Result) Skipped() int {
	return r.UnchangedClasses
}

// Instrumented returns the number of classes with changed bytecode
func (r *Result) Instrumented() int {
	return r.Transformed
}

// Classes returns the number of class entries that completed
func (r *Result) Classes() int {
	return r.UnchangedInterfaces + r.UnchangedClasses + r.Transformed
}

// Success returns true if every entry was processed without errors
func (r *Result) Success() bool {
	return len(r.Failures) == 0 && r.EntriesProcessed == r.EntriesTotal
}

// GetEntriesTotal returns total entries (interface method)
func (r *Result) GetEntriesTotal() int {
	return r.EntriesTotal
}

// GetEntriesProcessed returns processed entries (interface method)
func (r *Result) GetEntriesProcessed() int {
	return r.EntriesProcessed
}

// GetErrors returns the failures as errors (interface method)
func (r *Result) GetErrors() []error {
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errs
}

// Report is the outcome of a full Run
type Report struct {
	*Result

	ArchivePath string
	TargetDir   string
	Started     time.Time
	Elapsed     time.Duration
}

// tally is the shared state workers update while a pass is running.
// Counters are atomic; the failure list is guarded by failuresMu.
type tally struct {
	processed   atomic.Uint64
	failed      atomic.Uint64
	tags        [numTags]atomic.Uint64
	inputBytes  atomic.Uint64
	outputBytes atomic.Uint64

	failuresMu sync.Mutex
	failures   []*EntryError
}

func (t *tally) success(o *Outcome) {
	t.tags[o.Tag].Add(1)
	t.inputBytes.Add(uint64(o.InputBytes))
	t.outputBytes.Add(uint64(o.OutputBytes))
	t.processed.Add(1)
}

func (t *tally) failure(err *EntryError) {
	t.failuresMu.Lock()
	t.failures = append(t.failures, err)
	t.failuresMu.Unlock()
	t.failed.Add(1)
}

// result snapshots the tally; call only after all workers have finished
func (t *tally) result(total int) *Result {
	t.failuresMu.Lock()
	defer t.failuresMu.Unlock()

	return &Result{
		EntriesTotal:        total,
		EntriesProcessed:    int(t.processed.Load()),
		Directories:         int(t.tags[TagDirectory].Load()),
		Passthrough:         int(t.tags[TagPassthrough].Load()),
		UnchangedInterfaces: int(t.tags[TagUnchangedInterface].Load()),
		UnchangedClasses:    int(t.tags[TagUnchangedClass].Load()),
		Transformed:         int(t.tags[TagTransformed].Load()),
		Failed:              int(t.failed.Load()),
		InputBytes:          t.inputBytes.Load(),
		OutputBytes:         t.outputBytes.Load(),
		Failures:            append([]*EntryError(nil), t.failures...),
	}
}
