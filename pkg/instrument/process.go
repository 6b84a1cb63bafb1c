// pkg/instrument/process.go
package instrument

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/creativeyann17/go-rtinstrument/internal/archive"
	"github.com/creativeyann17/go-rtinstrument/internal/classfile"
	"github.com/creativeyann17/go-rtinstrument/pkg/rtinstrument"
)

// ProgressCallback is called for various progress events.
// During processing it is called from worker goroutines concurrently.
type ProgressCallback func(event ProgressEvent)

// ProgressEvent contains progress information
type ProgressEvent struct {
	Type      EventType
	EntryName string
	Tag       Tag // Valid for EventEntryComplete
	Current   int64
	Total     int64
}

// EventType indicates the type of progress event
type EventType int

const (
	EventStart EventType = iota
	EventEntryComplete
	EventComplete
	EventError
	EventTargetPrepare // Run is about to delete and recreate the target root
	EventTargetReady   // the target root is empty
)

// Process opens the archive, drops blacklisted entries and runs every
// remaining entry through the transformer on opts.MaxThreads workers,
// writing results to the dual tree. It returns once every entry has been
// accounted for. Only setup problems are returned as errors; per-entry
// failures are collected in Result.Failures.
func Process(opts *Options, deps Deps, progressCb ProgressCallback) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if deps.Transformer == nil {
		return nil, ErrTransformerRequired
	}
	if deps.IsInterface == nil {
		deps.IsInterface = classfile.IsInterface
	}
	if deps.Tree == nil {
		deps.Tree = NewDualTree(opts.TargetDir)
	}

	a, err := archive.Open(opts.ArchivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenArchive, err)
	}
	defer a.Close()

	t := &tally{}

	// Filter once up front; blacklisted entries leave no trace at all
	tracker := rtinstrument.NewPathTracker()
	eligible := make([]*archive.Entry, 0, len(a.Entries))
	duplicates := 0
	for _, entry := range a.Entries {
		if deps.Blacklist != nil && deps.Blacklist.IsBlacklisted(entry.Name) {
			continue
		}
		if tracker.CheckDuplicate(entry.Name) {
			duplicates++
			t.failure(&EntryError{Name: entry.Name, Op: OpDuplicate, Err: ErrDuplicateEntry})
			continue
		}
		eligible = append(eligible, entry)
	}
	total := len(eligible) + duplicates

	if progressCb != nil {
		progressCb(ProgressEvent{
			Type:  EventStart,
			Total: int64(total),
		})
	}

	var wg sync.WaitGroup
	entryCh := make(chan *archive.Entry, len(eligible))

	for i := 0; i < opts.MaxThreads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for entry := range entryCh {
				outcome, entryErr := processEntry(entry, deps)
				if entryErr != nil {
					t.failure(entryErr)
					if progressCb != nil {
						progressCb(ProgressEvent{
							Type:      EventError,
							EntryName: entry.Name,
						})
					}
					continue
				}

				t.success(outcome)
				if progressCb != nil {
					progressCb(ProgressEvent{
						Type:      EventEntryComplete,
						EntryName: entry.Name,
						Tag:       outcome.Tag,
					})
				}
			}
		}()
	}

	for _, entry := range eligible {
		entryCh <- entry
	}
	close(entryCh)

	wg.Wait()

	result := t.result(total)

	if progressCb != nil {
		progressCb(ProgressEvent{
			Type:    EventComplete,
			Current: int64(result.EntriesProcessed),
			Total:   int64(total),
		})
	}

	return result, nil
}

// processEntry reads, transforms, classifies and writes a single entry.
// The original bytes reach input/ before the transformer runs, so a class
// that fails to transform still has its input copy. A panic in any step is
// reported as a failure of that step for this entry only.
func processEntry(entry *archive.Entry, deps Deps) (outcome *Outcome, entryErr *EntryError) {
	op := OpRead
	defer func() {
		if r := recover(); r != nil {
			outcome, entryErr = nil, &EntryError{Name: entry.Name, Op: op, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	fail := func(err error) (*Outcome, *EntryError) {
		return nil, &EntryError{Name: entry.Name, Op: op, Err: err}
	}

	if entry.IsDir {
		op = OpMkdir
		if err := deps.Tree.MakeInputDir(entry.Name); err != nil {
			return fail(err)
		}
		if err := deps.Tree.MakeOutputDir(entry.Name); err != nil {
			return fail(err)
		}
		return &Outcome{Name: entry.Name, Tag: TagDirectory}, nil
	}

	original, err := entry.ReadAll()
	if err != nil {
		return fail(err)
	}

	op = OpWriteInput
	inputBytes, err := deps.Tree.WriteInput(entry.Name, original)
	if err != nil {
		return fail(err)
	}

	transformed := original
	if IsClassEntry(entry.Name) {
		op = OpTransform
		transformed, err = transform(deps.Transformer, original)
		if err != nil {
			return fail(err)
		}
	}

	outcome = &Outcome{
		Name:        entry.Name,
		Tag:         Classify(entry.Name, false, original, transformed, deps.IsInterface),
		Original:    original,
		Transformed: transformed,
		InputBytes:  inputBytes,
	}

	if outcome.Tag == TagTransformed {
		op = OpWriteOutput
		outcome.OutputBytes, err = deps.Tree.WriteOutput(entry.Name, transformed)
		if err != nil {
			return fail(err)
		}
	}

	return outcome, nil
}

// transform hands the transformer its own copy of the bytecode, since it may
// rewrite in place, and turns a panic into an error for this entry only.
// Empty output means the transformer left the class unchanged.
func transform(tr Transformer, original []byte) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transformer panic: %v", r)
		}
	}()
	out, err = tr.Transform(bytes.Clone(original))
	if err == nil && len(out) == 0 {
		out = original
	}
	return out, err
}
