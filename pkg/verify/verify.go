// pkg/verify/verify.go
package verify

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"

	"github.com/creativeyann17/go-rtinstrument/internal/archive"
	"github.com/creativeyann17/go-rtinstrument/pkg/instrument"
	"github.com/creativeyann17/go-rtinstrument/pkg/rtinstrument"
)

// ProgressCallback is called for progress updates during verification
type ProgressCallback func(event ProgressEvent)

// ProgressEvent contains progress information
type ProgressEvent struct {
	Type      EventType
	EntryName string
	Current   int
	Total     int
	Message   string
}

// EventType indicates the type of progress event
type EventType int

const (
	EventStart EventType = iota
	EventEntryVerify
	EventComplete
	EventError
)

// Verify re-reads the archive and checks the target tree against it:
// every non-blacklisted file has an identical copy under input/, directories
// are mirrored, blacklisted entries are absent, and output/ only holds class
// files whose bytes differ from the original.
func Verify(opts *Options, progressCb ProgressCallback) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if info, err := os.Stat(opts.TargetDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", opts.TargetDir, ErrTargetMissing)
	}

	a, err := archive.Open(opts.ArchivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer a.Close()

	result := &Result{
		ArchivePath: opts.ArchivePath,
		TargetDir:   opts.TargetDir,
	}
	tree := instrument.NewDualTree(opts.TargetDir)

	// Relative slash paths below input/ or output/ accounted for by an entry.
	// Blacklisted names map to false: their presence is reported once, here.
	known := make(map[string]bool, len(a.Entries))

	// Split entries the same way a run does; duplicates are checked once
	tracker := rtinstrument.NewPathTracker()
	var eligible []*archive.Entry
	for _, entry := range a.Entries {
		if opts.Blacklist != nil && opts.Blacklist.IsBlacklisted(entry.Name) {
			result.Blacklisted++
			if !entry.IsDir {
				known[entry.Name] = false
				checkAbsent(tree, entry.Name, result)
			}
			continue
		}
		if tracker.CheckDuplicate(entry.Name) {
			continue
		}
		eligible = append(eligible, entry)
	}
	result.EntriesTotal = len(eligible)

	if progressCb != nil {
		progressCb(ProgressEvent{
			Type:    EventStart,
			Total:   len(eligible),
			Message: fmt.Sprintf("Verifying %d entries", len(eligible)),
		})
	}

	for i, entry := range eligible {
		errCount := len(result.Errors)
		if entry.IsDir {
			verifyDir(tree, entry, result)
		} else {
			known[entry.Name] = true
			verifyFile(tree, entry, result)
		}

		if len(result.Errors) == errCount {
			result.EntriesVerified++
		} else if progressCb != nil {
			progressCb(ProgressEvent{
				Type:      EventError,
				EntryName: entry.Name,
			})
		}

		if progressCb != nil {
			progressCb(ProgressEvent{
				Type:      EventEntryVerify,
				EntryName: entry.Name,
				Current:   i + 1,
				Total:     len(eligible),
			})
		}
	}

	for _, sub := range []string{instrument.InputDirName, instrument.OutputDirName} {
		if err := findUnexpected(filepath.Join(opts.TargetDir, sub), sub, known, result); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("walk %s: %w", sub, err))
		}
	}

	if progressCb != nil {
		progressCb(ProgressEvent{
			Type:    EventComplete,
			Current: result.EntriesVerified,
			Total:   result.EntriesTotal,
		})
	}

	return result, nil
}

func verifyDir(tree *instrument.DualTree, entry *archive.Entry, result *Result) {
	for _, resolve := range []func(string) (string, error){tree.InputPath, tree.OutputPath} {
		path, err := resolve(entry.Name)
		if err != nil {
			result.Errors = append(result.Errors, err)
			return
		}
		info, err := os.Stat(path)
		if err != nil {
			result.Missing++
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", entry.Name, ErrMissing))
			return
		}
		if !info.IsDir() {
			result.Mismatched++
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", entry.Name, ErrNotDirectory))
			return
		}
	}
	result.Directories++
}

func verifyFile(tree *instrument.DualTree, entry *archive.Entry, result *Result) {
	want, err := entryDigest(entry)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("%s: read archive entry: %w", entry.Name, err))
		return
	}

	inputPath, err := tree.InputPath(entry.Name)
	if err != nil {
		result.Errors = append(result.Errors, err)
		return
	}
	got, err := fileDigest(inputPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		result.Missing++
		result.Errors = append(result.Errors, fmt.Errorf("%s: %w", entry.Name, ErrMissing))
		return
	case err != nil:
		result.Errors = append(result.Errors, fmt.Errorf("%s: %w", entry.Name, err))
		return
	case got != want:
		result.Mismatched++
		result.Errors = append(result.Errors, fmt.Errorf("%s: %w", entry.Name, ErrContentMismatch))
		return
	}
	result.InputFiles++

	outputPath, err := tree.OutputPath(entry.Name)
	if err != nil {
		result.Errors = append(result.Errors, err)
		return
	}
	if _, err := os.Stat(outputPath); errors.Is(err, os.ErrNotExist) {
		return
	}

	if !instrument.IsClassEntry(entry.Name) {
		result.Unexpected++
		result.Errors = append(result.Errors, fmt.Errorf("%s: %w", entry.Name, ErrNonClassOutput))
		return
	}
	transformed, err := fileDigest(outputPath)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("%s: %w", entry.Name, err))
		return
	}
	if transformed == want {
		result.Unexpected++
		result.Errors = append(result.Errors, fmt.Errorf("%s: %w", entry.Name, ErrUnchangedOutput))
		return
	}
	result.OutputFiles++
}

func checkAbsent(tree *instrument.DualTree, name string, result *Result) {
	for _, resolve := range []func(string) (string, error){tree.InputPath, tree.OutputPath} {
		path, err := resolve(name)
		if err != nil {
			continue
		}
		if _, err := os.Lstat(path); err == nil {
			result.Unexpected++
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", name, ErrBlacklistedPresent))
			return
		}
	}
}

// findUnexpected reports regular files below root that match no archive entry
func findUnexpected(root, label string, known map[string]bool, result *Result) error {
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if _, ok := known[rel]; !ok {
			result.Unexpected++
			result.Errors = append(result.Errors, fmt.Errorf("%s/%s: %w", label, rel, ErrUnexpectedFile))
		}
		return nil
	})
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func entryDigest(entry *archive.Entry) ([32]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return [32]byte{}, err
	}
	defer rc.Close()
	return digest(rc)
}

func fileDigest(path string) ([32]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return [32]byte{}, err
	}
	defer f.Close()
	return digest(f)
}

// digest computes the BLAKE3-256 hash of a stream
func digest(r io.Reader) ([32]byte, error) {
	var sum [32]byte

	buf := getReadBuffer()
	defer putReadBuffer(buf)

	h := blake3.New()
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return sum, err
	}
	copy(sum[:], h.Sum(nil))
	return sum, nil
}
