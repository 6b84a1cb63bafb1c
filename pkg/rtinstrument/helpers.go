// pkg/rtinstrument/helpers.go
package rtinstrument

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// OperationType indicates which command produced a result
type OperationType string

const (
	OperationInstrument OperationType = "instrument"
	OperationVerify     OperationType = "verify"
)

// ProgressEvent is a generic progress event shared by instrument and verify
type ProgressEvent struct {
	Type      EventType
	EntryName string
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
)

// Result is the common view of instrument and verify results
type Result interface {
	GetEntriesTotal() int
	GetEntriesProcessed() int
	GetErrors() []error
	Success() bool
}

// ProgressBarCallback creates a progress callback that displays an overall bar
// with the most recently finished entry next to it. The callback may be called
// from several goroutines at once.
// Returns the callback function and the progress container (call Wait() after the operation)
func ProgressBarCallback() (func(ProgressEvent), *mpb.Progress) {
	progress := mpb.New(
		mpb.WithWidth(60),
		mpb.WithRefreshRate(150*time.Millisecond),
	)

	var overallBar *mpb.Bar
	var lastEntry atomic.Value // string

	callback := func(event ProgressEvent) {
		switch event.Type {
		case EventStart:
			lastEntry.Store("")
			overallBar = progress.AddBar(event.Total,
				mpb.PrependDecorators(
					decor.Name("Entries", decor.WC{C: decor.DindentRight | decor.DextraSpace}),
					decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
				),
				mpb.AppendDecorators(
					decor.Percentage(decor.WC{W: 5}),
					decor.Any(func(decor.Statistics) string {
						name, _ := lastEntry.Load().(string)
						return " " + TruncateLeft(name, 40)
					}),
				),
			)

		case EventEntryComplete, EventError:
			lastEntry.Store(event.EntryName)
			if overallBar != nil {
				overallBar.Increment()
			}

		case EventComplete:
			// Force completion so Wait() returns even if some entries were never counted
			if overallBar != nil {
				overallBar.SetTotal(-1, true)
			}
		}
	}

	return callback, progress
}

// FormatSummary formats a result into a human-readable summary string.
// Errors are listed first when listErrors is set.
func FormatSummary(result Result, operation OperationType, listErrors bool) string {
	var sb strings.Builder

	errors := result.GetErrors()
	if listErrors && len(errors) > 0 {
		fmt.Fprintf(&sb, "Completed with %d errors:\n", len(errors))
		for _, e := range errors {
			fmt.Fprintf(&sb, "  - %v\n", e)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Summary:\n")
	switch operation {
	case OperationVerify:
		fmt.Fprintf(&sb, "  Entries verified:  %d / %d\n", result.GetEntriesProcessed(), result.GetEntriesTotal())
	default:
		fmt.Fprintf(&sb, "  Entries processed: %d / %d\n", result.GetEntriesProcessed(), result.GetEntriesTotal())
	}
	if len(errors) > 0 {
		fmt.Fprintf(&sb, "  Errors:            %d\n", len(errors))
	}

	return sb.String()
}

// FormatSize formats bytes into human-readable string
func FormatSize(bytes uint64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
		TB = 1024 * GB
	)

	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.2f TB", float64(bytes)/float64(TB))
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// TruncateLeft truncates a path from the left to fit maxLen, preserving the filename
func TruncateLeft(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}

	// Try to preserve at least the filename
	filename := filepath.Base(path)
	if len(filename) >= maxLen-3 {
		return "..." + filename[len(filename)-(maxLen-3):]
	}

	// Truncate from left with ellipsis
	return "..." + path[len(path)-(maxLen-3):]
}
