// pkg/instrument/progress.go
package instrument

import (
	"fmt"
	"strings"
	"time"

	"github.com/creativeyann17/go-rtinstrument/pkg/rtinstrument"
	"github.com/vbauerster/mpb/v8"
)

// ProgressBarCallback creates a progress callback that displays a progress bar
// Returns the callback function and the progress container (call Wait() after the run)
func ProgressBarCallback() (ProgressCallback, *mpb.Progress) {
	genericCb, progress := rtinstrument.ProgressBarCallback()

	// Wrap the generic callback to adapt instrument.ProgressEvent to rtinstrument.ProgressEvent
	callback := func(event ProgressEvent) {
		var eventType rtinstrument.EventType
		switch event.Type {
		case EventStart:
			eventType = rtinstrument.EventStart
		case EventEntryComplete:
			eventType = rtinstrument.EventEntryComplete
		case EventComplete:
			eventType = rtinstrument.EventComplete
		case EventError:
			eventType = rtinstrument.EventError
		default:
			return
		}
		genericCb(rtinstrument.ProgressEvent{
			Type:      eventType,
			EntryName: event.EntryName,
			Current:   event.Current,
			Total:     event.Total,
		})
	}

	return callback, progress
}

// FormatSummary formats a run report into a human-readable summary string.
// Failures are not listed; print Report.Failures separately.
func FormatSummary(report *Report) string {
	var sb strings.Builder

	sb.WriteString(rtinstrument.FormatSummary(report.Result, rtinstrument.OperationInstrument, false))

	r := report.Result
	fmt.Fprintf(&sb, "  Directories:       %d\n", r.Directories)
	fmt.Fprintf(&sb, "  Non-class files:   %d\n", r.Passthrough)
	fmt.Fprintf(&sb, "  Classes:           %d\n", r.Classes())
	fmt.Fprintf(&sb, "    Instrumented:    %d\n", r.Instrumented())
	fmt.Fprintf(&sb, "    Interfaces:      %d (unchanged)\n", r.UnchangedInterfaces)
	fmt.Fprintf(&sb, "    Skipped:         %d (unchanged)\n", r.Skipped())
	if considered := r.Instrumented() + r.Skipped(); considered > 0 {
		fmt.Fprintf(&sb, "  Coverage:          %.1f%%\n", float64(r.Instrumented())*100/float64(considered))
	}
	fmt.Fprintf(&sb, "  Input tree:        %s\n", rtinstrument.FormatSize(r.InputBytes))
	fmt.Fprintf(&sb, "  Output tree:       %s\n", rtinstrument.FormatSize(r.OutputBytes))
	fmt.Fprintf(&sb, "  Elapsed:           %s\n", report.Elapsed.Round(10*time.Millisecond))

	return sb.String()
}
