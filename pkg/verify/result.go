// pkg/verify/result.go
package verify

import (
	"fmt"
	"strings"

	"github.com/creativeyann17/go-rtinstrument/pkg/rtinstrument"
)

// Result contains verification results for a target tree
type Result struct {
	ArchivePath string
	TargetDir   string

	// Entries left after the blacklist filter
	EntriesTotal int
	// Entries that passed every check
	EntriesVerified int

	Directories int // Directory entries mirrored in both trees
	InputFiles  int // input/ copies identical to the archive
	OutputFiles int // output/ files holding changed class bytecode
	Blacklisted int // Blacklisted entries (checked for absence)

	Missing    int // Entries without an input/ copy
	Mismatched int // input/ copies differing from the archive
	Unexpected int // Files matching no archive entry, or output/ files that should not exist

	// Errors encountered during verification
	Errors []error
}

// IsValid returns true if the tree satisfies the layout invariants
func (r *Result) IsValid() bool {
	return len(r.Errors) == 0
}

// Success returns true if every entry verified without errors
func (r *Result) Success() bool {
	return r.IsValid() && r.EntriesVerified == r.EntriesTotal
}

// GetEntriesTotal returns total entries (interface method)
func (r *Result) GetEntriesTotal() int {
	return r.EntriesTotal
}

// GetEntriesProcessed returns verified entries (interface method)
func (r *Result) GetEntriesProcessed() int {
	return r.EntriesVerified
}

// GetErrors returns the error list (interface method)
func (r *Result) GetErrors() []error {
	return r.Errors
}

// Summary formats the result into a human-readable string
func (r *Result) Summary() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Archive: %s\n", r.ArchivePath)
	fmt.Fprintf(&sb, "Target:  %s\n\n", r.TargetDir)

	sb.WriteString(rtinstrument.FormatSummary(r, rtinstrument.OperationVerify, true))
	fmt.Fprintf(&sb, "  Directories:       %d\n", r.Directories)
	fmt.Fprintf(&sb, "  Input files:       %d\n", r.InputFiles)
	fmt.Fprintf(&sb, "  Output files:      %d\n", r.OutputFiles)
	fmt.Fprintf(&sb, "  Blacklisted:       %d\n", r.Blacklisted)
	if r.Missing > 0 {
		fmt.Fprintf(&sb, "  Missing:           %d\n", r.Missing)
	}
	if r.Mismatched > 0 {
		fmt.Fprintf(&sb, "  Mismatched:        %d\n", r.Mismatched)
	}
	if r.Unexpected > 0 {
		fmt.Fprintf(&sb, "  Unexpected:        %d\n", r.Unexpected)
	}

	if r.IsValid() {
		sb.WriteString("\nTree is VALID\n")
	} else {
		sb.WriteString("\nTree is INVALID\n")
	}

	return sb.String()
}
