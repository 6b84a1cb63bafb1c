// pkg/verify/errors.go
package verify

import "errors"

var (
	// ErrArchiveRequired is returned when archive path is not specified
	ErrArchiveRequired = errors.New("archive path is required")

	// ErrTargetMissing is returned when the target root does not exist
	ErrTargetMissing = errors.New("target directory does not exist")

	// ErrMissing is reported when an entry has no mirror in the target tree
	ErrMissing = errors.New("missing from target tree")

	// ErrContentMismatch is reported when an input copy differs from the archive entry
	ErrContentMismatch = errors.New("content differs from archive")

	// ErrNotDirectory is reported when a directory entry is mirrored as something else
	ErrNotDirectory = errors.New("not a directory")

	// ErrBlacklistedPresent is reported when a blacklisted entry was written
	ErrBlacklistedPresent = errors.New("blacklisted entry present")

	// ErrUnchangedOutput is reported when output/ holds bytes identical to the original
	ErrUnchangedOutput = errors.New("output identical to original")

	// ErrNonClassOutput is reported when output/ holds a file that is not a class
	ErrNonClassOutput = errors.New("non-class file in output tree")

	// ErrUnexpectedFile is reported for files that match no archive entry
	ErrUnexpectedFile = errors.New("file matches no archive entry")
)
