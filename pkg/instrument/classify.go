// pkg/instrument/classify.go
package instrument

import (
	"bytes"
	"strings"
)

// ClassSuffix marks entries that are handed to the transformer
const ClassSuffix = ".class"

// Tag is the classification of a processed entry
type Tag int

const (
	// TagDirectory is a directory marker, mirrored in both trees
	TagDirectory Tag = iota
	// TagPassthrough is a non-class file, copied to input/ only
	TagPassthrough
	// TagUnchangedInterface is an interface the transformer left as is
	TagUnchangedInterface
	// TagUnchangedClass is a class the transformer left as is (counted as skipped)
	TagUnchangedClass
	// TagTransformed is a class whose bytecode changed; the only tag written to output/
	TagTransformed

	numTags
)

// String returns the string representation of the tag
func (t Tag) String() string {
	switch t {
	case TagDirectory:
		return "DIRECTORY"
	case TagPassthrough:
		return "NON_CLASS_PASSTHROUGH"
	case TagUnchangedInterface:
		return "UNCHANGED_INTERFACE"
	case TagUnchangedClass:
		return "UNCHANGED_CLASS"
	case TagTransformed:
		return "TRANSFORMED"
	default:
		return "UNKNOWN"
	}
}

// Outcome is the immutable result of one processed entry
type Outcome struct {
	Name        string
	Tag         Tag
	Original    []byte
	Transformed []byte // Same content as Original unless Tag is TagTransformed
	InputBytes  int64  // Bytes written under input/
	OutputBytes int64  // Bytes written under output/
}

// IsClassEntry reports whether name is a class file
func IsClassEntry(name string) bool {
	return strings.HasSuffix(name, ClassSuffix)
}

// Classify decides the outcome of an entry from its name and bytes.
// transformed is ignored for directories and non-class files. isInterface is
// consulted only for unchanged classes; nil treats every class as a non-interface.
func Classify(name string, isDir bool, original, transformed []byte, isInterface InterfaceDetector) Tag {
	if isDir {
		return TagDirectory
	}
	if !IsClassEntry(name) {
		return TagPassthrough
	}
	if bytes.Equal(original, transformed) {
		if isInterface != nil && isInterface(original) {
			return TagUnchangedInterface
		}
		return TagUnchangedClass
	}
	return TagTransformed
}
