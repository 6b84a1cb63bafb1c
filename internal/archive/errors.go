// internal/archive/errors.go
package archive

import "errors"

var (
	// ErrUnknownFormat is returned when the archive magic bytes match no supported format
	ErrUnknownFormat = errors.New("unsupported archive format")

	// ErrJavaHomeUnset is returned when no runtime archive can be located because JAVA_HOME is empty
	ErrJavaHomeUnset = errors.New("JAVA_HOME is not set")

	// ErrRuntimeNotFound is returned when JAVA_HOME holds no known runtime archive
	ErrRuntimeNotFound = errors.New("no runtime archive found")
)
