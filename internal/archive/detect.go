// internal/archive/detect.go
package archive

import "bytes"

// Format represents the detected archive format
type Format int

const (
	FormatUnknown Format = iota
	FormatZIP
	FormatJMOD
	FormatTar
	FormatTarXZ
	FormatTarZstd
)

// MagicSize is the number of leading bytes needed to detect every format.
// The tar "ustar" marker sits at offset 257.
const MagicSize = 512

// jmodMagic prefixes the zip payload of a .jmod file
var jmodMagic = []byte{'J', 'M', 0x01, 0x00}

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatZIP:
		return "ZIP"
	case FormatJMOD:
		return "JMOD"
	case FormatTar:
		return "TAR"
	case FormatTarXZ:
		return "TAR.XZ"
	case FormatTarZstd:
		return "TAR.ZST"
	default:
		return "UNKNOWN"
	}
}

// DetectFormat detects the archive format from magic bytes.
// Short inputs are fine; formats whose marker lies past the end are not reported.
func DetectFormat(magic []byte) Format {
	switch {
	case IsZIP(magic):
		return FormatZIP
	case IsJMOD(magic):
		return FormatJMOD
	case IsXZ(magic):
		return FormatTarXZ
	case IsZstd(magic):
		return FormatTarZstd
	case IsTar(magic):
		return FormatTar
	}
	return FormatUnknown
}

// IsZIP returns true if the magic bytes indicate a ZIP file (jar files are zips)
func IsZIP(magic []byte) bool {
	return len(magic) >= 2 && magic[0] == 'P' && magic[1] == 'K'
}

// IsJMOD returns true if the magic bytes indicate a JDK module file
func IsJMOD(magic []byte) bool {
	return bytes.HasPrefix(magic, jmodMagic)
}

// IsXZ returns true if the magic bytes indicate an XZ file
func IsXZ(magic []byte) bool {
	return len(magic) >= 6 &&
		magic[0] == 0xFD && magic[1] == '7' && magic[2] == 'z' &&
		magic[3] == 'X' && magic[4] == 'Z' && magic[5] == 0x00
}

// IsZstd returns true if the magic bytes indicate a zstd frame
func IsZstd(magic []byte) bool {
	return len(magic) >= 4 &&
		magic[0] == 0x28 && magic[1] == 0xB5 && magic[2] == 0x2F && magic[3] == 0xFD
}

// IsTar returns true if the magic bytes carry a POSIX or GNU tar header
func IsTar(magic []byte) bool {
	return len(magic) >= 262 && string(magic[257:262]) == "ustar"
}
