// internal/archive/zip.go
package archive

import (
	"archive/zip"
	"io"
	"strings"
)

// jmodClassesSection holds the class files of a jmod; conf/, lib/, legal/ and
// the other sections are not on the class path.
const jmodClassesSection = "classes/"

// zipEntries lists a zip payload starting at offset within r. When section is
// set, only names below it are listed and the prefix is removed.
// zip.File.Open reads through io.ReaderAt, so entries may be opened concurrently.
func zipEntries(r io.ReaderAt, offset, size int64, section string) ([]*Entry, error) {
	zr, err := zip.NewReader(io.NewSectionReader(r, offset, size-offset), size-offset)
	if err != nil {
		return nil, err
	}

	entries := make([]*Entry, 0, len(zr.File))
	for _, zf := range zr.File {
		isDir := zf.Mode().IsDir()
		name := cleanName(zf.Name, isDir)
		if section != "" {
			var ok bool
			if name, ok = strings.CutPrefix(name, section); !ok {
				continue
			}
		}
		if name == "" {
			continue
		}

		entry := &Entry{
			Name:  name,
			IsDir: isDir,
		}
		if !isDir {
			entry.Size = zf.UncompressedSize64
			entry.open = zf.Open
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
