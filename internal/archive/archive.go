// internal/archive/archive.go
package archive

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// Entry is a single named record of an archive: a directory marker or a file.
// Entries are read-only; content is streamed on demand through Open.
type Entry struct {
	Name  string // Slash separated path inside the archive, directories end with "/"
	IsDir bool
	Size  uint64 // Uncompressed size, 0 for directories

	open func() (io.ReadCloser, error)
}

// NewFileEntry creates an in-memory file entry
func NewFileEntry(name string, data []byte) *Entry {
	return &Entry{
		Name: cleanName(name, false),
		Size: uint64(len(data)),
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// NewDirEntry creates a directory entry
func NewDirEntry(name string) *Entry {
	return &Entry{Name: cleanName(name, true), IsDir: true}
}

// Open returns a stream over the entry content.
// It is safe to open different entries from several goroutines.
func (e *Entry) Open() (io.ReadCloser, error) {
	if e.IsDir {
		return nil, fmt.Errorf("%s: is a directory", e.Name)
	}
	if e.open == nil {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}
	return e.open()
}

// maxPrealloc bounds the buffer reserved up front from the declared entry
// size, which comes from the archive headers and may be corrupt.
const maxPrealloc = 64 << 20

// ReadAll reads the whole entry content
func (e *Entry) ReadAll() ([]byte, error) {
	rc, err := e.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	buf := bytes.NewBuffer(make([]byte, 0, min(e.Size, maxPrealloc)))
	if _, err := io.Copy(buf, rc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Archive is an opened archive whose entry list has been materialized once.
type Archive struct {
	Path    string
	Format  Format
	Entries []*Entry

	closer io.Closer
}

// Open detects the archive format and lists its entries.
// A jmod only contributes its classes/ section, with the prefix removed, so
// entry names match the ones of rt.jar.
// For zip based formats the file stays open until Close; tar based formats
// are streamed fully into memory here and the file is closed immediately.
func Open(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat archive: %w", err)
	}

	magic := make([]byte, MagicSize)
	n, err := io.ReadFull(f, magic)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		f.Close()
		return nil, fmt.Errorf("read magic: %w", err)
	}

	a := &Archive{
		Path:   path,
		Format: DetectFormat(magic[:n]),
	}

	switch a.Format {
	case FormatZIP:
		a.Entries, err = zipEntries(f, 0, stat.Size(), "")
		a.closer = f
	case FormatJMOD:
		a.Entries, err = zipEntries(f, int64(len(jmodMagic)), stat.Size(), jmodClassesSection)
		a.closer = f
	case FormatTar, FormatTarXZ, FormatTarZstd:
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			f.Close()
			return nil, fmt.Errorf("seek to start: %w", err)
		}
		a.Entries, err = tarEntries(f, a.Format)
		f.Close()
	default:
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}

	if err != nil {
		if a.closer != nil {
			a.closer.Close()
		}
		return nil, fmt.Errorf("list %s entries: %w", a.Format, err)
	}

	return a, nil
}

// Close releases the underlying file, if any
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

// cleanName normalizes an archive path: no leading "./" or "/", and a
// trailing "/" for directories.
func cleanName(name string, dir bool) string {
	name = strings.TrimPrefix(name, "./")
	name = strings.TrimLeft(name, "/")
	if dir && name != "" && !strings.HasSuffix(name, "/") {
		name += "/"
	}
	return name
}
