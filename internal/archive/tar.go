// internal/archive/tar.go
package archive

import (
	"archive/tar"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// tarEntries streams a (possibly compressed) tarball and buffers every regular
// file in memory. A tar stream cannot be read out of order, so this is the
// only place content is read; later per-entry reads are served from memory.
func tarEntries(r io.Reader, format Format) ([]*Entry, error) {
	switch format {
	case FormatTarXZ:
		xzReader, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("create xz reader: %w", err)
		}
		r = xzReader
	case FormatTarZstd:
		decoder, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}
		defer decoder.Close()
		r = decoder
	}

	var entries []*Entry
	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar header: %w", err)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			name := cleanName(header.Name, true)
			if name == "" {
				continue
			}
			entries = append(entries, &Entry{Name: name, IsDir: true})

		case tar.TypeReg:
			name := cleanName(header.Name, false)
			data, err := io.ReadAll(tr)
			if err != nil {
				return nil, fmt.Errorf("%s: read: %w", name, err)
			}
			entries = append(entries, NewFileEntry(name, data))

		default:
			// Links and special files carry no bytecode
		}
	}

	return entries, nil
}
