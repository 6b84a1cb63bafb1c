// pkg/instrument/tree.go
package instrument

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/creativeyann17/go-rtinstrument/pkg/rtinstrument"
)

// Layout directory names below the target root
const (
	InputDirName  = "input"
	OutputDirName = "output"
)

// Tree materializes entries in the two mirrored trees.
// Implementations must be safe for concurrent use, and creating a directory
// that already exists must not be an error.
type Tree interface {
	WriteInput(name string, data []byte) (int64, error)
	WriteOutput(name string, data []byte) (int64, error)
	MakeInputDir(name string) error
	MakeOutputDir(name string) error
}

// DualTree is the on-disk Tree: <root>/input/<name> and <root>/output/<name>
type DualTree struct {
	Root      string
	inputDir  string
	outputDir string
}

// NewDualTree creates a DualTree rooted at root. Nothing is created until the first write.
func NewDualTree(root string) *DualTree {
	return &DualTree{
		Root:      root,
		inputDir:  filepath.Join(root, InputDirName),
		outputDir: filepath.Join(root, OutputDirName),
	}
}

// InputPath returns where name lands in the input tree
func (t *DualTree) InputPath(name string) (string, error) {
	return resolveEntryPath(t.inputDir, name)
}

// OutputPath returns where name lands in the output tree
func (t *DualTree) OutputPath(name string) (string, error) {
	return resolveEntryPath(t.outputDir, name)
}

// WriteInput stores the original bytes of an entry
func (t *DualTree) WriteInput(name string, data []byte) (int64, error) {
	dest, err := t.InputPath(name)
	if err != nil {
		return 0, err
	}
	return writeFile(dest, data)
}

// WriteOutput stores the transformed bytes of an entry
func (t *DualTree) WriteOutput(name string, data []byte) (int64, error) {
	dest, err := t.OutputPath(name)
	if err != nil {
		return 0, err
	}
	return writeFile(dest, data)
}

// MakeInputDir mirrors a directory entry in the input tree
func (t *DualTree) MakeInputDir(name string) error {
	dir, err := t.InputPath(name)
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// MakeOutputDir mirrors a directory entry in the output tree
func (t *DualTree) MakeOutputDir(name string) error {
	dir, err := t.OutputPath(name)
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// resolveEntryPath joins a slash separated entry name below base,
// rejecting names that are absolute or climb out with "..".
func resolveEntryPath(base, name string) (string, error) {
	local := filepath.FromSlash(name)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("%q: %w", name, ErrUnsafeEntryName)
	}
	return filepath.Join(base, local), nil
}

// writeFile writes data to a temp file next to dest and renames it into
// place, so dest either holds the full content or does not exist.
func writeFile(dest string, data []byte) (written int64, err error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".tmp-*")
	if err != nil {
		return 0, err
	}
	tmpPath := tmp.Name()
	closed := false
	defer func() {
		if !closed {
			tmp.Close()
		}
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	cw := &rtinstrument.CountingWriter{Writer: tmp}
	if _, err = cw.Write(data); err != nil {
		return 0, err
	}
	if err = tmp.Chmod(0644); err != nil {
		return 0, err
	}
	closed = true
	if err = tmp.Close(); err != nil {
		return 0, err
	}
	if err = os.Rename(tmpPath, dest); err != nil {
		return 0, err
	}

	return cw.Count, nil
}
