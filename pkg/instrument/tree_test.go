// pkg/instrument/tree_test.go
package instrument

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestDualTree_Write(t *testing.T) {
	root := t.TempDir()
	tree := NewDualTree(root)

	n, err := tree.WriteInput("java/lang/Object.class", []byte("original"))
	if err != nil {
		t.Fatalf("WriteInput failed: %v", err)
	}
	if n != int64(len("original")) {
		t.Errorf("WriteInput returned %d bytes, want %d", n, len("original"))
	}

	if _, err := tree.WriteOutput("java/lang/Object.class", []byte("transformed")); err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}

	assertFile(t, filepath.Join(root, "input", "java", "lang", "Object.class"), "original")
	assertFile(t, filepath.Join(root, "output", "java", "lang", "Object.class"), "transformed")

	info, err := os.Stat(filepath.Join(root, "input", "java", "lang", "Object.class"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("File mode = %v, want 0644", info.Mode().Perm())
	}

	// Overwriting replaces content
	if _, err := tree.WriteInput("java/lang/Object.class", []byte("again")); err != nil {
		t.Fatal(err)
	}
	assertFile(t, filepath.Join(root, "input", "java", "lang", "Object.class"), "again")

	assertNoTempFiles(t, root)
}

func TestDualTree_MakeDir(t *testing.T) {
	root := t.TempDir()
	tree := NewDualTree(root)

	if err := tree.MakeInputDir("a/b/"); err != nil {
		t.Fatal(err)
	}
	if err := tree.MakeOutputDir("a/b/"); err != nil {
		t.Fatal(err)
	}
	// Existing directories are fine
	if err := tree.MakeInputDir("a/b/"); err != nil {
		t.Errorf("MakeInputDir on existing dir: %v", err)
	}

	for _, sub := range []string{"input", "output"} {
		info, err := os.Stat(filepath.Join(root, sub, "a", "b"))
		if err != nil {
			t.Fatalf("%s/a/b missing: %v", sub, err)
		}
		if !info.IsDir() {
			t.Errorf("%s/a/b is not a directory", sub)
		}
	}
}

func TestDualTree_ConcurrentSharedAncestors(t *testing.T) {
	root := t.TempDir()
	tree := NewDualTree(root)

	var wg sync.WaitGroup
	errCh := make(chan error, 200)
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			if err := tree.MakeInputDir("java/util/concurrent/"); err != nil {
				errCh <- err
			}
			if err := tree.MakeOutputDir("java/util/concurrent/"); err != nil {
				errCh <- err
			}
		}(i)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("java/util/concurrent/atomic/C%d.class", i)
			if _, err := tree.WriteInput(name, []byte(name)); err != nil {
				errCh <- err
			}
		}(i)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Errorf("Concurrent tree operation failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(root, "input", "java", "util", "concurrent", "atomic"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 50 {
		t.Errorf("Expected 50 files, got %d", len(entries))
	}
}

func TestDualTree_UnsafeNames(t *testing.T) {
	root := t.TempDir()
	tree := NewDualTree(root)

	for _, name := range []string{"../evil.class", "a/../../evil.class", "", "/etc/passwd"} {
		if _, err := tree.WriteInput(name, []byte("x")); !errors.Is(err, ErrUnsafeEntryName) {
			t.Errorf("WriteInput(%q): expected ErrUnsafeEntryName, got %v", name, err)
		}
		if err := tree.MakeOutputDir(name); !errors.Is(err, ErrUnsafeEntryName) {
			t.Errorf("MakeOutputDir(%q): expected ErrUnsafeEntryName, got %v", name, err)
		}
	}

	if _, err := os.Stat(filepath.Join(filepath.Dir(root), "evil.class")); err == nil {
		t.Error("File escaped the target tree")
	}
}

func TestDualTree_WriteFailure(t *testing.T) {
	root := t.TempDir()
	tree := NewDualTree(root)

	// A file where a parent directory should be
	if _, err := tree.WriteInput("a", []byte("file")); err != nil {
		t.Fatal(err)
	}
	if _, err := tree.WriteInput("a/B.class", []byte("x")); err == nil {
		t.Error("Expected error when parent path is a file")
	}
	assertNoTempFiles(t, root)
}

func assertFile(t *testing.T, path, want string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("Failed to read %s: %v", path, err)
		return
	}
	if string(data) != want {
		t.Errorf("%s: content = %q, want %q", path, data, want)
	}
}

func assertNoTempFiles(t *testing.T, root string) {
	t.Helper()
	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err == nil && strings.Contains(info.Name(), ".tmp-") {
			t.Errorf("Leftover temp file: %s", path)
		}
		return nil
	})
}
