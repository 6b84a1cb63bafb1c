// pkg/verify/verify_test.go
package verify

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creativeyann17/go-rtinstrument/internal/blacklist"
	"github.com/creativeyann17/go-rtinstrument/pkg/instrument"
)

var testEntries = []struct {
	name string
	data string
}{
	{"a/", ""},
	{"a/B.class", "CLASS B"},
	{"a/C.class", "CHANGE C"},
	{"a/notes.txt", "hello"},
	{"META-INF/MANIFEST.MF", "Manifest-Version: 1.0\n"},
}

func createTestArchive(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rt.jar")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, e := range testEntries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasSuffix(e.name, "/") {
			w.Write([]byte(e.data))
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

// createInstrumentedTree runs the pipeline and returns archive, target and blacklist
func createInstrumentedTree(t *testing.T) (string, string, *blacklist.Matcher) {
	t.Helper()

	archivePath := createTestArchive(t)
	target := filepath.Join(t.TempDir(), "target")
	bl := blacklist.New(blacklist.DefaultPatterns...)

	transform := instrument.TransformFunc(func(code []byte) ([]byte, error) {
		if bytes.HasPrefix(code, []byte("CHANGE")) {
			return append([]byte("INSTRUMENTED:"), code...), nil
		}
		return code, nil
	})

	opts := &instrument.Options{ArchivePath: archivePath, TargetDir: target}
	if _, err := instrument.Run(opts, instrument.Deps{Transformer: transform, Blacklist: bl}, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return archivePath, target, bl
}

func TestVerifyValidTree(t *testing.T) {
	archivePath, target, bl := createInstrumentedTree(t)

	var events []EventType
	result, err := Verify(&Options{ArchivePath: archivePath, TargetDir: target, Blacklist: bl}, func(e ProgressEvent) {
		events = append(events, e.Type)
	})
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if !result.IsValid() || !result.Success() {
		t.Fatalf("Expected valid tree, got errors: %v", result.Errors)
	}
	if result.EntriesTotal != 4 || result.EntriesVerified != 4 {
		t.Errorf("Verified %d of %d, want 4 of 4", result.EntriesVerified, result.EntriesTotal)
	}
	if result.Directories != 1 || result.InputFiles != 3 || result.OutputFiles != 1 || result.Blacklisted != 1 {
		t.Errorf("Unexpected counts: %+v", result)
	}
	if len(events) == 0 || events[0] != EventStart || events[len(events)-1] != EventComplete {
		t.Errorf("Unexpected event sequence: %v", events)
	}
	if !strings.Contains(result.Summary(), "Tree is VALID") {
		t.Errorf("Summary:\n%s", result.Summary())
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	tests := []struct {
		name    string
		tamper  func(t *testing.T, target string)
		wantErr error
	}{
		{
			name: "modified input",
			tamper: func(t *testing.T, target string) {
				writeFile(t, filepath.Join(target, "input", "a", "B.class"), "CLASS B!")
			},
			wantErr: ErrContentMismatch,
		},
		{
			name: "missing input",
			tamper: func(t *testing.T, target string) {
				if err := os.Remove(filepath.Join(target, "input", "a", "notes.txt")); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: ErrMissing,
		},
		{
			name: "unchanged class in output",
			tamper: func(t *testing.T, target string) {
				writeFile(t, filepath.Join(target, "output", "a", "B.class"), "CLASS B")
			},
			wantErr: ErrUnchangedOutput,
		},
		{
			name: "non-class in output",
			tamper: func(t *testing.T, target string) {
				writeFile(t, filepath.Join(target, "output", "a", "notes.txt"), "hello!")
			},
			wantErr: ErrNonClassOutput,
		},
		{
			name: "blacklisted entry written",
			tamper: func(t *testing.T, target string) {
				writeFile(t, filepath.Join(target, "input", "META-INF", "MANIFEST.MF"), "Manifest-Version: 1.0\n")
			},
			wantErr: ErrBlacklistedPresent,
		},
		{
			name: "stray file",
			tamper: func(t *testing.T, target string) {
				writeFile(t, filepath.Join(target, "output", "a", ".C.class.tmp-123"), "partial")
			},
			wantErr: ErrUnexpectedFile,
		},
		{
			name: "directory replaced by file",
			tamper: func(t *testing.T, target string) {
				dir := filepath.Join(target, "output", "a")
				if err := os.RemoveAll(dir); err != nil {
					t.Fatal(err)
				}
				writeFile(t, dir, "not a dir")
			},
			wantErr: ErrNotDirectory,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			archivePath, target, bl := createInstrumentedTree(t)
			tc.tamper(t, target)

			result, err := Verify(&Options{ArchivePath: archivePath, TargetDir: target, Blacklist: bl, Quiet: true}, nil)
			if err != nil {
				t.Fatalf("Verify failed: %v", err)
			}
			if result.IsValid() {
				t.Fatal("Expected invalid tree")
			}

			found := false
			for _, e := range result.Errors {
				if errors.Is(e, tc.wantErr) {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected %v among errors, got %v", tc.wantErr, result.Errors)
			}
			if !strings.Contains(result.Summary(), "Tree is INVALID") {
				t.Errorf("Summary:\n%s", result.Summary())
			}
		})
	}
}

func TestVerifyErrors(t *testing.T) {
	if _, err := Verify(&Options{}, nil); !errors.Is(err, ErrArchiveRequired) {
		t.Errorf("Expected ErrArchiveRequired, got %v", err)
	}

	archivePath := createTestArchive(t)
	missing := filepath.Join(t.TempDir(), "nope")
	if _, err := Verify(&Options{ArchivePath: archivePath, TargetDir: missing}, nil); !errors.Is(err, ErrTargetMissing) {
		t.Errorf("Expected ErrTargetMissing, got %v", err)
	}

	if _, err := Verify(&Options{ArchivePath: filepath.Join(t.TempDir(), "missing.jar"), TargetDir: t.TempDir()}, nil); err == nil {
		t.Error("Expected error for missing archive")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
