// internal/transformer/transformer_test.go
package transformer

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"
	"sync"
	"testing"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestIdentity(t *testing.T) {
	code := []byte{0xCA, 0xFE, 0xBA, 0xBE, 1, 2, 3}
	got, err := Identity{}.Transform(code)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, code) {
		t.Errorf("Identity changed bytes: %v", got)
	}
}

func TestCommand_Transform(t *testing.T) {
	requireShell(t)

	c, err := NewCommand("sh", "-c", "tr a b")
	if err != nil {
		t.Fatal(err)
	}

	got, err := c.Transform([]byte("banana"))
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if string(got) != "bbnbnb" {
		t.Errorf("Transform() = %q, want %q", got, "bbnbnb")
	}
}

func TestCommand_EmptyOutputMeansUnchanged(t *testing.T) {
	requireShell(t)

	c, err := NewCommand("sh", "-c", "cat > /dev/null")
	if err != nil {
		t.Fatal(err)
	}

	code := []byte("original")
	got, err := c.Transform(code)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, code) {
		t.Errorf("Expected original bytes back, got %q", got)
	}
}

func TestCommand_Failure(t *testing.T) {
	requireShell(t)

	c, err := NewCommand("sh", "-c", "echo cannot instrument >&2; exit 3")
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.Transform([]byte("x"))
	if err == nil {
		t.Fatal("Expected error from failing command")
	}
	if !strings.Contains(err.Error(), "cannot instrument") {
		t.Errorf("Expected stderr in error, got %v", err)
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Errorf("Expected wrapped *exec.ExitError, got %T", err)
	}
}

func TestCommand_Concurrent(t *testing.T) {
	requireShell(t)

	c, err := ParseCommand("tr x y")
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := c.Transform([]byte("xxx"))
			if err != nil {
				t.Error(err)
				return
			}
			if string(got) != "yyy" {
				t.Errorf("Transform() = %q", got)
			}
		}()
	}
	wg.Wait()
}

func TestParseCommand(t *testing.T) {
	if _, err := ParseCommand("   "); !errors.Is(err, ErrEmptyCommand) {
		t.Errorf("Expected ErrEmptyCommand, got %v", err)
	}
	if _, err := NewCommand(""); !errors.Is(err, ErrEmptyCommand) {
		t.Errorf("Expected ErrEmptyCommand, got %v", err)
	}

	c, err := ParseCommand("java -jar  agent.jar --transform")
	if err != nil {
		t.Fatal(err)
	}
	if c.Path != "java" || len(c.Args) != 3 {
		t.Errorf("Unexpected command: %+v", c)
	}
	if c.String() != "java -jar agent.jar --transform" {
		t.Errorf("String() = %q", c.String())
	}
}
