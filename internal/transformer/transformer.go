// internal/transformer/transformer.go
package transformer

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrEmptyCommand is returned when a command line has no program
var ErrEmptyCommand = errors.New("transformer command is empty")

// Identity returns bytecode unchanged. Every class then classifies as unchanged,
// which makes a dry run of the pipeline.
type Identity struct{}

// Transform returns code as is
func (Identity) Transform(code []byte) ([]byte, error) {
	return code, nil
}

func (Identity) String() string {
	return "identity"
}

// Command pipes each class through an external program: the original
// bytecode on stdin, the transformed bytecode on stdout. Empty output means
// the program left the class unchanged. A non-zero exit is a failure for
// that class only.
type Command struct {
	Path string
	Args []string
}

// NewCommand creates a transformer running name with args
func NewCommand(name string, args ...string) (*Command, error) {
	if name == "" {
		return nil, ErrEmptyCommand
	}
	return &Command{Path: name, Args: args}, nil
}

// ParseCommand splits a command line on whitespace. Quoting is not supported;
// wrap complex invocations in a script.
func ParseCommand(cmdline string) (*Command, error) {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return nil, ErrEmptyCommand
	}
	return NewCommand(fields[0], fields[1:]...)
}

// Transform runs the program once for code. Safe for concurrent use:
// every call spawns its own process.
func (c *Command) Transform(code []byte) ([]byte, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.Command(c.Path, c.Args...)
	cmd.Stdin = bytes.NewReader(code)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", c.Path, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", c.Path, err)
	}

	if stdout.Len() == 0 {
		return code, nil
	}
	return stdout.Bytes(), nil
}

// String returns the command line
func (c *Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}
