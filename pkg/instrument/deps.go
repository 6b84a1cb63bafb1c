// pkg/instrument/deps.go
package instrument

// Transformer rewrites the bytecode of one class. Returning the input bytes
// unchanged, or nothing at all, is a valid outcome, not an error. Implementations are
// called from several goroutines at once.
type Transformer interface {
	Transform(code []byte) ([]byte, error)
}

// TransformFunc adapts a function to Transformer
type TransformFunc func(code []byte) ([]byte, error)

// Transform calls f(code)
func (f TransformFunc) Transform(code []byte) ([]byte, error) {
	return f(code)
}

// Blacklist excludes entries by name from any processing
type Blacklist interface {
	IsBlacklisted(name string) bool
}

// BlacklistFunc adapts a function to Blacklist
type BlacklistFunc func(name string) bool

// IsBlacklisted calls f(name)
func (f BlacklistFunc) IsBlacklisted(name string) bool {
	return f(name)
}

// InterfaceDetector reports whether class bytecode declares an interface
type InterfaceDetector func(code []byte) bool

// Deps carries the external collaborators of a run
type Deps struct {
	// Transformer is required
	Transformer Transformer

	// Blacklist may be nil: nothing is excluded
	Blacklist Blacklist

	// IsInterface may be nil: classfile.IsInterface is used
	IsInterface InterfaceDetector

	// Tree may be nil: a DualTree rooted at Options.TargetDir is used
	Tree Tree
}
