// internal/blacklist/blacklist.go
package blacklist

import (
	"fmt"
	"os"
	"path"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// DefaultPatterns exclude archive metadata that is never bytecode
var DefaultPatterns = []string{
	"META-INF/",
}

// Matcher decides which archive entry names are excluded from processing.
// Patterns use .gitignore syntax, matched against slash separated entry names,
// so "sun/misc/" excludes a whole package and "!sun/misc/Foo.class" re-includes a class.
// A Matcher is immutable and safe for concurrent use.
type Matcher struct {
	gi       *ignore.GitIgnore
	patterns int
}

// New compiles patterns into a matcher. Blank lines and "#" comments are ignored.
func New(patterns ...string) *Matcher {
	lines := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" || strings.HasPrefix(p, "#") {
			continue
		}
		lines = append(lines, p)
	}
	return &Matcher{
		gi:       ignore.CompileIgnoreLines(lines...),
		patterns: len(lines),
	}
}

// Load compiles base, then the lines of a blacklist file, then extra.
// The last matching pattern wins, so a "!" line in the file can re-include
// names excluded by base, and extra overrides both.
func Load(file string, base []string, extra ...string) (*Matcher, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("load blacklist %s: %w", file, err)
	}

	lines := make([]string, 0, len(base)+len(extra)+16)
	lines = append(lines, base...)
	lines = append(lines, strings.Split(string(data), "\n")...)
	lines = append(lines, extra...)
	return New(lines...), nil
}

// IsBlacklisted reports whether the entry name matches the blacklist.
// Names without a ".class" suffix, such as "java/lang/String", are checked
// both as given and as the corresponding class file.
func (m *Matcher) IsBlacklisted(name string) bool {
	if m == nil || m.gi == nil {
		return false
	}
	name = strings.TrimLeft(name, "/")
	if m.gi.MatchesPath(name) {
		return true
	}
	if !strings.HasSuffix(name, "/") && path.Ext(name) == "" {
		return m.gi.MatchesPath(name + ".class")
	}
	return false
}

// Len returns the number of effective patterns
func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}
	return m.patterns
}
