// internal/archive/locate.go
package archive

import (
	"fmt"
	"os"
	"path/filepath"
)

// runtimeCandidates lists where JDK layouts keep the core class archive,
// relative to JAVA_HOME, in lookup order (JDK 8 and older first).
var runtimeCandidates = []string{
	filepath.Join("jre", "lib", "rt.jar"),
	filepath.Join("lib", "rt.jar"),
	filepath.Join("jmods", "java.base.jmod"),
}

// Locate returns the path of the runtime archive holding java/lang/Object
// below javaHome.
func Locate(javaHome string) (string, error) {
	if javaHome == "" {
		return "", ErrJavaHomeUnset
	}

	for _, candidate := range runtimeCandidates {
		path := filepath.Join(javaHome, candidate)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}

	return "", fmt.Errorf("%s: %w", javaHome, ErrRuntimeNotFound)
}

// LocateFromEnv is Locate using the JAVA_HOME environment variable
func LocateFromEnv() (string, error) {
	return Locate(os.Getenv("JAVA_HOME"))
}
