// cmd/rtinstrument/settings.go
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/creativeyann17/go-rtinstrument/internal/archive"
	"github.com/creativeyann17/go-rtinstrument/internal/blacklist"
	"github.com/creativeyann17/go-rtinstrument/internal/config"
	"github.com/creativeyann17/go-rtinstrument/internal/transformer"
	"github.com/creativeyann17/go-rtinstrument/pkg/instrument"
)

// commonFlags are shared by the run and verify commands
type commonFlags struct {
	archivePath   string
	configPath    string
	blacklist     []string
	blacklistFile string
	verbose       bool
	quiet         bool
}

func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.archivePath, "archive", "a", "", "Runtime archive (default: located from $JAVA_HOME)")
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Config file (default: ./"+config.FileName+" if present)")
	cmd.Flags().StringArrayVarP(&f.blacklist, "blacklist", "b", nil, "Blacklist pattern, gitignore syntax (repeatable)")
	cmd.Flags().StringVar(&f.blacklistFile, "blacklist-file", "", "File with one blacklist pattern per line")
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "Show detailed output")
	cmd.Flags().BoolVar(&f.quiet, "quiet", false, "Minimal output (overrides verbose)")
}

// loadConfig reads the --config file, or the default file from the working
// directory. A missing default file yields an empty config.
func (f *commonFlags) loadConfig() (*config.Config, error) {
	if f.configPath != "" {
		return config.Load(f.configPath)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadDefault(wd)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &config.Config{}
	}
	return cfg, nil
}

// resolveArchive picks the runtime archive: flag, then config, then JAVA_HOME
func (f *commonFlags) resolveArchive(cfg *config.Config) (string, error) {
	if f.archivePath != "" {
		return f.archivePath, nil
	}
	if cfg.Archive != "" {
		return cfg.Archive, nil
	}
	return archive.LocateFromEnv()
}

// resolveTarget picks the target root: argument, then config, then the default
func resolveTarget(args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	if cfg.Target != "" {
		return cfg.Target
	}
	return instrument.DefaultTargetDir
}

// buildBlacklist merges patterns in increasing precedence: built-in, config,
// blacklist file, flags. A --blacklist-file replaces the config file.
func (f *commonFlags) buildBlacklist(cfg *config.Config) (*blacklist.Matcher, error) {
	var base []string
	if !cfg.Blacklist.NoDefaults {
		base = append(base, blacklist.DefaultPatterns...)
	}
	base = append(base, cfg.Blacklist.Patterns...)

	file := cfg.Blacklist.File
	if f.blacklistFile != "" {
		file = f.blacklistFile
	}
	if file == "" {
		return blacklist.New(append(base, f.blacklist...)...), nil
	}
	return blacklist.Load(file, base, f.blacklist...)
}

// buildTransformer returns the external command transformer, or the identity
// transformer when no command is configured
func buildTransformer(cmdline string) (instrument.Transformer, error) {
	if cmdline == "" {
		return transformer.Identity{}, nil
	}
	return transformer.ParseCommand(cmdline)
}
