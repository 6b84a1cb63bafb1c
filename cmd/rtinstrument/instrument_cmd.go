// cmd/rtinstrument/instrument_cmd.go

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/spf13/cobra"

	"github.com/creativeyann17/go-rtinstrument/pkg/instrument"
)

func instrumentCmd() *cobra.Command {
	var flags commonFlags
	var maxThreads int
	var transformerCmd string
	var checks []string

	cmd := &cobra.Command{
		Use:   "rtinstrument [targetDir]",
		Short: "rtinstrument - instrument java core runtime classes",
		Long: `rtinstrument extracts every class of the java core runtime archive,
runs it through a bytecode transformer and writes two trees below targetDir:
input/ with the original entries and output/ with the classes the transformer
changed. targetDir is deleted and recreated on every run.`,
		Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			archivePath, err := flags.resolveArchive(cfg)
			if err != nil {
				return err
			}
			bl, err := flags.buildBlacklist(cfg)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("transformer") {
				transformerCmd = cfg.Transformer
			}
			tr, err := buildTransformer(transformerCmd)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("threads") && cfg.Threads > 0 {
				maxThreads = cfg.Threads
			}

			opts := &instrument.Options{
				ArchivePath: archivePath,
				TargetDir:   resolveTarget(args, cfg),
				MaxThreads:  maxThreads,
			}
			quiet := flags.quiet
			verbose := flags.verbose && !quiet

			if err := opts.Validate(); err != nil {
				return err
			}

			// Logging helper
			log := func(format string, args ...interface{}) {
				if !quiet {
					fmt.Printf(format+"\n", args...)
				}
			}

			target := opts.TargetDir
			if abs, err := filepath.Abs(target); err == nil {
				target = abs
			}

			log("transforming classes in %s", opts.ArchivePath)
			log("writing transformed files to %s", target)
			log("this could take several minutes...")
			if verbose {
				log("  Max threads: %d", opts.MaxThreads)
				log("  Transformer: %v", tr)
				log("  Blacklist:   %d patterns", bl.Len())
			}

			// Progress bar only in normal mode; verbose prints per-entry lines instead
			var barCb instrument.ProgressCallback
			var waitProgress func()
			if !quiet && !verbose {
				cb, progress := instrument.ProgressBarCallback()
				barCb = cb
				waitProgress = progress.Wait
			}
			progressCb := consoleCallback(os.Stdout, quiet, verbose, barCb)

			deps := instrument.Deps{
				Transformer: tr,
				Blacklist:   bl,
			}
			report, err := instrument.Run(opts, deps, progressCb)

			if waitProgress != nil {
				waitProgress()
			}

			if err != nil {
				if !quiet {
					fmt.Println()
				}
				return err
			}

			log("transformation of %s took %dsec.", opts.ArchivePath, int64(report.Elapsed.Seconds()))

			for _, failure := range report.Failures {
				fmt.Fprintf(os.Stderr, "Could not instrument: %v\n", failure)
			}

			if !quiet {
				fmt.Println()
				fmt.Print(instrument.FormatSummary(report))
				fmt.Println()
			}
			fmt.Printf("When instrumenting java core runtime classes:\nskipped %d\n", report.Skipped())

			for _, name := range checks {
				fmt.Printf("%s is instrumented: %v\n", name, !bl.IsBlacklisted(name))
			}

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&maxThreads, "threads", "t", runtime.NumCPU(), "Max concurrent threads")
	cmd.Flags().StringVar(&transformerCmd, "transformer", "",
		"External transformer command: class bytes on stdin, transformed bytes on stdout (default: identity)")
	cmd.Flags().StringArrayVar(&checks, "check", nil, "Print whether the named class would be instrumented (repeatable)")

	return cmd
}

// consoleCallback prints run progress notes to w and forwards every event to
// next, if set. It is called from worker goroutines concurrently.
func consoleCallback(w io.Writer, quiet, verbose bool, next instrument.ProgressCallback) instrument.ProgressCallback {
	var mu sync.Mutex

	return func(event instrument.ProgressEvent) {
		if !quiet {
			mu.Lock()
			switch event.Type {
			case instrument.EventTargetPrepare:
				fmt.Fprint(w, "deleting old files...")
			case instrument.EventTargetReady:
				fmt.Fprintln(w, " done")
			case instrument.EventEntryComplete:
				if verbose {
					switch event.Tag {
					case instrument.TagUnchangedInterface:
						fmt.Fprintf(w, "%s is an interface, bytecode not changed\n", event.EntryName)
					case instrument.TagUnchangedClass:
						fmt.Fprintf(w, "bytecode for %s not changed\n", event.EntryName)
					}
				}
			}
			mu.Unlock()
		}

		if next != nil {
			next(event)
		}
	}
}
