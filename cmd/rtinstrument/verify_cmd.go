// cmd/rtinstrument/verify_cmd.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/creativeyann17/go-rtinstrument/pkg/verify"
)

func init() {
	rootCmd.AddCommand(verifyCmd())
}

func verifyCmd() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "verify [targetDir]",
		Short: "Verify an instrumented tree against its runtime archive",
		Long: `Verify re-reads the runtime archive and checks the target tree:
every non-blacklisted entry is present and identical under input/, blacklisted
entries are absent, and output/ only holds classes whose bytes changed.

Use the same blacklist settings as the run that produced the tree.`,
		Args: cobra.MaximumNArgs(1),
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

			opts := &verify.Options{
				ArchivePath: archivePath,
				TargetDir:   resolveTarget(args, cfg),
				Blacklist:   bl,
				Verbose:     flags.verbose,
				Quiet:       flags.quiet,
			}

			if err := opts.Validate(); err != nil {
				return err
			}

			// Logging helper
			log := func(format string, args ...interface{}) {
				if !opts.Quiet {
					fmt.Printf(format+"\n", args...)
				}
			}

			log("Verifying tree: %s", opts.TargetDir)
			log("Against:        %s", opts.ArchivePath)
			log("")

			// Create progress callback
			var progressCb verify.ProgressCallback
			if !opts.Quiet && !opts.Verbose {
				progressCb = func(event verify.ProgressEvent) {
					switch event.Type {
					case verify.EventStart:
						fmt.Printf("Checking %d entries...\n", event.Total)
					case verify.EventEntryVerify:
						if event.Current%500 == 0 || event.Current == event.Total {
							fmt.Printf("\r  Progress: %d/%d entries", event.Current, event.Total)
						}
					case verify.EventComplete:
						fmt.Printf("\r  Progress: %d/%d entries\n", event.Current, event.Total)
					case verify.EventError:
						fmt.Printf("\n  Error in: %s\n", event.EntryName)
					}
				}
			} else if opts.Verbose {
				progressCb = func(event verify.ProgressEvent) {
					switch event.Type {
					case verify.EventStart:
						fmt.Printf("Starting verification: %s\n", event.Message)
					case verify.EventEntryVerify:
						fmt.Printf("  [%d/%d] %s\n", event.Current, event.Total, event.EntryName)
					case verify.EventComplete:
						fmt.Printf("Verification complete\n")
					}
				}
			}

			result, err := verify.Verify(opts, progressCb)
			if err != nil {
				return err
			}

			fmt.Println()
			fmt.Print(result.Summary())

			if !result.IsValid() {
				return fmt.Errorf("tree verification failed")
			}

			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
