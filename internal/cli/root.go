// Package cli wires Steel's public library (pkg/steel) to a cobra command
// tree. Every subcommand is a thin RunE that builds a *steel.Steel, calls
// exactly one library method, and renders the result — the core performs
// no printing or process-exiting of its own, per the design's "the core
// itself neither prints nor exits" rule.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/byteptr/steel/internal/log"
	"github.com/byteptr/steel/pkg/steel"
)

// Version is set by main.go.
var Version = "dev"

var quiet bool

var rootCmd = &cobra.Command{
	Use:   "steel",
	Short: "A local, single-user encrypted password manager",
	Long: `Steel keeps a catalogue of credentials in a single encrypted file.

A database starts life with "init", is worked on with "open" while
decrypted on disk, and is sealed again with "close". Only one database
may be open at a time.`,
	Version:      Version,
	SilenceUsage: true,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	log.SetLogger(log.NewSimpleLogger(os.Stderr, log.LevelWarn))
}

// Execute runs the CLI, returning the process exit code.
func Execute(version string) int {
	Version = version
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// newSteel constructs the library facade backed by the real $HOME-rooted
// session lock and tracking registry.
func newSteel() (*steel.Steel, error) {
	return steel.New()
}

// fail prints err to stderr in the CLI's standard form and returns it
// unchanged, so a RunE can `return fail(err)`.
func fail(err error) error {
	fmt.Fprintf(os.Stderr, "steel: %v\n", err)
	return err
}

// note prints an informational line to stdout unless --quiet was given.
func note(format string, args ...any) {
	if quiet {
		return
	}
	fmt.Fprintf(os.Stdout, format+"\n", args...)
}
