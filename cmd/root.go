// Package cmd implements the os8util command-line front end: one root
// command with mutually exclusive subcommands for dir, delete, create,
// zero, and the inferred copy/print-text operations of spec.md §6.
package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"os8util/internal/oserrs"
)

var os8Path string

var rootCmd = &cobra.Command{
	Use:   "os8util",
	Short: "Manipulate OS/8 disk and tape images",
	Long: `os8util lists, copies, deletes and (re)initializes files on an OS/8
filesystem image without running an emulator.`,
}

// Execute runs the root command, printing any returned error's single
// diagnostic line to stderr and mapping it to a process exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "os8util:", err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps a sentinel error kind from internal/oserrs to a
// non-zero process exit code, per spec.md §7's "non-zero with a stderr
// diagnostic" contract. Related kinds share a code (usage and name syntax
// errors, for example, both exit 2).
func exitCodeFor(err error) int {
	switch errors.Cause(err) {
	case oserrs.UsageError, oserrs.NameSyntax:
		return 2
	case oserrs.NotFound:
		return 3
	case oserrs.DirectoryFull, oserrs.AllocationFailed:
		return 4
	case oserrs.InvalidDirectory, oserrs.CorruptBlock, oserrs.FormatError:
		return 5
	case oserrs.IoError:
		return 6
	default:
		return 1
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&os8Path, "os8", "", "Path to the OS/8 image (required)")
	rootCmd.MarkPersistentFlagRequired("os8")
}
