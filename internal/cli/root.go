// Package cli provides the command-line interface for iotracer.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/talfridmen/iotracer/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return 0
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "iotracer",
		Short: "Visualize a process's file I/O as a timeline",
		Long: `iotracer turns strace output into a timeline of file accesses.

It correlates open/close/read/write syscalls per file descriptor and
draws one row per file, with rectangles for each interval the file was
open, read, or written.

The trace can come from an existing strace capture, a command run under
strace, or a running process attached by pid. Captures must be produced
with: strace -tttTf --decode-fds=path`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(commands.NewTraceCommand())
	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
