package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talfridmen/iotracer/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate an iotracer configuration file without tracing anything.

Checks:
  - YAML syntax
  - Glob pattern validity
  - Output format, scale and row height`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Printf("Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("\nConfiguration valid!\n")
	fmt.Printf("  Patterns:        %d\n", len(cfg.Patterns))
	for _, p := range cfg.Patterns {
		fmt.Printf("    - %s\n", p)
	}
	fmt.Printf("  Output format:   %s\n", cfg.Output.Format)
	fmt.Printf("  Keep timestamps: %v\n", cfg.KeepTimestamps)
	if cfg.Strace.Binary != "" {
		fmt.Printf("  Strace binary:   %s\n", cfg.Strace.Binary)
	}

	return nil
}
