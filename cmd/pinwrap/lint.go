package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-edge-platform/pinwrap/internal/descriptor"
	"github.com/open-edge-platform/pinwrap/internal/lint"
)

// createLintCommand creates the lint subcommand
func createLintCommand() *cobra.Command {
	lintCmd := &cobra.Command{
		Use:   "lint [flags] DESCRIPTOR_FILE",
		Short: "Run descriptor hygiene checks",
		Long: `Lint applies descriptor hygiene rules and reports findings. It
catches a pin that was bumped without the package version, range pins,
embedded code in a metadata-only wrapper, and naming drift. The command
exits non-zero if any finding is an error.`,
		Args:              cobra.ExactArgs(1),
		RunE:              executeLint,
		ValidArgsFunction: descriptorFileCompletion,
	}

	return lintCmd
}

// executeLint handles the lint command logic
func executeLint(cmd *cobra.Command, args []string) error {
	rec, err := descriptor.Load(args[0])
	if err != nil {
		return err
	}

	findings := lint.Run(rec)
	if len(findings) == 0 {
		cmd.Printf("%s: clean\n", args[0])
		return nil
	}

	for _, f := range findings {
		cmd.Printf("%s: %s\n", args[0], f)
	}
	if lint.HasErrors(findings) {
		return fmt.Errorf("lint found errors in %s", args[0])
	}
	return nil
}
