package main

import (
	"github.com/spf13/cobra"

	"github.com/open-edge-platform/pinwrap/internal/descriptor"
	"github.com/open-edge-platform/pinwrap/internal/toolcheck"
)

// createVerifyCommand creates the verify subcommand
func createVerifyCommand() *cobra.Command {
	verifyCmd := &cobra.Command{
		Use:   "verify [flags] DESCRIPTOR_FILE",
		Short: "Check the installed tool against the descriptor pin",
		Long: `Verify runs the pinned tool's --version on this host and compares
the reported version to the descriptor pin. A missing binary and a
version mismatch are reported as distinct failures.`,
		Args:              cobra.ExactArgs(1),
		RunE:              executeVerify,
		ValidArgsFunction: descriptorFileCompletion,
	}

	return verifyCmd
}

// executeVerify handles the verify command logic
func executeVerify(cmd *cobra.Command, args []string) error {
	rec, err := descriptor.Load(args[0])
	if err != nil {
		return err
	}
	return toolcheck.Check(rec)
}
