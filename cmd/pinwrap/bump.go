package main

import (
	"github.com/spf13/cobra"

	"github.com/open-edge-platform/pinwrap/internal/descriptor"
	"github.com/open-edge-platform/pinwrap/internal/utils/logger"
)

// createBumpCommand creates the bump subcommand
func createBumpCommand() *cobra.Command {
	bumpCmd := &cobra.Command{
		Use:   "bump [flags] DESCRIPTOR_FILE NEW_VERSION",
		Short: "Move the package version and the tool pin together",
		Long: `Bump rewrites the descriptor with the package version and the
pinned tool version both set to NEW_VERSION. This is the only supported
mutation of a descriptor: moving both fields together is what keeps the
wrapper version and the pin in lockstep.`,
		Args:              cobra.ExactArgs(2),
		RunE:              executeBump,
		ValidArgsFunction: descriptorFileCompletion,
	}

	return bumpCmd
}

// executeBump handles the bump command logic
func executeBump(cmd *cobra.Command, args []string) error {
	log := logger.Logger()
	descriptorFile, newVersion := args[0], args[1]

	rec, err := descriptor.Load(descriptorFile)
	if err != nil {
		return err
	}

	bumped, err := rec.Bump(newVersion)
	if err != nil {
		return err
	}
	if err := bumped.Save(descriptorFile); err != nil {
		return err
	}

	pin, _ := bumped.Pin()
	log.Infof("bumped %s: %s -> %s (pin %s)", descriptorFile, rec.Version, bumped.Version, pin)
	return nil
}
