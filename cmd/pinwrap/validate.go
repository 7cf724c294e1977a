package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-edge-platform/pinwrap/internal/descriptor"
	"github.com/open-edge-platform/pinwrap/internal/utils/logger"
	"github.com/open-edge-platform/pinwrap/internal/validate"
)

// createValidateCommand creates the validate subcommand
func createValidateCommand() *cobra.Command {
	validateCmd := &cobra.Command{
		Use:   "validate [flags] DESCRIPTOR_FILE",
		Short: "Validate a descriptor file",
		Long: `Validate a descriptor file against the descriptor schema and the
record invariants without building it. This allows checking for errors
in the descriptor before committing to a build.`,
		Args:              cobra.ExactArgs(1),
		RunE:              executeValidate,
		ValidArgsFunction: descriptorFileCompletion,
	}

	return validateCmd
}

// executeValidate handles the validate command logic
func executeValidate(cmd *cobra.Command, args []string) error {
	log := logger.Logger()
	descriptorFile := args[0]

	log.Infof("validating descriptor file: %s", descriptorFile)

	data, err := os.ReadFile(descriptorFile)
	if err != nil {
		return fmt.Errorf("reading descriptor file: %v", err)
	}
	if err := validate.ValidateYAML(data); err != nil {
		return fmt.Errorf("descriptor validation failed: %v", err)
	}

	rec, err := descriptor.Parse(data)
	if err != nil {
		return fmt.Errorf("descriptor validation failed: %v", err)
	}
	if err := rec.Verify(); err != nil {
		return fmt.Errorf("descriptor validation failed: %v", err)
	}

	log.Infof("✓ Descriptor validation successful for %s", descriptorFile)
	log.Infof("Package: %s v%s", rec.Name, rec.Version)
	pin, _ := rec.Pin()
	log.Infof("Pin: %s", pin)

	return nil
}
