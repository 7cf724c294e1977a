package main

import (
	"github.com/spf13/cobra"

	"github.com/open-edge-platform/pinwrap/internal/config"
	"github.com/open-edge-platform/pinwrap/internal/descriptor"
	"github.com/open-edge-platform/pinwrap/internal/dist"
	"github.com/open-edge-platform/pinwrap/internal/sign"
	"github.com/open-edge-platform/pinwrap/internal/utils/logger"
)

// Build command flags
var (
	buildFormat string
	buildOutDir string
	signKeyFile string
)

// createBuildCommand creates the build subcommand
func createBuildCommand() *cobra.Command {
	buildCmd := &cobra.Command{
		Use:   "build [flags] DESCRIPTOR_FILE",
		Short: "Build the metadata-only distributable artifact",
		Long: `Build verifies the descriptor and produces the wrapper package
artifact: a tarball carrying only metadata (PKG-INFO and the canonical
record), plus a SHA256SUMS entry. With --sign a detached PGP signature
is written next to the artifact.`,
		Args:              cobra.ExactArgs(1),
		RunE:              executeBuild,
		ValidArgsFunction: descriptorFileCompletion,
	}

	buildCmd.Flags().StringVar(&buildFormat, "format", "gz",
		"Artifact compression: gz, xz, or zst")
	buildCmd.Flags().StringVar(&buildOutDir, "out", "",
		"Output directory (default: the configured output directory)")
	buildCmd.Flags().StringVar(&signKeyFile, "sign", "",
		"Armored private key ring; sign the artifact after building")
	return buildCmd
}

// executeBuild handles the build command logic
func executeBuild(cmd *cobra.Command, args []string) error {
	log := logger.Logger()

	rec, err := descriptor.Load(args[0])
	if err != nil {
		return err
	}

	format, err := dist.ParseFormat(buildFormat)
	if err != nil {
		return err
	}

	outDir := buildOutDir
	if outDir == "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		helpers := config.NewConfigHelpers(cfg)
		if err := helpers.CreateOutDir(); err != nil {
			return err
		}
		outDir, err = helpers.OutDir()
		if err != nil {
			return err
		}
	}

	artifact, err := dist.Build(rec, dist.Options{OutDir: outDir, Format: format})
	if err != nil {
		return err
	}

	if signKeyFile != "" {
		sigPath, err := sign.SignArtifact(artifact.Path, signKeyFile)
		if err != nil {
			return err
		}
		log.Infof("signature: %s", sigPath)
	}

	cmd.Printf("%s  %s\n", artifact.SHA256, artifact.Path)
	return nil
}
