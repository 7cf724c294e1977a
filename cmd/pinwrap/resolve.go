package main

import (
	"github.com/spf13/cobra"

	"github.com/open-edge-platform/pinwrap/internal/config"
	"github.com/open-edge-platform/pinwrap/internal/descriptor"
	"github.com/open-edge-platform/pinwrap/internal/registry"
	"github.com/open-edge-platform/pinwrap/internal/utils/logger"
)

// Resolve command flags
var (
	fetchFiles bool
	fetchDest  string
)

// createResolveCommand creates the resolve subcommand
func createResolveCommand() *cobra.Command {
	resolveCmd := &cobra.Command{
		Use:   "resolve [flags] DESCRIPTOR_FILE",
		Short: "Resolve the pinned tool against the package index",
		Long: `Resolve looks up the descriptor's exact pin on the package index
and lists the release files. A version the index does not know is the
index's failure and is reported exactly as the index returned it.
With --fetch the release files are downloaded and their checksums
verified.`,
		Args:              cobra.ExactArgs(1),
		RunE:              executeResolve,
		ValidArgsFunction: descriptorFileCompletion,
	}

	resolveCmd.Flags().BoolVar(&fetchFiles, "fetch", false,
		"Download the resolved release files")
	resolveCmd.Flags().StringVar(&fetchDest, "dest", "",
		"Download destination (default: the configured cache directory)")
	return resolveCmd
}

// executeResolve handles the resolve command logic
func executeResolve(cmd *cobra.Command, args []string) error {
	log := logger.Logger()

	rec, err := descriptor.Load(args[0])
	if err != nil {
		return err
	}
	pin, err := rec.Pin()
	if err != nil {
		return err
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	helpers := config.NewConfigHelpers(cfg)

	client := registry.NewClient(helpers.IndexURL())
	log.Infof("resolving %s against %s", pin, client.BaseURL)

	files, err := client.Resolve(cmd.Context(), pin)
	if err != nil {
		return err
	}

	for _, f := range files {
		cmd.Printf("%s  %s\n", f.SHA256, f.Filename)
	}

	if !fetchFiles {
		return nil
	}

	dest := fetchDest
	if dest == "" {
		if err := helpers.CreateCacheDir(); err != nil {
			return err
		}
		dest, err = helpers.CacheDir()
		if err != nil {
			return err
		}
	}
	log.Infof("fetching %d release files into %s", len(files), dest)
	return client.Fetch(files, dest, helpers.Workers())
}
