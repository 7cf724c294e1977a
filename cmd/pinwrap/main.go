package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/open-edge-platform/pinwrap/internal/utils/logger"
)

// Global command flags
var (
	verbose    bool
	logLevel   string
	configFile string
)

func main() {
	logger.Init()
	rootCmd := createRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// createRootCommand creates the root command with all subcommands attached
func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pinwrap",
		Short: "Manage wrapper-package descriptors that pin an analysis tool",
		Long: `pinwrap works with wrapper-package descriptors: metadata-only
distribution units whose only job is to pin one external analysis tool
to an exact version. The wrapper's own version tracks the pin in
lockstep, and pinwrap validates, lints, bumps, resolves, and builds
such descriptors.`,
		SilenceUsage: true,
	}

	// accept log_level as a spelling of log-level, and so on
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose (debug) logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Path to the pinwrap config file")

	rootCmd.AddCommand(
		createDescribeCommand(),
		createValidateCommand(),
		createLintCommand(),
		createBumpCommand(),
		createResolveCommand(),
		createBuildCommand(),
		createVerifyCommand(),
	)

	attachLoggingHooks(rootCmd)
	return rootCmd
}

// resolveRequestedLogLevel decides the effective log level: an explicit
// --log-level wins, --verbose falls back to debug, otherwise empty.
func resolveRequestedLogLevel(cmd *cobra.Command) string {
	if logLevel != "" {
		return logLevel
	}
	if cmd != nil {
		if v, err := cmd.Flags().GetBool("verbose"); err == nil && v {
			return "debug"
		}
	}
	return ""
}

// attachLoggingHooks wires the log-level flags into every subcommand
func attachLoggingHooks(root *cobra.Command) {
	for _, cmd := range root.Commands() {
		cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
			if lvl := resolveRequestedLogLevel(cmd); lvl != "" {
				return logger.SetLevel(lvl)
			}
			return nil
		}
	}
}

// normalizeFlagName maps underscore flag spellings onto the dashed names
func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// descriptorFileCompletion completes the positional descriptor argument
// with YAML files only.
func descriptorFileCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
}
