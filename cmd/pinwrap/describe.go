package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-edge-platform/pinwrap/internal/descriptor"
)

// Output format command flags
var (
	prettyJSON bool = true // Pretty-print JSON output
	outFormat  string      // "text" | "json"
)

// createDescribeCommand creates the describe subcommand
func createDescribeCommand() *cobra.Command {
	describeCmd := &cobra.Command{
		Use:   "describe [flags] DESCRIPTOR_FILE",
		Short: "Print the package metadata record of a descriptor",
		Long: `Describe loads a descriptor file and prints its package metadata
record: name, version, dependency pins, and package contents. The record
is a pure function of the descriptor's literal values, so repeated runs
print byte-identical output.`,
		Args:              cobra.ExactArgs(1),
		RunE:              executeDescribe,
		ValidArgsFunction: descriptorFileCompletion,
	}

	describeCmd.Flags().StringVar(&outFormat, "format", "text",
		"Output format: text or json")
	describeCmd.Flags().BoolVar(&prettyJSON, "pretty", true,
		"Pretty-print JSON output (only for --format json)")
	return describeCmd
}

// executeDescribe handles the describe command logic
func executeDescribe(cmd *cobra.Command, args []string) error {
	rec, err := descriptor.Load(args[0])
	if err != nil {
		return err
	}

	switch strings.ToLower(outFormat) {
	case "json":
		if prettyJSON {
			var doc any
			if err := json.Unmarshal(rec.Describe(), &doc); err != nil {
				return fmt.Errorf("re-encoding record: %v", err)
			}
			out, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return fmt.Errorf("re-encoding record: %v", err)
			}
			cmd.Println(string(out))
			return nil
		}
		cmd.Print(string(rec.Describe()))
		return nil
	case "text":
		cmd.Println(renderRecordText(rec))
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", outFormat)
	}
}

func renderRecordText(rec *descriptor.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Package: %s v%s\n", rec.Name, rec.Version)
	fmt.Fprintf(&b, "Pins:\n")
	for _, dep := range rec.Requires {
		fmt.Fprintf(&b, "  - %s\n", dep)
	}
	if len(rec.Packages) == 0 {
		fmt.Fprintf(&b, "Contents: none (metadata-only)")
	} else {
		fmt.Fprintf(&b, "Contents: %s", strings.Join(rec.Packages, ", "))
	}
	return b.String()
}
