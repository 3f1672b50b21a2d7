/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package validate provides the validate command for tmurot.
package validate

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bennypowers.dev/tmurot/config"
	"bennypowers.dev/tmurot/fs"
	"bennypowers.dev/tmurot/manifest"
	"bennypowers.dev/tmurot/parser"
	"bennypowers.dev/tmurot/resolver"
	"bennypowers.dev/tmurot/schema"
)

// Cmd is the validate cobra command.
var Cmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate token files and manifests",
	Long: `Validate design token files for correctness and schema compliance.

Token files are checked for parse errors, untyped tokens, circular
references, and unresolvable aliases. With --manifest, the manifest
shape is checked too; add --input to check a permutation selection
against the manifest's modifiers. All problems are reported, not just
the first.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("quiet", false, "Only output errors")
	Cmd.Flags().String("manifest", "", "Manifest file to validate")
	Cmd.Flags().StringArray("input", nil, "Modifier selection as name=value to validate against the manifest")
}

func run(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")
	schemaFlag, _ := cmd.Flags().GetString("schema")
	manifestFlag, _ := cmd.Flags().GetString("manifest")
	inputFlags, _ := cmd.Flags().GetStringArray("input")

	filesystem := fs.NewOSFileSystem()
	cfg := config.LoadOrDefault(filesystem, ".")

	files := args
	if len(files) == 0 && manifestFlag == "" {
		expanded, err := cfg.ExpandFiles(filesystem, ".")
		if err != nil {
			return fmt.Errorf("error expanding config files: %w", err)
		}
		files = expanded
	}

	manifestPath := manifestFlag
	if manifestPath == "" && len(files) == 0 {
		manifestPath = cfg.Manifest
	}

	if len(files) == 0 && manifestPath == "" {
		return fmt.Errorf("no files specified and no files found in config")
	}

	var schemaVersion schema.Version
	if schemaFlag != "" {
		var err error
		schemaVersion, err = schema.FromString(schemaFlag)
		if err != nil {
			return fmt.Errorf("invalid schema version: %s", schemaFlag)
		}
	} else if cfg.SchemaVersion() != schema.Unknown {
		schemaVersion = cfg.SchemaVersion()
	}

	hasErrors := false

	for _, path := range files {
		if !quiet {
			fmt.Printf("Validating %s...\n", path)
		}

		file, err := parser.ParseFile(filesystem, path, parser.Options{SchemaVersion: schemaVersion})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing %s:\n%s\n", path, indent(err.Error()))
			hasErrors = true
		}
		if file == nil {
			continue
		}

		report := resolver.DetectCycles(file.Group)
		if report.HasCycles {
			for _, cycle := range report.Cycles {
				fmt.Fprintf(os.Stderr, "Circular reference in %s: %s\n", path, strings.Join(cycle, " -> "))
			}
			hasErrors = true
			continue
		}

		result := resolver.ResolveFile(file)
		if result.HasErrors() {
			fmt.Fprintf(os.Stderr, "Resolution errors in %s:\n%s\n", path, indent(result.CombinedMessage()))
			hasErrors = true
			continue
		}

		if !quiet {
			stats := file.AllTokens()
			fmt.Printf("  %d tokens\n", len(stats))
		}
	}

	if manifestPath != "" {
		if !quiet {
			fmt.Printf("Validating manifest %s...\n", manifestPath)
		}
		if ok := validateManifest(filesystem, manifestPath, inputFlags, quiet); !ok {
			hasErrors = true
		}
	}

	if hasErrors {
		return fmt.Errorf("validation failed")
	}

	if !quiet {
		fmt.Println("All files valid.")
	}
	return nil
}

func validateManifest(filesystem fs.FileSystem, path string, inputFlags []string, quiet bool) bool {
	data, err := filesystem.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
		return false
	}

	m, err := manifest.Parse(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", path, err)
		return false
	}

	ok := true
	for _, verr := range m.Validate() {
		fmt.Fprintf(os.Stderr, "Manifest error in %s: %s\n", path, verr.Error())
		ok = false
	}

	if len(inputFlags) > 0 {
		input := make(map[string]any, len(inputFlags))
		for _, flag := range inputFlags {
			name, value, found := strings.Cut(flag, "=")
			if !found {
				fmt.Fprintf(os.Stderr, "Invalid input %q: expected name=value\n", flag)
				ok = false
				continue
			}
			if strings.Contains(value, ",") {
				parts := strings.Split(value, ",")
				values := make([]any, 0, len(parts))
				for _, part := range parts {
					values = append(values, strings.TrimSpace(part))
				}
				input[name] = values
			} else {
				input[name] = value
			}
		}
		for _, verr := range m.ValidateInput(input) {
			fmt.Fprintf(os.Stderr, "Input error: %s\n", verr.Error())
			ok = false
		}
	}

	if ok && !quiet {
		fmt.Printf("  %d sets, %d modifiers\n", len(m.Sets), len(m.Modifiers))
	}
	return ok
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
