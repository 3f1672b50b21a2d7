/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolve provides the resolve command for tmurot.
package resolve

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bennypowers.dev/tmurot/config"
	"bennypowers.dev/tmurot/fs"
	"bennypowers.dev/tmurot/internal/logger"
	"bennypowers.dev/tmurot/load"
	"bennypowers.dev/tmurot/schema"
)

// Cmd is the resolve cobra command.
var Cmd = &cobra.Command{
	Use:   "resolve [files...]",
	Short: "Resolve token references across files",
	Long: `Resolve local aliases and cross-file references in design token files.

Outputs each file's flattened document with references substituted.
Resolution errors are reported per token; use --strict to fail on any.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("strict", false, "Fail when any reference cannot be resolved")
	Cmd.Flags().Bool("fetch", false, "Follow https:// cross-file references")
	Cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
}

func run(cmd *cobra.Command, args []string) error {
	strict, _ := cmd.Flags().GetBool("strict")
	fetch, _ := cmd.Flags().GetBool("fetch")
	output, _ := cmd.Flags().GetString("output")
	schemaFlag, _ := cmd.Flags().GetString("schema")

	filesystem := fs.NewOSFileSystem()
	cfg := config.LoadOrDefault(filesystem, ".")

	files := args
	if len(files) == 0 {
		expanded, err := cfg.ExpandFiles(filesystem, ".")
		if err != nil {
			return fmt.Errorf("error expanding config files: %w", err)
		}
		files = expanded
	}
	if len(files) == 0 {
		return fmt.Errorf("no files specified and no files found in config")
	}

	opts := load.Options{FS: filesystem}
	if schemaFlag != "" {
		v, err := schema.FromString(schemaFlag)
		if err != nil {
			return fmt.Errorf("invalid schema version: %s", schemaFlag)
		}
		opts.SchemaVersion = v
	} else {
		opts.SchemaVersion = cfg.SchemaVersion()
	}
	if fetch {
		opts.Fetcher = load.NewHTTPFetcher(load.DefaultMaxSize)
	}

	project, result, err := load.LoadProject(cmd.Context(), files, opts)
	if err != nil {
		return err
	}

	for _, e := range result.Errors {
		logger.Warn("%s", e.Error())
	}
	if strict && result.HasErrors() {
		return fmt.Errorf("resolution failed:\n%s", result.CombinedMessage())
	}

	resolved := make(map[string]any, len(project.Files))
	for _, path := range project.FilePaths() {
		resolved[path] = project.Files[path].Flatten()
	}

	out, err := json.MarshalIndent(resolved, "", "  ")
	if err != nil {
		return err
	}

	if output != "" {
		return filesystem.WriteFile(output, append(out, '\n'), 0644)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
