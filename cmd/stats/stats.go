/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package stats provides the stats command for tmurot.
package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bennypowers.dev/tmurot/analysis"
	"bennypowers.dev/tmurot/config"
	"bennypowers.dev/tmurot/fs"
	"bennypowers.dev/tmurot/load"
	"bennypowers.dev/tmurot/schema"
	"bennypowers.dev/tmurot/token"
)

// Cmd is the stats cobra command.
var Cmd = &cobra.Command{
	Use:   "stats [files...]",
	Short: "Show statistics about token files",
	Long: `Show token counts, group depth, and reference statistics for a set
of token files.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("json", false, "Output statistics as JSON")
}

func run(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
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

	opts := load.Options{FS: filesystem, SchemaVersion: cfg.SchemaVersion()}
	if schemaFlag != "" {
		v, err := schema.FromString(schemaFlag)
		if err != nil {
			return fmt.Errorf("invalid schema version: %s", schemaFlag)
		}
		opts.SchemaVersion = v
	}

	project, _, err := load.LoadProject(cmd.Context(), files, opts)
	if err != nil {
		return err
	}

	if asJSON {
		byFile := make(map[string]*analysis.Statistics, len(project.Files))
		for _, path := range project.FilePaths() {
			byFile[path] = analysis.Stats(project.Files[path].Group)
		}
		out, err := json.MarshalIndent(byFile, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(out))
		return nil
	}

	caser := cases.Title(language.English)
	for _, path := range project.FilePaths() {
		stats := analysis.Stats(project.Files[path].Group)
		fmt.Printf("%s\n", path)
		fmt.Printf("  Tokens:     %d\n", stats.Tokens)
		fmt.Printf("  Groups:     %d\n", stats.Groups)
		fmt.Printf("  Max depth:  %d\n", stats.MaxDepth)
		fmt.Printf("  References: %d\n", stats.References)
		fmt.Printf("  Unresolved: %d\n", stats.Unresolved)

		types := make([]string, 0, len(stats.ByType))
		for t := range stats.ByType {
			types = append(types, string(t))
		}
		sort.Strings(types)
		for _, t := range types {
			fmt.Printf("  %s: %d\n", caser.String(t), stats.ByType[token.Type(t)])
		}
	}
	return nil
}
