/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package diff provides the diff command for tmurot.
package diff

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bennypowers.dev/tmurot/analysis"
	"bennypowers.dev/tmurot/fs"
	"bennypowers.dev/tmurot/parser"
	"bennypowers.dev/tmurot/schema"
)

// Cmd is the diff cobra command.
var Cmd = &cobra.Command{
	Use:   "diff <before> <after>",
	Short: "Compare two token files",
	Long: `Compare two token files and report added, removed, and changed
tokens. Color changes include a perceptual distance score.`,
	Args: cobra.ExactArgs(2),
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("json", false, "Output the diff as JSON")
	Cmd.Flags().Bool("exit-code", false, "Exit non-zero when the files differ")
}

func run(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	exitCode, _ := cmd.Flags().GetBool("exit-code")
	schemaFlag, _ := cmd.Flags().GetString("schema")

	opts := parser.Options{}
	if schemaFlag != "" {
		v, err := schema.FromString(schemaFlag)
		if err != nil {
			return fmt.Errorf("invalid schema version: %s", schemaFlag)
		}
		opts.SchemaVersion = v
	}

	filesystem := fs.NewOSFileSystem()

	before, err := parser.ParseFile(filesystem, args[0], opts)
	if err != nil {
		return err
	}
	after, err := parser.ParseFile(filesystem, args[1], opts)
	if err != nil {
		return err
	}

	d := analysis.Compare(before.Group, after.Group)

	if asJSON {
		out, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(out))
	} else {
		printDiff(d)
	}

	if exitCode && !d.Empty() {
		return fmt.Errorf("files differ")
	}
	return nil
}

func printDiff(d *analysis.Diff) {
	if d.Empty() {
		fmt.Println("No changes.")
		return
	}

	caser := cases.Title(language.English)
	sections := []struct {
		name  string
		paths []string
	}{
		{"added", d.Added},
		{"removed", d.Removed},
	}
	for _, section := range sections {
		if len(section.paths) == 0 {
			continue
		}
		fmt.Printf("%s (%d):\n", caser.String(section.name), len(section.paths))
		for _, path := range section.paths {
			fmt.Printf("  %s\n", path)
		}
	}

	if len(d.Changed) > 0 {
		fmt.Printf("Changed (%d):\n", len(d.Changed))
		for _, change := range d.Changed {
			fmt.Printf("  %s: %v -> %v", change.Path, change.Before, change.After)
			if change.ColorDistance >= 0 {
				fmt.Printf(" (color distance %.2f)", change.ColorDistance)
			}
			fmt.Println()
		}
	}
}
