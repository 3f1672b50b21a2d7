/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package permutations provides the permutations command for tmurot.
package permutations

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/tmurot/config"
	"bennypowers.dev/tmurot/fs"
	"bennypowers.dev/tmurot/load"
	"bennypowers.dev/tmurot/manifest"
)

// Cmd is the permutations cobra command.
var Cmd = &cobra.Command{
	Use:   "permutations [manifest]",
	Short: "Resolve manifest permutations",
	Long: `Resolve token documents for manifest permutations.

With --input, resolves a single permutation from the given modifier
selections. Without --input, enumerates every permutation the manifest
describes (honoring its generate specs when present).

Examples:
  # Resolve one permutation
  tmurot permutations manifest.json --input theme=dark --input features=a11y,rtl

  # Generate every permutation into a directory
  tmurot permutations manifest.json --out-dir dist/

  # List permutation IDs and their file lists
  tmurot permutations manifest.json --list`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringArray("input", nil, "Modifier selection as name=value (repeatable; comma-separate anyOf values)")
	Cmd.Flags().Bool("list", false, "List permutation IDs and files without resolving documents")
	Cmd.Flags().String("out-dir", "", "Write each permutation to a file in this directory")
	Cmd.Flags().Bool("no-resolve", false, "Skip reference resolution, output merged documents only")
}

func run(cmd *cobra.Command, args []string) error {
	inputFlags, _ := cmd.Flags().GetStringArray("input")
	list, _ := cmd.Flags().GetBool("list")
	noResolve, _ := cmd.Flags().GetBool("no-resolve")

	// Output directory from viper (env or config file), CLI flag wins
	outDir := viper.GetString("outDir")
	if flagDir, _ := cmd.Flags().GetString("out-dir"); flagDir != "" {
		outDir = flagDir
	}

	filesystem := fs.NewOSFileSystem()
	cfg := config.LoadOrDefault(filesystem, ".")

	manifestPath := cfg.Manifest
	if len(args) > 0 {
		manifestPath = args[0]
	}
	if manifestPath == "" {
		return fmt.Errorf("no manifest specified and none found in config")
	}

	opts := load.Options{FS: filesystem, Root: filepath.Dir(manifestPath)}
	m, err := load.LoadManifest(cmd.Context(), manifestPath, opts)
	if err != nil {
		return err
	}
	if noResolve {
		m.Options.ResolveReferences = false
	}

	resolver, err := load.NewPermutationResolver(m, opts)
	if err != nil {
		return err
	}

	var perms []*manifest.Permutation
	if len(inputFlags) > 0 {
		input, err := parseInput(inputFlags)
		if err != nil {
			return err
		}
		perm, err := resolver.ResolvePermutation(cmd.Context(), input)
		if err != nil {
			return err
		}
		perms = []*manifest.Permutation{perm}
	} else {
		perms, err = resolver.GenerateAll(cmd.Context())
		if err != nil {
			return err
		}
	}

	if list {
		for _, perm := range perms {
			fmt.Fprintf(os.Stdout, "%s\t%s\n", perm.ID, strings.Join(perm.Files, " "))
		}
		return nil
	}

	if outDir != "" {
		return writeAll(filesystem, outDir, perms)
	}

	for _, perm := range perms {
		out, err := marshalPermutation(perm)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(out))
	}
	return nil
}

// parseInput converts name=value flags into a permutation input map.
// Comma-separated values become arrays for anyOf modifiers.
func parseInput(flags []string) (map[string]any, error) {
	input := make(map[string]any, len(flags))
	for _, flag := range flags {
		name, value, found := strings.Cut(flag, "=")
		if !found {
			return nil, fmt.Errorf("invalid input %q: expected name=value", flag)
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
	return input, nil
}

func marshalPermutation(perm *manifest.Permutation) ([]byte, error) {
	doc := any(perm.Document)
	if perm.Resolved != nil {
		doc = perm.Resolved
	}
	return json.MarshalIndent(doc, "", "  ")
}

func writeAll(filesystem fs.FileSystem, outDir string, perms []*manifest.Permutation) error {
	if err := filesystem.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outDir, err)
	}
	for _, perm := range perms {
		out, err := marshalPermutation(perm)
		if err != nil {
			return err
		}
		name := perm.Output
		if name == "" {
			name = perm.ID + ".json"
		}
		path := filepath.Join(outDir, name)
		if dir := filepath.Dir(path); dir != outDir {
			if err := filesystem.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("creating output directory %s: %w", dir, err)
			}
		}
		if err := filesystem.WriteFile(path, append(out, '\n'), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}
