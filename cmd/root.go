/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for tmurot.
package cmd

import (
	"github.com/spf13/cobra"

	"bennypowers.dev/tmurot/cmd/diff"
	"bennypowers.dev/tmurot/cmd/permutations"
	"bennypowers.dev/tmurot/cmd/resolve"
	"bennypowers.dev/tmurot/cmd/stats"
	"bennypowers.dev/tmurot/cmd/validate"
	"bennypowers.dev/tmurot/cmd/version"
)

var rootCmd = &cobra.Command{
	Use:   "tmurot",
	Short: "Resolve design token references and manifest permutations",
	Long:  `tmurot resolves references in DTCG design token files and generates token permutations from declarative manifests.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("schema", "s", "", "Force schema version (draft, v2025_10)")

	rootCmd.AddCommand(resolve.Cmd)
	rootCmd.AddCommand(permutations.Cmd)
	rootCmd.AddCommand(validate.Cmd)
	rootCmd.AddCommand(stats.Cmd)
	rootCmd.AddCommand(diff.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
