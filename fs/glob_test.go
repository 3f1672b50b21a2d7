/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package fs_test

import (
	"slices"
	"testing"

	tmfs "bennypowers.dev/tmurot/fs"
	"bennypowers.dev/tmurot/internal/mapfs"
)

func TestContainsGlob(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{"tokens/*.json", true},
		{"tokens/**/*.json", true},
		{"tokens/[ab].json", true},
		{"tokens/?.json", true},
		{"tokens/core.json", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := tmfs.ContainsGlob(tt.pattern); got != tt.want {
			t.Errorf("ContainsGlob(%q) = %v, want %v", tt.pattern, got, tt.want)
		}
	}
}

func TestGlob(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/proj/tokens/core.json", "{}", 0644)
	mfs.AddFile("/proj/tokens/theme.json", "{}", 0644)
	mfs.AddFile("/proj/tokens/nested/deep.json", "{}", 0644)
	mfs.AddFile("/proj/tokens/readme.md", "", 0644)

	t.Run("single star stays shallow", func(t *testing.T) {
		matches, err := tmfs.Glob(mfs, "/proj/tokens/*.json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"/proj/tokens/core.json", "/proj/tokens/theme.json"}
		if !slices.Equal(matches, want) {
			t.Errorf("Glob = %v, want %v", matches, want)
		}
	})

	t.Run("double star recurses", func(t *testing.T) {
		matches, err := tmfs.Glob(mfs, "/proj/tokens/**/*.json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !slices.Contains(matches, "/proj/tokens/nested/deep.json") {
			t.Errorf("expected recursive match, got %v", matches)
		}
	})

	t.Run("extension filters", func(t *testing.T) {
		matches, err := tmfs.Glob(mfs, "/proj/tokens/*.json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if slices.Contains(matches, "/proj/tokens/readme.md") {
			t.Errorf("expected non-matching extension excluded, got %v", matches)
		}
	})
}
