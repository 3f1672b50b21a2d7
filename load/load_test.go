/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package load_test

import (
	"context"
	"testing"

	"bennypowers.dev/tmurot/internal/mapfs"
	"bennypowers.dev/tmurot/load"
)

func projectFS() *mapfs.MapFileSystem {
	mfs := mapfs.New()
	mfs.AddFile("/proj/base.json", `{
		"color": {
			"$type": "color",
			"base": { "$value": "#112233" }
		}
	}`, 0644)
	mfs.AddFile("/proj/themes/theme.json", `{
		"color": {
			"$type": "color",
			"accent": { "$value": "../base.json#color.base" },
			"local": { "$value": "{color.accent}" }
		}
	}`, 0644)
	return mfs
}

func TestLoadFile_FollowsCrossFileReferences(t *testing.T) {
	mfs := projectFS()

	f, result, err := load.LoadFile(context.Background(), "themes/theme.json", load.Options{
		FS:   mfs,
		Root: "/proj",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.HasErrors() {
		t.Fatalf("unexpected resolution errors: %s", result.CombinedMessage())
	}

	accent, ok := f.FindToken("color.accent")
	if !ok {
		t.Fatal("expected color.accent")
	}
	if accent.ResolvedValue != "#112233" {
		t.Errorf("expected cross-file value, got %v", accent.ResolvedValue)
	}

	local, _ := f.FindToken("color.local")
	if local.ResolvedValue != "#112233" {
		t.Errorf("expected chained local value, got %v", local.ResolvedValue)
	}

	// The reference literal was rewritten to the dependency's project key.
	if f.CrossRefs[0].TargetFile != "/proj/base.json" {
		t.Errorf("expected normalized target, got %q", f.CrossRefs[0].TargetFile)
	}
}

func TestLoadProject_DiscoversDependencies(t *testing.T) {
	mfs := projectFS()

	project, result, err := load.LoadProject(context.Background(),
		[]string{"themes/theme.json"},
		load.Options{FS: mfs, Root: "/proj"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.HasErrors() {
		t.Fatalf("unexpected resolution errors: %s", result.CombinedMessage())
	}

	paths := project.FilePaths()
	if len(paths) != 2 {
		t.Fatalf("expected 2 files in project, got %v", paths)
	}
	if _, ok := project.File("/proj/base.json"); !ok {
		t.Error("expected dependency discovered transitively")
	}
	for _, path := range paths {
		f, _ := project.File(path)
		if f.Checksum == "" {
			t.Errorf("expected checksum on %s", path)
		}
	}
}

func TestLoadProject_MissingDependency(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/proj/theme.json", `{
		"color": {
			"$type": "color",
			"accent": { "$value": "gone.json#color.base" }
		}
	}`, 0644)

	_, _, err := load.LoadProject(context.Background(),
		[]string{"theme.json"},
		load.Options{FS: mfs, Root: "/proj"})
	if err == nil {
		t.Fatal("expected a read error for the missing dependency")
	}
}

func TestLoadProject_RemoteWithoutFetcher(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/proj/theme.json", `{
		"color": {
			"$type": "color",
			"accent": { "$value": "https://example.com/base.json#color.base" }
		}
	}`, 0644)

	_, _, err := load.LoadProject(context.Background(),
		[]string{"theme.json"},
		load.Options{FS: mfs, Root: "/proj"})
	if err == nil {
		t.Fatal("expected an error without a fetcher")
	}
}

type staticFetcher struct {
	body map[string]string
}

func (f *staticFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return []byte(f.body[url]), nil
}

func TestLoadProject_RemoteFetch(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/proj/theme.json", `{
		"color": {
			"$type": "color",
			"accent": { "$value": "https://example.com/base.json#color.base" }
		}
	}`, 0644)

	fetcher := &staticFetcher{body: map[string]string{
		"https://example.com/base.json": `{
			"color": {
				"$type": "color",
				"base": { "$value": "#445566" }
			}
		}`,
	}}

	project, result, err := load.LoadProject(context.Background(),
		[]string{"theme.json"},
		load.Options{FS: mfs, Root: "/proj", Fetcher: fetcher})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.HasErrors() {
		t.Fatalf("unexpected resolution errors: %s", result.CombinedMessage())
	}

	theme, _ := project.File("/proj/theme.json")
	accent, _ := theme.FindToken("color.accent")
	if accent.ResolvedValue != "#445566" {
		t.Errorf("expected remote value, got %v", accent.ResolvedValue)
	}
}

func TestLoadManifest(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/proj/manifest.json", `{
		"name": "test",
		"sets": [{ "values": ["core.json"] }],
		"modifiers": {
			"theme": { "oneOf": ["light", "dark"] }
		}
	}`, 0644)

	m, err := load.LoadManifest(context.Background(), "manifest.json", load.Options{
		FS:   mfs,
		Root: "/proj",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name != "test" {
		t.Errorf("unexpected manifest name %q", m.Name)
	}
	if _, ok := m.Modifiers["theme"]; !ok {
		t.Error("expected theme modifier")
	}
}

func TestNewPermutationResolver(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/proj/core.json", `{
		"color": { "$type": "color", "base": { "$value": "#112233" } }
	}`, 0644)
	mfs.AddFile("/proj/manifest.json", `{
		"sets": [{ "values": ["core.json"] }]
	}`, 0644)

	m, err := load.LoadManifest(context.Background(), "manifest.json", load.Options{
		FS:   mfs,
		Root: "/proj",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r, err := load.NewPermutationResolver(m, load.Options{FS: mfs, Root: "/proj"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	perm, err := r.ResolvePermutation(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if perm.ID != "default" {
		t.Errorf("unexpected id %q", perm.ID)
	}
	if len(perm.Files) != 1 || perm.Files[0] != "/proj/core.json" {
		t.Errorf("unexpected files %v", perm.Files)
	}
}
