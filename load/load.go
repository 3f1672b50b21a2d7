/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package load provides a high-level API for loading and resolving
// design token files, projects, and manifests.
package load

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"bennypowers.dev/tmurot/fs"
	"bennypowers.dev/tmurot/manifest"
	"bennypowers.dev/tmurot/parser"
	"bennypowers.dev/tmurot/resolver"
	"bennypowers.dev/tmurot/schema"
	"bennypowers.dev/tmurot/specifier"
	"bennypowers.dev/tmurot/token"
)

// Options configures loading.
type Options struct {
	// FS is the filesystem to use. Defaults to OS filesystem if nil.
	FS fs.FileSystem

	// Root is the base directory for relative paths.
	Root string

	// SchemaVersion overrides auto-detection from file content.
	SchemaVersion schema.Version

	// Fetcher enables following https:// cross-file references.
	// Nil means remote references fail with an error (default).
	Fetcher Fetcher

	// FetchTimeout is the maximum time to wait for a network fetch.
	// Defaults to DefaultTimeout when zero.
	FetchTimeout time.Duration
}

func (o Options) filesystem() fs.FileSystem {
	if o.FS != nil {
		return o.FS
	}
	return fs.NewOSFileSystem()
}

func (o Options) root() (string, error) {
	root := o.Root
	if root == "" {
		root = "."
	}
	if !filepath.IsAbs(root) {
		abs, err := filepath.Abs(root)
		if err != nil {
			return "", fmt.Errorf("failed to resolve root path: %w", err)
		}
		root = abs
	}
	return root, nil
}

// LoadFile loads one token file, follows its cross-file references
// transitively, and resolves the resulting project. Returns the entry
// file's AST alongside the full resolution result.
func LoadFile(ctx context.Context, filePath string, opts Options) (*token.File, *resolver.Result, error) {
	project, result, err := LoadProject(ctx, []string{filePath}, opts)
	if err != nil {
		return nil, nil, err
	}
	root, err := opts.root()
	if err != nil {
		return nil, nil, err
	}
	f, ok := project.File(projectKey(root, filePath))
	if !ok {
		return nil, nil, fmt.Errorf("file %s missing from loaded project", filePath)
	}
	return f, result, nil
}

// LoadProject loads token files, discovers every file they reference
// transitively, builds a Project AST, and resolves it. Resolution
// errors are collected in the result, not returned as err. I/O and
// parse failures are.
func LoadProject(ctx context.Context, paths []string, opts Options) (*token.Project, *resolver.Result, error) {
	filesystem := opts.filesystem()
	root, err := opts.root()
	if err != nil {
		return nil, nil, err
	}

	project := token.NewProject()

	queue := make([]string, 0, len(paths))
	for _, p := range paths {
		queue = append(queue, projectKey(root, p))
	}

	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		if _, loaded := project.File(key); loaded {
			continue
		}

		f, err := loadOne(ctx, filesystem, key, opts)
		if err != nil {
			return nil, nil, err
		}

		// Replace reference literals with normalized project keys so
		// the resolver can look targets up directly.
		f.RewriteTargets(func(target string) string {
			return joinTarget(key, target)
		})

		project.AddFile(f)
		queue = append(queue, f.DependsOn()...)
	}

	result := resolver.ResolveProject(project)
	return project, result, nil
}

// LoadManifest reads and parses a manifest document.
func LoadManifest(ctx context.Context, manifestPath string, opts Options) (*manifest.Manifest, error) {
	filesystem := opts.filesystem()
	root, err := opts.root()
	if err != nil {
		return nil, err
	}
	data, err := readContent(ctx, filesystem, projectKey(root, manifestPath), opts)
	if err != nil {
		return nil, err
	}
	return manifest.Parse(data)
}

// NewPermutationResolver assembles a manifest resolver that reads token
// documents through the configured filesystem.
func NewPermutationResolver(m *manifest.Manifest, opts Options) (*manifest.Resolver, error) {
	filesystem := opts.filesystem()
	root, err := opts.root()
	if err != nil {
		return nil, err
	}
	return &manifest.Resolver{
		Manifest: m,
		Reader:   &manifest.FSReader{FS: filesystem},
		FS:       filesystem,
		Root:     root,
	}, nil
}

// loadOne reads and parses a single file or URL into a File AST.
func loadOne(ctx context.Context, filesystem fs.FileSystem, key string, opts Options) (*token.File, error) {
	data, err := readContent(ctx, filesystem, key, opts)
	if err != nil {
		return nil, err
	}
	tree, err := parser.Parse(data, parser.Options{SchemaVersion: opts.SchemaVersion})
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	sum := sha256.Sum256(data)
	f := token.NewFile(tree, key)
	f.Checksum = hex.EncodeToString(sum[:])
	return f, nil
}

// readContent reads local content through the filesystem and remote
// content through the Fetcher. I/O errors propagate unchanged.
func readContent(ctx context.Context, filesystem fs.FileSystem, key string, opts Options) ([]byte, error) {
	if !isRemote(key) {
		return filesystem.ReadFile(key)
	}

	if opts.Fetcher == nil {
		return nil, fmt.Errorf("no fetcher configured for remote reference %s", key)
	}
	timeout := opts.FetchTimeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return opts.Fetcher.Fetch(ctx, key)
}

// projectKey normalizes an entry path to its project identity.
func projectKey(root, p string) string {
	t := specifier.Parse(p)
	return t.ResolveFrom(root)
}

// joinTarget resolves a cross-file target literal relative to the
// referring file's project key.
func joinTarget(sourceKey, literal string) string {
	t := specifier.Parse(literal)
	if t.Kind == specifier.KindRemote {
		return t.Location
	}
	if isRemote(sourceKey) {
		// Relative reference within a remote document resolves against
		// the document's URL.
		scheme, rest, _ := strings.Cut(sourceKey, "://")
		return scheme + "://" + path.Join(path.Dir(rest), t.Location)
	}
	return t.ResolveFrom(filepath.Dir(sourceKey))
}

func isRemote(key string) bool {
	return strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://")
}
