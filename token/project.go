/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import "sort"

// Project is a set of parsed token files with an aggregated file-level
// dependency graph. A fresh Project is built per resolution call; no
// mutation is shared across independent resolutions.
type Project struct {
	// Files maps file identity to its parsed AST.
	Files map[string]*File

	// Deps maps each file to the set of files it references.
	Deps map[string]map[string]bool
}

// NewProject creates an empty project.
func NewProject() *Project {
	return &Project{
		Files: make(map[string]*File),
		Deps:  make(map[string]map[string]bool),
	}
}

// AddFile registers a file and records its outgoing dependencies.
func (p *Project) AddFile(f *File) {
	p.Files[f.FilePath] = f
	if p.Deps[f.FilePath] == nil {
		p.Deps[f.FilePath] = make(map[string]bool)
	}
	for _, target := range f.DependsOn() {
		p.Deps[f.FilePath][target] = true
	}
}

// File returns the file registered under the given identity.
func (p *Project) File(path string) (*File, bool) {
	f, ok := p.Files[path]
	return f, ok
}

// FilePaths returns all registered file identities, sorted.
func (p *Project) FilePaths() []string {
	paths := make([]string, 0, len(p.Files))
	for path := range p.Files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
