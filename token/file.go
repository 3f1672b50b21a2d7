/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

// CrossFileEdge records one outgoing cross-file reference from a token.
type CrossFileEdge struct {
	// SourcePath is the dot path of the referring token in this file.
	SourcePath string

	// TargetFile identifies the referenced file. The parser records the
	// literal as written; project assembly rewrites it to the normalized
	// project key.
	TargetFile string

	// TargetPath is the dot path of the referenced token in TargetFile.
	TargetPath string

	// Raw is the original reference literal.
	Raw string
}

// File is a parsed token file: a root group plus its file identity and
// cross-file edge index.
type File struct {
	*Group

	// FilePath identifies this file within a project.
	FilePath string

	// Checksum is a content hash used for cache invalidation. Not
	// required for correctness.
	Checksum string

	// CrossRefs indexes every outgoing cross-file reference edge.
	CrossRefs []CrossFileEdge
}

// NewFile wraps a root group with a file identity, indexing its
// cross-file edges.
func NewFile(root *Group, path string) *File {
	f := &File{Group: root, FilePath: path}
	root.VisitTokens(func(t *Token) bool {
		t.FilePath = path
		for _, ref := range t.CrossFileReferences() {
			f.CrossRefs = append(f.CrossRefs, CrossFileEdge{
				SourcePath: t.DotPath(),
				TargetFile: ref.File,
				TargetPath: ref.Path,
				Raw:        ref.Raw,
			})
		}
		return true
	})
	return f
}

// RewriteTargets maps every cross-file target through rewrite and
// reindexes the edge list. Project assembly uses it to replace
// reference literals with normalized project keys.
func (f *File) RewriteTargets(rewrite func(target string) string) {
	f.CrossRefs = f.CrossRefs[:0]
	f.VisitTokens(func(t *Token) bool {
		for i := range t.References {
			ref := &t.References[i]
			if ref.Kind != RefCrossFile {
				continue
			}
			ref.File = rewrite(ref.File)
			f.CrossRefs = append(f.CrossRefs, CrossFileEdge{
				SourcePath: t.DotPath(),
				TargetFile: ref.File,
				TargetPath: ref.Path,
				Raw:        ref.Raw,
			})
		}
		return true
	})
}

// DependsOn returns the set of target files this file references.
func (f *File) DependsOn() []string {
	seen := make(map[string]bool)
	var files []string
	for _, edge := range f.CrossRefs {
		if !seen[edge.TargetFile] {
			seen[edge.TargetFile] = true
			files = append(files, edge.TargetFile)
		}
	}
	return files
}
