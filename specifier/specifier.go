/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package specifier classifies cross-file reference targets.
package specifier

import (
	"path/filepath"
	"strings"
)

// Kind indicates the type of target specifier.
type Kind int

const (
	// KindLocal is a relative or absolute file path.
	KindLocal Kind = iota
	// KindFileURL is a file:// URI.
	KindFileURL
	// KindRemote is an http:// or https:// URL.
	KindRemote
)

// Target is a classified cross-file reference target.
type Target struct {
	// Kind is the type of specifier.
	Kind Kind

	// Location is the file path (local, file URL stripped of its
	// scheme) or the full URL for remote targets.
	Location string

	// Raw is the original specifier string.
	Raw string
}

// Parse classifies a cross-file target specifier.
func Parse(spec string) *Target {
	switch {
	case strings.HasPrefix(spec, "file://"):
		return &Target{
			Kind:     KindFileURL,
			Location: strings.TrimPrefix(spec, "file://"),
			Raw:      spec,
		}
	case strings.HasPrefix(spec, "http://"), strings.HasPrefix(spec, "https://"):
		return &Target{Kind: KindRemote, Location: spec, Raw: spec}
	default:
		return &Target{Kind: KindLocal, Location: spec, Raw: spec}
	}
}

// ResolveFrom returns the normalized project key for this target as
// referenced from a file in baseDir. Remote targets are their own key;
// local and file-URL targets resolve relative to the referring file.
func (t *Target) ResolveFrom(baseDir string) string {
	switch t.Kind {
	case KindRemote:
		return t.Location
	case KindFileURL:
		return filepath.Clean(t.Location)
	default:
		if filepath.IsAbs(t.Location) {
			return filepath.Clean(t.Location)
		}
		return filepath.Clean(filepath.Join(baseDir, t.Location))
	}
}
