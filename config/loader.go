/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"encoding/json"
	"path/filepath"

	"gopkg.in/yaml.v3"

	tmfs "bennypowers.dev/tmurot/fs"
)

// ConfigFileName is the base name of the config file without extension.
const ConfigFileName = "tmurot"

// ConfigDir is the directory where config files are stored.
const ConfigDir = ".config"

// configExtensions are the supported config file extensions in priority order.
var configExtensions = []string{".yaml", ".yml", ".json"}

// Load searches for .config/tmurot.{yaml,yml,json} from rootDir.
// Returns nil if no config found (not an error).
func Load(filesystem tmfs.FileSystem, rootDir string) (*Config, error) {
	for _, ext := range configExtensions {
		configPath := filepath.Join(rootDir, ConfigDir, ConfigFileName+ext)
		if !filesystem.Exists(configPath) {
			continue
		}

		data, err := filesystem.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		cfg := &Config{}
		switch ext {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		case ".json":
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}

		return cfg, nil
	}

	return nil, nil
}

// LoadOrDefault returns config or defaults if not found.
func LoadOrDefault(filesystem tmfs.FileSystem, rootDir string) *Config {
	cfg, err := Load(filesystem, rootDir)
	if err != nil || cfg == nil {
		return Default()
	}
	return cfg
}

// ExpandFiles expands glob patterns in Files and returns absolute paths.
func (c *Config) ExpandFiles(filesystem tmfs.FileSystem, rootDir string) ([]string, error) {
	var result []string

	for _, spec := range c.Files {
		pattern := spec.Path
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(rootDir, pattern)
		}

		if !tmfs.ContainsGlob(pattern) {
			// Not a glob, return the path directly (errors handled when
			// the file is read).
			result = append(result, pattern)
			continue
		}

		matches, err := tmfs.Glob(filesystem, pattern)
		if err != nil {
			return nil, err
		}
		result = append(result, matches...)
	}

	return result, nil
}
