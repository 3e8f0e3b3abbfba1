// Copyright 2025 MakeMCP Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config reads API descriptor and override files and writes project configurations.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies the encoding of a file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ConfigFileSuffix is appended to the service name to derive the default output file.
const ConfigFileSuffix = ".makemcp.json"

// FormatFromPath detects the file format from the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported file extension %q: expected .json, .yaml, .yml or .toml", filepath.Ext(path))
	}
}

// DefaultConfigFilename returns the output file name for a service, e.g. "pet_store.makemcp.json".
func DefaultConfigFilename(serviceName string) string {
	return serviceName + ConfigFileSuffix
}
