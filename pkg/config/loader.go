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

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	core "github.com/T4cceptor/MakeMCP/pkg/core"
)

// LoadAPIDescription loads an API descriptor from a JSON or YAML file.
// In strict mode unknown fields are rejected.
func LoadAPIDescription(path string, strict bool) (*core.APIDescription, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	description, err := DecodeAPIDescription(data, format, strict)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return description, nil
}

// DecodeAPIDescription decodes an API descriptor and normalizes its HTTP methods.
func DecodeAPIDescription(data []byte, format Format, strict bool) (*core.APIDescription, error) {
	var description core.APIDescription

	switch format {
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		if strict {
			decoder.DisallowUnknownFields()
		}
		if err := decoder.Decode(&description); err != nil {
			return nil, fmt.Errorf("failed to decode JSON: %w", err)
		}
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(strict)
		if err := decoder.Decode(&description); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported descriptor format: %s", format)
	}

	if description.Operations == nil {
		description.Operations = []core.OperationDescriptor{}
	}
	for i := range description.Operations {
		op := &description.Operations[i]
		method, err := core.ParseHTTPMethod(string(op.Method))
		if err != nil {
			return nil, fmt.Errorf("operation %d (%s): %w", i, op.Path, err)
		}
		op.Method = method
		if op.Path == "" {
			return nil, fmt.Errorf("operation %d (%s): path is required", i, op.Method)
		}
	}
	return &description, nil
}

// SaveToFile serializes the project configuration as indented JSON and writes it to path.
// An empty path writes to the default file name derived from the service name.
func SaveToFile(cfg *core.MCPProjectConfig, path string) (string, error) {
	if path == "" {
		path = DefaultConfigFilename(cfg.ServiceName)
	}
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := WriteJSON(file, cfg); err != nil {
		return "", err
	}
	return path, nil
}

// WriteJSON writes the project configuration as indented JSON.
func WriteJSON(w io.Writer, cfg *core.MCPProjectConfig) error {
	data, err := cfg.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

// LoadProjectConfig reads a project configuration written by SaveToFile.
func LoadProjectConfig(path string) (*core.MCPProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	var cfg core.MCPProjectConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return &cfg, nil
}
