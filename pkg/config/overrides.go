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
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	core "github.com/T4cceptor/MakeMCP/pkg/core"
)

var validate = validator.New()

// LoadOverrides reads integration overrides from a TOML, YAML or JSON file.
// Unknown keys are rejected so that misspelled options do not go unnoticed.
func LoadOverrides(path string) (core.IntegrationOverrides, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return core.IntegrationOverrides{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return core.IntegrationOverrides{}, fmt.Errorf("failed to open overrides file: %w", err)
	}
	overrides, err := DecodeOverrides(data, format)
	if err != nil {
		return core.IntegrationOverrides{}, fmt.Errorf("%s: %w", path, err)
	}
	return overrides, nil
}

// DecodeOverrides decodes and validates integration overrides.
func DecodeOverrides(data []byte, format Format) (core.IntegrationOverrides, error) {
	var overrides core.IntegrationOverrides

	switch format {
	case FormatTOML:
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&overrides); err != nil {
			return overrides, fmt.Errorf("failed to decode TOML: %w", err)
		}
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&overrides); err != nil && !errors.Is(err, io.EOF) {
			return overrides, fmt.Errorf("failed to decode YAML: %w", err)
		}
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&overrides); err != nil && !errors.Is(err, io.EOF) {
			return overrides, fmt.Errorf("failed to decode JSON: %w", err)
		}
	default:
		return overrides, fmt.Errorf("unsupported overrides format: %s", format)
	}

	if err := ValidateOverrides(overrides); err != nil {
		return overrides, err
	}
	return overrides, nil
}

// ValidateOverrides checks value constraints of overrides.
func ValidateOverrides(overrides core.IntegrationOverrides) error {
	err := validate.Struct(overrides)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("invalid overrides: %w", err)
	}
	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid overrides: %s", strings.Join(messages, "; "))
}
