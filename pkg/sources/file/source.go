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

// Package file loads API descriptions that were already converted to JSON or YAML.
package file

import (
	"context"

	"go.uber.org/zap"

	"github.com/T4cceptor/MakeMCP/pkg/config"
	core "github.com/T4cceptor/MakeMCP/pkg/core"
)

// SourceName is the registry name of the descriptor file source.
const SourceName = "file"

// Source loads APIDescription documents from JSON or YAML files.
type Source struct {
	logger *zap.Logger
}

// NewSource creates a descriptor file source.
func NewSource(logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{logger: logger.With(zap.String("component", "file_source"))}
}

// Name returns the name of this source type
func (s *Source) Name() string {
	return SourceName
}

// Load reads the descriptor file at location. Strict mode rejects unknown fields.
func (s *Source) Load(_ context.Context, location string, strict bool) (*core.APIDescription, error) {
	description, err := config.LoadAPIDescription(location, strict)
	if err != nil {
		return nil, err
	}
	s.logger.Info("loaded API descriptor",
		zap.String("path", location),
		zap.Int("operations", len(description.Operations)),
	)
	return description, nil
}
