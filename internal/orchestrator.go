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

package internal

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/T4cceptor/MakeMCP/pkg/config"
	core "github.com/T4cceptor/MakeMCP/pkg/core"
	"github.com/T4cceptor/MakeMCP/pkg/planner"
	"github.com/T4cceptor/MakeMCP/pkg/sources"
	"github.com/T4cceptor/MakeMCP/pkg/sources/file"
	"github.com/T4cceptor/MakeMCP/pkg/sources/openapi"
)

// NewSourceRegistry returns a registry holding the OpenAPI and descriptor file sources.
func NewSourceRegistry(logger *zap.Logger, timeout time.Duration) *sources.SourceRegistry {
	return sources.NewSourceRegistry(
		openapi.NewSource(logger, timeout),
		file.NewSource(logger),
	)
}

// PlanInput holds everything one planning run needs.
type PlanInput struct {
	SourceType    string
	Location      string
	Strict        bool
	Project       core.ProjectMetadata
	OverridesFile string
	// FlagOverrides take precedence over values from OverridesFile.
	FlagOverrides core.IntegrationOverrides
}

// Plan loads the API description, resolves overrides and builds the project configuration.
func Plan(ctx context.Context, registry *sources.SourceRegistry, builder *planner.Builder, input PlanInput) (*planner.Result, error) {
	source, err := registry.Get(input.SourceType)
	if err != nil {
		return nil, err
	}

	overrides := core.IntegrationOverrides{}
	if input.OverridesFile != "" {
		overrides, err = config.LoadOverrides(input.OverridesFile)
		if err != nil {
			return nil, err
		}
	}
	overrides = overrides.Merge(input.FlagOverrides)
	if err := config.ValidateOverrides(overrides); err != nil {
		return nil, err
	}

	api, err := source.Load(ctx, input.Location, input.Strict)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s source: %w", source.Name(), err)
	}

	result, err := builder.Build(input.Project, *api, overrides)
	if err != nil {
		return nil, err
	}
	return result, nil
}
