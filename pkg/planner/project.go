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

package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	core "github.com/T4cceptor/MakeMCP/pkg/core"
)

// ErrMissingProjectName is returned by Build when the project name is absent or blank.
var ErrMissingProjectName = errors.New("project name is required")

const (
	defaultProjectVersion = "0.1.0"
	defaultServiceName    = "mcp_server"
)

// Result is the outcome of one planning run.
type Result struct {
	Config     *core.MCPProjectConfig
	Complexity core.ComplexityEstimate
	Issues     []Issue
}

// Builder assembles MCPProjectConfig values. It keeps no state between runs
// and can be shared by concurrent callers.
type Builder struct {
	logger   *zap.Logger
	validate *validator.Validate
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger data-quality issues are reported to.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder creates a Builder. Without WithLogger nothing is logged.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		logger:   zap.NewNop(),
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With(zap.String("component", "project_builder"))
	return b
}

// Build runs the planning pipeline over api and assembles the project configuration.
//
// The only failure is a missing project name, reported before any work is done.
// Every other irregularity is resolved by a fallback policy, returned in
// Result.Issues and logged as a warning.
func (b *Builder) Build(meta core.ProjectMetadata, api core.APIDescription, overrides core.IntegrationOverrides) (*Result, error) {
	meta.Name = strings.TrimSpace(meta.Name)
	if err := b.validate.Struct(meta); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingProjectName, err)
	}

	authSchemes := len(api.API.AuthSchemes)

	// The limit depends on the tier of the tag-filtered candidates; tags are
	// caller-supplied only, so they are known before any estimate exists.
	candidates := FilterOperations(api.Operations, core.IntegrationConfig{
		IncludeTags: normalizeTags(overrides.IncludeTags),
		ExcludeTags: normalizeTags(overrides.ExcludeTags),
	})
	preliminary := BuildIntegrationConfig(EstimateComplexity(candidates, authSchemes), overrides)

	selected := FilterOperations(api.Operations, preliminary)
	complexity := EstimateComplexity(selected, authSchemes)
	integration := BuildIntegrationConfig(complexity, overrides)

	var issues []Issue
	if len(selected) < len(candidates) {
		issues = append(issues, newIssue(IssueToolsTruncated, nil,
			"%d operations qualified, limited to %d", len(candidates), preliminary.MaxTools))
	}
	issues = append(issues, analyzeAPI(api.API, selected)...)

	tools, toolIssues := buildTools(selected, integration)
	issues = append(issues, toolIssues...)

	config := &core.MCPProjectConfig{
		Project:     completeMetadata(meta, api.API),
		ServiceName: serviceName(meta.Name),
		API:         copyAPIMetadata(api.API),
		Tools:       tools,
		Integration: integration,
	}

	for _, issue := range issues {
		b.logger.Warn("data quality issue",
			zap.String("code", string(issue.Code)),
			zap.String("operation", issue.Operation),
			zap.String("message", issue.Message),
		)
	}
	b.logger.Info("project configuration built",
		zap.String("project", config.Project.Name),
		zap.Int("operations", len(api.Operations)),
		zap.Int("tools", len(tools)),
		zap.String("tier", string(complexity.Tier)),
		zap.Float64("score", complexity.Score),
	)

	return &Result{
		Config:     config,
		Complexity: complexity,
		Issues:     issues,
	}, nil
}

// buildTools names and maps every selected operation in order.
func buildTools(selected []*core.OperationDescriptor, integration core.IntegrationConfig) ([]core.ToolDefinition, []Issue) {
	var issues []Issue
	assigned := NewAssignedNames()
	tools := make([]core.ToolDefinition, 0, len(selected))

	for _, op := range selected {
		name := ResolveToolName(op, integration.NamingConvention, assigned)
		if base := BaseToolName(op, integration.NamingConvention); base != name {
			issues = append(issues, newIssue(IssueNameCollision, op,
				"tool name %q already assigned, using %q", base, name))
		}

		schema, schemaIssues := MapInputSchema(op)
		issues = append(issues, schemaIssues...)

		tool := core.ToolDefinition{
			Name:        name,
			Description: toolDescription(op),
			InputSchema: schema,
			Annotations: toolAnnotations(name, op),
			Operation: core.OperationRef{
				Method:      op.Method,
				Path:        op.Path,
				OperationID: op.OperationID,
			},
			Source: op,
		}
		if integration.EnableExamples {
			tool.Example = BuildExample(tool)
		}
		tools = append(tools, tool)
	}
	return tools, issues
}

func completeMetadata(meta core.ProjectMetadata, api core.APIMetadata) core.ProjectMetadata {
	if meta.Version == "" {
		meta.Version = api.Version
	}
	if meta.Version == "" {
		meta.Version = defaultProjectVersion
	}
	if meta.Description == "" && api.Title != "" {
		meta.Description = fmt.Sprintf("MCP server for %s", api.Title)
	}
	return meta
}

func copyAPIMetadata(api core.APIMetadata) core.APIMetadata {
	api.AuthSchemes = append([]string{}, api.AuthSchemes...)
	return api
}

// serviceName converts a project name into a snake_case identifier: pet-store-mcp -> pet_store_mcp.
func serviceName(projectName string) string {
	name := toSnakeCase(projectName)
	switch {
	case name == "":
		return defaultServiceName
	case isDigit(rune(name[0])):
		return "mcp_" + name
	default:
		return name
	}
}
