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

package core

import "encoding/json"

// NamingConvention selects how tool names are derived.
type NamingConvention string

const (
	// NamingOperationID prefers the operationId and falls back to method and path.
	NamingOperationID NamingConvention = "operation_id"
	// NamingPathMethod always composes the name from method and path.
	NamingPathMethod NamingConvention = "path_method"
)

// IsValid returns true if the naming convention is known
func (n NamingConvention) IsValid() bool {
	switch n {
	case NamingOperationID, NamingPathMethod:
		return true
	default:
		return false
	}
}

// Tier is a coarse complexity classification used to pick defaults.
type Tier string

const (
	TierSimple   Tier = "simple"
	TierModerate Tier = "moderate"
	TierComplex  Tier = "complex"
)

// ComplexityEstimate is the scored size of an operation set.
type ComplexityEstimate struct {
	Tier          Tier    `json:"tier"`
	Score         float64 `json:"score"`
	Operations    int     `json:"operations"`
	Parameters    int     `json:"parameters"`
	RequestBodies int     `json:"requestBodies"`
	AuthSchemes   int     `json:"authSchemes"`
}

// IntegrationConfig holds the resolved tool-generation settings.
type IntegrationConfig struct {
	NamingConvention NamingConvention `json:"namingConvention"`
	MaxTools         int              `json:"maxTools"`
	IncludeTags      []string         `json:"includeTags"`
	ExcludeTags      []string         `json:"excludeTags"`
	EnableExamples   bool             `json:"enableExamples"`
	EnableResources  bool             `json:"enableResources"`
	IncludeAuthTools bool             `json:"includeAuthTools"`
}

// IntegrationOverrides holds caller-supplied settings. A nil field was not supplied.
type IntegrationOverrides struct {
	MaxTools         *int              `json:"max_tools,omitempty" yaml:"max_tools,omitempty" toml:"max_tools,omitempty" validate:"omitempty,gte=1"`
	IncludeTags      []string          `json:"include_tags,omitempty" yaml:"include_tags,omitempty" toml:"include_tags,omitempty" validate:"omitempty,dive,required"`
	ExcludeTags      []string          `json:"exclude_tags,omitempty" yaml:"exclude_tags,omitempty" toml:"exclude_tags,omitempty" validate:"omitempty,dive,required"`
	EnableExamples   *bool             `json:"enable_examples,omitempty" yaml:"enable_examples,omitempty" toml:"enable_examples,omitempty"`
	EnableResources  *bool             `json:"enable_resources,omitempty" yaml:"enable_resources,omitempty" toml:"enable_resources,omitempty"`
	IncludeAuthTools *bool             `json:"include_auth_tools,omitempty" yaml:"include_auth_tools,omitempty" toml:"include_auth_tools,omitempty"`
	NamingConvention *NamingConvention `json:"naming_convention,omitempty" yaml:"naming_convention,omitempty" toml:"naming_convention,omitempty" validate:"omitempty,oneof=operation_id path_method"`
}

// Merge returns o with every field that other supplies replaced by other's value.
func (o IntegrationOverrides) Merge(other IntegrationOverrides) IntegrationOverrides {
	if other.MaxTools != nil {
		o.MaxTools = other.MaxTools
	}
	if other.IncludeTags != nil {
		o.IncludeTags = other.IncludeTags
	}
	if other.ExcludeTags != nil {
		o.ExcludeTags = other.ExcludeTags
	}
	if other.EnableExamples != nil {
		o.EnableExamples = other.EnableExamples
	}
	if other.EnableResources != nil {
		o.EnableResources = other.EnableResources
	}
	if other.IncludeAuthTools != nil {
		o.IncludeAuthTools = other.IncludeAuthTools
	}
	if other.NamingConvention != nil {
		o.NamingConvention = other.NamingConvention
	}
	return o
}

// ProjectMetadata describes the project the tools are generated for.
type ProjectMetadata struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Author      string `json:"author,omitempty"`
	Version     string `json:"version"`
}

// MCPProjectConfig is the output of a planning run, handed to the project generator.
type MCPProjectConfig struct {
	Project     ProjectMetadata   `json:"project"`
	ServiceName string            `json:"serviceName"`
	API         APIMetadata       `json:"api"`
	Tools       []ToolDefinition  `json:"tools"`
	Integration IntegrationConfig `json:"integration"`
}

// ToJSON returns the indented JSON representation of the project configuration.
func (c *MCPProjectConfig) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// ToolNames returns the tool names in output order.
func (c *MCPProjectConfig) ToolNames() []string {
	names := make([]string, len(c.Tools))
	for i, tool := range c.Tools {
		names[i] = tool.Name
	}
	return names
}
