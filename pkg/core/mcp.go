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

// MCP protocol types

// ToolInputProperty defines a property in the input schema for an MCP tool.
// Location is routing metadata for the executor and is emitted as the
// x-location extension keyword.
type ToolInputProperty struct {
	Type        SchemaType         `json:"type"`
	Description string             `json:"description,omitempty"`
	Items       *ToolInputProperty `json:"items,omitempty"`
	Location    ParameterLocation  `json:"x-location,omitempty"`
	// WireName is set when the property was renamed to avoid a collision.
	WireName string `json:"x-wire-name,omitempty"`
}

// RoutedName returns the name the value is sent under.
func (p ToolInputProperty) RoutedName(key string) string {
	if p.WireName != "" {
		return p.WireName
	}
	return key
}

// ToolInputSchema defines the JSON Schema for tool input parameters
type ToolInputSchema struct {
	Type       string                       `json:"type"`
	Properties map[string]ToolInputProperty `json:"properties"`
	Required   []string                     `json:"required"`
}

// NewToolInputSchema returns an empty object schema.
func NewToolInputSchema() ToolInputSchema {
	return ToolInputSchema{
		Type:       "object",
		Properties: map[string]ToolInputProperty{},
		Required:   []string{},
	}
}

// IsRequired reports whether name is in the required list.
func (s ToolInputSchema) IsRequired(name string) bool {
	for _, req := range s.Required {
		if req == name {
			return true
		}
	}
	return false
}

// ToolAnnotation provides metadata about tool behavior and characteristics
type ToolAnnotation struct {
	// Human-readable title for the tool
	Title string `json:"title,omitempty"`
	// If true, the tool does not modify its environment
	ReadOnlyHint *bool `json:"readOnlyHint,omitempty"`
	// If true, the tool may perform destructive updates
	DestructiveHint *bool `json:"destructiveHint,omitempty"`
	// If true, repeated calls with same args have no additional effect
	IdempotentHint *bool `json:"idempotentHint,omitempty"`
	// If true, tool interacts with external entities
	OpenWorldHint *bool `json:"openWorldHint,omitempty"`
}

// OperationRef is the serialized back-reference from a tool to its operation.
type OperationRef struct {
	Method      HTTPMethod `json:"method"`
	Path        string     `json:"path"`
	OperationID string     `json:"operationId,omitempty"`
}

// ToolDefinition is one callable MCP tool derived from an operation.
type ToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema ToolInputSchema `json:"inputSchema"`
	Annotations ToolAnnotation  `json:"annotations"`
	Operation   OperationRef    `json:"operation"`
	// Example holds sample arguments, only filled when examples are enabled.
	Example map[string]any `json:"example,omitempty"`

	// Source points at the descriptor the tool was built from. It is valid
	// only for the duration of the run that produced the tool.
	Source *OperationDescriptor `json:"-"`
}
