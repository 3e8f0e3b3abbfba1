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

// Package schema checks tool arguments against generated tool input schemas.
package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	core "github.com/T4cceptor/MakeMCP/pkg/core"
)

// FieldError is one argument that failed validation.
type FieldError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// ValidationError lists every argument that failed validation.
type ValidationError struct {
	Tool   string       `json:"tool"`
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Description)
	}
	return fmt.Sprintf("invalid arguments for tool %s: %s", e.Tool, strings.Join(msgs, "; "))
}

// Document renders the input schema as a JSON Schema document. An empty
// required list is left out.
func Document(schema core.ToolInputSchema) ([]byte, error) {
	doc := map[string]any{
		"type":       "object",
		"properties": schema.Properties,
	}
	if schema.Properties == nil {
		doc["properties"] = map[string]any{}
	}
	if len(schema.Required) > 0 {
		doc["required"] = schema.Required
	}
	return json.Marshal(doc)
}

// ValidateArguments validates args against the input schema of tool.
// A *ValidationError is returned when the arguments do not conform.
func ValidateArguments(tool core.ToolDefinition, args map[string]any) error {
	schemaJSON, err := Document(tool.InputSchema)
	if err != nil {
		return fmt.Errorf("failed to encode input schema of %s: %w", tool.Name, err)
	}
	if args == nil {
		args = map[string]any{}
	}
	argsJSON, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("failed to encode arguments for %s: %w", tool.Name, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(argsJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to validate arguments for %s: %w", tool.Name, err)
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{Tool: tool.Name}
	for _, resultErr := range result.Errors() {
		validationErr.Fields = append(validationErr.Fields, FieldError{
			Field:       resultErr.Field(),
			Description: resultErr.Description(),
		})
	}
	sort.Slice(validationErr.Fields, func(i, j int) bool {
		if validationErr.Fields[i].Field != validationErr.Fields[j].Field {
			return validationErr.Fields[i].Field < validationErr.Fields[j].Field
		}
		return validationErr.Fields[i].Description < validationErr.Fields[j].Description
	})
	return validationErr
}

// CheckExamples validates the example of every tool that has one and returns
// the failures keyed by tool name.
func CheckExamples(config *core.MCPProjectConfig) map[string]error {
	failures := make(map[string]error)
	for _, tool := range config.Tools {
		if tool.Example == nil {
			continue
		}
		if err := ValidateArguments(tool, tool.Example); err != nil {
			failures[tool.Name] = err
		}
	}
	return failures
}
