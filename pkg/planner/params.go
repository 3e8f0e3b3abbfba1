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
	"fmt"
	"strings"

	core "github.com/T4cceptor/MakeMCP/pkg/core"
)

// bodyPropertyName is the property that carries a request body without declared fields.
const bodyPropertyName = "body"

// MapInputSchema converts the parameters and request body of op into a tool input schema.
// It never fails: unknown types fall back to string, missing path parameters are
// synthesized and name collisions are renamed, each reported as an Issue.
func MapInputSchema(op *core.OperationDescriptor) (core.ToolInputSchema, []Issue) {
	m := &schemaMapper{
		op:       op,
		schema:   core.NewToolInputSchema(),
		required: make(map[string]bool),
	}

	// Path parameters go first so they always keep their plain names.
	for _, param := range op.Parameters {
		if param.In == core.ParameterLocationPath {
			m.addParameter(param)
		}
	}
	m.synthesizeMissingPathParameters()
	for _, param := range op.Parameters {
		if param.In != core.ParameterLocationPath {
			m.addParameter(param)
		}
	}
	m.addRequestBody(op.RequestBody)

	return m.schema, m.issues
}

type schemaMapper struct {
	op       *core.OperationDescriptor
	schema   core.ToolInputSchema
	required map[string]bool
	issues   []Issue
}

func (m *schemaMapper) addParameter(param core.ParameterDescriptor) {
	name := strings.TrimSpace(param.Name)
	if name == "" {
		m.issues = append(m.issues, newIssue(IssueUnnamedParameter, m.op,
			"parameter in %q has no name and was skipped", param.In))
		return
	}

	location := param.In
	if !location.IsValid() {
		m.issues = append(m.issues, newIssue(IssueUnknownParameterLocation, m.op,
			"parameter %q has unknown location %q, routed as query", name, param.In))
		location = core.ParameterLocationQuery
	}

	prop := m.toProperty(name, param.Schema, param.Description, location)
	isRequired := param.Required || location == core.ParameterLocationPath
	m.put(name, prop, isRequired)
}

// synthesizeMissingPathParameters adds a required string property for every path
// placeholder that no path parameter declares.
func (m *schemaMapper) synthesizeMissingPathParameters() {
	declared := make(map[string]bool)
	for _, param := range m.op.Parameters {
		if param.In == core.ParameterLocationPath {
			declared[strings.TrimSpace(param.Name)] = true
		}
	}

	for _, placeholder := range m.op.PathPlaceholders() {
		if declared[placeholder] {
			continue
		}
		m.issues = append(m.issues, newIssue(IssueSynthesizedPathParameter, m.op,
			"path placeholder {%s} has no matching path parameter, synthesized as required string", placeholder))
		m.put(placeholder, core.ToolInputProperty{
			Type:        core.SchemaTypeString,
			Description: fmt.Sprintf("Path parameter %s", placeholder),
			Location:    core.ParameterLocationPath,
		}, true)
	}
}

// addRequestBody merges the top-level body fields into the schema. Nested objects
// are kept as plain object properties.
func (m *schemaMapper) addRequestBody(body *core.RequestBodyDescriptor) {
	if body == nil {
		return
	}

	if len(body.Fields) == 0 {
		bodyType := body.Type
		if bodyType == "" {
			bodyType = core.SchemaTypeObject
		}
		prop := m.toProperty(bodyPropertyName, core.ParameterSchema{Type: bodyType}, bodyDescription(body), core.ParameterLocationBody)
		m.put(bodyPropertyName, prop, body.Required)
		return
	}

	for _, field := range body.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			m.issues = append(m.issues, newIssue(IssueUnnamedParameter, m.op,
				"request body field has no name and was skipped"))
			continue
		}
		prop := m.toProperty(name, field.Schema, field.Description, core.ParameterLocationBody)
		m.put(name, prop, field.Required)
	}
}

func bodyDescription(body *core.RequestBodyDescriptor) string {
	switch {
	case body.Description != "":
		return body.Description
	case body.TypeName != "":
		return fmt.Sprintf("Request body of type %s", body.TypeName)
	case body.ContentType != "":
		return fmt.Sprintf("Request body (%s)", body.ContentType)
	default:
		return "Request body"
	}
}

func (m *schemaMapper) toProperty(name string, schema core.ParameterSchema, description string, location core.ParameterLocation) core.ToolInputProperty {
	prop := core.ToolInputProperty{
		Type:        m.normalizeType(name, schema.Type),
		Description: description,
		Location:    location,
	}
	if prop.Type == core.SchemaTypeArray {
		prop.Items = &core.ToolInputProperty{Type: m.normalizeType(name, schema.ItemType)}
	}
	return prop
}

func (m *schemaMapper) normalizeType(name string, raw core.SchemaType) core.SchemaType {
	normalized := core.NormalizeSchemaType(raw)
	if raw != "" && string(normalized) != strings.ToLower(strings.TrimSpace(string(raw))) {
		m.issues = append(m.issues, newIssue(IssueUnknownSchemaType, m.op,
			"%q has unsupported type %q, mapped to string", name, raw))
	}
	return normalized
}

// put stores prop under name. A name that is already taken is retried as
// <location>_<name>; if that is taken too the property is dropped.
func (m *schemaMapper) put(name string, prop core.ToolInputProperty, required bool) {
	key := name
	if _, taken := m.schema.Properties[key]; taken {
		key = fmt.Sprintf("%s_%s", prop.Location, name)
		if _, taken := m.schema.Properties[key]; taken {
			m.issues = append(m.issues, newIssue(IssuePropertyCollision, m.op,
				"%s property %q collides with an existing property and was dropped", prop.Location, name))
			return
		}
		prop.WireName = name
		m.issues = append(m.issues, newIssue(IssuePropertyCollision, m.op,
			"%s property %q renamed to %q", prop.Location, name, key))
	}

	m.schema.Properties[key] = prop
	if required && !m.required[key] {
		m.required[key] = true
		m.schema.Required = append(m.schema.Required, key)
	}
}
