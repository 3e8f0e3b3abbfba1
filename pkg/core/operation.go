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

import (
	"fmt"
	"strings"
)

// HTTPMethod is one of the HTTP methods an operation can be exposed with.
type HTTPMethod string

const (
	MethodGet     HTTPMethod = "GET"
	MethodPost    HTTPMethod = "POST"
	MethodPut     HTTPMethod = "PUT"
	MethodPatch   HTTPMethod = "PATCH"
	MethodDelete  HTTPMethod = "DELETE"
	MethodHead    HTTPMethod = "HEAD"
	MethodOptions HTTPMethod = "OPTIONS"
)

// IsValid returns true if the method is one of the supported HTTP methods
func (m HTTPMethod) IsValid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete, MethodHead, MethodOptions:
		return true
	default:
		return false
	}
}

// ParseHTTPMethod upper-cases raw and validates it against the supported methods.
func ParseHTTPMethod(raw string) (HTTPMethod, error) {
	method := HTTPMethod(strings.ToUpper(strings.TrimSpace(raw)))
	if !method.IsValid() {
		return "", fmt.Errorf("unsupported HTTP method: %q", raw)
	}
	return method, nil
}

// ParameterLocation defines where a parameter value is routed when the tool is executed
type ParameterLocation string

const (
	ParameterLocationPath   ParameterLocation = "path"
	ParameterLocationQuery  ParameterLocation = "query"
	ParameterLocationHeader ParameterLocation = "header"
	ParameterLocationCookie ParameterLocation = "cookie"
	// ParameterLocationBody only appears on tool input properties derived from a request body.
	ParameterLocationBody ParameterLocation = "body"
)

// IsValid returns true if the parameter location is valid
func (p ParameterLocation) IsValid() bool {
	switch p {
	case ParameterLocationPath, ParameterLocationQuery, ParameterLocationHeader, ParameterLocationCookie, ParameterLocationBody:
		return true
	default:
		return false
	}
}

// SchemaType is the JSON Schema type tag of a parameter or field.
type SchemaType string

const (
	SchemaTypeString  SchemaType = "string"
	SchemaTypeInteger SchemaType = "integer"
	SchemaTypeNumber  SchemaType = "number"
	SchemaTypeBoolean SchemaType = "boolean"
	SchemaTypeArray   SchemaType = "array"
	SchemaTypeObject  SchemaType = "object"
)

// IsValid returns true if the schema type is one of the known JSON Schema types
func (s SchemaType) IsValid() bool {
	switch s {
	case SchemaTypeString, SchemaTypeInteger, SchemaTypeNumber, SchemaTypeBoolean, SchemaTypeArray, SchemaTypeObject:
		return true
	default:
		return false
	}
}

// NormalizeSchemaType lower-cases raw and maps unknown or custom types to string.
func NormalizeSchemaType(raw SchemaType) SchemaType {
	normalized := SchemaType(strings.ToLower(strings.TrimSpace(string(raw))))
	if !normalized.IsValid() {
		return SchemaTypeString
	}
	return normalized
}

// ParameterSchema describes the type of a parameter, with the item type for arrays.
type ParameterSchema struct {
	Type     SchemaType `json:"type" yaml:"type"`
	ItemType SchemaType `json:"itemType,omitempty" yaml:"itemType,omitempty"`
}

// ParameterDescriptor is one declared parameter of an operation.
type ParameterDescriptor struct {
	Name        string            `json:"name" yaml:"name"`
	In          ParameterLocation `json:"in" yaml:"in"`
	Required    bool              `json:"required,omitempty" yaml:"required,omitempty"`
	Schema      ParameterSchema   `json:"schema" yaml:"schema"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Example     any               `json:"example,omitempty" yaml:"example,omitempty"`
}

// IsRequired reports whether a value must be supplied. Path parameters are always required.
func (p ParameterDescriptor) IsRequired() bool {
	return p.Required || p.In == ParameterLocationPath
}

// FieldDescriptor is one top-level field of a request body schema.
type FieldDescriptor struct {
	Name        string          `json:"name" yaml:"name"`
	Schema      ParameterSchema `json:"schema" yaml:"schema"`
	Required    bool            `json:"required,omitempty" yaml:"required,omitempty"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
}

// RequestBodyDescriptor describes the request body of an operation.
// Fields keep the order in which the body schema declares them.
type RequestBodyDescriptor struct {
	ContentType string            `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	Required    bool              `json:"required,omitempty" yaml:"required,omitempty"`
	Type        SchemaType        `json:"type,omitempty" yaml:"type,omitempty"`
	TypeName    string            `json:"typeName,omitempty" yaml:"typeName,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []FieldDescriptor `json:"fields,omitempty" yaml:"fields,omitempty"`
	Example     map[string]any    `json:"example,omitempty" yaml:"example,omitempty"`
}

// OperationDescriptor is the canonical representation of one API operation.
// It is produced by the analysis step and never mutated by the planner.
type OperationDescriptor struct {
	Method      HTTPMethod             `json:"method" yaml:"method"`
	Path        string                 `json:"path" yaml:"path"`
	OperationID string                 `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Summary     string                 `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string                 `json:"description,omitempty" yaml:"description,omitempty"`
	Parameters  []ParameterDescriptor  `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBodyDescriptor `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Tags        []string               `json:"tags,omitempty" yaml:"tags,omitempty"`
	Deprecated  bool                   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// HasOperationID reports whether the operation carries a non-blank operationId.
func (o *OperationDescriptor) HasOperationID() bool {
	return strings.TrimSpace(o.OperationID) != ""
}

// HasRequestBody reports whether the operation declares a request body.
func (o *OperationDescriptor) HasRequestBody() bool {
	return o.RequestBody != nil
}

// IsFileUpload reports whether the request body is sent as multipart form data.
func (o *OperationDescriptor) IsFileUpload() bool {
	return o.RequestBody != nil && strings.HasPrefix(strings.ToLower(o.RequestBody.ContentType), "multipart/")
}

// HasTag reports whether the operation is tagged with any of the given tags.
func (o *OperationDescriptor) HasTag(tags []string) bool {
	for _, want := range tags {
		for _, tag := range o.Tags {
			if tag == want {
				return true
			}
		}
	}
	return false
}

// PathPlaceholders returns the {name} placeholders of the path template in order of
// first appearance, without duplicates.
func (o *OperationDescriptor) PathPlaceholders() []string {
	var names []string
	seen := make(map[string]bool)
	rest := o.Path
	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			break
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			break
		}
		name := strings.TrimSpace(rest[start+1 : start+end])
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		rest = rest[start+end+1:]
	}
	return names
}

// String returns "METHOD path" for logging.
func (o *OperationDescriptor) String() string {
	return fmt.Sprintf("%s %s", o.Method, o.Path)
}

// APIMetadata is the API-level information that accompanies the operations.
type APIMetadata struct {
	Title       string   `json:"title,omitempty" yaml:"title,omitempty"`
	Version     string   `json:"version,omitempty" yaml:"version,omitempty"`
	BaseURL     string   `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`
	AuthSchemes []string `json:"authSchemes,omitempty" yaml:"authSchemes,omitempty"`
}

// APIDescription is the complete input of one planning run.
type APIDescription struct {
	API        APIMetadata           `json:"api" yaml:"api"`
	Operations []OperationDescriptor `json:"operations" yaml:"operations"`
}
