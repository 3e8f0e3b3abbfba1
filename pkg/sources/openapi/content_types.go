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

package openapi

import (
	"strings"

	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"

	core "github.com/T4cceptor/MakeMCP/pkg/core"
)

// preferredContentTypes is the order in which a request body media type is chosen.
// When none matches, the first declared media type is used.
var preferredContentTypes = []string{
	"application/json",
	"*/*",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"text/xml",
	"application/xml",
	"text/plain",
}

// ContentTypeHandler describes request bodies of the content types it supports.
type ContentTypeHandler interface {
	// GetContentTypes returns the content types this handler supports
	GetContentTypes() []string

	// DescribeBody fills the body type and fields from the media type schema
	DescribeBody(media *v3.MediaType, body *core.RequestBodyDescriptor)
}

// ContentTypeRegistry manages content type handlers
type ContentTypeRegistry struct {
	handlers map[string]ContentTypeHandler
	fallback ContentTypeHandler
}

// NewContentTypeRegistry creates a new registry with default handlers
func NewContentTypeRegistry() *ContentTypeRegistry {
	registry := &ContentTypeRegistry{
		handlers: make(map[string]ContentTypeHandler),
	}
	registry.RegisterHandler(&structuredHandler{contentTypes: []string{
		"application/json", "*/*", "application/hal+json", "application/vnd.api+json",
		"application/x-www-form-urlencoded", "multipart/form-data",
	}})
	registry.RegisterHandler(&xmlHandler{})
	registry.RegisterHandler(&rawHandler{contentTypes: []string{"text/plain", "text/*", "application/octet-stream"}})

	// Unknown content types are treated like JSON
	registry.fallback = &structuredHandler{}
	return registry
}

// RegisterHandler registers a content type handler
func (r *ContentTypeRegistry) RegisterHandler(handler ContentTypeHandler) {
	for _, contentType := range handler.GetContentTypes() {
		r.handlers[contentType] = handler
	}
}

// GetHandler returns the appropriate handler for a content type
func (r *ContentTypeRegistry) GetHandler(contentType string) ContentTypeHandler {
	contentType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if handler, exists := r.handlers[contentType]; exists {
		return handler
	}

	parts := strings.Split(contentType, "/")
	if len(parts) == 2 {
		if handler, exists := r.handlers[parts[0]+"/*"]; exists {
			return handler
		}
	}
	return r.fallback
}

// selectMedia picks the media type of a request body by preferredContentTypes.
func selectMedia(requestBody *v3.RequestBody) (string, *v3.MediaType) {
	if requestBody == nil || requestBody.Content == nil {
		return "", nil
	}
	for _, contentType := range preferredContentTypes {
		for pair := requestBody.Content.First(); pair != nil; pair = pair.Next() {
			if pair.Key() == contentType {
				return pair.Key(), pair.Value()
			}
		}
	}
	if first := requestBody.Content.First(); first != nil {
		return first.Key(), first.Value()
	}
	return "", nil
}

// structuredHandler expands the top-level properties of object schemas into fields.
type structuredHandler struct {
	contentTypes []string
}

func (h *structuredHandler) GetContentTypes() []string { return h.contentTypes }

func (h *structuredHandler) DescribeBody(media *v3.MediaType, body *core.RequestBodyDescriptor) {
	describeSchemaFields(media, body)
}

// xmlHandler expands structured XML and keeps raw XML as a single string body.
type xmlHandler struct{}

func (h *xmlHandler) GetContentTypes() []string {
	return []string{"application/xml", "text/xml"}
}

func (h *xmlHandler) DescribeBody(media *v3.MediaType, body *core.RequestBodyDescriptor) {
	describeSchemaFields(media, body)
	if len(body.Fields) == 0 {
		body.Type = core.SchemaTypeString
	}
}

// rawHandler sends the body as one string.
type rawHandler struct {
	contentTypes []string
}

func (h *rawHandler) GetContentTypes() []string { return h.contentTypes }

func (h *rawHandler) DescribeBody(_ *v3.MediaType, body *core.RequestBodyDescriptor) {
	body.Type = core.SchemaTypeString
}

func describeSchemaFields(media *v3.MediaType, body *core.RequestBodyDescriptor) {
	if media == nil || media.Schema == nil {
		body.Type = core.SchemaTypeObject
		return
	}
	body.TypeName = referenceName(media.Schema.GetReference())

	schema := media.Schema.Schema()
	if schema == nil {
		body.Type = core.SchemaTypeObject
		return
	}
	body.Type = schemaType(schema)
	if body.Description == "" {
		body.Description = schema.Description
	}
	if schema.Properties == nil {
		return
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}
	for pair := schema.Properties.First(); pair != nil; pair = pair.Next() {
		field := core.FieldDescriptor{
			Name:     pair.Key(),
			Schema:   parameterSchema(pair.Value()),
			Required: required[pair.Key()],
		}
		if propSchema := pair.Value().Schema(); propSchema != nil {
			field.Description = propSchema.Description
		}
		body.Fields = append(body.Fields, field)
	}
}

// referenceName returns the last segment of a $ref: #/components/schemas/Pet -> Pet.
func referenceName(ref string) string {
	if ref == "" {
		return ""
	}
	return ref[strings.LastIndex(ref, "/")+1:]
}
