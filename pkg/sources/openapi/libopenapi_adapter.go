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

// Package openapi converts OpenAPI 3 documents into operation descriptors.
package openapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pb33f/libopenapi"
	"github.com/pb33f/libopenapi/datamodel"
	"github.com/pb33f/libopenapi/datamodel/high/base"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
	"github.com/pb33f/libopenapi/renderer"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	core "github.com/T4cceptor/MakeMCP/pkg/core"
)

// LibopenAPIAdapter contains all libopenapi-specific functionality
// This isolates the library-specific code and makes it easier to swap libraries later
type LibopenAPIAdapter struct {
	contentTypeRegistry *ContentTypeRegistry
	logger              *zap.Logger
}

// NewLibopenAPIAdapter creates a new adapter instance
func NewLibopenAPIAdapter(logger *zap.Logger) *LibopenAPIAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LibopenAPIAdapter{
		contentTypeRegistry: NewContentTypeRegistry(),
		logger:              logger.With(zap.String("component", "openapi_adapter")),
	}
}

// LoadDocument parses specBytes into a V3 document model. Model errors fail the
// load only in strict mode; otherwise they are logged.
func (a *LibopenAPIAdapter) LoadDocument(specBytes []byte, strictValidation bool) (*libopenapi.DocumentModel[v3.Document], error) {
	config := datamodel.NewDocumentConfiguration()

	document, err := libopenapi.NewDocumentWithConfiguration(specBytes, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	docModel, errs := document.BuildV3Model()
	if len(errs) > 0 {
		if strictValidation || docModel == nil {
			errorMessages := make([]string, len(errs))
			for i, err := range errs {
				errorMessages[i] = err.Error()
			}
			return nil, fmt.Errorf("OpenAPI model validation errors: %s", strings.Join(errorMessages, "; "))
		}
		a.logger.Warn("OpenAPI model warnings (permissive mode)", zap.Int("warnings", len(errs)))
	}
	return docModel, nil
}

// Describe loads specBytes and converts the document into an APIDescription.
func (a *LibopenAPIAdapter) Describe(specBytes []byte, strictValidation bool) (*core.APIDescription, error) {
	doc, err := a.LoadDocument(specBytes, strictValidation)
	if err != nil {
		return nil, err
	}

	description := &core.APIDescription{
		API:        a.apiMetadata(doc),
		Operations: []core.OperationDescriptor{},
	}
	err = a.ForEachOperation(doc, func(method, path string, pathItem *v3.PathItem, operation *v3.Operation) error {
		httpMethod, err := core.ParseHTTPMethod(method)
		if err != nil {
			a.logger.Warn("skipping operation", zap.String("path", path), zap.Error(err))
			return nil
		}
		description.Operations = append(description.Operations, a.describeOperation(httpMethod, path, pathItem, operation))
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.logger.Info("loaded OpenAPI document",
		zap.String("title", description.API.Title),
		zap.String("version", description.API.Version),
		zap.Int("operations", len(description.Operations)),
	)
	return description, nil
}

// ForEachOperation iterates through all operations in the OpenAPI document in declaration order
func (a *LibopenAPIAdapter) ForEachOperation(
	doc *libopenapi.DocumentModel[v3.Document],
	callback func(method, path string, pathItem *v3.PathItem, operation *v3.Operation) error,
) error {
	if doc.Model.Paths == nil || doc.Model.Paths.PathItems == nil {
		return nil
	}
	for pathPairs := doc.Model.Paths.PathItems.First(); pathPairs != nil; pathPairs = pathPairs.Next() {
		path := pathPairs.Key()
		pathItem := pathPairs.Value()

		operations := pathItem.GetOperations()
		for opPairs := operations.First(); opPairs != nil; opPairs = opPairs.Next() {
			if err := callback(opPairs.Key(), path, pathItem, opPairs.Value()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *LibopenAPIAdapter) apiMetadata(doc *libopenapi.DocumentModel[v3.Document]) core.APIMetadata {
	var api core.APIMetadata
	if doc.Model.Info != nil {
		api.Title = doc.Model.Info.Title
		api.Version = doc.Model.Info.Version
	}
	if len(doc.Model.Servers) > 0 && doc.Model.Servers[0] != nil {
		api.BaseURL = doc.Model.Servers[0].URL
	}
	if doc.Model.Components != nil && doc.Model.Components.SecuritySchemes != nil {
		for pair := doc.Model.Components.SecuritySchemes.First(); pair != nil; pair = pair.Next() {
			api.AuthSchemes = append(api.AuthSchemes, pair.Key())
		}
	}
	return api
}

func (a *LibopenAPIAdapter) describeOperation(method core.HTTPMethod, path string, pathItem *v3.PathItem, operation *v3.Operation) core.OperationDescriptor {
	op := core.OperationDescriptor{
		Method:      method,
		Path:        path,
		OperationID: operation.OperationId,
		Summary:     operation.Summary,
		Description: operation.Description,
		Parameters:  mergeParameters(pathItem.Parameters, operation.Parameters),
		Tags:        append([]string(nil), operation.Tags...),
		Deprecated:  operation.Deprecated != nil && *operation.Deprecated,
	}
	op.RequestBody = a.describeRequestBody(operation.RequestBody)
	return op
}

// mergeParameters combines path-level and operation-level parameters. An
// operation-level parameter replaces a path-level one with the same name and location.
func mergeParameters(pathLevel, operationLevel []*v3.Parameter) []core.ParameterDescriptor {
	type key struct{ name, in string }
	var merged []core.ParameterDescriptor
	index := make(map[key]int)

	for _, params := range [][]*v3.Parameter{pathLevel, operationLevel} {
		for _, param := range params {
			if param == nil {
				continue
			}
			descriptor := core.ParameterDescriptor{
				Name:        param.Name,
				In:          core.ParameterLocation(param.In),
				Required:    param.Required != nil && *param.Required,
				Schema:      parameterSchema(param.Schema),
				Description: param.Description,
				Example:     decodeExample(param.Example),
			}
			k := key{name: param.Name, in: param.In}
			if i, exists := index[k]; exists {
				merged[i] = descriptor
				continue
			}
			index[k] = len(merged)
			merged = append(merged, descriptor)
		}
	}
	return merged
}

func (a *LibopenAPIAdapter) describeRequestBody(requestBody *v3.RequestBody) *core.RequestBodyDescriptor {
	if requestBody == nil {
		return nil
	}
	contentType, media := selectMedia(requestBody)

	body := &core.RequestBodyDescriptor{
		ContentType: contentType,
		Required:    requestBody.Required != nil && *requestBody.Required,
		Description: requestBody.Description,
	}
	a.contentTypeRegistry.GetHandler(contentType).DescribeBody(media, body)
	body.Example = a.declaredBodyExample(media)
	return body
}

// declaredBodyExample renders the example declared on the body schema. Schemas
// without one yield nil; generated mocks are not deterministic.
func (a *LibopenAPIAdapter) declaredBodyExample(media *v3.MediaType) map[string]any {
	if media == nil || media.Schema == nil {
		return nil
	}
	schema := media.Schema.Schema()
	if schema == nil || schema.Example == nil {
		return nil
	}

	mockGen := renderer.NewMockGenerator(renderer.JSON)
	sample, err := mockGen.GenerateMock(schema, "")
	if err != nil {
		a.logger.Debug("failed to render body example", zap.Error(err))
		return nil
	}
	var example map[string]any
	if err := json.Unmarshal(sample, &example); err != nil {
		return nil
	}
	return example
}

// decodeExample converts a declared example node into a plain value.
func decodeExample(node *yaml.Node) any {
	if node == nil {
		return nil
	}
	var value any
	if err := node.Decode(&value); err != nil {
		return nil
	}
	return value
}

// parameterSchema reads the type and array item type of a schema proxy.
func parameterSchema(proxy *base.SchemaProxy) core.ParameterSchema {
	if proxy == nil {
		return core.ParameterSchema{Type: core.SchemaTypeString}
	}
	schema := proxy.Schema()
	if schema == nil {
		return core.ParameterSchema{Type: core.SchemaTypeString}
	}

	result := core.ParameterSchema{Type: schemaType(schema)}
	if result.Type == core.SchemaTypeArray {
		result.ItemType = core.SchemaTypeString
		if schema.Items != nil && schema.Items.IsA() && schema.Items.A != nil {
			if itemSchema := schema.Items.A.Schema(); itemSchema != nil {
				result.ItemType = schemaType(itemSchema)
			}
		}
	}
	return result
}

// schemaType returns the first non-null declared type, inferring object and
// array from properties and items when no type is declared.
func schemaType(schema *base.Schema) core.SchemaType {
	for _, t := range schema.Type {
		if t != "null" {
			return core.SchemaType(t)
		}
	}
	switch {
	case schema.Properties != nil && schema.Properties.Len() > 0:
		return core.SchemaTypeObject
	case schema.Items != nil:
		return core.SchemaTypeArray
	default:
		return core.SchemaTypeString
	}
}
