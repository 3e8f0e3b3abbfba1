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
	"testing"

	"github.com/stretchr/testify/assert"
)

func routedTool() ToolDefinition {
	schema := NewToolInputSchema()
	schema.Properties["petId"] = ToolInputProperty{Type: SchemaTypeString, Location: ParameterLocationPath}
	schema.Properties["limit"] = ToolInputProperty{Type: SchemaTypeInteger, Location: ParameterLocationQuery}
	schema.Properties["tags"] = ToolInputProperty{Type: SchemaTypeArray, Items: &ToolInputProperty{Type: SchemaTypeString}, Location: ParameterLocationQuery}
	schema.Properties["X-Trace"] = ToolInputProperty{Type: SchemaTypeString, Location: ParameterLocationHeader}
	schema.Properties["session"] = ToolInputProperty{Type: SchemaTypeString, Location: ParameterLocationCookie}
	schema.Properties["name"] = ToolInputProperty{Type: SchemaTypeString, Location: ParameterLocationBody}
	schema.Properties["body_petId"] = ToolInputProperty{Type: SchemaTypeString, Location: ParameterLocationBody, WireName: "petId"}
	schema.Properties["legacy"] = ToolInputProperty{Type: SchemaTypeString}

	return ToolDefinition{
		Name:        "update_pet",
		InputSchema: schema,
		Operation:   OperationRef{Method: MethodPut, Path: "/pets/{petId}"},
	}
}

func TestRouteArguments(t *testing.T) {
	plan := RouteArguments(routedTool(), "https://api.example.com/v1/", map[string]any{
		"petId":      "a b",
		"limit":      10,
		"tags":       []any{"cat", "dog"},
		"X-Trace":    "abc",
		"session":    "s1",
		"name":       "Rex",
		"body_petId": "inner",
		"legacy":     "yes",
		"unexpected": 1,
		"another":    2,
	})

	assert.Equal(t, MethodPut, plan.Method)
	assert.Equal(t, "https://api.example.com/v1/pets/a%20b?legacy=yes&limit=10&tags=cat&tags=dog", plan.URL)
	assert.Equal(t, map[string]any{"petId": "a b"}, plan.Params.Path)
	assert.Equal(t, map[string]any{"X-Trace": "abc"}, plan.Params.Header)
	assert.Equal(t, map[string]any{"session": "s1"}, plan.Params.Cookie)
	assert.Equal(t, map[string]any{"name": "Rex", "petId": "inner"}, plan.Params.Body)
	assert.Equal(t, []string{"another", "unexpected"}, plan.Unknown)
}

func TestRouteArguments_NoArguments(t *testing.T) {
	plan := RouteArguments(routedTool(), "", nil)

	assert.Equal(t, "/pets/{petId}", plan.URL)
	assert.Empty(t, plan.Params.Query)
	assert.Empty(t, plan.Params.Body)
	assert.Nil(t, plan.Unknown)
}
