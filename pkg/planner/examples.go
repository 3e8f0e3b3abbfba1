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
	"math"

	core "github.com/T4cceptor/MakeMCP/pkg/core"
)

// BuildExample returns sample arguments for every property of tool. Declared
// parameter examples and request body examples are used when their type matches
// the property, otherwise a placeholder of the property type is used.
func BuildExample(tool core.ToolDefinition) map[string]any {
	declared := declaredExamples(tool.Source)

	example := make(map[string]any, len(tool.InputSchema.Properties))
	for key, prop := range tool.InputSchema.Properties {
		ref := exampleRef{location: prop.Location, name: prop.RoutedName(key)}
		if value, ok := declared[ref]; ok && matchesProperty(value, prop) {
			example[key] = value
			continue
		}
		example[key] = placeholder(prop)
	}
	return example
}

type exampleRef struct {
	location core.ParameterLocation
	name     string
}

func declaredExamples(op *core.OperationDescriptor) map[exampleRef]any {
	declared := make(map[exampleRef]any)
	if op == nil {
		return declared
	}
	for _, param := range op.Parameters {
		if param.Example != nil {
			declared[exampleRef{location: param.In, name: param.Name}] = param.Example
		}
	}
	if op.RequestBody != nil {
		for name, value := range op.RequestBody.Example {
			declared[exampleRef{location: core.ParameterLocationBody, name: name}] = value
		}
	}
	return declared
}

func placeholder(prop core.ToolInputProperty) any {
	switch prop.Type {
	case core.SchemaTypeInteger:
		return 1
	case core.SchemaTypeNumber:
		return 1.5
	case core.SchemaTypeBoolean:
		return true
	case core.SchemaTypeArray:
		if prop.Items == nil {
			return []any{}
		}
		return []any{placeholder(*prop.Items)}
	case core.SchemaTypeObject:
		return map[string]any{}
	default:
		return "example"
	}
}

// matchesProperty reports whether value would validate against prop, including array items.
func matchesProperty(value any, prop core.ToolInputProperty) bool {
	if !matchesType(value, prop.Type) {
		return false
	}
	if list, ok := value.([]any); ok && prop.Items != nil {
		for _, item := range list {
			if !matchesProperty(item, *prop.Items) {
				return false
			}
		}
	}
	return true
}

// matchesType reports whether value would validate as a JSON value of type t.
func matchesType(value any, t core.SchemaType) bool {
	switch t {
	case core.SchemaTypeString:
		_, ok := value.(string)
		return ok
	case core.SchemaTypeBoolean:
		_, ok := value.(bool)
		return ok
	case core.SchemaTypeInteger:
		switch v := value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return true
		case float64:
			return v == math.Trunc(v)
		}
		return false
	case core.SchemaTypeNumber:
		switch value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
			return true
		}
		return false
	case core.SchemaTypeArray:
		_, ok := value.([]any)
		return ok
	case core.SchemaTypeObject:
		_, ok := value.(map[string]any)
		return ok
	default:
		return false
	}
}
