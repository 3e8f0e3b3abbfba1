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
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"pgregory.net/rapid"

	core "github.com/T4cceptor/MakeMCP/pkg/core"
	"github.com/T4cceptor/MakeMCP/pkg/schema"
)

var toolNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`)

var (
	genMethods = []core.HTTPMethod{
		core.MethodGet, core.MethodPost, core.MethodPut, core.MethodPatch,
		core.MethodDelete, core.MethodHead, core.MethodOptions,
	}
	genSegments     = []string{"items", "users", "{id}", "{userId}", "v1", "Pets", "api-keys", "{x}", "files.json", "ÜBER"}
	genOperationIDs = []string{"", "  ", "getItems", "listUsers", "get_items", "123go", "createPet!", "HTTPServer", "get-items", "---"}
	genNames        = []string{"id", "userId", "limit", "name", "q", "x", "", "X-Trace"}
	genLocations    = []core.ParameterLocation{
		core.ParameterLocationPath, core.ParameterLocationQuery, core.ParameterLocationHeader,
		core.ParameterLocationCookie, "matrix",
	}
	genTypes = []core.SchemaType{
		core.SchemaTypeString, core.SchemaTypeInteger, core.SchemaTypeNumber, core.SchemaTypeBoolean,
		core.SchemaTypeArray, core.SchemaTypeObject, "", "file", "INTEGER",
	}
	genExamples = []any{nil, "abc", 5, 2.5, 3.0, true, []any{"a", 1}, map[string]any{"k": "v"}}
	genTags     = []string{"pets", "store", "admin", "users"}
)

func parameterSchemaGen() *rapid.Generator[core.ParameterSchema] {
	return rapid.Custom(func(t *rapid.T) core.ParameterSchema {
		return core.ParameterSchema{
			Type:     rapid.SampledFrom(genTypes).Draw(t, "type"),
			ItemType: rapid.SampledFrom(genTypes).Draw(t, "itemType"),
		}
	})
}

func parameterGen() *rapid.Generator[core.ParameterDescriptor] {
	return rapid.Custom(func(t *rapid.T) core.ParameterDescriptor {
		return core.ParameterDescriptor{
			Name:     rapid.SampledFrom(genNames).Draw(t, "name"),
			In:       rapid.SampledFrom(genLocations).Draw(t, "in"),
			Required: rapid.Bool().Draw(t, "required"),
			Schema:   parameterSchemaGen().Draw(t, "schema"),
			Example:  rapid.SampledFrom(genExamples).Draw(t, "example"),
		}
	})
}

func requestBodyGen() *rapid.Generator[*core.RequestBodyDescriptor] {
	return rapid.Custom(func(t *rapid.T) *core.RequestBodyDescriptor {
		if !rapid.Bool().Draw(t, "hasBody") {
			return nil
		}
		body := &core.RequestBodyDescriptor{
			ContentType: rapid.SampledFrom([]string{"application/json", "multipart/form-data", "text/plain"}).Draw(t, "contentType"),
			Required:    rapid.Bool().Draw(t, "required"),
			Type:        rapid.SampledFrom(genTypes).Draw(t, "bodyType"),
		}
		fields := rapid.IntRange(0, 3).Draw(t, "fields")
		for i := 0; i < fields; i++ {
			body.Fields = append(body.Fields, core.FieldDescriptor{
				Name:     rapid.SampledFrom(genNames).Draw(t, "fieldName"),
				Schema:   parameterSchemaGen().Draw(t, "fieldSchema"),
				Required: rapid.Bool().Draw(t, "fieldRequired"),
			})
		}
		if rapid.Bool().Draw(t, "hasExample") {
			body.Example = map[string]any{
				rapid.SampledFrom(genNames).Draw(t, "exampleKey"): rapid.SampledFrom(genExamples).Draw(t, "exampleValue"),
			}
		}
		return body
	})
}

func operationGen() *rapid.Generator[core.OperationDescriptor] {
	return rapid.Custom(func(t *rapid.T) core.OperationDescriptor {
		segments := rapid.SliceOfN(rapid.SampledFrom(genSegments), 0, 4).Draw(t, "segments")
		return core.OperationDescriptor{
			Method:      rapid.SampledFrom(genMethods).Draw(t, "method"),
			Path:        "/" + strings.Join(segments, "/"),
			OperationID: rapid.SampledFrom(genOperationIDs).Draw(t, "operationId"),
			Summary:     rapid.SampledFrom([]string{"", "Do things"}).Draw(t, "summary"),
			Parameters:  rapid.SliceOfN(parameterGen(), 0, 4).Draw(t, "parameters"),
			RequestBody: requestBodyGen().Draw(t, "requestBody"),
			Tags:        rapid.SliceOfN(rapid.SampledFrom(genTags), 0, 2).Draw(t, "tags"),
			Deprecated:  rapid.IntRange(0, 9).Draw(t, "deprecated") == 0,
		}
	})
}

func apiGen() *rapid.Generator[core.APIDescription] {
	return rapid.Custom(func(t *rapid.T) core.APIDescription {
		return core.APIDescription{
			API: core.APIMetadata{
				Title:       "Generated",
				Version:     rapid.SampledFrom([]string{"", "1.0.0"}).Draw(t, "version"),
				AuthSchemes: rapid.SliceOfN(rapid.SampledFrom([]string{"a", "b", "c"}), 0, 3).Draw(t, "auth"),
			},
			Operations: rapid.SliceOfN(operationGen(), 0, 30).Draw(t, "operations"),
		}
	})
}

func overridesGen() *rapid.Generator[core.IntegrationOverrides] {
	return rapid.Custom(func(t *rapid.T) core.IntegrationOverrides {
		var o core.IntegrationOverrides
		if rapid.Bool().Draw(t, "setMax") {
			o.MaxTools = intPtr(rapid.IntRange(-1, 40).Draw(t, "maxTools"))
		}
		if rapid.Bool().Draw(t, "setInclude") {
			o.IncludeTags = rapid.SliceOfN(rapid.SampledFrom(genTags), 0, 2).Draw(t, "include")
		}
		if rapid.Bool().Draw(t, "setExclude") {
			o.ExcludeTags = rapid.SliceOfN(rapid.SampledFrom(genTags), 0, 2).Draw(t, "exclude")
		}
		if rapid.Bool().Draw(t, "setExamples") {
			o.EnableExamples = boolPtr(rapid.Bool().Draw(t, "examples"))
		}
		if rapid.Bool().Draw(t, "setNaming") {
			o.NamingConvention = namingPtr(rapid.SampledFrom([]core.NamingConvention{core.NamingOperationID, core.NamingPathMethod}).Draw(t, "naming"))
		}
		return o
	})
}

func TestProperty_ToolNamesUniqueAndWellFormed(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		api := apiGen().Draw(t, "api")
		result, err := NewBuilder().Build(core.ProjectMetadata{Name: "gen"}, api, overridesGen().Draw(t, "overrides"))
		if err != nil {
			t.Fatalf("build failed: %v", err)
		}

		seen := make(map[string]bool)
		for _, name := range result.Config.ToolNames() {
			if !toolNamePattern.MatchString(name) {
				t.Fatalf("tool name %q is not a valid identifier", name)
			}
			if seen[name] {
				t.Fatalf("tool name %q assigned twice", name)
			}
			seen[name] = true
		}
	})
}

func TestProperty_BuildIsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		api := apiGen().Draw(t, "api")
		overrides := overridesGen().Draw(t, "overrides")
		meta := core.ProjectMetadata{Name: "gen"}

		first, err := NewBuilder().Build(meta, api, overrides)
		if err != nil {
			t.Fatalf("build failed: %v", err)
		}
		second, err := NewBuilder().Build(meta, api, overrides)
		if err != nil {
			t.Fatalf("build failed: %v", err)
		}

		a, _ := first.Config.ToJSON()
		b, _ := second.Config.ToJSON()
		if string(a) != string(b) {
			t.Fatalf("outputs differ:\n%s\n%s", a, b)
		}
	})
}

func TestProperty_PathPlaceholdersAreRequired(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		op := operationGen().Draw(t, "operation")
		schema, _ := MapInputSchema(&op)

		for _, placeholder := range op.PathPlaceholders() {
			prop, ok := schema.Properties[placeholder]
			if !ok {
				t.Fatalf("placeholder %q has no property", placeholder)
			}
			if prop.Location != core.ParameterLocationPath {
				t.Fatalf("placeholder %q routed to %q", placeholder, prop.Location)
			}
			if !schema.IsRequired(placeholder) {
				t.Fatalf("placeholder %q is not required", placeholder)
			}
		}
		for _, name := range schema.Required {
			if _, ok := schema.Properties[name]; !ok {
				t.Fatalf("required %q has no property", name)
			}
		}
	})
}

func TestProperty_FilterBoundedAndOrdered(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ops := rapid.SliceOfN(operationGen(), 0, 40).Draw(t, "operations")
		cfg := core.IntegrationConfig{
			MaxTools:    rapid.IntRange(0, 20).Draw(t, "maxTools"),
			IncludeTags: rapid.SliceOfN(rapid.SampledFrom(genTags), 0, 2).Draw(t, "include"),
			ExcludeTags: rapid.SliceOfN(rapid.SampledFrom(genTags), 0, 2).Draw(t, "exclude"),
		}

		selected := FilterOperations(ops, cfg)
		if cfg.MaxTools > 0 && len(selected) > cfg.MaxTools {
			t.Fatalf("%d operations selected, limit %d", len(selected), cfg.MaxTools)
		}

		index := make(map[*core.OperationDescriptor]int, len(ops))
		for i := range ops {
			index[&ops[i]] = i
		}
		last := -1
		keptWithoutID := false
		for _, op := range selected {
			i, ok := index[op]
			if !ok {
				t.Fatalf("selected operation does not point into the input")
			}
			if i <= last {
				t.Fatalf("input order not preserved")
			}
			last = i
			if op.Deprecated {
				t.Fatalf("deprecated operation %s selected", op)
			}
			if !op.HasOperationID() {
				keptWithoutID = true
			}
		}

		if keptWithoutID {
			eligible := FilterOperations(ops, core.IntegrationConfig{IncludeTags: cfg.IncludeTags, ExcludeTags: cfg.ExcludeTags})
			selectedSet := make(map[*core.OperationDescriptor]bool, len(selected))
			for _, op := range selected {
				selectedSet[op] = true
			}
			for _, op := range eligible {
				if op.HasOperationID() && !selectedSet[op] {
					t.Fatalf("%s has an operationId but was dropped for one without", op)
				}
			}
		}
	})
}

func TestProperty_ScoreMonotonic(t *testing.T) {
	tierRank := map[core.Tier]int{core.TierSimple: 0, core.TierModerate: 1, core.TierComplex: 2}

	rapid.Check(t, func(t *rapid.T) {
		ops := rapid.SliceOfN(operationGen(), 0, 40).Draw(t, "operations")
		extra := operationGen().Draw(t, "extra")

		set := make([]*core.OperationDescriptor, len(ops))
		for i := range ops {
			set[i] = &ops[i]
		}
		before := EstimateComplexity(set, 0)
		after := EstimateComplexity(append(set, &extra), 0)

		if after.Score < before.Score {
			t.Fatalf("score decreased from %v to %v", before.Score, after.Score)
		}
		if tierRank[after.Tier] < tierRank[before.Tier] {
			t.Fatalf("tier decreased from %s to %s", before.Tier, after.Tier)
		}
	})
}

func TestProperty_LimitRespectedInOutput(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		api := apiGen().Draw(t, "api")
		result, err := NewBuilder().Build(core.ProjectMetadata{Name: "gen"}, api, overridesGen().Draw(t, "overrides"))
		if err != nil {
			t.Fatalf("build failed: %v", err)
		}
		cfg := result.Config
		if len(cfg.Tools) > cfg.Integration.MaxTools {
			t.Fatalf("%d tools exceed limit %d", len(cfg.Tools), cfg.Integration.MaxTools)
		}
		if cfg.Integration.MaxTools <= 0 {
			t.Fatalf("non-positive limit %d", cfg.Integration.MaxTools)
		}
		if result.Complexity.Tier != TierForScore(result.Complexity.Score) {
			t.Fatalf("tier %s does not match score %v", result.Complexity.Tier, result.Complexity.Score)
		}
		for _, issue := range result.Issues {
			// truncation fills the limit, so it must be the limit that was reported
			if issue.Code == IssueToolsTruncated && len(cfg.Tools) != cfg.Integration.MaxTools {
				t.Fatalf("truncated to %d tools but reported limit %d", len(cfg.Tools), cfg.Integration.MaxTools)
			}
		}
	})
}

func TestProperty_ExamplesValidateAgainstSchema(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		api := apiGen().Draw(t, "api")
		result, err := NewBuilder().Build(core.ProjectMetadata{Name: "gen"}, api, core.IntegrationOverrides{EnableExamples: boolPtr(true)})
		if err != nil {
			t.Fatalf("build failed: %v", err)
		}
		for name, failure := range schema.CheckExamples(result.Config) {
			t.Fatalf("example of %s is invalid: %v", name, failure)
		}
	})
}

func TestProperty_ConfigJSONStable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		api := apiGen().Draw(t, "api")
		result, err := NewBuilder().Build(core.ProjectMetadata{Name: "gen"}, api, core.IntegrationOverrides{})
		if err != nil {
			t.Fatalf("build failed: %v", err)
		}

		first, err := result.Config.ToJSON()
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		var decoded core.MCPProjectConfig
		if err := json.Unmarshal(first, &decoded); err != nil {
			t.Fatalf("decode: %v", err)
		}
		second, err := decoded.ToJSON()
		if err != nil {
			t.Fatalf("re-encode: %v", err)
		}
		if string(first) != string(second) {
			t.Fatalf("encoding not stable:\n%s\n%s", first, second)
		}
	})
}
