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

// toolAnnotations returns tool annotations based on the HTTP method of op.
func toolAnnotations(name string, op *core.OperationDescriptor) core.ToolAnnotation {
	annotation := core.ToolAnnotation{
		Title:         name,
		OpenWorldHint: boolPtr(true),
	}
	if summary := strings.TrimSpace(op.Summary); summary != "" {
		annotation.Title = summary
	}

	switch op.Method {
	case core.MethodGet, core.MethodHead, core.MethodOptions:
		// GET, HEAD, OPTIONS are considered read-only and idempotent
		annotation.ReadOnlyHint = boolPtr(true)
		annotation.IdempotentHint = boolPtr(true)
	case core.MethodDelete:
		annotation.DestructiveHint = boolPtr(true)
		annotation.IdempotentHint = boolPtr(true)
	case core.MethodPut:
		annotation.IdempotentHint = boolPtr(true)
	case core.MethodPost, core.MethodPatch:
		annotation.IdempotentHint = boolPtr(false)
	}

	return annotation
}

// toolDescription prefers the summary, then the description, then "METHOD path".
func toolDescription(op *core.OperationDescriptor) string {
	if summary := strings.TrimSpace(op.Summary); summary != "" {
		return summary
	}
	if description := strings.TrimSpace(op.Description); description != "" {
		return description
	}
	return fmt.Sprintf("%s %s", op.Method, op.Path)
}

// boolPtr returns a pointer to the given bool value
func boolPtr(val bool) *bool {
	return &val
}
