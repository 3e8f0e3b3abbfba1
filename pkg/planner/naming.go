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

// fallbackToolName is used when neither the operationId nor method and path yield a name.
const fallbackToolName = "operation"

// AssignedNames accumulates the tool names handed out during one run.
// Each run creates its own and threads it through every ResolveToolName call.
type AssignedNames struct {
	used  map[string]bool
	order []string
}

// NewAssignedNames returns an empty accumulator.
func NewAssignedNames() *AssignedNames {
	return &AssignedNames{used: make(map[string]bool)}
}

// Contains reports whether name has already been assigned.
func (a *AssignedNames) Contains(name string) bool {
	return a.used[name]
}

// Names returns the assigned names in assignment order.
func (a *AssignedNames) Names() []string {
	return append([]string(nil), a.order...)
}

// claim assigns base, or base_2, base_3, ... when base is taken.
func (a *AssignedNames) claim(base string) string {
	candidate := base
	for n := 2; a.used[candidate]; n++ {
		candidate = fmt.Sprintf("%s_%d", base, n)
	}
	a.used[candidate] = true
	a.order = append(a.order, candidate)
	return candidate
}

// ResolveToolName derives a unique identifier-safe tool name for op and records
// it in assigned. Identical operations in identical order always yield identical names.
func ResolveToolName(op *core.OperationDescriptor, convention core.NamingConvention, assigned *AssignedNames) string {
	return assigned.claim(BaseToolName(op, convention))
}

// BaseToolName is the name ResolveToolName would assign if no name were taken yet.
func BaseToolName(op *core.OperationDescriptor, convention core.NamingConvention) string {
	if convention != core.NamingPathMethod {
		if name := SanitizeIdentifier(op.OperationID); name != "" {
			return name
		}
	}
	if name := composeName(op.Method, op.Path); name != "" {
		return name
	}
	return fallbackToolName
}

// composeName builds a name from the lower-cased method and the path segments,
// with {placeholders} stripped: POST /items/{id} -> post_items.
func composeName(method core.HTTPMethod, path string) string {
	parts := []string{strings.ToLower(string(method))}
	for _, segment := range strings.Split(path, "/") {
		if part := toSnakeCase(stripPlaceholders(segment)); part != "" {
			parts = append(parts, part)
		}
	}
	return SanitizeIdentifier(strings.Join(parts, "_"))
}

func stripPlaceholders(segment string) string {
	var b strings.Builder
	depth := 0
	for _, r := range segment {
		switch {
		case r == '{':
			depth++
		case r == '}' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizeIdentifier turns raw into a lowercase identifier of letters, digits and
// underscores that does not start with a digit. It returns "" when nothing survives.
func SanitizeIdentifier(raw string) string {
	name := toSnakeCase(raw)
	if name != "" && name[0] >= '0' && name[0] <= '9' {
		name = "op_" + name
	}
	return name
}

// toSnakeCase splits camelCase words, replaces every rune outside [a-z0-9] with an
// underscore and collapses and trims repeated underscores.
func toSnakeCase(raw string) string {
	runes := []rune(strings.TrimSpace(raw))
	var b strings.Builder
	b.Grow(len(runes) + 4)

	for i, r := range runes {
		switch {
		case isUpper(r):
			if i > 0 && wordBoundary(runes, i) {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		case isLower(r) || isDigit(r):
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return collapseUnderscores(b.String())
}

// wordBoundary reports whether the upper-case rune at i starts a new word:
// getItems -> get_items, HTTPServer -> http_server.
func wordBoundary(runes []rune, i int) bool {
	prev := runes[i-1]
	if isLower(prev) || isDigit(prev) {
		return true
	}
	return isUpper(prev) && i+1 < len(runes) && isLower(runes[i+1])
}

func collapseUnderscores(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastUnderscore := true // drops leading underscores
	for i := 0; i < len(s); i++ {
		if s[i] == '_' {
			if lastUnderscore {
				continue
			}
			lastUnderscore = true
		} else {
			lastUnderscore = false
		}
		b.WriteByte(s[i])
	}
	return strings.TrimRight(b.String(), "_")
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
