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
	"sort"

	core "github.com/T4cceptor/MakeMCP/pkg/core"
)

// FilterOperations selects the operations that become tools. Rules apply in order:
//  1. deprecated operations are dropped
//  2. with IncludeTags set only operations carrying one of them are kept,
//     otherwise operations carrying any ExcludeTags are dropped
//  3. when more than MaxTools remain (MaxTools > 0) the first MaxTools by
//     priority are kept: operations with an operationId before those without,
//     ties broken by input order
//
// Survivors are returned in input order and point into ops.
func FilterOperations(ops []core.OperationDescriptor, cfg core.IntegrationConfig) []*core.OperationDescriptor {
	selected := make([]*core.OperationDescriptor, 0, len(ops))
	for i := range ops {
		op := &ops[i]
		if op.Deprecated {
			continue
		}
		if !matchesTags(op, cfg.IncludeTags, cfg.ExcludeTags) {
			continue
		}
		selected = append(selected, op)
	}

	if cfg.MaxTools <= 0 || len(selected) <= cfg.MaxTools {
		return selected
	}
	return truncateByPriority(selected, cfg.MaxTools)
}

func matchesTags(op *core.OperationDescriptor, include, exclude []string) bool {
	if len(include) > 0 {
		return op.HasTag(include)
	}
	if len(exclude) > 0 {
		return !op.HasTag(exclude)
	}
	return true
}

// truncateByPriority keeps limit operations and restores their input order.
func truncateByPriority(ops []*core.OperationDescriptor, limit int) []*core.OperationDescriptor {
	ranked := make([]int, len(ops))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ops[ranked[a]].HasOperationID() && !ops[ranked[b]].HasOperationID()
	})

	kept := ranked[:limit]
	sort.Ints(kept)

	result := make([]*core.OperationDescriptor, len(kept))
	for i, idx := range kept {
		result[i] = ops[idx]
	}
	return result
}
