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
	"testing"

	"github.com/stretchr/testify/assert"

	core "github.com/T4cceptor/MakeMCP/pkg/core"
)

func TestEstimateComplexity(t *testing.T) {
	param := core.ParameterDescriptor{Name: "p", In: core.ParameterLocationQuery}
	body := &core.RequestBodyDescriptor{ContentType: "application/json"}

	tests := []struct {
		name        string
		ops         []*core.OperationDescriptor
		authSchemes int
		want        core.ComplexityEstimate
	}{
		{
			name: "empty set",
			want: core.ComplexityEstimate{Tier: core.TierSimple},
		},
		{
			name: "weighted score",
			ops: []*core.OperationDescriptor{
				{Parameters: []core.ParameterDescriptor{param, param, param}},
				{Parameters: []core.ParameterDescriptor{param}, RequestBody: body},
				{},
			},
			authSchemes: 2,
			want: core.ComplexityEstimate{
				Tier:          core.TierSimple,
				Score:         7,
				Operations:    3,
				Parameters:    4,
				RequestBodies: 1,
				AuthSchemes:   2,
			},
		},
		{
			name: "bodies push into moderate",
			ops: []*core.OperationDescriptor{
				{RequestBody: body}, {RequestBody: body}, {RequestBody: body}, {RequestBody: body},
			},
			want: core.ComplexityEstimate{
				Tier:          core.TierModerate,
				Score:         12,
				Operations:    4,
				RequestBodies: 4,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateComplexity(tt.ops, tt.authSchemes))
		})
	}
}

func TestTierForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  core.Tier
	}{
		{score: 0, want: core.TierSimple},
		{score: 10, want: core.TierSimple},
		{score: 10.5, want: core.TierModerate},
		{score: 40, want: core.TierModerate},
		{score: 40.5, want: core.TierComplex},
		{score: 1000, want: core.TierComplex},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierForScore(tt.score), "score %v", tt.score)
	}
}
