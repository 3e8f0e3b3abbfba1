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

import core "github.com/T4cceptor/MakeMCP/pkg/core"

// Tier thresholds, inclusive upper bounds of the score.
const (
	simpleMaxScore   = 10.0
	moderateMaxScore = 40.0
)

// Score weights.
const (
	parameterWeight   = 0.5
	requestBodyWeight = 2.0
)

// EstimateComplexity scores ops as
//
//	operations + 0.5*parameters + 2*operations with a request body
//
// and maps the score to a tier. authSchemes is carried along for the
// integration config and does not contribute to the score.
func EstimateComplexity(ops []*core.OperationDescriptor, authSchemes int) core.ComplexityEstimate {
	est := core.ComplexityEstimate{
		Operations:  len(ops),
		AuthSchemes: authSchemes,
	}
	for _, op := range ops {
		est.Parameters += len(op.Parameters)
		if op.HasRequestBody() {
			est.RequestBodies++
		}
	}

	est.Score = float64(est.Operations) +
		parameterWeight*float64(est.Parameters) +
		requestBodyWeight*float64(est.RequestBodies)
	est.Tier = TierForScore(est.Score)
	return est
}

// TierForScore maps a complexity score to its tier.
func TierForScore(score float64) core.Tier {
	switch {
	case score <= simpleMaxScore:
		return core.TierSimple
	case score <= moderateMaxScore:
		return core.TierModerate
	default:
		return core.TierComplex
	}
}
