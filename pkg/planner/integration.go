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
	"strings"

	core "github.com/T4cceptor/MakeMCP/pkg/core"
)

// tierBaseline holds the defaults derived from a complexity tier.
type tierBaseline struct {
	maxTools        int
	enableExamples  bool
	enableResources bool
}

// The max-tools baselines exceed the largest operation count each tier admits,
// so a derived limit only ever truncates complex sets, which stay complex.
var tierBaselines = map[core.Tier]tierBaseline{
	core.TierSimple:   {maxTools: 20, enableExamples: true, enableResources: false},
	core.TierModerate: {maxTools: 50, enableExamples: true, enableResources: false},
	core.TierComplex:  {maxTools: 100, enableExamples: false, enableResources: true},
}

// BaselineFor returns the integration config a tier yields without overrides.
func BaselineFor(tier core.Tier) core.IntegrationConfig {
	return BuildIntegrationConfig(core.ComplexityEstimate{Tier: tier}, core.IntegrationOverrides{})
}

// BuildIntegrationConfig derives settings from est and applies overrides on top.
// Every supplied override wins, except a non-positive MaxTools which is ignored.
func BuildIntegrationConfig(est core.ComplexityEstimate, overrides core.IntegrationOverrides) core.IntegrationConfig {
	baseline, ok := tierBaselines[est.Tier]
	if !ok {
		baseline = tierBaselines[core.TierSimple]
	}

	cfg := core.IntegrationConfig{
		NamingConvention: core.NamingOperationID,
		MaxTools:         baseline.maxTools,
		IncludeTags:      normalizeTags(overrides.IncludeTags),
		ExcludeTags:      normalizeTags(overrides.ExcludeTags),
		EnableExamples:   baseline.enableExamples,
		EnableResources:  baseline.enableResources,
		IncludeAuthTools: est.AuthSchemes > 0,
	}

	if overrides.NamingConvention != nil && overrides.NamingConvention.IsValid() {
		cfg.NamingConvention = *overrides.NamingConvention
	}
	if overrides.MaxTools != nil && *overrides.MaxTools > 0 {
		cfg.MaxTools = *overrides.MaxTools
	}
	if overrides.EnableExamples != nil {
		cfg.EnableExamples = *overrides.EnableExamples
	}
	if overrides.EnableResources != nil {
		cfg.EnableResources = *overrides.EnableResources
	}
	if overrides.IncludeAuthTools != nil {
		cfg.IncludeAuthTools = *overrides.IncludeAuthTools
	}
	return cfg
}

// normalizeTags trims, deduplicates and sorts tags. The result is never nil.
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		result = append(result, tag)
	}
	sort.Strings(result)
	return result
}
