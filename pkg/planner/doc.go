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


// Package planner turns operation descriptors into MCP tool definitions and the
// project configuration handed to the project generator.
//
// A run filters the operations (FilterOperations), scores the survivors
// (EstimateComplexity), derives the integration settings
// (BuildIntegrationConfig), then names (ResolveToolName) and maps
// (MapInputSchema) each operation in order. Builder.Build wires these steps
// together. Every step is a pure function of its inputs; the only per-run
// state is the AssignedNames accumulator, which Build creates for each call.
package planner
