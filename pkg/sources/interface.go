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

// Package sources defines where API descriptions are loaded from.
package sources

import (
	"context"

	core "github.com/T4cceptor/MakeMCP/pkg/core"
)

// APISource loads an API description from a location such as a file path or URL.
type APISource interface {
	// Name returns the name of the source type
	Name() string

	// Load reads location and returns the described operations in declaration order
	Load(ctx context.Context, location string, strict bool) (*core.APIDescription, error)
}
