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

package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "github.com/T4cceptor/MakeMCP/pkg/core"
)

type stubSource struct {
	name string
}

func (s stubSource) Name() string { return s.name }

func (s stubSource) Load(context.Context, string, bool) (*core.APIDescription, error) {
	return &core.APIDescription{API: core.APIMetadata{Title: s.name}}, nil
}

func TestSourceRegistry(t *testing.T) {
	registry := NewSourceRegistry(stubSource{name: "openapi"}, stubSource{name: "file"})

	assert.Equal(t, []string{"file", "openapi"}, registry.List())

	source, err := registry.Get("openapi")
	require.NoError(t, err)
	description, err := source.Load(context.Background(), "", false)
	require.NoError(t, err)
	assert.Equal(t, "openapi", description.API.Title)

	_, err = registry.Get("graphql")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown source type: graphql")
	assert.Contains(t, err.Error(), "[file openapi]")
}

func TestSourceRegistry_RegisterReplaces(t *testing.T) {
	registry := NewSourceRegistry(stubSource{name: "openapi"})
	registry.Register(stubSource{name: "openapi"})
	assert.Equal(t, []string{"openapi"}, registry.List())
}
