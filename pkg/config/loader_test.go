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

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "github.com/T4cceptor/MakeMCP/pkg/core"
)

const yamlDescriptor = `api:
  title: Pet Store
  version: 1.2.0
  baseUrl: https://api.example.com
  authSchemes: [api_key]
operations:
  - method: get
    path: /pets
    operationId: listPets
    tags: [pets]
    parameters:
      - name: limit
        in: query
        schema:
          type: integer
  - method: POST
    path: /pets/{petId}
    requestBody:
      contentType: application/json
      type: object
      fields:
        - name: name
          required: true
          schema:
            type: string
`

func TestDecodeAPIDescription(t *testing.T) {
	t.Run("yaml descriptor", func(t *testing.T) {
		description, err := DecodeAPIDescription([]byte(yamlDescriptor), FormatYAML, true)
		require.NoError(t, err)

		assert.Equal(t, "Pet Store", description.API.Title)
		assert.Equal(t, []string{"api_key"}, description.API.AuthSchemes)
		require.Len(t, description.Operations, 2)

		list := description.Operations[0]
		assert.Equal(t, core.MethodGet, list.Method)
		assert.Equal(t, "listPets", list.OperationID)
		require.Len(t, list.Parameters, 1)
		assert.Equal(t, core.ParameterLocationQuery, list.Parameters[0].In)
		assert.Equal(t, core.SchemaTypeInteger, list.Parameters[0].Schema.Type)

		create := description.Operations[1]
		assert.Equal(t, core.MethodPost, create.Method)
		require.NotNil(t, create.RequestBody)
		require.Len(t, create.RequestBody.Fields, 1)
		assert.True(t, create.RequestBody.Fields[0].Required)
	})

	t.Run("json descriptor without operations", func(t *testing.T) {
		description, err := DecodeAPIDescription([]byte(`{"api": {"title": "Empty"}}`), FormatJSON, true)
		require.NoError(t, err)
		assert.NotNil(t, description.Operations)
		assert.Empty(t, description.Operations)
	})

	t.Run("strict rejects unknown fields", func(t *testing.T) {
		data := []byte(`{"api": {"title": "X"}, "paths": {}}`)

		_, err := DecodeAPIDescription(data, FormatJSON, true)
		require.Error(t, err)

		_, err = DecodeAPIDescription(data, FormatJSON, false)
		require.NoError(t, err)
	})

	t.Run("unsupported method", func(t *testing.T) {
		data := []byte("operations:\n  - method: TRACE\n    path: /x\n")
		_, err := DecodeAPIDescription(data, FormatYAML, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported HTTP method")
	})

	t.Run("missing path", func(t *testing.T) {
		data := []byte("operations:\n  - method: GET\n")
		_, err := DecodeAPIDescription(data, FormatYAML, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "path is required")
	})
}

func TestSaveToFile(t *testing.T) {
	cfg := &core.MCPProjectConfig{
		Project:     core.ProjectMetadata{Name: "pet-store", Version: "1.0.0"},
		ServiceName: "pet_store",
		Tools:       []core.ToolDefinition{},
	}

	t.Run("explicit path round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		written, err := SaveToFile(cfg, path)
		require.NoError(t, err)
		assert.Equal(t, path, written)

		loaded, err := LoadProjectConfig(path)
		require.NoError(t, err)
		assert.Equal(t, cfg.Project, loaded.Project)
		assert.Equal(t, "pet_store", loaded.ServiceName)
	})

	t.Run("default file name", func(t *testing.T) {
		t.Chdir(t.TempDir())
		written, err := SaveToFile(cfg, "")
		require.NoError(t, err)
		assert.Equal(t, "pet_store.makemcp.json", written)
		_, err = os.Stat(written)
		assert.NoError(t, err)
	})

	t.Run("invalid path", func(t *testing.T) {
		_, err := SaveToFile(cfg, "/nonexistent/directory/out.json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create file")
	})
}

func TestWriteJSON(t *testing.T) {
	cfg := &core.MCPProjectConfig{Project: core.ProjectMetadata{Name: "x"}, ServiceName: "x"}

	var first, second bytes.Buffer
	require.NoError(t, WriteJSON(&first, cfg))
	require.NoError(t, WriteJSON(&second, cfg))

	assert.Equal(t, first.String(), second.String())
	assert.Contains(t, first.String(), "\n  \"project\"")
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "a.json", want: FormatJSON},
		{path: "a.YAML", want: FormatYAML},
		{path: "dir/a.yml", want: FormatYAML},
		{path: "a.toml", want: FormatTOML},
		{path: "a.txt", wantErr: true},
		{path: "noext", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
