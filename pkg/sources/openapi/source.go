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

package openapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"go.uber.org/zap"

	core "github.com/T4cceptor/MakeMCP/pkg/core"
)

// SourceName is the registry name of the OpenAPI source.
const SourceName = "openapi"

// DefaultTimeout bounds fetching an OpenAPI document over HTTP.
const DefaultTimeout = 30 * time.Second

// Source loads OpenAPI documents from local files or http(s) URLs.
type Source struct {
	HTTPClient *http.Client
	adapter    *LibopenAPIAdapter
	logger     *zap.Logger
}

// NewSource creates a Source that fetches remote documents with the given timeout.
func NewSource(logger *zap.Logger, timeout time.Duration) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Source{
		HTTPClient: &http.Client{Timeout: timeout},
		adapter:    NewLibopenAPIAdapter(logger),
		logger:     logger.With(zap.String("component", "openapi_source")),
	}
}

// Name returns the name of this source type
func (s *Source) Name() string {
	return SourceName
}

// Load reads the document at location and describes its operations.
func (s *Source) Load(ctx context.Context, location string, strictValidation bool) (*core.APIDescription, error) {
	specBytes, err := s.Read(ctx, location)
	if err != nil {
		return nil, err
	}
	description, err := s.adapter.Describe(specBytes, strictValidation)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec %s: %w", location, err)
	}
	return description, nil
}

// Read returns the raw bytes of the document at location.
func (s *Source) Read(ctx context.Context, location string) ([]byte, error) {
	s.logger.Debug("loading OpenAPI spec", zap.String("location", location))
	if !isURL(location) {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("failed to load from file: %w", err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL format: %w", err)
	}
	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to load from URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to load from URL: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}

// isURL determines whether the document location is an http(s) URL rather than a file path
func isURL(location string) bool {
	u, err := url.Parse(location)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}
