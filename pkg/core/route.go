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

package core

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// SplitParams groups argument values by the location they are routed to.
type SplitParams struct {
	Path   map[string]any `json:"path"`
	Query  map[string]any `json:"query"`
	Header map[string]any `json:"header"`
	Cookie map[string]any `json:"cookie"`
	Body   map[string]any `json:"body"`
}

// NewSplitParams returns a SplitParams struct with all maps initialized
func NewSplitParams() SplitParams {
	return SplitParams{
		Path:   map[string]any{},
		Query:  map[string]any{},
		Header: map[string]any{},
		Cookie: map[string]any{},
		Body:   map[string]any{},
	}
}

// RequestPlan is the HTTP request a tool call would produce. It is never sent.
type RequestPlan struct {
	Method  HTTPMethod  `json:"method"`
	URL     string      `json:"url"`
	Params  SplitParams `json:"params"`
	Unknown []string    `json:"unknown,omitempty"`
}

// RouteArguments splits tool call arguments by the x-location metadata of the
// tool's input schema and resolves the request URL against baseURL.
// Arguments without a matching property are reported in Unknown.
func RouteArguments(tool ToolDefinition, baseURL string, args map[string]any) RequestPlan {
	params := NewSplitParams()
	var unknown []string

	for key, value := range args {
		prop, ok := tool.InputSchema.Properties[key]
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		name := prop.RoutedName(key)
		switch prop.Location {
		case ParameterLocationPath:
			params.Path[name] = value
		case ParameterLocationHeader:
			params.Header[name] = value
		case ParameterLocationCookie:
			params.Cookie[name] = value
		case ParameterLocationBody:
			params.Body[name] = value
		default:
			// Properties without a location are sent as query parameters
			params.Query[name] = value
		}
	}
	sort.Strings(unknown)

	return RequestPlan{
		Method:  tool.Operation.Method,
		URL:     buildRequestURL(baseURL, tool.Operation.Path, params),
		Params:  params,
		Unknown: unknown,
	}
}

// buildRequestURL constructs the full URL with path and query parameters.
func buildRequestURL(baseURL, path string, params SplitParams) string {
	var u strings.Builder
	u.WriteString(strings.TrimSuffix(baseURL, "/"))
	u.WriteString(substitutePathParams(path, params.Path))

	if len(params.Query) > 0 {
		encodedQuery := encodeQueryParams(params.Query)
		if encodedQuery != "" {
			u.WriteString("?")
			u.WriteString(encodedQuery)
		}
	}
	return u.String()
}

// substitutePathParams replaces path parameters in URL template.
func substitutePathParams(path string, pathParams map[string]any) string {
	for k, v := range pathParams {
		placeholder := fmt.Sprintf("{%s}", k)
		path = strings.ReplaceAll(path, placeholder, url.PathEscape(fmt.Sprintf("%v", v)))
	}
	return path
}

// encodeQueryParams encodes query parameters for URL.
func encodeQueryParams(queryParams map[string]any) string {
	values := url.Values{}
	for k, v := range queryParams {
		if list, ok := v.([]any); ok {
			for _, item := range list {
				values.Add(k, fmt.Sprintf("%v", item))
			}
			continue
		}
		values.Set(k, fmt.Sprintf("%v", v))
	}
	return values.Encode()
}
