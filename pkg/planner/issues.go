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
	"fmt"
	"net"
	"net/url"
	"strings"

	core "github.com/T4cceptor/MakeMCP/pkg/core"
)

// IssueCode identifies a kind of data-quality issue.
type IssueCode string

const (
	IssueSynthesizedPathParameter IssueCode = "synthesized_path_parameter"
	IssuePropertyCollision        IssueCode = "property_collision"
	IssueUnknownSchemaType        IssueCode = "unknown_schema_type"
	IssueUnknownParameterLocation IssueCode = "unknown_parameter_location"
	IssueUnnamedParameter         IssueCode = "unnamed_parameter"
	IssueNameCollision            IssueCode = "name_collision"
	IssueMissingOperationID       IssueCode = "missing_operation_id"
	IssueToolsTruncated           IssueCode = "tools_truncated"
	IssueFileUpload               IssueCode = "file_upload"
	IssueMultipleAuthSchemes      IssueCode = "multiple_auth_schemes"
	IssueBaseURLSecurity          IssueCode = "base_url_security"
)

// Issue is a data-quality finding. Issues are resolved by fallback policies
// and never fail a run; callers are expected to log them.
type Issue struct {
	Code      IssueCode `json:"code"`
	Operation string    `json:"operation,omitempty"`
	Message   string    `json:"message"`
}

func (i Issue) String() string {
	if i.Operation == "" {
		return fmt.Sprintf("%s: %s", i.Code, i.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", i.Code, i.Operation, i.Message)
}

func newIssue(code IssueCode, op *core.OperationDescriptor, format string, args ...any) Issue {
	issue := Issue{Code: code, Message: fmt.Sprintf(format, args...)}
	if op != nil {
		issue.Operation = op.String()
	}
	return issue
}

// maxAuthSchemes is the number of declared auth schemes above which the API is flagged.
const maxAuthSchemes = 2

// analyzeAPI reports API-level issues for the selected operations.
func analyzeAPI(api core.APIMetadata, ops []*core.OperationDescriptor) []Issue {
	var issues []Issue

	missing := 0
	for _, op := range ops {
		if !op.HasOperationID() {
			missing++
		}
		if op.IsFileUpload() {
			issues = append(issues, newIssue(IssueFileUpload, op,
				"request body uses %s, file upload endpoints require special handling", op.RequestBody.ContentType))
		}
	}
	if missing > 0 {
		issues = append(issues, newIssue(IssueMissingOperationID, nil,
			"%d operations missing operationId, names composed from method and path", missing))
	}

	if len(api.AuthSchemes) > maxAuthSchemes {
		issues = append(issues, newIssue(IssueMultipleAuthSchemes, nil,
			"%d authentication schemes declared, multiple schemes may complicate implementation", len(api.AuthSchemes)))
	}

	issues = append(issues, CheckBaseURL(api.BaseURL)...)
	return issues
}

// hostRule flags base URLs whose host a generated server should not be pointed at.
type hostRule struct {
	target  string
	matches func(host string, ip net.IP) bool
}

// metadataHosts are instance metadata services of AWS/Azure, GCP and Alibaba Cloud.
var metadataHosts = map[string]bool{
	"169.254.169.254":          true,
	"metadata.google.internal": true,
	"100.100.100.200":          true,
}

var hostRules = []hostRule{
	{target: "the loopback interface", matches: func(host string, ip net.IP) bool {
		return host == "localhost" || (ip != nil && ip.IsLoopback())
	}},
	{target: "a cloud metadata service", matches: func(host string, _ net.IP) bool {
		return metadataHosts[host]
	}},
	{target: "a private network", matches: func(_ string, ip net.IP) bool {
		return ip != nil && ip.IsPrivate()
	}},
	{target: "a link-local address", matches: func(_ string, ip net.IP) bool {
		return ip != nil && ip.IsLinkLocalUnicast()
	}},
}

// CheckBaseURL reports one IssueBaseURLSecurity per rule the host of rawURL
// matches. Relative and templated server URLs are not checked.
func CheckBaseURL(rawURL string) []Issue {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return nil
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}

	host := strings.ToLower(parsed.Hostname())
	ip := net.ParseIP(host)

	var issues []Issue
	for _, rule := range hostRules {
		if rule.matches(host, ip) {
			issues = append(issues, newIssue(IssueBaseURLSecurity, nil,
				"base URL %s points to %s", rawURL, rule.target))
		}
	}
	return issues
}
