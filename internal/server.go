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

package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	core "github.com/T4cceptor/MakeMCP/pkg/core"
	"github.com/T4cceptor/MakeMCP/pkg/schema"
)

// TransportType defines the transport mechanism for the preview server
type TransportType string

const (
	TransportTypeHTTP  TransportType = "http"
	TransportTypeStdio TransportType = "stdio"
)

// ServerFactory abstracts server creation and lifecycle for dependency injection.
type ServerFactory interface {
	CreateHTTPServer(mcpServer *server.MCPServer) HTTPServer
	CreateStdioServer(mcpServer *server.MCPServer) StdioServer
}

// HTTPServer abstracts HTTP server operations.
type HTTPServer interface {
	Start(addr string) error
}

// StdioServer abstracts stdio server operations.
type StdioServer interface {
	Serve() error
}

// ProductionServerFactory implements ServerFactory for real server operations.
type ProductionServerFactory struct{}

// CreateHTTPServer creates a production HTTP server wrapper.
func (f *ProductionServerFactory) CreateHTTPServer(mcpServer *server.MCPServer) HTTPServer {
	return server.NewStreamableHTTPServer(mcpServer)
}

// CreateStdioServer creates a production stdio server wrapper.
func (f *ProductionServerFactory) CreateStdioServer(mcpServer *server.MCPServer) StdioServer {
	return &productionStdioServer{mcpServer: mcpServer}
}

type productionStdioServer struct {
	mcpServer *server.MCPServer
}

// Serve starts serving the MCP server over stdio.
func (s *productionStdioServer) Serve() error {
	return server.ServeStdio(s.mcpServer)
}

// PreviewOptions selects how the preview server is exposed.
type PreviewOptions struct {
	Transport TransportType
	Port      string
	// BaseURL replaces the base URL recorded in the configuration when set.
	BaseURL string
}

// StartPreviewWithFactory serves the tools of cfg as a dry-run MCP server.
func StartPreviewWithFactory(cfg *core.MCPProjectConfig, opts PreviewOptions, factory ServerFactory, logger *zap.Logger) error {
	mcpServer := GetMCPServer(cfg, opts.BaseURL, logger)

	switch opts.Transport {
	case TransportTypeHTTP:
		logger.Info("starting preview server", zap.String("transport", "http"), zap.String("port", opts.Port))
		return factory.CreateHTTPServer(mcpServer).Start(fmt.Sprintf(":%s", opts.Port))
	case TransportTypeStdio:
		logger.Info("starting preview server", zap.String("transport", "stdio"))
		if err := factory.CreateStdioServer(mcpServer).Serve(); err != nil {
			logger.Error("server error", zap.Error(err))
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported transport type: %s", opts.Transport)
	}
}

// GetMCPServer registers every tool of cfg with a handler that validates the
// arguments and answers with the request the call would produce.
func GetMCPServer(cfg *core.MCPProjectConfig, baseURL string, logger *zap.Logger) *server.MCPServer {
	if baseURL == "" {
		baseURL = cfg.API.BaseURL
	}
	mcpServer := server.NewMCPServer(
		cfg.Project.Name,
		cfg.Project.Version,
		server.WithToolCapabilities(true),
	)
	for i := range cfg.Tools {
		tool := cfg.Tools[i]
		mcpServer.AddTool(toMcpGoTool(tool), previewHandler(tool, baseURL))
		logger.Debug("registered tool", zap.String("tool", tool.Name), zap.String("operation", tool.Operation.Path))
	}
	return mcpServer
}

func previewHandler(tool core.ToolDefinition, baseURL string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		if err := schema.ValidateArguments(tool, args); err != nil {
			var validationErr *schema.ValidationError
			if errors.As(err, &validationErr) {
				return mcp.NewToolResultError(validationErr.Error()), nil
			}
			return nil, err
		}

		plan := core.RouteArguments(tool, baseURL, args)
		body, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode request plan: %w", err)
		}
		return mcp.NewToolResultText(string(body)), nil
	}
}

func toMcpGoTool(tool core.ToolDefinition) mcp.Tool {
	properties := make(map[string]any, len(tool.InputSchema.Properties))
	for name, prop := range tool.InputSchema.Properties {
		properties[name] = propertyMap(prop)
	}
	return mcp.Tool{
		Name:        tool.Name,
		Description: tool.Description,
		InputSchema: mcp.ToolInputSchema{
			Type:       tool.InputSchema.Type,
			Properties: properties,
			Required:   tool.InputSchema.Required,
		},
		Annotations: mcp.ToolAnnotation{
			Title:           tool.Annotations.Title,
			ReadOnlyHint:    tool.Annotations.ReadOnlyHint,
			DestructiveHint: tool.Annotations.DestructiveHint,
			IdempotentHint:  tool.Annotations.IdempotentHint,
			OpenWorldHint:   tool.Annotations.OpenWorldHint,
		},
	}
}

// propertyMap renders a property as the generic map mcp-go expects.
func propertyMap(prop core.ToolInputProperty) map[string]any {
	m := map[string]any{"type": string(prop.Type)}
	if prop.Description != "" {
		m["description"] = prop.Description
	}
	if prop.Items != nil {
		m["items"] = propertyMap(*prop.Items)
	}
	if prop.Location != "" {
		m["x-location"] = string(prop.Location)
	}
	if prop.WireName != "" {
		m["x-wire-name"] = prop.WireName
	}
	return m
}
