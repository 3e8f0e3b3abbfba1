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
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/T4cceptor/MakeMCP/pkg/config"
	core "github.com/T4cceptor/MakeMCP/pkg/core"
	"github.com/T4cceptor/MakeMCP/pkg/planner"
	"github.com/T4cceptor/MakeMCP/pkg/schema"
	"github.com/T4cceptor/MakeMCP/pkg/sources/openapi"
)

// ErrExampleValidation is returned by the check command when an example does not match its tool schema.
var ErrExampleValidation = errors.New("tool examples failed validation")

// GlobalFlags are defined on the root command.
var GlobalFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Enable debug logging to stderr.",
	},
}

// GetCommands returns all CLI commands
func GetCommands() []*cli.Command {
	return []*cli.Command{
		planCommand(),
		checkCommand(),
		previewCommand(),
	}
}

func planCommand() *cli.Command {
	return &cli.Command{
		Name:      "plan",
		Usage:     "Create an MCP project configuration from an API description",
		ArgsUsage: "<spec-file-or-url>",
		Description: "Reads an OpenAPI document (or a JSON/YAML operation descriptor with --source file), " +
			"selects the operations to expose and writes the resulting project configuration as JSON.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "source", Aliases: []string{"s"}, Value: openapi.SourceName, Usage: "Input type: openapi or file."},
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Project name (required)."},
			&cli.StringFlag{Name: "description", Usage: "Project description."},
			&cli.StringFlag{Name: "author", Usage: "Project author."},
			&cli.StringFlag{Name: "project-version", Usage: "Project version, defaults to the API version."},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file, '-' for stdout. Defaults to <service>.makemcp.json."},
			&cli.StringFlag{Name: "overrides", Usage: "Integration overrides file (.toml, .yaml, .yml or .json)."},
			&cli.IntFlag{Name: "max-tools", Usage: "Maximum number of tools."},
			&cli.StringSliceFlag{Name: "include-tag", Usage: "Only expose operations with this tag. Repeatable."},
			&cli.StringSliceFlag{Name: "exclude-tag", Usage: "Skip operations with this tag. Repeatable."},
			&cli.BoolFlag{Name: "examples", Usage: "Generate example arguments for every tool."},
			&cli.BoolFlag{Name: "resources", Usage: "Enable MCP resources."},
			&cli.BoolFlag{Name: "auth-tools", Usage: "Include authentication tools."},
			&cli.StringFlag{Name: "naming", Usage: "Naming convention: operation_id or path_method."},
			&cli.BoolFlag{Name: "strict", Usage: "Fail on OpenAPI validation errors."},
			&cli.DurationFlag{Name: "timeout", Value: openapi.DefaultTimeout, Usage: "Timeout for fetching remote OpenAPI documents."},
		},
		Action: handlePlanCommand,
	}
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:        "check",
		Usage:       "Validate the tool examples of a project configuration",
		ArgsUsage:   "<config-file-path>",
		Description: "Checks every generated example against the input schema of its tool.",
		Action:      handleCheckCommand,
	}
}

func previewCommand() *cli.Command {
	return &cli.Command{
		Name:      "preview",
		Usage:     "Serve a project configuration as a dry-run MCP server",
		ArgsUsage: "<config-file-path>",
		Description: "Exposes the configured tools over MCP. Tool calls are validated and answered " +
			"with the HTTP request they would produce; no request is sent.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "transport",
				Aliases: []string{"t"},
				Value:   string(TransportTypeStdio),
				Usage:   "Transport protocol for the preview server - can be either stdio or http.",
			},
			&cli.StringFlag{
				Name:  "port",
				Value: "8080",
				Usage: "Port on which the HTTP server is started, ignored if transport is set to stdio.",
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "Base URL used in request previews instead of the one in the configuration.",
			},
		},
		Action: handlePreviewCommand,
	}
}

func commandLogger(cmd *cli.Command) (*zap.Logger, error) {
	return NewLogger(cmd.Bool("verbose"))
}

func handlePlanCommand(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return fmt.Errorf("spec file or URL is required")
	}
	logger, err := commandLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	input := PlanInput{
		SourceType: cmd.String("source"),
		Location:   cmd.Args().First(),
		Strict:     cmd.Bool("strict"),
		Project: core.ProjectMetadata{
			Name:        cmd.String("name"),
			Description: cmd.String("description"),
			Author:      cmd.String("author"),
			Version:     cmd.String("project-version"),
		},
		OverridesFile: cmd.String("overrides"),
		FlagOverrides: flagOverrides(cmd),
	}

	registry := NewSourceRegistry(logger, cmd.Duration("timeout"))
	builder := planner.NewBuilder(planner.WithLogger(logger))
	result, err := Plan(ctx, registry, builder, input)
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if output == "-" {
		return config.WriteJSON(cmd.Root().Writer, result.Config)
	}
	path, err := config.SaveToFile(result.Config, output)
	if err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	fmt.Fprintf(cmd.Root().Writer, "%s: %d tools (%s, score %.1f), %d issues\n",
		path, len(result.Config.Tools), result.Complexity.Tier, result.Complexity.Score, len(result.Issues))
	return nil
}

// flagOverrides collects the integration overrides given as flags. Unset flags stay nil.
func flagOverrides(cmd *cli.Command) core.IntegrationOverrides {
	var overrides core.IntegrationOverrides
	if cmd.IsSet("max-tools") {
		maxTools := int(cmd.Int("max-tools"))
		overrides.MaxTools = &maxTools
	}
	if cmd.IsSet("include-tag") {
		overrides.IncludeTags = cmd.StringSlice("include-tag")
	}
	if cmd.IsSet("exclude-tag") {
		overrides.ExcludeTags = cmd.StringSlice("exclude-tag")
	}
	if cmd.IsSet("examples") {
		v := cmd.Bool("examples")
		overrides.EnableExamples = &v
	}
	if cmd.IsSet("resources") {
		v := cmd.Bool("resources")
		overrides.EnableResources = &v
	}
	if cmd.IsSet("auth-tools") {
		v := cmd.Bool("auth-tools")
		overrides.IncludeAuthTools = &v
	}
	if cmd.IsSet("naming") {
		naming := core.NamingConvention(strings.TrimSpace(cmd.String("naming")))
		overrides.NamingConvention = &naming
	}
	return overrides
}

func handleCheckCommand(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return fmt.Errorf("config file path is required")
	}
	cfg, err := config.LoadProjectConfig(cmd.Args().First())
	if err != nil {
		return err
	}

	failures := schema.CheckExamples(cfg)
	if len(failures) == 0 {
		fmt.Fprintf(cmd.Root().Writer, "%d tools, all examples valid\n", len(cfg.Tools))
		return nil
	}

	names := make([]string, 0, len(failures))
	for name := range failures {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(cmd.Root().Writer, failures[name])
	}
	return fmt.Errorf("%w: %d of %d tools", ErrExampleValidation, len(failures), len(cfg.Tools))
}

func handlePreviewCommand(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return fmt.Errorf("config file path is required")
	}
	logger, err := commandLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadProjectConfig(cmd.Args().First())
	if err != nil {
		return err
	}
	opts := PreviewOptions{
		Transport: TransportType(cmd.String("transport")),
		Port:      cmd.String("port"),
		BaseURL:   cmd.String("base-url"),
	}
	if opts.Transport == TransportTypeHTTP {
		warnBaseURL(logger, cfg, opts.BaseURL)
	}
	return StartPreviewWithFactory(cfg, opts, &ProductionServerFactory{}, logger)
}

func warnBaseURL(logger *zap.Logger, cfg *core.MCPProjectConfig, baseURL string) {
	if baseURL == "" {
		baseURL = cfg.API.BaseURL
	}
	for _, issue := range planner.CheckBaseURL(baseURL) {
		logger.Warn("data quality issue", zap.String("code", string(issue.Code)), zap.String("message", issue.Message))
	}
}

// NewRootCommand creates the makemcp CLI.
func NewRootCommand(version string) *cli.Command {
	return &cli.Command{
		Name:     "makemcp",
		Usage:    "Plan MCP tool definitions from API descriptions.",
		Version:  version,
		Flags:    GlobalFlags,
		Commands: GetCommands(),
	}
}
