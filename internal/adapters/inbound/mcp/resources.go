package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/blueprintkit/blueprintkit/internal/application"
	"github.com/blueprintkit/blueprintkit/internal/domain"
)

// registerResources registers all blueprintkit MCP resources on the given server.
func registerResources(s *server.MCPServer, h *handlers) {
	// 1. blueprintkit://result - current validation result
	s.AddResource(
		mcplib.NewResource(
			"blueprintkit://result",
			"Validation Result",
			mcplib.WithResourceDescription("Current validation result for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		h.handleResultResource,
	)

	// 2. blueprintkit://report - markdown report
	s.AddResource(
		mcplib.NewResource(
			"blueprintkit://report",
			"Validation Report",
			mcplib.WithResourceDescription("Markdown validation report for the project"),
			mcplib.WithMIMEType("text/markdown"),
		),
		h.handleReportResource,
	)

	// 3. blueprintkit://categories/{name} - one category score (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"blueprintkit://categories/{name}",
			"Category Score",
			mcplib.WithTemplateDescription("Score and matched rules of one category: security, quality or architecture"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		h.handleCategoryResource,
	)
}

func (h *handlers) validateProject(ctx context.Context) (*domain.ValidationResult, error) {
	run, err := h.svc.ValidateSource(ctx, application.Request{Location: h.projectPath})
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return run.Result, nil
}

func (h *handlers) handleResultResource(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	result, err := h.validateProject(ctx)
	if err != nil {
		return nil, err
	}
	return jsonContents("blueprintkit://result", result)
}

func (h *handlers) handleReportResource(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	result, err := h.validateProject(ctx)
	if err != nil {
		return nil, err
	}
	md, err := h.svc.RenderReport(result, domain.ReportOptions{ProjectName: filepath.Base(h.projectPath)})
	if err != nil {
		return nil, err
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      "blueprintkit://report",
			MIMEType: "text/markdown",
			Text:     md,
		},
	}, nil
}

func (h *handlers) handleCategoryResource(ctx context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	name := templateArg(request.Params.Arguments, "name")
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}

	result, err := h.validateProject(ctx)
	if err != nil {
		return nil, err
	}
	for _, cat := range result.Categories() {
		if cat.Name == name {
			return jsonContents(request.Params.URI, cat)
		}
	}
	return nil, fmt.Errorf("unknown category %q (valid: security, quality, architecture)", name)
}

// templateArg reads a URI template variable, which the server may deliver as a
// string or a single-element list.
func templateArg(args map[string]any, key string) string {
	switch v := args[key].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	case []any:
		if len(v) > 0 {
			s, _ := v[0].(string)
			return s
		}
	}
	return ""
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
