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
	"github.com/blueprintkit/blueprintkit/internal/domain/rules"
)

type handlers struct {
	projectPath string
	svc         *application.ValidateService
}

// registerTools registers all blueprintkit MCP tools on the given server.
func registerTools(s *server.MCPServer, h *handlers) {
	sourceArgs := []mcplib.ToolOption{
		mcplib.WithString("path", mcplib.Description("Project directory, archive path or git URL (defaults to the served project)")),
		mcplib.WithString("source", mcplib.Description("Source kind: directory, archive or git (default: directory)")),
		mcplib.WithBoolean("strict", mcplib.Description("Fail instead of skipping files that exceed the caps")),
	}

	// 1. blueprintkit_validate
	s.AddTool(
		mcplib.NewTool("blueprintkit_validate",
			append([]mcplib.ToolOption{
				mcplib.WithDescription("Validate a project and return scores, grade, application type and recommendations as JSON"),
			}, sourceArgs...)...,
		),
		h.handleValidate,
	)

	// 2. blueprintkit_report
	s.AddTool(
		mcplib.NewTool("blueprintkit_report",
			append([]mcplib.ToolOption{
				mcplib.WithDescription("Validate a project and return the full markdown report"),
			}, sourceArgs...)...,
		),
		h.handleReport,
	)

	// 3. blueprintkit_recommendations
	s.AddTool(
		mcplib.NewTool("blueprintkit_recommendations",
			append([]mcplib.ToolOption{
				mcplib.WithDescription("Return the prioritized recommendations and missing components for a project"),
				mcplib.WithNumber("limit", mcplib.Description("Maximum number of recommendations (default: all)")),
			}, sourceArgs...)...,
		),
		h.handleRecommendations,
	)

	// 4. blueprintkit_detect_technologies
	s.AddTool(
		mcplib.NewTool("blueprintkit_detect_technologies",
			append([]mcplib.ToolOption{
				mcplib.WithDescription("Return the detected technology stack and application type"),
			}, sourceArgs...)...,
		),
		h.handleTechnologies,
	)

	// 5. blueprintkit_history
	s.AddTool(
		mcplib.NewTool("blueprintkit_history",
			mcplib.WithDescription("Return the recorded validation runs of a project directory"),
			mcplib.WithString("path", mcplib.Description("Project directory (defaults to the served project)")),
		),
		h.handleHistory,
	)

	// 6. blueprintkit_rules
	s.AddTool(
		mcplib.NewTool("blueprintkit_rules",
			mcplib.WithDescription("Return the rule tables used for scoring"),
		),
		h.handleRules,
	)
}

// request builds a validation request from the common tool arguments.
func (h *handlers) request(args map[string]any) (application.Request, error) {
	location, _ := args["path"].(string)
	kind, _ := args["source"].(string)
	strict, _ := args["strict"].(bool)

	req := application.Request{Kind: application.SourceKind(kind), Strict: strict}
	switch req.Kind {
	case "", application.SourceDirectory, application.SourceArchive:
		if location == "" {
			location = h.projectPath
		} else if !filepath.IsAbs(location) {
			location = filepath.Join(h.projectPath, location)
		}
	case application.SourceGit:
		if location == "" {
			return req, fmt.Errorf("path is required for git sources")
		}
	default:
		return req, fmt.Errorf("unknown source %q (valid: directory, archive, git)", kind)
	}
	req.Location = location
	return req, nil
}

func (h *handlers) run(ctx context.Context, args map[string]any) (*application.Run, error) {
	req, err := h.request(args)
	if err != nil {
		return nil, err
	}
	run, err := h.svc.ValidateSource(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return run, nil
}

type validateResponse struct {
	RunID  string                   `json:"run_id"`
	Cached bool                     `json:"cached"`
	Result *domain.ValidationResult `json:"result"`
}

func (h *handlers) handleValidate(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	run, err := h.run(ctx, request.GetArguments())
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return jsonResult(validateResponse{RunID: run.Entry.ID, Cached: run.Cached, Result: run.Result})
}

func (h *handlers) handleReport(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	args := request.GetArguments()
	run, err := h.run(ctx, args)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	location, _ := args["path"].(string)
	if location == "" {
		location = h.projectPath
	}
	md, err := h.svc.RenderReport(run.Result, domain.ReportOptions{ProjectName: filepath.Base(location)})
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult(md), nil
}

func (h *handlers) handleRecommendations(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	args := request.GetArguments()
	run, err := h.run(ctx, args)
	if err != nil {
		return errorResult(err.Error()), nil
	}

	recs := run.Result.Recommendations
	if limit, ok := args["limit"].(float64); ok && limit > 0 && int(limit) < len(recs) {
		recs = recs[:int(limit)]
	}
	return jsonResult(map[string]any{
		"recommendations":    recs,
		"missing_components": run.Result.MissingParts,
	})
}

func (h *handlers) handleTechnologies(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	run, err := h.run(ctx, request.GetArguments())
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"technologies": run.Result.Technologies,
		"application":  run.Result.Application,
	})
}

func (h *handlers) handleHistory(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	req, err := h.request(request.GetArguments())
	if err != nil {
		return errorResult(err.Error()), nil
	}
	entries, err := h.svc.History(req.Location)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	if entries == nil {
		entries = []domain.RunEntry{}
	}
	return jsonResult(entries)
}

func (h *handlers) handleRules(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	return jsonResult(map[string]any{
		"version": h.svc.Rules().Version,
		"tables":  rules.Tables(),
	})
}

// jsonResult marshals v to indented JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
