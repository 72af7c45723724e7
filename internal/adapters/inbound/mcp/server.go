// Package mcp exposes the validation engine over the Model Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/blueprintkit/blueprintkit/internal/application"
)

// NewBlueprintKitMCPServer creates an MCP server with all tools and resources
// registered. projectPath is the default project for calls that do not name one.
// The service is shared across calls, so repeated validations of an unchanged
// project are served from its cache.
func NewBlueprintKitMCPServer(projectPath, version string, svc *application.ValidateService) *server.MCPServer {
	s := server.NewMCPServer(
		"blueprintkit",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	h := &handlers{projectPath: projectPath, svc: svc}
	registerTools(s, h)
	registerResources(s, h)

	return s
}
