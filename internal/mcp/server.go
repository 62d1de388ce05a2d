// Package mcp exposes the folder and cache services as MCP tools over
// stdio, so LLM agents can browse and organize starred repos.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/inovacc/stargazer/internal/application"
	"github.com/inovacc/stargazer/internal/core"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server bundles the services the tool handlers run on.
type Server struct {
	loader  *core.DataLoader
	folders *core.FolderService
	store   core.Store
}

// NewServer creates an MCP server facade over the shared services.
func NewServer(loader *core.DataLoader, folders *core.FolderService, store core.Store) *Server {
	return &Server{loader: loader, folders: folders, store: store}
}

// ServeStdio registers all tools and serves MCP over stdio until the
// client disconnects.
func (s *Server) ServeStdio(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    application.AppName,
			Version: application.Version,
		},
		&mcp.ServerOptions{
			Instructions: `Stargazer organizes a user's starred GitHub repositories into
virtual folders. Folders can carry auto-tags that match repos by topic or
primary language. Start with list_folders and list_starred_repos; use
force_refresh sparingly, the local cache is usually current enough.`,
		},
	)

	s.registerTools(server)

	return server.Run(ctx, &mcp.StdioTransport{})
}

// textResult marshals data as indented JSON TextContent, the encoding
// that works across MCP clients.
func textResult(data any) (*mcp.CallToolResult, error) {
	body, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling response: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(body)}},
	}, nil
}
