package tools

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Registry holds all MCP tool registrations for the measurement service.
type Registry struct {
	logger  *slog.Logger
	measure *MeasureTools
}

// NewRegistry creates a new MCP tool registry.
func NewRegistry(logger *slog.Logger, measure *MeasureTools) *Registry {
	return &Registry{
		logger:  logger,
		measure: measure,
	}
}

// ToolDefinition represents a measurement MCP tool definition.
type ToolDefinition struct {
	Name        string
	Description string
	Tool        mcp.Tool
	Handler     func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// GetToolDefinitions returns all measurement MCP tool definitions.
func (r *Registry) GetToolDefinitions() []ToolDefinition {
	m := r.measure
	return []ToolDefinition{
		// Session lifecycle
		{
			Name:        "measure_start_session",
			Description: "Open a new distance/area measurement session",
			Tool:        StartSessionTool(),
			Handler:     m.HandleStartSession,
		},
		{
			Name:        "measure_close_session",
			Description: "Close a measurement session",
			Tool:        CloseSessionTool(),
			Handler:     m.HandleCloseSession,
		},

		// Interaction
		{
			Name:        "measure_toggle",
			Description: "Switch measurement mode on or off",
			Tool:        ToggleTool(),
			Handler:     m.HandleToggle,
		},
		{
			Name:        "measure_click",
			Description: "Click the map at a coordinate",
			Tool:        ClickTool(),
			Handler:     m.HandleClick,
		},
		{
			Name:        "measure_click_place",
			Description: "Click the map at a geocoded place",
			Tool:        ClickPlaceTool(),
			Handler:     m.HandleClickPlace,
		},
		{
			Name:        "measure_clear",
			Description: "Clear the measurement",
			Tool:        ClearTool(),
			Handler:     m.HandleClear,
		},

		// Read-only
		{
			Name:        "measure_status",
			Description: "Read the current measurement",
			Tool:        StatusTool(),
			Handler:     m.HandleStatus,
		},
		{
			Name:        "measure_export",
			Description: "Export the measurement as GeoJSON",
			Tool:        ExportTool(),
			Handler:     m.HandleExport,
		},
	}
}

// RegisterTools registers all tools with the MCP server.
func (r *Registry) RegisterTools(mcpServer *server.MCPServer) {
	for _, def := range r.GetToolDefinitions() {
		r.logger.Info("registering tool", "name", def.Name)
		mcpServer.AddTool(def.Tool, def.Handler)
	}
}
