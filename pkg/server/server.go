// Package server assembles the measurement MCP server.
package server

import (
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/NERVsystems/mapmeasure/pkg/config"
	"github.com/NERVsystems/mapmeasure/pkg/osm"
	"github.com/NERVsystems/mapmeasure/pkg/tools"
	"github.com/NERVsystems/mapmeasure/pkg/tools/prompts"
	"github.com/NERVsystems/mapmeasure/pkg/version"
)

// Server encapsulates the MCP server with the measurement tools.
type Server struct {
	srv       *server.MCPServer
	workspace *tools.Workspace
	geocoder  *osm.Geocoder
	registry  *tools.Registry
}

// NewServer creates a measurement MCP server with all tools registered.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("initializing measurement MCP server",
		"name", cfg.Server.Name,
		"version", version.Get().Version)

	srv := server.NewMCPServer(
		cfg.Server.Name,
		version.Get().Version,
		server.WithToolCapabilities(false),
		server.WithPromptCapabilities(false),
		server.WithRecovery(),
	)

	workspace, err := tools.NewWorkspace(cfg.Sessions.Max, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	geocoder := osm.NewGeocoder(osm.Config{
		BaseURL:   cfg.Nominatim.BaseURL,
		UserAgent: cfg.Nominatim.UserAgent,
		RPS:       cfg.Nominatim.RPS,
		Burst:     cfg.Nominatim.Burst,
		CacheTTL:  cfg.Nominatim.CacheTTL,
		Logger:    logger,
	})

	registry := tools.NewRegistry(logger, tools.NewMeasureTools(workspace, geocoder, logger))
	registry.RegisterTools(srv)
	prompts.RegisterMeasurementPrompts(srv)

	return &Server{
		srv:       srv,
		workspace: workspace,
		geocoder:  geocoder,
		registry:  registry,
	}, nil
}

// Tools returns the registered tool definitions.
func (s *Server) Tools() []tools.ToolDefinition {
	return s.registry.GetToolDefinitions()
}

// Run starts the MCP server using stdin/stdout for communication.
func (s *Server) Run() error {
	return server.ServeStdio(s.srv)
}

// Close closes every open session and stops background work.
func (s *Server) Close() {
	s.workspace.CloseAll()
	s.geocoder.Close()
}
