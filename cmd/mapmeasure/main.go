package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/NERVsystems/mapmeasure/pkg/config"
	"github.com/NERVsystems/mapmeasure/pkg/server"
	"github.com/NERVsystems/mapmeasure/pkg/version"
)

var (
	showVersion    bool
	debug          bool
	configPath     string
	generateConfig string
)

func init() {
	flag.BoolVar(&showVersion, "version", false, "Display version information")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.StringVar(&configPath, "config", "", "Path to a YAML config file (default: ./mapmeasure.yaml if present)")
	flag.StringVar(&generateConfig, "generate-config", "", "Add this server to an MCP client config file at the specified path")
}

func main() {
	flag.Parse()

	// Configure logging
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if showVersion {
		fmt.Println(version.Get())
		return
	}

	if generateConfig != "" {
		if err := generateClientConfig(generateConfig); err != nil {
			logger.Error("failed to generate config", "error", err)
			os.Exit(1)
		}
		logger.Info("successfully generated MCP client config", "path", generateConfig)
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("starting map measurement MCP server",
		"version", version.Get().Version,
		"log_level", logLevel.String(),
		"max_sessions", cfg.Sessions.Max)

	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", "error", err)
		os.Exit(1)
	}
	defer srv.Close()

	logger.Info("server initialized, waiting for requests")
	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		srv.Close()
		os.Exit(1)
	}
}

// generateClientConfig creates or updates an MCP client config file so
// that it launches this binary. Existing entries are preserved.
func generateClientConfig(outputPath string) error {
	if outputPath == "" {
		return errors.New("config path must not be empty")
	}
	if filepath.Ext(outputPath) != ".json" {
		return fmt.Errorf("config path %q must end in .json", outputPath)
	}
	for _, part := range strings.Split(filepath.ToSlash(outputPath), "/") {
		if part == ".." {
			return fmt.Errorf("config path %q must not contain ..", outputPath)
		}
	}

	execPath, err := os.Executable()
	if err != nil {
		execPath = os.Args[0]
	}
	if abs, err := filepath.Abs(execPath); err == nil {
		execPath = abs
	}

	clientCfg := make(map[string]interface{})
	if data, err := os.ReadFile(outputPath); err == nil {
		if err := json.Unmarshal(data, &clientCfg); err != nil {
			slog.Default().Warn("existing config is not valid JSON, will create new", "error", err)
			clientCfg = make(map[string]interface{})
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read existing config: %w", err)
	}

	mcpServers, ok := clientCfg["mcpServers"].(map[string]interface{})
	if !ok {
		mcpServers = make(map[string]interface{})
		clientCfg["mcpServers"] = mcpServers
	}
	mcpServers["mapmeasure"] = map[string]interface{}{
		"command": execPath,
		"args":    []string{},
	}

	data, err := json.MarshalIndent(clientCfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(outputPath, 0o600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}
	return nil
}
