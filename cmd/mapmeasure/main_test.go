package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateClientConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := []struct {
		name     string
		path     string
		existing string
		wantErr  bool
	}{
		{
			name: "valid path",
			path: "config.json",
		},
		{
			name:    "empty path",
			path:    "",
			wantErr: true,
		},
		{
			name:    "non-json extension",
			path:    "config.txt",
			wantErr: true,
		},
		{
			name:    "path with ..",
			path:    filepath.Join("..", "config.json"),
			wantErr: true,
		},
		{
			name:     "merge with existing",
			path:     "merge.json",
			existing: `{"existing_key":"existing_value","mcpServers":{"other":{"command":"x"}}}`,
		},
		{
			name:     "invalid existing json is replaced",
			path:     "broken.json",
			existing: `{not json`,
		},
		{
			name: "nested directory",
			path: filepath.Join("sub", "dir", "config.json"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.existing != "" {
				if err := os.WriteFile(tt.path, []byte(tt.existing), 0o644); err != nil {
					t.Fatalf("Failed to write existing config: %v", err)
				}
			}

			err := generateClientConfig(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("generateClientConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			info, err := os.Stat(tt.path)
			if err != nil {
				t.Fatalf("Failed to stat config file: %v", err)
			}
			if mode := info.Mode().Perm(); mode != 0o600 {
				t.Errorf("Config file has wrong permissions: %v, want 0600", mode)
			}

			data, err := os.ReadFile(tt.path)
			if err != nil {
				t.Fatalf("Failed to read config file: %v", err)
			}
			var config map[string]interface{}
			if err := json.Unmarshal(data, &config); err != nil {
				t.Fatalf("Failed to parse config JSON: %v", err)
			}

			servers, ok := config["mcpServers"].(map[string]interface{})
			if !ok {
				t.Fatal("Config missing 'mcpServers' section")
			}
			if _, ok := servers["mapmeasure"]; !ok {
				t.Error("Config missing 'mapmeasure' server")
			}

			if tt.name == "merge with existing" {
				if val := config["existing_key"]; val != "existing_value" {
					t.Error("Merge failed to preserve existing content")
				}
				if _, ok := servers["other"]; !ok {
					t.Error("Merge dropped an existing server")
				}
			}
		})
	}
}
