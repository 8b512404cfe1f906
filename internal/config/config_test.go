package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")
	content := `{
		"data": "portfolio.yaml",
		"output_dir": "out",
		"max_projects": 6,
		"port": 9090,
		"allowed_origins": ["https://example.com"]
	}`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "portfolio.yaml", cfg.DataPath)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, 6, cfg.MaxProjects)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"https://example.com"}, cfg.AllowedOrigins)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yml")
	content := "data: portfolio.json\nmax_projects: -1\nmodel: gemini-2.5-flash\nverbose: true\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "portfolio.json", cfg.DataPath)
	assert.Equal(t, -1, cfg.MaxProjects)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte("{ invalid }"), 0644))

	_, err := LoadConfig(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("port: [1, 2"), 0644))

	_, err := LoadConfig(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvDataPath:  "env.yaml",
		EnvOutputDir: "env-out",
		EnvAPIKeyAlt: "alt-key",
		EnvPort:      "3000",
	}
	cfg := &Config{OutputDir: "flag-out"}
	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, "env.yaml", cfg.DataPath)
	assert.Equal(t, "flag-out", cfg.OutputDir, "set values are kept")
	assert.Equal(t, "alt-key", cfg.APIKey)
	assert.Equal(t, 3000, cfg.Port)

	env[EnvAPIKey] = "primary-key"
	cfg = &Config{}
	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))
	assert.Equal(t, "primary-key", cfg.APIKey)
}

func TestApplyEnv_BadPort(t *testing.T) {
	cfg := &Config{}
	err := cfg.ApplyEnv(func(k string) string {
		if k == EnvPort {
			return "eighty"
		}
		return ""
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvPort)
}

func TestValidate(t *testing.T) {
	existing := filepath.Join(t.TempDir(), "portfolio.json")
	require.NoError(t, os.WriteFile(existing, []byte("{}"), 0644))

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty", cfg: Config{}},
		{name: "all projects", cfg: Config{MaxProjects: -1}},
		{name: "existing data file", cfg: Config{DataPath: existing}},
		{name: "negative projects", cfg: Config{MaxProjects: -2}, wantErr: "max_projects"},
		{name: "port out of range", cfg: Config{Port: 70000}, wantErr: "port"},
		{name: "contact email", cfg: Config{ContactEmail: "inbox@example.org"}},
		{name: "malformed contact email", cfg: Config{ContactEmail: "inbox-at-example"}, wantErr: "contact_email"},
		{name: "missing data file", cfg: Config{DataPath: "/nonexistent/portfolio.json"}, wantErr: "data file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		DataPath: "mine.yaml",
		Port:     9000,
	}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "mine.yaml", merged.DataPath)
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, ".", merged.OutputDir)
	assert.Equal(t, 4, merged.MaxProjects)

	// Original should be unchanged
	assert.Equal(t, "", cfg.OutputDir)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := &Config{OutputDir: "out", MaxProjects: -1}
	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "out", merged.OutputDir)
	assert.Equal(t, -1, merged.MaxProjects)
	assert.Equal(t, 0, merged.Port)
}

func TestAddr(t *testing.T) {
	cfg := Config{Host: "127.0.0.1", Port: 8080}
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, ":3000", (&Config{Port: 3000}).Addr())
}
