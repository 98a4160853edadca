package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"api_key": "key-123",
		"port": 9090,
		"jitter_policy": "multiplicative",
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "key-123", cfg.APIKey)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "multiplicative", cfg.JitterPolicy)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	path := writeFile(t, "skillscan.yaml", "database_url: postgres://localhost/skillscan\nuse_browser: true\nmodel: advanced\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/skillscan", cfg.DatabaseURL)
	assert.True(t, cfg.UseBrowser)
	assert.Equal(t, "advanced", cfg.Model)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "config.json", `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "config.yml", "port: [unclosed"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.ErrorContains(t, err, "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"zero value", Config{}, ""},
		{"valid", Config{Port: 8080, JitterPolicy: "Additive"}, ""},
		{"negative port", Config{Port: -1}, "port"},
		{"port too large", Config{Port: 70000}, "port"},
		{"unknown policy", Config{JitterPolicy: "gaussian"}, "jitter_policy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		APIKey:      "env-key",
		DatabaseURL: "postgres://env",
		Port:        9000,
		UseBrowser:  true,
	}
	partial := Config{APIKey: "file-key", JitterPolicy: "multiplicative"}

	merged := partial.MergeWithDefaults(defaults)

	assert.Equal(t, "file-key", merged.APIKey)
	assert.Equal(t, "multiplicative", merged.JitterPolicy)
	assert.Equal(t, "postgres://env", merged.DatabaseURL)
	assert.Equal(t, 9000, merged.Port)
	assert.True(t, merged.UseBrowser)
}

func TestMergeWithDefaults_DefaultPort(t *testing.T) {
	merged := (&Config{}).MergeWithDefaults(Config{})
	assert.Equal(t, DefaultPort, merged.Port)
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvDatabaseURL, "postgres://env")
	t.Setenv(EnvPort, "7070")
	t.Setenv(EnvJitterPolicy, "multiplicative")
	t.Setenv(EnvUseBrowser, "true")
	t.Setenv(EnvModel, "lite")

	cfg := FromEnv()
	assert.Equal(t, Config{
		APIKey:       "env-key",
		Model:        "lite",
		DatabaseURL:  "postgres://env",
		Port:         7070,
		JitterPolicy: "multiplicative",
		UseBrowser:   true,
	}, cfg)
}

func TestFromEnv_MalformedValuesIgnored(t *testing.T) {
	t.Setenv(EnvPort, "eighty")
	t.Setenv(EnvUseBrowser, "maybe")

	cfg := FromEnv()
	assert.Zero(t, cfg.Port)
	assert.False(t, cfg.UseBrowser)
}

func TestLoad_FileOverridesEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvPort, "")
	t.Setenv(EnvJitterPolicy, "")
	path := writeFile(t, "config.json", `{"api_key": "file-key"}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, DefaultPort, cfg.Port)
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv(EnvJitterPolicy, "gaussian")

	_, err := Load("")
	assert.ErrorContains(t, err, "jitter_policy")
}
