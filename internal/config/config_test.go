package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		toml    string
		wantErr string
	}{
		{
			name:    "valid config",
			toml:    `token_secret = "super-secret"`,
			wantErr: "",
		},
		{
			name:    "missing token_secret fails validation",
			toml:    `log_level = "info"`,
			wantErr: "config validation failed",
		},
		{
			name:    "empty token_secret fails validation",
			toml:    `token_secret = ""`,
			wantErr: "config validation failed",
		},
		{
			name:    "invalid toml syntax",
			toml:    `token_secret = [whoops`,
			wantErr: "failed to unmarshal config file",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := writeTestConfig(t, test.toml)
			cfg, err := Load(path)

			if test.wantErr != "" {
				require.ErrorContains(t, err, test.wantErr)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			assert.Equal(t, "super-secret", cfg.TokenSecret)
			assert.Equal(t, "localhost:8080", cfg.Address) // default preserved
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvAddress, "0.0.0.0:9000")
	t.Setenv(EnvTokenSecret, "env-secret")
	t.Setenv(EnvDBFilepath, "/tmp/override.sqlite")

	path := writeTestConfig(t, `token_secret = "file-secret"`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Address)
	assert.Equal(t, "env-secret", cfg.TokenSecret)
	assert.Equal(t, "/tmp/override.sqlite", cfg.DBFilepath)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.toml")
	require.ErrorContains(t, err, "failed to read config file")
	assert.Nil(t, cfg)
}

func TestClientBaseURL(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, "http://localhost:8080", cfg.ClientBaseURL())

	cfg.BaseURL = "https://barre.example.com"
	assert.Equal(t, "https://barre.example.com", cfg.ClientBaseURL())
}

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)
	return path
}
