package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxbolgarin/critic/internal/provider"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PROVIDER_TYPE", "github")
	t.Setenv("PROVIDER_TOKEN", "ghp_token")
	t.Setenv("PROVIDER_PROJECT", "acme")
	t.Setenv("PROVIDER_REPOSITORY", "api")
	t.Setenv("PROVIDER_PULL_REQUEST", "7")
	t.Setenv("AGENT_TYPE", "openai")
	t.Setenv("AGENT_API_KEY", "sk-key")
	t.Setenv("REVIEW_EXCLUDE", "vendor/*,*.lock")
	t.Setenv("REVIEW_MAX_FILES", "10")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, provider.GitHub, cfg.Provider.Type)
	assert.Equal(t, "ghp_token", cfg.Provider.Token)
	assert.Equal(t, "acme", cfg.Provider.Project)
	assert.Equal(t, "api", cfg.Provider.Repository)
	assert.Equal(t, 7, cfg.Provider.PullRequest)
	assert.Equal(t, "sk-key", cfg.Agent.APIKey)
	assert.Equal(t, []string{"vendor/*", "*.lock"}, cfg.Review.ExcludePatterns)
	assert.Equal(t, 10, cfg.Review.MaxFiles)
}

func TestLoadConfigFromFile(t *testing.T) {
	content := `provider:
  type: gitlab
  token: glpat-token
  project: group/sub
  repository: repo
  pull_request: 42
agent:
  type: claude
  api_key: key
review:
  exclude_patterns:
    - vendor/*
  max_files: 5
server:
  address: 127.0.0.1:9000
  trigger_token: secret
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, provider.GitLab, cfg.Provider.Type)
	assert.Equal(t, "glpat-token", cfg.Provider.Token)
	assert.Equal(t, "group/sub", cfg.Provider.Project)
	assert.Equal(t, 42, cfg.Provider.PullRequest)
	assert.Equal(t, []string{"vendor/*"}, cfg.Review.ExcludePatterns)
	assert.Equal(t, 5, cfg.Review.MaxFiles)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Address)
	assert.Equal(t, "secret", cfg.Server.TriggerToken)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	content := `provider:
  type: github
  token: file-token
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("PROVIDER_TOKEN", "env-token")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Provider.Token)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}
