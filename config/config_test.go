package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 20, cfg.Scraper.MaxProducts)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 30, cfg.LLM.TimeoutSec)
	assert.Equal(t, "data/scraped.json", cfg.Data.SnapshotPath)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
scraper:
  max_products: 7
retrieval:
  top_k: 3
llm:
  provider: groq
  model: llama-3.3-70b-versatile
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 7, cfg.Scraper.MaxProducts)
	assert.Equal(t, 3, cfg.Retrieval.TopK)
	assert.Equal(t, "groq", cfg.LLM.Provider)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLM.Model)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Unset fields still get defaults.
	assert.Equal(t, 30, cfg.Scraper.TimeoutSec)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LLM_API_KEY", "secret-key")
	t.Setenv("LLM_MODEL", "groq")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "secret-key", cfg.LLM.APIKey)
	assert.Equal(t, "groq", cfg.LLM.Provider)
}

func TestLoadRejectsBadProvider(t *testing.T) {
	t.Setenv("LLM_MODEL", "mystery")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: ["), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	assert.Empty(t, cfg.Validate())

	cfg.Server.Port = -1
	cfg.Logging.Level = "loud"
	conflicts := cfg.Validate()
	assert.Len(t, conflicts, 2)
}
