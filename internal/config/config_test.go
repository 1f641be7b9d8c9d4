package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so host settings don't leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"INTERVUE_LLM_PROVIDER",
		"INTERVUE_ANTHROPIC_API_KEY", "INTERVUE_ANTHROPIC_MODEL",
		"INTERVUE_OPENAI_API_KEY", "INTERVUE_OPENAI_MODEL", "INTERVUE_OPENAI_BASE_URL",
		"INTERVUE_GEMINI_API_KEY", "INTERVUE_GEMINI_MODEL",
		"INTERVUE_OPENROUTER_API_KEY", "INTERVUE_OPENROUTER_MODEL",
		"INTERVUE_DB", "INTERVUE_STORE", "INTERVUE_MONGO_URI", "INTERVUE_MONGO_DATABASE",
		"INTERVUE_STATE", "INTERVUE_STATE_PATH",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxRetries)
	assert.Equal(t, 20*time.Second, cfg.LLM.Retry.BaseDelay)
	assert.Equal(t, StoreSQLite, cfg.Store.Backend)
	assert.Equal(t, StateBolt, cfg.State.Backend)
	assert.False(t, cfg.LLM.HasKey())
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
llm:
  provider: anthropic
  anthropic:
    api_key: sk-file
    model: claude-sonnet-4-5
  retry:
    max_retries: 5
    base_delay: 2s
store:
  backend: mongo
  mongo_uri: mongodb://db:27017
state:
  backend: memory
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "sk-file", cfg.LLM.Anthropic.APIKey)
	assert.Equal(t, "claude-sonnet-4-5", cfg.LLM.Anthropic.Model)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAI.Model, "unset fields keep defaults")
	assert.Equal(t, 5, cfg.LLM.Retry.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.LLM.Retry.BaseDelay)
	assert.Equal(t, StoreMongo, cfg.Store.Backend)
	assert.Equal(t, "mongodb://db:27017", cfg.Store.MongoURI)
	assert.Equal(t, "intervue", cfg.Store.MongoDatabase)
	assert.Equal(t, StateMemory, cfg.State.Backend)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "llm:\n  provider: anthropic\n  anthropic:\n    api_key: sk-file\n")
	t.Setenv("INTERVUE_LLM_PROVIDER", "openai")
	t.Setenv("INTERVUE_OPENAI_API_KEY", "sk-env")
	t.Setenv("INTERVUE_DB", "/tmp/x.db")
	t.Setenv("INTERVUE_STATE", "memory")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-env", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "/tmp/x.db", cfg.Store.Path)
	assert.Equal(t, StateMemory, cfg.State.Backend)
}

func TestLoad_DiscoversStandardKeys(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-openai", cfg.LLM.OpenAI.APIKey)
}

func TestLoad_ConfiguredKeyBeatsDiscovery(t *testing.T) {
	clearEnv(t)
	t.Setenv("INTERVUE_GEMINI_API_KEY", "g-key")
	t.Setenv("OPENAI_API_KEY", "sk-openai")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "g-key", cfg.LLM.Gemini.APIKey)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeFile(t, "llm: [not, a, map"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "store:\n  backend: postgres\n"))
	assert.ErrorContains(t, err, "unknown store backend")

	_, err = Load(writeFile(t, "state:\n  backend: redis\n"))
	assert.ErrorContains(t, err, "unknown state backend")

	_, err = Load(writeFile(t, "store:\n  backend: mongo\n  mongo_uri: \"\"\n"))
	assert.ErrorContains(t, err, "mongo_uri")
}

func TestWriteRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.LLM.Provider = "openrouter"
	cfg.LLM.OpenRouter.APIKey = "or-key"
	require.NoError(t, Write(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "intervue", "config.yaml"), got)
}
