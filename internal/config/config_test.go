package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ENV", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 20*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Fetcher.Timeout)
	assert.Contains(t, cfg.Fetcher.UserAgent, "Mozilla/5.0")
	assert.Equal(t, int64(10*1024*1024), cfg.Fetcher.MaxBodyBytes)
	assert.Equal(t, 7, cfg.Quiz.DefaultQuestions)
	assert.Equal(t, 5, cfg.Quiz.MinQuestions)
	assert.Equal(t, 10, cfg.Quiz.MaxQuestions)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, 24*time.Hour, cfg.Cache.QuizTTL)
	assert.Equal(t, time.Hour, cfg.DB.ConnMaxLifetime)
	assert.True(t, cfg.Redis.Enabled)
	assert.Empty(t, cfg.LLM.APIKey)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ENV", "")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LLM_API_KEY", "from-llm-key")
	t.Setenv("GEMINI_API_KEY", "from-gemini-key")
	t.Setenv("CACHE_QUIZ_TTL", "30m")
	t.Setenv("REDIS_ENABLED", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "from-llm-key", cfg.LLM.APIKey)
	assert.Equal(t, 30*time.Minute, cfg.Cache.QuizTTL)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadConfig_GeminiKeyFallback(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ENV", "")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "gemini-key", cfg.LLM.APIKey)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("ENV", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
quiz:
  default_questions: 9
fetcher:
  timeout: 3s
`), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Quiz.DefaultQuestions)
	assert.Equal(t, 3*time.Second, cfg.Fetcher.Timeout)
	assert.Equal(t, 10, cfg.Quiz.MaxQuestions)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("ENV", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("quiz: [unclosed"), 0o600))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{DB: DBConfig{User: "u", Password: "p", Host: "h", Port: 5433, DBName: "d", SSLMode: "require"}}
	assert.Equal(t, "postgres://u:p@h:5433/d?sslmode=require", cfg.GetDSN())
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
