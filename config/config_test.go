package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadConfig_ShippedFile(t *testing.T) {
	require.NoError(t, LoadConfig())

	assert.Equal(t, "8080", AppConfig.Server.Port)
	assert.Equal(t, "http://localhost:11434/v1", AppConfig.LLM.BaseURL)
	assert.Equal(t, "llama3.2", AppConfig.LLM.Model)
	assert.Equal(t, 60*time.Second, AppConfig.LLM.Timeout)
	assert.Equal(t, []string{"*"}, AppConfig.CORS.AllowedOrigins)
	assert.Equal(t, "config.yaml", filepath.Base(ConfigFileUsed))
}

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := unmarshal(v)
	require.NoError(t, err)
	assert.Equal(t, "data/ritu.db", cfg.Database.DSN)
	assert.Equal(t, "data/PCODQuestions.json", cfg.Questionnaire.Path)
	assert.Empty(t, cfg.Questionnaire.Format)
	assert.Equal(t, "data/prakritiQuestions.json", cfg.Content.PrakritiPath)
	assert.Equal(t, "data/yoga.json", cfg.Content.YogaPath)
	assert.Equal(t, "data/remedies.json", cfg.Content.RemediesPath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("RITU_SERVER_PORT", "9090")
	t.Setenv("RITU_QUESTIONNAIRE_PATH", "data/master.xlsx")
	t.Setenv("RITU_QUESTIONNAIRE_FORMAT", "XLSX")
	t.Setenv("RITU_LLM_TIMEOUT", "5s")

	require.NoError(t, LoadConfig())

	assert.Equal(t, "9090", AppConfig.Server.Port)
	assert.Equal(t, "data/master.xlsx", AppConfig.Questionnaire.Path)
	assert.Equal(t, "xlsx", AppConfig.Questionnaire.Format)
	assert.Equal(t, 5*time.Second, AppConfig.LLM.Timeout)
}

func TestUnmarshal_SplitsCommaSeparatedOrigins(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("cors.allowed_origins", []string{"http://localhost:3000, http://127.0.0.1:19006"})

	cfg, err := unmarshal(v)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:19006"}, cfg.CORS.AllowedOrigins)
}

func TestInitLogger(t *testing.T) {
	t.Cleanup(func() { zap.ReplaceGlobals(zap.NewNop()) })

	t.Run("valid level", func(t *testing.T) {
		require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
		assert.True(t, zap.L().Core().Enabled(zap.DebugLevel))
	})

	t.Run("invalid level", func(t *testing.T) {
		err := InitLogger(LogConfig{Level: "loud"})
		assert.Error(t, err)
	})
}
