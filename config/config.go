package config

import (
	"errors"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// DatabaseConfig configures the sqlite store.
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"` // "memory" or a file path
}

// QuestionnaireConfig points at the question source.
type QuestionnaireConfig struct {
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"` // xlsx, json or yaml; inferred from Path when empty
	Sheet  string `mapstructure:"sheet"`  // xlsx only; first sheet when empty
}

// ContentConfig points at the static wellness documents.
type ContentConfig struct {
	PrakritiPath string `mapstructure:"prakriti_path"`
	YogaPath     string `mapstructure:"yoga_path"`
	RemediesPath string `mapstructure:"remedies_path"`
}

// LLMConfig configures the OpenAI-compatible chat endpoint.
type LLMConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LogConfig configures zap.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// CORSConfig configures allowed browser origins.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Config holds the application's configuration.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Questionnaire QuestionnaireConfig `mapstructure:"questionnaire"`
	Content       ContentConfig       `mapstructure:"content"`
	LLM           LLMConfig           `mapstructure:"llm"`
	Log           LogConfig           `mapstructure:"log"`
	CORS          CORSConfig          `mapstructure:"cors"`
}

// AppConfig is the global configuration instance.
var AppConfig Config

// ConfigFileUsed is the path of the config file LoadConfig read, empty when
// only defaults and the environment were used.
var ConfigFileUsed string

// SetDefaults registers the defaults used when config.yaml and the
// environment leave a key unset.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.dsn", "data/ritu.db")
	v.SetDefault("questionnaire.path", "data/PCODQuestions.json")
	v.SetDefault("questionnaire.format", "")
	v.SetDefault("questionnaire.sheet", "")
	v.SetDefault("content.prakriti_path", "data/prakritiQuestions.json")
	v.SetDefault("content.yoga_path", "data/yoga.json")
	v.SetDefault("content.remedies_path", "data/remedies.json")
	v.SetDefault("llm.base_url", "http://localhost:11434/v1")
	v.SetDefault("llm.api_key", "ollama")
	v.SetDefault("llm.model", "llama3.2")
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("cors.allowed_origins", []string{"*"})
}

// LoadConfig loads configuration from config.yaml and RITU_* environment
// variables into AppConfig.
func LoadConfig() error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("../config") // For running from locations like tests

	v.SetEnvPrefix("RITU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return eris.Wrap(err, "config: read config file")
		}
	}
	ConfigFileUsed = v.ConfigFileUsed()

	cfg, err := unmarshal(v)
	if err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

func unmarshal(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, eris.Wrap(err, "config: unmarshal")
	}
	if cfg.Questionnaire.Format != "" {
		cfg.Questionnaire.Format = strings.ToLower(cfg.Questionnaire.Format)
	}
	// A comma-separated env override arrives as a single element.
	if len(cfg.CORS.AllowedOrigins) == 1 && strings.Contains(cfg.CORS.AllowedOrigins[0], ",") {
		parts := strings.Split(cfg.CORS.AllowedOrigins[0], ",")
		cfg.CORS.AllowedOrigins = cfg.CORS.AllowedOrigins[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, p)
			}
		}
	}
	return cfg, nil
}

// InitLogger builds a zap logger from cfg and installs it as the global logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
