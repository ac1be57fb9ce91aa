package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	CORS   CORSConfig
	Upload UploadConfig
	Gemini GeminiConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// UploadConfig holds file acceptance settings.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxFileSizeBytes returns the upload ceiling in bytes.
func (u *UploadConfig) MaxFileSizeBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// APIKeyPlaceholder is the well-known dummy value shipped in .env.example.
// Leaving it in place behaves the same as leaving the key unset.
const APIKeyPlaceholder = "your_gemini_api_key_here"

// GeminiConfig holds settings for the Gemini extraction client. An empty or
// placeholder APIKey switches the client into demo mode.
type GeminiConfig struct {
	APIKey          string `mapstructure:"api_key"`
	Model           string `mapstructure:"model"`
	TimeoutSecs     int    `mapstructure:"timeout_secs"`
	MaxOutputTokens int    `mapstructure:"max_output_tokens"`
}

// Configured reports whether a real API key is present.
func (g *GeminiConfig) Configured() bool {
	return g.APIKey != "" && g.APIKey != APIKeyPlaceholder
}

// Load reads configuration from environment variables with the AIOCR_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("AIOCR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:5173,http://127.0.0.1:5173,http://localhost:3000,http://127.0.0.1:3000")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 20)

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-1.5-pro")
	v.SetDefault("gemini.timeout_secs", 120)
	v.SetDefault("gemini.max_output_tokens", 8192)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "AIOCR_SERVER_PORT",
		"server.read_timeout":      "AIOCR_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "AIOCR_SERVER_WRITE_TIMEOUT",
		"server.environment":       "AIOCR_SERVER_ENVIRONMENT",
		"log.level":                "AIOCR_LOG_LEVEL",
		"log.format":               "AIOCR_LOG_FORMAT",
		"cors.allowed_origins":     "AIOCR_CORS_ALLOWED_ORIGINS",
		"upload.max_file_size_mb":  "AIOCR_UPLOAD_MAX_FILE_SIZE_MB",
		"gemini.api_key":           "AIOCR_GEMINI_API_KEY",
		"gemini.model":             "AIOCR_GEMINI_MODEL",
		"gemini.timeout_secs":      "AIOCR_GEMINI_TIMEOUT_SECS",
		"gemini.max_output_tokens": "AIOCR_GEMINI_MAX_OUTPUT_TOKENS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if AIOCR_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("AIOCR_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}

	cfg.Gemini = GeminiConfig{
		APIKey:          v.GetString("gemini.api_key"),
		Model:           v.GetString("gemini.model"),
		TimeoutSecs:     v.GetInt("gemini.timeout_secs"),
		MaxOutputTokens: v.GetInt("gemini.max_output_tokens"),
	}

	return cfg, nil
}
