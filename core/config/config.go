package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		App       AppConfig
		Auth      AuthConfig
		GoogleAPI GoogleAPIConfig
		Gemini    GeminiConfig
		Snapshot  SnapshotConfig
		Redis     RedisConfig
		Postgres  PostgresConfig
		S3        S3Config
	}

	AppConfig struct {
		Name string
		Env  string // "development" | "production"
		Port int
	}

	AuthConfig struct {
		JWTSecret    string
		ClientSecret string // shared secret exchanged for a bearer token
		TokenTTL     time.Duration
	}

	GoogleAPIConfig struct {
		ClientID     string
		ClientSecret string
		RedirectURL  string
	}

	GeminiConfig struct {
		APIKey     string
		Model      string
		DailyLimit int
	}

	// SnapshotConfig selects the persistence backend for store snapshots.
	SnapshotConfig struct {
		Backend  string // "file" | "redis" | "postgres" | "s3"
		FilePath string
	}

	RedisConfig struct {
		Addr     string
		Password string
		DB       int
	}

	PostgresConfig struct {
		Host     string
		Port     int
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	S3Config struct {
		Bucket    string
		Region    string
		AccessKey string
		SecretKey string
	}
)

var (
	instance *Config
	once     sync.Once
)

// Load reads .env (if present) and environment variables into the Config
// singleton. Safe to call more than once.
func Load() (*Config, error) {
	var loadErr error
	once.Do(func() {
		_ = godotenv.Load()

		v := viper.New()
		v.AutomaticEnv()
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

		v.SetDefault("APP_NAME", "mana-assistant")
		v.SetDefault("APP_ENV", "development")
		v.SetDefault("APP_PORT", 7070)
		v.SetDefault("AUTH_TOKEN_TTL_MINUTES", 1440)
		v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
		v.SetDefault("GEMINI_DAILY_LIMIT", 50)
		v.SetDefault("SNAPSHOT_BACKEND", "file")
		v.SetDefault("SNAPSHOT_FILE_PATH", "./data")
		v.SetDefault("POSTGRES_PORT", 5432)
		v.SetDefault("POSTGRES_SSLMODE", "disable")
		v.SetDefault("S3_REGION", "us-east-1")

		instance = &Config{
			App: AppConfig{
				Name: v.GetString("APP_NAME"),
				Env:  v.GetString("APP_ENV"),
				Port: v.GetInt("APP_PORT"),
			},
			Auth: AuthConfig{
				JWTSecret:    v.GetString("AUTH_JWT_SECRET"),
				ClientSecret: v.GetString("AUTH_CLIENT_SECRET"),
				TokenTTL:     time.Duration(v.GetInt("AUTH_TOKEN_TTL_MINUTES")) * time.Minute,
			},
			GoogleAPI: GoogleAPIConfig{
				ClientID:     v.GetString("GOOGLE_CLIENT_ID"),
				ClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
				RedirectURL:  v.GetString("GOOGLE_REDIRECT_URL"),
			},
			Gemini: GeminiConfig{
				APIKey:     v.GetString("GEMINI_API_KEY"),
				Model:      v.GetString("GEMINI_MODEL"),
				DailyLimit: v.GetInt("GEMINI_DAILY_LIMIT"),
			},
			Snapshot: SnapshotConfig{
				Backend:  v.GetString("SNAPSHOT_BACKEND"),
				FilePath: v.GetString("SNAPSHOT_FILE_PATH"),
			},
			Redis: RedisConfig{
				Addr:     v.GetString("REDIS_ADDR"),
				Password: v.GetString("REDIS_PASSWORD"),
				DB:       v.GetInt("REDIS_DB"),
			},
			Postgres: PostgresConfig{
				Host:     v.GetString("POSTGRES_HOST"),
				Port:     v.GetInt("POSTGRES_PORT"),
				User:     v.GetString("POSTGRES_USER"),
				Password: v.GetString("POSTGRES_PASSWORD"),
				DBName:   v.GetString("POSTGRES_DB"),
				SSLMode:  v.GetString("POSTGRES_SSLMODE"),
			},
			S3: S3Config{
				Bucket:    v.GetString("S3_BUCKET"),
				Region:    v.GetString("S3_REGION"),
				AccessKey: v.GetString("S3_ACCESS_KEY"),
				SecretKey: v.GetString("S3_SECRET_KEY"),
			},
		}
	})
	return instance, loadErr
}

// Get returns the loaded config, loading it on first use.
func Get() *Config {
	cfg, _ := GetSafe()
	return cfg
}

// GetSafe returns the loaded config or an error if loading failed.
func GetSafe() (*Config, error) {
	if instance != nil {
		return instance, nil
	}
	cfg, err := Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
