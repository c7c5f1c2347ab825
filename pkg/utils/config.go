package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Redis    RedisConfig
	Hotel    HotelConfig
	CORS     CORSConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host      string
	Port      string
	Name      string
	User      string
	Password  string
	SSLMode   string
	MaxConns  int32
	TxRetries int
}

type SessionConfig struct {
	ExpiryHours int
}

// RedisConfig is optional; an empty Addr disables the hotel listing cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type HotelConfig struct {
	CacheTTL time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// LoadConfig reads .env when present and lets real environment variables override it.
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New(), ".env")
}

func loadConfig(v *viper.Viper, file string) (*Config, error) {
	v.SetConfigFile(file)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "conference-booking")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_TX_RETRIES", 3)
	v.SetDefault("SESSION_EXPIRY_HOURS", 24)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("HOTEL_CACHE_TTL", "5m")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Port:            v.GetString("PORT"),
			Debug:           v.GetBool("DEBUG"),
			LogPath:         v.GetString("LOG_PATH"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:      v.GetString("DB_HOST"),
			Port:      v.GetString("DB_PORT"),
			Name:      v.GetString("DB_NAME"),
			User:      v.GetString("DB_USER"),
			Password:  v.GetString("DB_PASS"),
			SSLMode:   v.GetString("DB_SSLMODE"),
			MaxConns:  v.GetInt32("DB_MAX_CONNS"),
			TxRetries: v.GetInt("DB_TX_RETRIES"),
		},
		Session: SessionConfig{
			ExpiryHours: v.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Hotel: HotelConfig{
			CacheTTL: v.GetDuration("HOTEL_CACHE_TTL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	return config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
