package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPort      = "8080"
	DefaultServerURL = "http://localhost:8080"
	DefaultTokenTTL  = 24 * time.Hour
	DefaultRateLimit = 120

	DefaultStartRateLimit = 30
)

// Config holds the game server settings.
type Config struct {
	Port      string
	Env       string
	RedisURL  string
	RedisPass string
	RedisDB   int

	JWTSecret    string
	JWTGenerated bool
	TokenTTL     time.Duration

	GuessRateLimit int
	StartRateLimit int
}

// Load reads the server configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           strings.TrimSpace(os.Getenv("PORT")),
		Env:            strings.TrimSpace(os.Getenv("ENV")),
		RedisURL:       strings.TrimSpace(os.Getenv("REDIS_URL")),
		RedisPass:      os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       DefaultTokenTTL,
		GuessRateLimit: DefaultRateLimit,
		StartRateLimit: DefaultStartRateLimit,
	}

	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT value: %q", cfg.Port)
	}

	if db := os.Getenv("REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid REDIS_DB value: %q", db)
		}
		cfg.RedisDB = n
	}

	if ttl := os.Getenv("GAME_TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid GAME_TOKEN_TTL value: %q", ttl)
		}
		cfg.TokenTTL = d
	}

	if limit := os.Getenv("GUESS_RATE_LIMIT"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid GUESS_RATE_LIMIT value: %q", limit)
		}
		cfg.GuessRateLimit = n
	}

	if limit := os.Getenv("START_RATE_LIMIT"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid START_RATE_LIMIT value: %q", limit)
		}
		cfg.StartRateLimit = n
	}

	if cfg.JWTSecret == "" {
		if cfg.Env == "production" {
			return nil, errors.New("JWT_SECRET required in production")
		}
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.JWTSecret = secret
		cfg.JWTGenerated = true
	}

	return cfg, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate jwt secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// ClientConfig holds the player client settings.
type ClientConfig struct {
	ServerURL string
	Debug     bool
}

// LoadClient parses client flags, falling back to GAME_SERVER_URL and GUESS_DEBUG.
func LoadClient(args []string) (ClientConfig, error) {
	var cfg ClientConfig

	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerURL, "server", "", "Game server base URL")
	fs.BoolVar(&cfg.Debug, "debug", false, "Write debug log to debug.log")

	if err := fs.Parse(args); err != nil {
		return ClientConfig{}, err
	}

	if cfg.ServerURL == "" {
		cfg.ServerURL = os.Getenv("GAME_SERVER_URL")
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}

	u, err := url.Parse(cfg.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ClientConfig{}, fmt.Errorf("invalid server URL: %q", cfg.ServerURL)
	}
	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")

	if !cfg.Debug {
		if v := os.Getenv("GUESS_DEBUG"); v != "" {
			cfg.Debug, _ = strconv.ParseBool(v)
		}
	}

	return cfg, nil
}
