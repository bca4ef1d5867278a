package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultModel         = "openai/gpt-4o-mini"
	DefaultOpenRouterURL = "https://openrouter.ai/api/v1"
	DefaultMediumUser    = "daffabercerita"
)

type Config struct {
	Server     ServerConfig
	OpenRouter OpenRouterConfig
	Chat       ChatConfig
	CORS       CORSConfig
	Redis      RedisConfig
	NATS       NATSConfig
	Blog       BlogConfig
	Log        LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

// OpenRouterConfig configures the upstream completion provider. APIKey may be
// empty at startup; the chat endpoint reports its absence per request.
type OpenRouterConfig struct {
	APIKey   string
	BaseURL  string
	Model    string
	SiteURL  string
	SiteName string
}

type ChatConfig struct {
	// MaxHistoryTurns bounds how many caller turns are forwarded upstream.
	// Zero forwards the whole conversation.
	MaxHistoryTurns int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// RedisConfig is optional. An empty Host disables Redis.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// NATSConfig is optional. An empty URL disables chat event publishing.
type NATSConfig struct {
	URL string
}

func (c NATSConfig) Enabled() bool {
	return c.URL != ""
}

type BlogConfig struct {
	MediumUser string
	FeedURL    string
	CacheTTL   time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile reads dotenv-style settings from path (if it exists) and lets
// environment variables override them.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")

	// Load .env file if it exists (ignore error if missing)
	_ = k.Load(file.Provider(path), dotenv.ParserEnv("", ".", envKey))

	// Load environment variables (override .env)
	err := k.Load(env.Provider("", ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	return fromKoanf(k)
}

func fromKoanf(k *koanf.Koanf) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: k.String("server.host"),
			Port: k.Int("server.port"),
		},
		OpenRouter: OpenRouterConfig{
			APIKey:   k.String("openrouter.api.key"),
			BaseURL:  k.String("openrouter.base.url"),
			Model:    k.String("model.name"),
			SiteURL:  k.String("openrouter.site.url"),
			SiteName: k.String("openrouter.site.name"),
		},
		Chat: ChatConfig{
			MaxHistoryTurns: k.Int("chat.max.history.turns"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(k.String("cors.allowed.origins")),
		},
		Redis: RedisConfig{
			Host:     k.String("redis.host"),
			Port:     k.Int("redis.port"),
			Password: k.String("redis.password"),
			DB:       k.Int("redis.db"),
		},
		NATS: NATSConfig{
			URL: k.String("nats.url"),
		},
		Blog: BlogConfig{
			MediumUser: k.String("blog.medium.user"),
			FeedURL:    k.String("blog.feed.url"),
		},
		Log: LogConfig{
			Level:  k.String("log.level"),
			Format: k.String("log.format"),
		},
	}

	// Apply defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.OpenRouter.BaseURL == "" {
		cfg.OpenRouter.BaseURL = DefaultOpenRouterURL
	}
	if cfg.OpenRouter.Model == "" {
		cfg.OpenRouter.Model = DefaultModel
	}
	if cfg.Redis.Host != "" && cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Blog.MediumUser == "" {
		cfg.Blog.MediumUser = DefaultMediumUser
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	// Parse durations
	ttlStr := k.String("blog.cache.ttl")
	if ttlStr == "" {
		ttlStr = "1h"
	}
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("parsing blog cache ttl: %w", err)
	}
	cfg.Blog.CacheTTL = ttl

	return cfg, nil
}

// envKey maps FOO_BAR to foo.bar.
func envKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "_", "."))
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
