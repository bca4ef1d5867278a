package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// Validate checks Config for problems that would make the service unusable.
// It collects all errors into a single joined error.
func (c *Config) Validate() error {
	var errs []string

	// Port ranges
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT must be 1–65535, got %d", c.Server.Port))
	}
	if c.Redis.Enabled() && (c.Redis.Port < 1 || c.Redis.Port > 65535) {
		errs = append(errs, fmt.Sprintf("REDIS_PORT must be 1–65535, got %d", c.Redis.Port))
	}

	if u, err := url.Parse(c.OpenRouter.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("OPENROUTER_BASE_URL must be an absolute URL, got %q", c.OpenRouter.BaseURL))
	}

	if c.Chat.MaxHistoryTurns < 0 {
		errs = append(errs, fmt.Sprintf("CHAT_MAX_HISTORY_TURNS must not be negative, got %d", c.Chat.MaxHistoryTurns))
	}

	if c.Blog.CacheTTL < 0 {
		errs = append(errs, "BLOG_CACHE_TTL must not be negative")
	}

	switch c.Log.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be text or json, got %q", c.Log.Format))
	}

	// API key: warn only, the chat endpoint reports it per request
	if c.OpenRouter.APIKey == "" {
		slog.Warn("OPENROUTER_API_KEY is empty; chat requests will fail until it is set")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n  " + strings.Join(errs, "\n  "))
	}
	return nil
}
