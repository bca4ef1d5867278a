package main

import (
	"context"
	"log/slog"
	"os"

	goredis "github.com/redis/go-redis/v9"

	"github.com/daaffalbari/portfolio/internal/api"
	"github.com/daaffalbari/portfolio/internal/blog"
	"github.com/daaffalbari/portfolio/internal/chat"
	"github.com/daaffalbari/portfolio/internal/config"
	"github.com/daaffalbari/portfolio/internal/knowledge"
	"github.com/daaffalbari/portfolio/internal/logging"
	inats "github.com/daaffalbari/portfolio/internal/nats"
	"github.com/daaffalbari/portfolio/internal/openrouter"
	iredis "github.com/daaffalbari/portfolio/internal/redis"
	"github.com/daaffalbari/portfolio/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log, os.Stdout)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Redis (optional, readiness only)
	var redisClient *goredis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = iredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			slog.Error("connecting to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
	}

	// NATS (optional, chat events)
	chatOpts := []chat.Option{
		chat.WithModel(cfg.OpenRouter.Model),
		chat.WithKnowledge(knowledge.Default),
		chat.WithMaxHistoryTurns(cfg.Chat.MaxHistoryTurns),
	}
	var natsClient *inats.Client
	if cfg.NATS.Enabled() {
		natsClient, err = inats.NewClient(ctx, cfg.NATS)
		if err != nil {
			slog.Error("connecting to nats", "error", err)
			os.Exit(1)
		}
		defer natsClient.Close()
		chatOpts = append(chatOpts, chat.WithEventPublisher(inats.NewPublisher(natsClient.JetStream())))
	}

	// Chat gateway
	provider := openrouter.New(cfg.OpenRouter.APIKey,
		openrouter.WithBaseURL(cfg.OpenRouter.BaseURL),
		openrouter.WithSiteURL(cfg.OpenRouter.SiteURL),
		openrouter.WithSiteName(cfg.OpenRouter.SiteName),
	)
	chatHandler := chat.NewHandler(provider, chatOpts...)

	// Blog feed
	blogOpts := []blog.Option{blog.WithCacheTTL(cfg.Blog.CacheTTL)}
	if cfg.Blog.FeedURL != "" {
		blogOpts = append(blogOpts, blog.WithAPIURL(cfg.Blog.FeedURL))
	}
	blogHandler := blog.NewHandler(blog.NewClient(cfg.Blog.MediumUser, blogOpts...))

	// Router
	router := api.NewRouter(redisClient, natsClient, api.RouterConfig{
		CORSAllowedOrigins: cfg.CORS.AllowedOrigins,
	}, api.HandlerSet{
		Chat: chatHandler.Stream,

		ListPosts: blogHandler.List,
		GetPost:   blogHandler.Get,
	})

	slog.Info("chat gateway ready",
		"model", cfg.OpenRouter.Model,
		"configured", provider.IsConfigured(),
		"max_history_turns", cfg.Chat.MaxHistoryTurns,
	)

	// Start server
	srv := server.New(cfg.Server, router)
	if err := srv.Start(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
