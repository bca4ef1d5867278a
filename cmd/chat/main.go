// Command chat is a terminal chat widget for the portfolio assistant. The
// conversation survives restarts in a local bbolt file, or in Redis when
// -redis is set.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/daaffalbari/portfolio/internal/chatclient"
	"github.com/daaffalbari/portfolio/internal/config"
	"github.com/daaffalbari/portfolio/internal/logging"
	iredis "github.com/daaffalbari/portfolio/internal/redis"
	"github.com/daaffalbari/portfolio/internal/render"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading config:", err)
		return 1
	}

	endpoint := flag.String("endpoint", fmt.Sprintf("http://localhost:%d/api/chat", cfg.Server.Port), "chat gateway URL")
	storePath := flag.String("store", defaultStorePath(), "conversation file")
	useRedis := flag.Bool("redis", false, "keep the conversation in Redis (REDIS_HOST) instead of a local file")
	flag.Parse()

	// The terminal belongs to the conversation; only warnings go to stderr.
	logCfg := cfg.Log
	if logCfg.Level == "info" {
		logCfg.Level = "warn"
	}
	logging.Setup(logCfg, os.Stderr)

	ctx := context.Background()

	kv, closeKV, err := openKV(ctx, cfg, *useRedis, *storePath)
	if err != nil {
		slog.Error("opening conversation store", "error", err)
		return 1
	}
	defer closeKV()

	term := render.NewTerminal(lipgloss.DefaultRenderer())
	out := newPrinter(os.Stdout, term)

	client := chatclient.New(ctx, *endpoint, chatclient.NewStore(kv, chatclient.DefaultKey),
		chatclient.OnChange(out.onChange),
	)

	r := newREPL(client, out)
	if err := r.loop(ctx); err != nil {
		slog.Error("chat session", "error", err)
		return 1
	}
	return 0
}

func openKV(ctx context.Context, cfg *config.Config, useRedis bool, path string) (chatclient.KV, func(), error) {
	if useRedis {
		if !cfg.Redis.Enabled() {
			return nil, nil, fmt.Errorf("-redis requires REDIS_HOST")
		}
		client, err := iredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return chatclient.NewRedisKV(client, "portfolio:"), func() { client.Close() }, nil
	}

	kv, err := chatclient.OpenBoltKV(path)
	if err != nil {
		return nil, nil, err
	}
	return kv, func() { kv.Close() }, nil
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "portfolio", "chat.db")
}
