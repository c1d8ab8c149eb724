package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hugo/presencebot/internal/bot"
	"github.com/hugo/presencebot/internal/cache"
	"github.com/hugo/presencebot/internal/config"
	"github.com/hugo/presencebot/internal/daemon"
	"github.com/hugo/presencebot/internal/fetch"
	"github.com/hugo/presencebot/internal/web"
)

var (
	version = "0.1.0"
	commit  = "unknown"
	date    = "unknown"
)

const defaultConfigPath = "presencebot.yaml"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "run":
		runBot()
	case "start":
		startDaemon()
	case "stop":
		stopDaemon()
	case "status":
		oneShot(os.Args[2:], "status")
	case "today":
		oneShot(os.Args[2:], "today")
	case "version":
		fmt.Printf("presencebot version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`presencebot - device activity status bot

Usage:
  presencebot <command> [options]

Commands:
  run                Run the bot in the foreground with the web endpoint
  start              Start the bot as a background process
  stop               Stop the background bot
  status <name>      Print a person's current status block
  today <name>       Print a person's same-day usage breakdown
  version            Show version information
  help               Show this help message

Examples:
  presencebot run
  presencebot status alice
  presencebot today alice
  presencebot stop

Environment Variables:
  PRESENCEBOT_CONFIG       Config file path (default %s)
  PRESENCEBOT_API_BASE     Status API base URL override
  PRESENCEBOT_HEARTBEAT    Heartbeat interval in seconds
  PRESENCEBOT_CACHE_TTL    Reply cache expiry in seconds
  PRESENCEBOT_TG_TOKEN     Telegram bot token (name configurable)

Version: %s
`, defaultConfigPath, version)
}

func configPath() string {
	if path := os.Getenv("PRESENCEBOT_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

func mustLoad(logger *zap.Logger) *config.Config {
	cfg, err := config.LoadFile(configPath())
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	return cfg
}

func newLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func runBot() {
	logger := newLogger()
	defer logger.Sync()

	cfg := mustLoad(logger)

	dm := daemon.New(cfg.Daemon.PIDFile)
	if err := dm.WritePID(); err != nil {
		logger.Warn("failed to write PID file", zap.Error(err))
	}
	defer dm.RemovePID()

	client := fetch.New(cfg.API.Base, cfg.FetchTimeout(), logger)
	replies := cache.New(cfg.CacheTTL(), logger)
	defer replies.Close()

	svc := bot.NewService(cfg, client, replies, logger)

	token := os.Getenv(cfg.Bot.TokenEnv)
	if token == "" {
		logger.Fatal("telegram token not set", zap.String("env", cfg.Bot.TokenEnv))
	}
	tg, err := bot.NewTelegram(token, svc, logger)
	if err != nil {
		logger.Fatal("failed to start telegram bot", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := web.NewServer(cfg, svc, logger)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error("web server failed", zap.Error(err))
		}
	}()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logger.Info("shutting down")
		cancel()
	}()

	if err := tg.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("bot stopped", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("web server shutdown failed", zap.Error(err))
	}
}

func startDaemon() {
	logger := newLogger()
	defer logger.Sync()

	cfg := mustLoad(logger)

	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		logger.Fatal("failed to check daemon status", zap.Error(err))
	}
	if running {
		logger.Fatal("bot is already running", zap.Int("pid", pid))
	}

	exe, err := os.Executable()
	if err != nil {
		logger.Fatal("failed to locate executable", zap.Error(err))
	}
	cmd := exec.Command(exe, "run")
	cmd.Env = os.Environ()
	if err := cmd.Start(); err != nil {
		logger.Fatal("failed to start background process", zap.Error(err))
	}
	fmt.Printf("presencebot started (PID: %d)\n", cmd.Process.Pid)
}

func stopDaemon() {
	logger := newLogger()
	defer logger.Sync()

	cfg := mustLoad(logger)

	dm := daemon.New(cfg.Daemon.PIDFile)
	if err := dm.Stop(); err != nil {
		logger.Fatal("failed to stop bot", zap.Error(err))
	}
	fmt.Println("presencebot stopped")
}

// oneShot prints a single rendered block to stdout, no chat transport.
func oneShot(args []string, mode string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: presencebot %s <name>\n", mode)
		os.Exit(1)
	}
	name := args[0]

	logger := newLogger()
	defer logger.Sync()

	cfg := mustLoad(logger)

	client := fetch.New(cfg.API.Base, cfg.FetchTimeout(), logger)
	replies := cache.New(cfg.CacheTTL(), logger)
	defer replies.Close()
	svc := bot.NewService(cfg, client, replies, logger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout()+time.Second)
	defer cancel()

	if mode == "today" {
		fmt.Println(svc.TodayFor(ctx, name))
		return
	}
	fmt.Println(svc.StatusFor(ctx, name))
}
