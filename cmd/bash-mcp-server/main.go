package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codex-k8s/bash-mcp-server/configs"
	"github.com/codex-k8s/bash-mcp-server/internal/app"
	"github.com/codex-k8s/bash-mcp-server/internal/audit"
	"github.com/codex-k8s/bash-mcp-server/internal/config"
	"github.com/codex-k8s/bash-mcp-server/internal/log"
	"github.com/codex-k8s/bash-mcp-server/internal/render"
	"github.com/codex-k8s/bash-mcp-server/internal/runner"
	"github.com/codex-k8s/bash-mcp-server/internal/runtime"
	"github.com/codex-k8s/bash-mcp-server/internal/settings"
	"github.com/codex-k8s/bash-mcp-server/internal/startup"
)

func main() {
	embeddedConfig := flag.String("embedded-config", "", "Use embedded config from configs/ (filename)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(cfg.LogLevel)

	rendered, err := loadRendered(cfg.ConfigPath, *embeddedConfig)
	if err != nil {
		logger.Error("load config failed", "error", err)
		os.Exit(1)
	}

	stg, err := settings.Load(rendered)
	if err != nil {
		logger.Error("parse config failed", "error", err)
		os.Exit(1)
	}

	run := runner.Runner{Shell: stg.Execution.Shell}

	builder := runtime.Builder{
		Logger:   logger,
		Audit:    audit.New(logger),
		Settings: stg,
		Runner:   run,
	}
	server, err := builder.Build()
	if err != nil {
		logger.Error("build server failed", "error", err)
		os.Exit(1)
	}

	baseCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	go func() {
		sig := <-sigCh
		logger.Warn("shutdown requested", "signal", sig.String())
		cancel()
	}()

	if err := startup.Run(baseCtx, stg.Server.StartupHooks, run, logger); err != nil {
		logger.Error("startup hooks failed", "error", err)
		os.Exit(1)
	}

	switch stg.Server.Transport {
	case "http":
		if err := runHTTP(baseCtx, cfg, stg, server, logger); err != nil {
			logger.Error("runtime error", "error", err)
			os.Exit(1)
		}
	default:
		if err := server.Run(baseCtx, &mcp.StdioTransport{}); err != nil {
			logger.Error("runtime error", "error", err)
			os.Exit(1)
		}
	}
}

// loadRendered picks the settings source: an embedded config when
// requested, the configured file when present, and the embedded
// default otherwise (the server runs without any config file).
func loadRendered(path, embeddedName string) ([]byte, error) {
	if embeddedName != "" {
		raw, err := configs.Load(embeddedName)
		if err != nil {
			return nil, err
		}
		return render.Bytes(embeddedName, raw)
	}

	rendered, err := render.File(path)
	if err == nil {
		return rendered, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	raw, embErr := configs.Load(configs.DefaultName)
	if embErr != nil {
		return nil, embErr
	}
	return render.Bytes(configs.DefaultName, raw)
}

func runHTTP(ctx context.Context, envCfg config.Config, stg *settings.Settings, server *mcp.Server, logger *slog.Logger) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{
		Stateless: stg.Server.HTTP.Stateless,
	})

	application, err := app.New(ctx, stg.Server, handler, logger, envCfg.ShutdownTimeout)
	if err != nil {
		return err
	}

	return application.Run(ctx)
}
