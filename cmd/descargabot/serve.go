package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/descargabot/descargabot/internal/bot"
	"github.com/descargabot/descargabot/internal/commands"
	"github.com/descargabot/descargabot/internal/config"
	"github.com/descargabot/descargabot/internal/handlers"
	"github.com/descargabot/descargabot/internal/logger"
	"github.com/descargabot/descargabot/internal/server"
	"github.com/descargabot/descargabot/internal/telegram"
	"github.com/descargabot/descargabot/internal/version"
)

func runServe() {
	fx.New(
		fx.Provide(
			provideConfig,
			provideLogger,
			provideAdapter,
			provideAccessPolicy,
			provideDownloader,
			provideRegistry,
			provideDispatcher,
			provideStatusHandler,
			provideServer,
		),
		fx.Invoke(
			startDispatcher,
			startServer,
		),
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log.With(slog.String("component", "fx"))}
		}),
	).Run()
}

// provideConfig loads and validates startup configuration. A configuration
// error aborts the fx graph before any component starts: neither the
// dispatcher nor the liveness server comes up on a misconfigured deployment.
func provideConfig() (config.Config, error) {
	cfg, err := config.Load(context.Background())
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func provideAdapter(log *slog.Logger, cfg config.Config) (*telegram.Adapter, error) {
	return telegram.NewAdapter(log, cfg.BotToken)
}

func provideAccessPolicy(cfg config.Config) *bot.AccessPolicy {
	return bot.NewAccessPolicy(cfg.Admins())
}

func provideDownloader() commands.Downloader {
	return commands.NewStubDownloader()
}

// provideRegistry wires the static routing table. Registration happens once
// here; the table is read-only for the rest of the process lifetime.
func provideRegistry(cfg config.Config, downloader commands.Downloader) *bot.Registry {
	adminID := bot.Identity(cfg.AdminID)
	registry := bot.NewRegistry()
	registry.MustRegister(commands.CmdStart, bot.LevelPublic, commands.NewStartHandler())
	registry.MustRegister(commands.CmdHelp, bot.LevelPublic, commands.NewHelpHandler())
	registry.MustRegister(commands.CmdAdmin, bot.LevelAdminOnly, commands.NewAdminHandler(adminID))
	registry.MustRegister(commands.CmdStats, bot.LevelAdminOnly, commands.NewStatsHandler(adminID))
	registry.MustRegister(bot.KeyURL, bot.LevelPublic, commands.NewURLHandler(downloader))
	registry.MustRegister(bot.KeyDocument, bot.LevelPublic, commands.NewDocumentHandler(downloader))
	registry.MustRegister(bot.KeyText, bot.LevelPublic, commands.NewTextHandler())
	return registry
}

func provideDispatcher(log *slog.Logger, registry *bot.Registry, policy *bot.AccessPolicy, adapter *telegram.Adapter) *bot.Dispatcher {
	return bot.NewDispatcher(log, registry, policy, adapter, commands.NewFallbackHandler())
}

func provideStatusHandler(log *slog.Logger, cfg config.Config) *handlers.StatusHandler {
	return handlers.NewStatusHandler(log, cfg.AdminID)
}

func provideServer(log *slog.Logger, cfg config.Config, statusHandler *handlers.StatusHandler) *server.Server {
	return server.NewServer(log, cfg.Addr(), statusHandler)
}

func startDispatcher(lc fx.Lifecycle, log *slog.Logger, adapter *telegram.Adapter, dispatcher *bot.Dispatcher, shutdowner fx.Shutdowner) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			updates := adapter.Updates(ctx)
			go func() {
				err := dispatcher.Run(ctx, updates)
				if err != nil && !errors.Is(err, context.Canceled) {
					log.Error("dispatcher failed", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}

func startServer(lc fx.Lifecycle, log *slog.Logger, srv *server.Server, cfg config.Config, shutdowner fx.Shutdowner) {
	fmt.Printf("Starting descargabot %s\n", version.GetInfo())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			log.Info("liveness server start", slog.Int("port", cfg.Port))
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("liveness server failed", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Stop(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server stop: %w", err)
			}
			return nil
		},
	})
}
