package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yijuchen/cwabot/internal/domain/user"
	"github.com/yijuchen/cwabot/internal/domain/weather"
	"github.com/yijuchen/cwabot/internal/infra/config"
	"github.com/yijuchen/cwabot/internal/infra/cwa"
	linemsg "github.com/yijuchen/cwabot/internal/infra/line"
	"github.com/yijuchen/cwabot/internal/infra/userrepo"
	"github.com/yijuchen/cwabot/internal/infra/weathercache"
	lineiface "github.com/yijuchen/cwabot/internal/interface/line"
	"github.com/yijuchen/cwabot/internal/scheduler"
)

func provideCWAConfig(cfg *config.Config) cwa.Config {
	return cwa.Config{
		BaseURL:  cfg.CWA.BaseURL,
		APIKey:   cfg.CWA.APIKey,
		Timeout:  cfg.CWA.Timeout,
		CacheTTL: cfg.CWA.CacheTTL,
	}
}

func provideWeatherStore(cfg *config.Config, logger *slog.Logger) cwa.Store {
	if cfg.Store.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return weathercache.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return weathercache.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
		} else {
			logger.Info("weather valkey cache enabled", "addr", cfg.Store.Valkey.Addr)
			return weathercache.NewValkeyStore(client, "weather")
		}
	}
	return weathercache.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Store.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Store.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Store.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideUserRepository(cfg *config.Config, logger *slog.Logger) user.Repository {
	fallback := userrepo.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.Store.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory profile store")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory profile store", "error", err)
		return fallback
	}
	if cfg.Store.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Store.Postgres.MaxConns
	}
	if cfg.Store.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Store.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory profile store", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory profile store", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("postgres profile store enabled")
	return userrepo.NewPostgresRepository(pool)
}

func provideMessenger(cfg *config.Config, logger *slog.Logger) (linemsg.Messenger, error) {
	return linemsg.NewClient(cfg.Line.ChannelToken, logger)
}

func provideBot(cfg *config.Config, weatherSvc weather.Service, users user.Service, typhoons lineiface.TyphoonSource, logger *slog.Logger) *lineiface.Bot {
	return lineiface.NewBot(weatherSvc, users, typhoons, cfg.Line.ImageBaseURL, logger)
}

func provideWebhookHandler(cfg *config.Config, bot *lineiface.Bot, messenger linemsg.Messenger, logger *slog.Logger) *lineiface.Handler {
	return lineiface.NewHandler(cfg.Line.ChannelSecret, bot, messenger, logger)
}

func provideScheduler(cfg *config.Config, weatherSvc weather.Service, users user.Service, typhoons lineiface.TyphoonSource, messenger linemsg.Messenger, logger *slog.Logger) *scheduler.Scheduler {
	return scheduler.New(scheduler.Config{
		DailyHour:    cfg.Push.DailyHour,
		WeekendHour:  cfg.Push.WeekendHour,
		ImageBaseURL: cfg.Line.ImageBaseURL,
	}, weatherSvc, users, typhoons, messenger, logger)
}
