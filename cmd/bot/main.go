package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/Spok95/factory-bot/internal/bot"
	"github.com/Spok95/factory-bot/internal/config"
	"github.com/Spok95/factory-bot/internal/dialog"
	"github.com/Spok95/factory-bot/internal/domain/boxes"
	"github.com/Spok95/factory-bot/internal/domain/brands"
	"github.com/Spok95/factory-bot/internal/domain/products"
	"github.com/Spok95/factory-bot/internal/domain/providers"
	"github.com/Spok95/factory-bot/internal/domain/purchases"
	"github.com/Spok95/factory-bot/internal/domain/recipes"
	"github.com/Spok95/factory-bot/internal/domain/users"
	"github.com/Spok95/factory-bot/internal/domain/withdrawals"
	"github.com/Spok95/factory-bot/internal/infra/db"
	httpx "github.com/Spok95/factory-bot/internal/infra/http"
	"github.com/Spok95/factory-bot/internal/infra/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/subosito/gotenv"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	_ = gotenv.Load()

	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Error("bad timezone", "tz", cfg.App.Timezone, "err", err)
		return
	}

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	recipesRepo := recipes.NewRepo(pool)

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, recipesRepo, log)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram init failed", "err", err)
		return
	}
	log.Info("telegram authorized", "bot", api.Self.UserName)

	b := bot.New(api, log, loc,
		users.NewRepo(pool), dialog.NewRepo(pool),
		cfg.Telegram.AdminChatID,
		brands.NewRepo(pool), products.NewRepo(pool), providers.NewRepo(pool),
		purchases.NewRepo(pool), boxes.NewRepo(pool), withdrawals.NewRepo(pool))

	go func() {
		if err := b.Run(ctx, 30); err != nil && ctx.Err() == nil {
			log.Error("bot stopped", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
