package main

import (
	"Laniakea/internal/auth"
	"Laniakea/internal/bot"
	"Laniakea/internal/config"
	"Laniakea/internal/handlers"
	"Laniakea/internal/middleware"
	"Laniakea/internal/repo"
	"Laniakea/internal/service"
	"Laniakea/internal/storage"
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	media, err := storage.NewFileStorage(cfg.MediaDir)
	if err != nil {
		sugar.Fatalw("failed to prepare media storage", "error", err)
	}

	itemRepo := repo.NewItemRepository(gormDB)
	themeRepo := repo.NewThemeRepository(gormDB)
	assocRepo := repo.NewAssociationRepository(gormDB)
	vault := service.NewVaultService(itemRepo, themeRepo, assocRepo, media)
	guard := auth.NewGuard(cfg.AllowedUserID)

	if cfg.BotToken != "" {
		tgBot, err := bot.New(cfg.BotToken, vault, media, guard, sugar)
		if err != nil {
			sugar.Fatalw("failed to start telegram bot", "error", err)
		}
		go tgBot.Run(ctx)
	} else {
		sugar.Infow("TELEGRAM_BOT_TOKEN is empty, bot disabled")
	}

	h := handlers.NewHandler(vault, guard, sugar, cfg)

	sugar.Infow(
		"Starting server",
		"addr", cfg.BaseURL,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"DatabaseDSN", cfg.DatabaseDSN,
		"MediaDir", cfg.MediaDir,
		"AllowedUserID", cfg.AllowedUserID,
	)

	srv := &http.Server{Addr: cfg.BaseURL, Handler: h.Router}
	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalw("Server failed", "error", err)
	}
}
