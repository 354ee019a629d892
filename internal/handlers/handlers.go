package handlers

import (
	"Laniakea/internal/auth"
	"Laniakea/internal/config"
	"Laniakea/internal/middleware"
	"Laniakea/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	vault *service.VaultService,
	guard *auth.Guard,
	logger *zap.SugaredLogger,
	cfg *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(cfg.AuthSecret))

	// Handlers
	vaultHandler := NewVaultHandler(vault, guard, logger)
	authHandler := NewAuthHandler(logger, cfg)

	// Vault API
	r.Post("/api/login", authHandler.Login)
	r.Get("/api/data", vaultHandler.List)
	r.Get("/api/themes", vaultHandler.Themes)
	r.Get("/api/stats", vaultHandler.Stats)
	r.Put("/api/data/{id}", vaultHandler.Edit)
	r.Delete("/api/data/{id}", vaultHandler.Delete)

	// Статика: медиафайлы и веб-галерея
	r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.MediaDir))))
	if cfg.PublicDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.PublicDir)))
	}

	return &Handler{Router: r}
}
