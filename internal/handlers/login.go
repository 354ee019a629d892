package handlers

import (
	"Laniakea/internal/config"
	"Laniakea/internal/middleware"
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// AuthHandler обменивает общий секрет на auth-cookie разрешённой личности.
// Учётных записей нет: хранилище однопользовательское.
type AuthHandler struct {
	Logger *zap.SugaredLogger
	Config *config.Config
}

// NewAuthHandler создаёт хендлер входа.
func NewAuthHandler(logger *zap.SugaredLogger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Logger: logger, Config: cfg}
}

type loginRequest struct {
	Secret string `json:"secret"`
}

// Login проверяет секрет (сравнение за постоянное время) и ставит cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Login: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Secret), []byte(h.Config.AuthSecret)) != 1 {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := middleware.SetLoginCookie(w, h.Config.AllowedUserID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("Login: failed to issue cookie", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
