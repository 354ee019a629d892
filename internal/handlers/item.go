package handlers

import (
	"Laniakea/internal/auth"
	"Laniakea/internal/middleware"
	"Laniakea/internal/model"
	"Laniakea/internal/repo"
	"Laniakea/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// VaultHandler обслуживает REST API хранилища: листинг, темы,
// статистика, правка и удаление.
type VaultHandler struct {
	Vault  *service.VaultService
	Guard  *auth.Guard
	Logger *zap.SugaredLogger
}

// NewVaultHandler создаёт хендлер хранилища.
func NewVaultHandler(vault *service.VaultService, guard *auth.Guard, logger *zap.SugaredLogger) *VaultHandler {
	return &VaultHandler{Vault: vault, Guard: guard, Logger: logger}
}

// itemDTO — строка листинга в историческом формате веб-интерфейса.
type itemDTO struct {
	ID        int64   `json:"id"`
	Type      string  `json:"type"`
	FilePath  *string `json:"file_path"`
	Content   *string `json:"content"`
	Note      *string `json:"note"`
	CreatedAt string  `json:"created_at"`
	Themes    string  `json:"themes"`
}

func toItemDTO(row repo.ItemWithThemes) itemDTO {
	return itemDTO{
		ID:        row.ID,
		Type:      string(row.Kind),
		FilePath:  row.StoragePath,
		Content:   row.Content,
		Note:      row.Note,
		CreatedAt: row.CreatedAt.UTC().Format(time.RFC3339),
		Themes:    row.Themes,
	}
}

// List отдаёт листинг. Поддерживает ?theme=<имя> (выборка по теме)
// и ?q=<подстрока> (фильтр по заметке/тексту/темам) — по отдельности.
func (h *VaultHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		rows []repo.ItemWithThemes
		err  error
	)
	switch {
	case r.URL.Query().Get("theme") != "":
		var items []model.Item
		items, err = h.Vault.QueryByTheme(r.Context(), r.URL.Query().Get("theme"))
		if err == nil {
			rows = make([]repo.ItemWithThemes, 0, len(items))
			for _, it := range items {
				rows = append(rows, repo.ItemWithThemes{Item: it})
			}
		}
	case r.URL.Query().Get("q") != "":
		rows, err = h.Vault.Filter(r.Context(), r.URL.Query().Get("q"))
	default:
		rows, err = h.Vault.QueryAll(r.Context())
	}
	if err != nil {
		h.Logger.Errorw("List: service error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	res := make([]itemDTO, 0, len(rows))
	for _, row := range rows {
		res = append(res, toItemDTO(row))
	}
	writeJSON(w, http.StatusOK, res)
}

// Themes отдаёт все темы со счётчиками, по убыванию счётчика.
func (h *VaultHandler) Themes(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Vault.Themes(r.Context())
	if err != nil {
		h.Logger.Errorw("Themes: service error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// Stats отдаёт сводные счётчики.
func (h *VaultHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.Vault.Stats(r.Context())
	if err != nil {
		h.Logger.Errorw("Stats: service error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{
		"total_items":  st.Items,
		"total_themes": st.Themes,
	})
}

// editRequest — тело PUT /api/data/{id}. Темы могут прийти сырыми
// токенами с '#' или уже очищенными — сервис нормализует сам.
type editRequest struct {
	Note   string   `json:"note"`
	Themes []string `json:"themes"`
}

// Edit обновляет заметку и набор тем элемента.
func (h *VaultHandler) Edit(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Edit: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.Vault.EditItem(r.Context(), id, req.Note, req.Themes); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "not found"})
			return
		}
		h.Logger.Errorw("Edit: service error", "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Delete удаляет элемент вместе со связями и файлом в медиа.
func (h *VaultHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.Vault.DeleteItem(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "not found"})
			return
		}
		h.Logger.Errorw("Delete: service error", "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// authorized — личность из auth-cookie должна быть разрешённой.
func (h *VaultHandler) authorized(r *http.Request) bool {
	uid, ok := middleware.GetUserIDFromContext(r.Context())
	return ok && h.Guard.IsAuthorized(uid)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
