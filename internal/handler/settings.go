package handler

import (
	"log/slog"
	"net/http"

	"holding/internal/domain/services"
	"holding/internal/httputil"
)

// SettingsHandler handles user settings HTTP requests
type SettingsHandler struct {
	service services.SettingsService
	logger  *slog.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(service services.SettingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		service: service,
		logger:  logger,
	}
}

// GetSettings retrieves the acting user's settings
// GET /api/users/me/settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	actor, _, ok := identity(w, r)
	if !ok {
		return
	}

	settings, err := h.service.GetSettings(r.Context(), actor)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, settings)
}

// UpdateSettings replaces the acting user's settings
// PUT /api/users/me/settings
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	actor, _, ok := identity(w, r)
	if !ok {
		return
	}

	var req services.UpdateSettingsRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	settings, err := h.service.UpdateSettings(r.Context(), actor, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, settings)
}
