package handler

import (
	"log/slog"
	"net/http"

	"holding/internal/domain/services"
	"holding/internal/httputil"
)

// UserHandler handles user profile HTTP requests
type UserHandler struct {
	service services.OwnerService
	logger  *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(service services.OwnerService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

// GetMe returns the acting user's profile
// GET /api/users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	actor, _, ok := identity(w, r)
	if !ok {
		return
	}

	httputil.RespondJSON(w, http.StatusOK, actor)
}

// UpdateMe edits the acting user's profile
// PATCH /api/users/me
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	actor, _, ok := identity(w, r)
	if !ok {
		return
	}

	var req services.UpdateUserRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateUser(r.Context(), actor, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, updated)
}
