package handler

import (
	"log/slog"
	"net/http"

	"holding/internal/domain/services"
	"holding/internal/httputil"
)

// ItemHandler handles catalog item HTTP requests
type ItemHandler struct {
	service services.ItemService
	logger  *slog.Logger
}

// NewItemHandler creates a new item handler
func NewItemHandler(service services.ItemService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		service: service,
		logger:  logger,
	}
}

// GetItem retrieves a catalog item within the caller's visibility scope
// GET /api/items/{id}
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	actor, principal, ok := identity(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	item, err := h.service.FindItemByID(r.Context(), id, actor, principal)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, item)
}

// ListItems lists catalog items matching an exact name
// GET /api/items?name=
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	actor, principal, ok := identity(w, r)
	if !ok {
		return
	}

	items, err := h.service.FindItems(r.Context(), r.URL.Query().Get("name"), actor, principal)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, items)
}

// AutocompleteItems suggests catalog items containing a fragment
// GET /api/items/autocomplete?q=
func (h *ItemHandler) AutocompleteItems(w http.ResponseWriter, r *http.Request) {
	actor, principal, ok := identity(w, r)
	if !ok {
		return
	}

	options, err := h.service.AutocompleteItems(r.Context(), r.URL.Query().Get("q"), actor, principal)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, options)
}
