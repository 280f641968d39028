package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"holding/internal/domain/services"
	"holding/internal/httputil"
)

// ContainerHandler handles container and placement HTTP requests
type ContainerHandler struct {
	service services.ContainerService
	logger  *slog.Logger
}

// NewContainerHandler creates a new container handler
func NewContainerHandler(service services.ContainerService, logger *slog.Logger) *ContainerHandler {
	return &ContainerHandler{
		service: service,
		logger:  logger,
	}
}

// CreateContainer creates a container for the principal
// POST /api/containers
func (h *ContainerHandler) CreateContainer(w http.ResponseWriter, r *http.Request) {
	actor, principal, ok := identity(w, r)
	if !ok {
		return
	}

	var req services.CreateContainerRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	summary, err := h.service.CreateContainer(r.Context(), &req, actor, principal)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, summary)
}

// GetContainer retrieves a container with its item tree
// GET /api/containers/{id}
func (h *ContainerHandler) GetContainer(w http.ResponseWriter, r *http.Request) {
	actor, principal, ok := identity(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid container ID")
		return
	}

	summary, err := h.service.FindContainerByID(r.Context(), id, actor, principal)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, summary)
}

// ListContainers lists containers visible to the caller
// GET /api/containers?name=
func (h *ContainerHandler) ListContainers(w http.ResponseWriter, r *http.Request) {
	actor, principal, ok := identity(w, r)
	if !ok {
		return
	}

	summaries, err := h.service.FindContainers(r.Context(), r.URL.Query().Get("name"), actor, principal)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, summaries)
}

// AutocompleteContainers suggests containers by name prefix
// GET /api/containers/autocomplete?q=
func (h *ContainerHandler) AutocompleteContainers(w http.ResponseWriter, r *http.Request) {
	actor, principal, ok := identity(w, r)
	if !ok {
		return
	}

	options, err := h.service.AutocompleteContainers(r.Context(), r.URL.Query().Get("q"), actor, principal)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, options)
}

// DeleteContainer deletes a container after a name confirmation
// DELETE /api/containers/{id}?name=
func (h *ContainerHandler) DeleteContainer(w http.ResponseWriter, r *http.Request) {
	actor, principal, ok := identity(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid container ID")
		return
	}

	deleted, err := h.service.DeleteContainer(r.Context(), id, r.URL.Query().Get("name"), actor, principal)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, deleted)
}

// ActivateContainer makes a container the actor's active one
// POST /api/containers/{id}/activate
func (h *ContainerHandler) ActivateContainer(w http.ResponseWriter, r *http.Request) {
	actor, principal, ok := identity(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid container ID")
		return
	}

	summary, err := h.service.ActivateContainerByID(r.Context(), id, actor, principal)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, summary)
}

// ActivateContainerByName activates a container by name, preferring the
// requested owner when the name exists for both user and guild
// POST /api/containers/activate
func (h *ContainerHandler) ActivateContainerByName(w http.ResponseWriter, r *http.Request) {
	actor, principal, ok := identity(w, r)
	if !ok {
		return
	}

	var req activateContainerRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	priority := services.OwnerPriorityUser
	if strings.EqualFold(req.Priority, string(services.OwnerPriorityGuild)) {
		priority = services.OwnerPriorityGuild
	}

	summary, err := h.service.ActivateContainerByName(r.Context(), req.Name, priority, actor, principal)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, summary)
}

// GetActiveContainer retrieves the actor's active container
// GET /api/containers/active
func (h *ContainerHandler) GetActiveContainer(w http.ResponseWriter, r *http.Request) {
	actor, _, ok := identity(w, r)
	if !ok {
		return
	}

	summary, err := h.service.FindActiveContainer(r.Context(), actor)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, summary)
}

// AddItem places a catalog item into the active container
// POST /api/containers/active/items
func (h *ContainerHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	actor, principal, ok := identity(w, r)
	if !ok {
		return
	}

	var req services.AddItemRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	summary, message, err := h.service.AddItem(r.Context(), &req, actor, principal)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, message, summary)
}

// DropItem removes quantity from a placed item in the active container
// POST /api/containers/active/items/drop
func (h *ContainerHandler) DropItem(w http.ResponseWriter, r *http.Request) {
	actor, _, ok := identity(w, r)
	if !ok {
		return
	}

	var req services.DropItemRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	summary, message, err := h.service.DropItem(r.Context(), &req, actor)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, message, summary)
}

// ModifyItem edits a placed item in the active container
// PATCH /api/containers/active/items
func (h *ContainerHandler) ModifyItem(w http.ResponseWriter, r *http.Request) {
	actor, _, ok := identity(w, r)
	if !ok {
		return
	}

	var req modifyItemRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	summary, message, err := h.service.ModifyItem(r.Context(), req.toService(), actor)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, message, summary)
}

// AutocompleteItems suggests placed items in the active container
// GET /api/containers/active/items/autocomplete?q=
func (h *ContainerHandler) AutocompleteItems(w http.ResponseWriter, r *http.Request) {
	actor, _, ok := identity(w, r)
	if !ok {
		return
	}

	options, err := h.service.AutocompleteItems(r.Context(), r.URL.Query().Get("q"), actor)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, options)
}

// AutocompleteParentItems suggests containable placed items
// GET /api/containers/active/parents/autocomplete?q=
func (h *ContainerHandler) AutocompleteParentItems(w http.ResponseWriter, r *http.Request) {
	actor, _, ok := identity(w, r)
	if !ok {
		return
	}

	options, err := h.service.AutocompleteParentItems(r.Context(), r.URL.Query().Get("q"), actor)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, options)
}
