package handler

import (
	"errors"
	"net/http"
	"strconv"

	"holding/internal/domain"
	"holding/internal/domain/models"
	"holding/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var (
		conflictErr  *domain.ConflictError
		ambiguousErr *domain.AmbiguousError
	)

	switch {
	case errors.As(err, &ambiguousErr):
		// Candidates ride along so the caller can retry with an ID
		httputil.RespondErrorWithExtras(w, http.StatusConflict, ambiguousErr.Error(), map[string]interface{}{
			"candidates": ambiguousErr.Candidates,
		})
	case errors.As(err, &conflictErr):
		httputil.RespondError(w, http.StatusConflict, conflictErr.Error())
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrUnsupported):
		httputil.RespondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// identity pulls the provisioned actor and principal off the request.
// The auth middleware guarantees both on every authenticated route.
func identity(w http.ResponseWriter, r *http.Request) (actor, principal *models.Owner, ok bool) {
	actor = httputil.GetActor(r)
	principal = httputil.GetPrincipal(r)
	if actor == nil || principal == nil {
		httputil.RespondError(w, http.StatusUnauthorized, "missing identity")
		return nil, nil, false
	}
	return actor, principal, true
}

// pathID parses the {id} path segment as an int64
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// HealthCheck reports liveness
// GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
