package httputil

import (
	"context"
	"net/http"

	"holding/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	actorKey     contextKey = "actor"
	principalKey contextKey = "principal"
	requestIDKey contextKey = "requestID"
)

// WithActor stores the resolved actor and principal owners on the request.
// The principal equals the actor unless the caller targeted a guild.
func WithActor(r *http.Request, actor, principal *models.Owner) *http.Request {
	ctx := context.WithValue(r.Context(), actorKey, actor)
	ctx = context.WithValue(ctx, principalKey, principal)
	return r.WithContext(ctx)
}

// GetActor retrieves the actor from context, nil if unauthenticated
func GetActor(r *http.Request) *models.Owner {
	actor, _ := r.Context().Value(actorKey).(*models.Owner)
	return actor
}

// GetPrincipal retrieves the principal from context, nil if unauthenticated
func GetPrincipal(r *http.Request) *models.Owner {
	principal, _ := r.Context().Value(principalKey).(*models.Owner)
	return principal
}

// WithRequestID stores the request correlation ID on the request
func WithRequestID(r *http.Request, id string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), requestIDKey, id))
}

// GetRequestID retrieves the correlation ID, empty string if not set
func GetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey).(string)
	return id
}
