package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"holding/internal/auth"
	"holding/internal/domain/models"
	"holding/internal/domain/services"
	"holding/internal/httputil"
)

// Identity headers. The bot authenticates with a service token and names
// the user it acts for in these headers; an end-user token carries the
// external user ID in its subject instead.
const (
	HeaderOnBehalfOfUserID   = "X-On-Behalf-Of-User-ID"
	HeaderOnBehalfOfUserName = "X-On-Behalf-Of-User-Name"
	HeaderOnBehalfOfUserTag  = "X-On-Behalf-Of-User-Tag"
	HeaderOnBehalfOfGlobal   = "X-On-Behalf-Of-Global-Name"

	HeaderTargetOwnerID   = "X-Target-Owner-ID"
	HeaderTargetOwnerType = "X-Target-Owner-Type"
	HeaderTargetOwnerName = "X-Target-Owner-Name"
)

// AuthMiddleware verifies the bearer token, provisions the acting user
// and the target principal, and stores both on the request context.
func AuthMiddleware(verifier auth.TokenVerifier, owners services.OwnerService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(tokenString)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			externalID, err := resolveExternalUserID(r, claims)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, err.Error())
				return
			}

			actor, err := owners.ProvisionUser(r.Context(), &services.ProvisionUserRequest{
				ExternalID: externalID,
				UserName:   r.Header.Get(HeaderOnBehalfOfUserName),
				UserTag:    r.Header.Get(HeaderOnBehalfOfUserTag),
				GlobalName: r.Header.Get(HeaderOnBehalfOfGlobal),
			})
			if err != nil {
				logger.Error("failed to provision acting user",
					"external_id", externalID,
					"request_id", httputil.GetRequestID(r),
					"error", err)
				httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			principal, err := resolvePrincipal(r, owners, actor)
			if err != nil {
				httputil.RespondError(w, http.StatusBadRequest, err.Error())
				return
			}

			next.ServeHTTP(w, httputil.WithActor(r, actor, principal))
		})
	}
}

// resolveExternalUserID determines which external user the request acts
// for. Bot tokens must name the user explicitly; end-user tokens carry
// the external ID as the subject.
func resolveExternalUserID(r *http.Request, claims *auth.Claims) (int64, error) {
	raw := r.Header.Get(HeaderOnBehalfOfUserID)
	if claims.Bot {
		if raw == "" {
			return 0, &headerError{HeaderOnBehalfOfUserID + " header is required for service tokens"}
		}
	} else if raw == "" {
		raw = claims.Subject
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &headerError{"invalid external user ID"}
	}
	return id, nil
}

// resolvePrincipal provisions the targeted guild when the request names
// one; otherwise the principal is the actor themself.
func resolvePrincipal(r *http.Request, owners services.OwnerService, actor *models.Owner) (*models.Owner, error) {
	raw := r.Header.Get(HeaderTargetOwnerID)
	if raw == "" {
		return actor, nil
	}

	if t := r.Header.Get(HeaderTargetOwnerType); t != "" && models.OwnerType(strings.ToUpper(t)) != models.OwnerTypeGuild {
		return nil, &headerError{"unsupported target owner type: " + t}
	}

	externalID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &headerError{"invalid target owner ID"}
	}

	return owners.ProvisionGuild(r.Context(), externalID, r.Header.Get(HeaderTargetOwnerName))
}

type headerError struct{ msg string }

func (e *headerError) Error() string { return e.msg }
