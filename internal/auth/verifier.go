package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"holding/internal/domain"
)

// BotSubject is the required sub claim of the shared-secret service token.
const BotSubject = "bot-service-account"

// botTokenVerifier validates HS256 tokens signed with the shared bot
// secret. The bot is the only caller of this kind; everything about the
// acting user comes from request headers, not the token.
type botTokenVerifier struct {
	secret []byte
	logger *slog.Logger
}

// NewBotTokenVerifier creates a verifier for the service token.
func NewBotTokenVerifier(secret string, logger *slog.Logger) (TokenVerifier, error) {
	if secret == "" {
		return nil, errors.New("bot token secret cannot be empty")
	}
	return &botTokenVerifier{secret: []byte(secret), logger: logger}, nil
}

func (v *botTokenVerifier) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		// Pinning the algorithm prevents confusion attacks against the
		// shared secret
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		v.logger.Debug("bot token rejected", "error", err)
		return nil, domain.ErrUnauthorized
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject != BotSubject {
		v.logger.Warn("bot token has wrong subject", "subject", subject)
		return nil, domain.ErrUnauthorized
	}

	return &Claims{Subject: subject, Bot: true}, nil
}

func (v *botTokenVerifier) Close() error { return nil }

// jwksVerifier validates end-user tokens against the identity provider's
// JWKS endpoint. Keys are cached and refreshed by keyfunc based on HTTP
// cache headers.
type jwksVerifier struct {
	jwks   keyfunc.Keyfunc
	logger *slog.Logger
}

// NewJWKSVerifier creates a verifier backed by a JWKS endpoint.
func NewJWKSVerifier(jwksURL string, logger *slog.Logger) (TokenVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	jwks, err := keyfunc.NewDefaultCtx(context.Background(), []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}

	logger.Info("JWKS verifier initialized", "jwks_url", jwksURL)
	return &jwksVerifier{jwks: jwks, logger: logger}, nil
}

func (v *jwksVerifier) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, v.jwks.Keyfunc)
	if err != nil || !token.Valid {
		v.logger.Debug("user token rejected", "error", err)
		return nil, domain.ErrUnauthorized
	}

	// Asymmetric algorithms only; an HS256 token must never reach here
	switch token.Method.Alg() {
	case "RS256", "ES256":
	default:
		v.logger.Warn("user token uses unexpected algorithm", "algorithm", token.Method.Alg())
		return nil, domain.ErrUnauthorized
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return nil, domain.ErrUnauthorized
	}

	return &Claims{Subject: subject, Bot: false}, nil
}

func (v *jwksVerifier) Close() error {
	v.logger.Info("JWKS verifier closed")
	return nil
}

// chainVerifier tries each verifier in order and accepts the first match.
type chainVerifier struct {
	verifiers []TokenVerifier
}

// NewChainVerifier combines verifiers: the bot secret first, then the
// optional JWKS verifier for end-user tokens.
func NewChainVerifier(verifiers ...TokenVerifier) TokenVerifier {
	return &chainVerifier{verifiers: verifiers}
}

func (v *chainVerifier) VerifyToken(tokenString string) (*Claims, error) {
	for _, verifier := range v.verifiers {
		if claims, err := verifier.VerifyToken(tokenString); err == nil {
			return claims, nil
		}
	}
	return nil, domain.ErrUnauthorized
}

func (v *chainVerifier) Close() error {
	var firstErr error
	for _, verifier := range v.verifiers {
		if err := verifier.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
