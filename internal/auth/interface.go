package auth

// Claims is the verified identity carried by a bearer token.
type Claims struct {
	// Subject is the token's sub claim: the service-account name for
	// bot tokens, the provider user ID for end-user tokens.
	Subject string
	// Bot reports whether the token is the shared-secret service token.
	// Bot callers act on behalf of users named in request headers.
	Bot bool
}

// TokenVerifier validates a bearer token string and returns its claims.
// Implementations must reject expired tokens and bad signatures.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*Claims, error)

	// Close releases any resources held by the verifier (e.g., HTTP
	// connections for JWKS refresh).
	Close() error
}
