package resolvers

import (
	"strings"

	"catalog/internal/apperrors"
	"catalog/internal/services"
)

// Request carries the transport-level data a resolver needs. The transport
// layer builds one per incoming request; resolvers never reach into an
// ambient context object.
type Request struct {
	// Authorization is the raw value of the Authorization header,
	// empty when the header was absent.
	Authorization string
}

// RequireAuthenticated validates the bearer token on the request and
// returns its claims. Any missing, malformed, invalid or expired
// credential fails with Unauthorized.
func (r *Resolver) RequireAuthenticated(req Request) (*services.TokenClaims, error) {
	if req.Authorization == "" {
		return nil, apperrors.Unauthorized("authorization header is required")
	}

	// Expected format: "Bearer <token>"
	parts := strings.SplitN(req.Authorization, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperrors.Unauthorized("authorization header format must be 'Bearer <token>'")
	}

	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return nil, apperrors.Unauthorized("authorization header format must be 'Bearer <token>'")
	}

	claims, err := r.auth.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, apperrors.Unauthorized("invalid or expired token")
	}
	return claims, nil
}

// RequireRole authenticates the request and additionally checks the
// claimed role, failing with Forbidden on mismatch.
func (r *Resolver) RequireRole(req Request, role string) (*services.TokenClaims, error) {
	claims, err := r.RequireAuthenticated(req)
	if err != nil {
		return nil, err
	}
	if claims.Role != role {
		return nil, apperrors.Forbidden("insufficient role")
	}
	return claims, nil
}
