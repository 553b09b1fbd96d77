package auth

import (
	"net/http"
	"strings"

	apperrors "auth-gateway/pkg/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Middleware enforces the route policy on every request. Public routes pass
// through untouched; everything else needs a verifiable bearer token, and
// SelfOrAdmin routes additionally need ownership or the admin role.
type Middleware struct {
	tokens   *TokenService
	resolver *PrincipalResolver
	policy   *RoutePolicy
}

func NewMiddleware(tokens *TokenService, resolver *PrincipalResolver, policy *RoutePolicy) *Middleware {
	return &Middleware{
		tokens:   tokens,
		resolver: resolver,
		policy:   policy,
	}
}

// Authorize returns the gate middleware. Decode failures are logged with
// their specific reason (malformed, bad signature, expired) but answered
// with one generic 401 so clients learn nothing about validation internals.
func (m *Middleware) Authorize() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rule := m.policy.Match(c.Request().Method, c.Request().URL.Path)
			if rule.Access == AccessPublic {
				return next(c)
			}

			token := extractBearerToken(c)
			if token == "" {
				return respondError(c, http.StatusUnauthorized, msgMissingAuthorization)
			}

			subject, err := m.tokens.Verify(token)
			if err != nil {
				c.Logger().Warnf("token rejected: %v", err)
				return respondError(c, http.StatusUnauthorized, msgInvalidOrExpiredToken)
			}

			// Fresh lookup instead of trusting stale token claims, so a
			// deleted account or revoked role takes effect immediately.
			principal, err := m.resolver.Resolve(c.Request().Context(), subject)
			if err != nil {
				c.Logger().Warnf("token subject no longer resolvable: %v", err)
				return respondError(c, http.StatusUnauthorized, msgInvalidOrExpiredToken)
			}

			c.Set(ContextKeyPrincipal, principal)

			if rule.Access == AccessSelfOrAdmin && !permitsOwner(c, rule.Owner, principal) {
				return respondError(c, http.StatusForbidden, msgAccessDenied)
			}

			return next(c)
		}
	}
}

// permitsOwner implements the SelfOrAdmin check: the principal must be the
// resource owner named by the rule, or hold the admin role.
func permitsOwner(c echo.Context, owner OwnerRef, principal *Principal) bool {
	if principal.IsAdmin() {
		return true
	}

	switch owner.Lookup {
	case OwnerPathID:
		id, err := uuid.Parse(c.Param(owner.Param))
		if err != nil {
			return false
		}
		return id == principal.ID
	case OwnerQueryEmail:
		value := strings.ToLower(strings.TrimSpace(c.QueryParam(owner.Param)))
		return value != "" && value == strings.ToLower(principal.Email)
	default:
		return false
	}
}

func extractBearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(headerAuthorization)
	if authHeader == "" {
		return ""
	}

	parts := strings.Fields(authHeader)
	if len(parts) != authHeaderParts || strings.ToLower(parts[0]) != bearerScheme {
		return ""
	}

	return parts[1]
}

// GetPrincipal returns the principal the Authorize middleware attached to
// this request. Handlers receive identity this way rather than from any
// ambient global.
func GetPrincipal(c echo.Context) (*Principal, error) {
	raw := c.Get(ContextKeyPrincipal)
	if raw == nil {
		return nil, apperrors.Unauthorized(msgNotAuthenticated)
	}

	principal, ok := raw.(*Principal)
	if !ok {
		return nil, apperrors.InternalServer(msgInvalidPrincipalCtx, nil)
	}

	return principal, nil
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyError: message})
}
