package sec

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type claimsKey struct{}

// GetAuthenticatedClaims returns the claims for the authenticated caller.
// Returns zero-value Claims if the context has no authenticated caller
// (should only happen if middleware is misconfigured).
func GetAuthenticatedClaims(ctx context.Context) Claims {
	if claims, ok := ctx.Value(claimsKey{}).(Claims); ok {
		return claims
	}
	return Claims{}
}

// SetAuthenticatedClaims sets the claims for an authenticated caller. The
// [RequireAuth] middleware injects this automatically; this function is
// provided as a convenience for testing.
func SetAuthenticatedClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// BearerToken extracts the token from an Authorization bearer header.
// Returns [ErrMissingToken] if the header is absent or not a bearer scheme.
func BearerToken(req *http.Request) (string, error) {
	const prefix = "Bearer "
	header := req.Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, prefix) || len(header) == len(prefix) {
		return "", ErrMissingToken
	}
	return header[len(prefix):], nil
}

// RequireAuth resolves the caller's identity from the bearer token and
// attaches the claims to the request context. Requests without a token fail
// with [ErrMissingToken]; requests with a bad or expired token fail with
// [ErrInvalidToken]. The API layer maps these to 401 and 403 respectively.
func RequireAuth(tokens *TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := BearerToken(c.Request())
			if err != nil {
				return err
			}
			claims, err := tokens.Authenticate(token)
			if err != nil {
				return err
			}
			ctx := SetAuthenticatedClaims(c.Request().Context(), claims)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequireAdmin rejects authenticated callers whose admin flag is false with
// [ErrAdminRequired]. It must run after [RequireAuth].
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !GetAuthenticatedClaims(c.Request().Context()).IsAdmin {
				return ErrAdminRequired
			}
			return next(c)
		}
	}
}
