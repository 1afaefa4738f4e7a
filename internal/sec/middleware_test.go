package sec

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoke(t *testing.T, mw echo.MiddlewareFunc, authorization string) (Claims, error) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	c := echo.New().NewContext(req, httptest.NewRecorder())

	var seen Claims
	err := mw(func(c echo.Context) error {
		seen = GetAuthenticatedClaims(c.Request().Context())
		return nil
	})(c)
	return seen, err
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("test-secret"), 0)
	mw := RequireAuth(issuer)

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()
		_, err := invoke(t, mw, "")
		require.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		t.Parallel()
		_, err := invoke(t, mw, "Basic YWxpY2U6cHc=")
		require.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("invalid token", func(t *testing.T) {
		t.Parallel()
		_, err := invoke(t, mw, "Bearer bogus")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("valid token attaches claims", func(t *testing.T) {
		t.Parallel()
		token, err := issuer.Issue(testUser)
		require.NoError(t, err)

		claims, err := invoke(t, mw, "Bearer "+token)
		require.NoError(t, err)
		assert.Equal(t, testUser.ID, claims.UserID)
		assert.Equal(t, testUser.Username, claims.Username)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	next := func(echo.Context) error { return nil }
	newCtx := func(claims Claims) echo.Context {
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		req = req.WithContext(SetAuthenticatedClaims(req.Context(), claims))
		return echo.New().NewContext(req, httptest.NewRecorder())
	}

	t.Run("admin passes", func(t *testing.T) {
		t.Parallel()
		err := RequireAdmin()(next)(newCtx(Claims{UserID: 1, IsAdmin: true}))
		require.NoError(t, err)
	})

	t.Run("non-admin rejected", func(t *testing.T) {
		t.Parallel()
		err := RequireAdmin()(next)(newCtx(Claims{UserID: 1}))
		require.ErrorIs(t, err, ErrAdminRequired)
	})

	t.Run("no claims rejected", func(t *testing.T) {
		t.Parallel()
		err := RequireAdmin()(next)(newCtx(Claims{}))
		require.ErrorIs(t, err, ErrAdminRequired)
	})
}
