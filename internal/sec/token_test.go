package sec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stolasapp/barre/internal/storage/db"
)

var testUser = db.User{
	ID:       12345,
	Username: "alice",
	Email:    "a@x.com",
	IsAdmin:  true,
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("test-secret"), 0)
	token, err := issuer.Issue(testUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, testUser.ID, claims.UserID)
	assert.Equal(t, testUser.Username, claims.Username)
	assert.True(t, claims.IsAdmin)

	expiry := claims.ExpiresAt.Time
	assert.WithinDuration(t, time.Now().Add(DefaultTokenTTL), expiry, time.Minute)
}

func TestTokenAuthenticateFailures(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)

	t.Run("garbage token", func(t *testing.T) {
		t.Parallel()
		_, err := issuer.Authenticate("not.a.token")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()
		other := NewTokenIssuer([]byte("other-secret"), time.Hour)
		token, err := other.Issue(testUser)
		require.NoError(t, err)
		_, err = issuer.Authenticate(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()
		expired := NewTokenIssuer([]byte("test-secret"), -time.Hour)
		token, err := expired.Issue(testUser)
		require.NoError(t, err)
		_, err = issuer.Authenticate(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}
