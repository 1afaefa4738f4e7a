package sec

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stolasapp/barre/internal/storage/db"
)

// DefaultTokenTTL bounds how long an issued session token stays valid.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Claims are the identity attributes embedded in a signed session token.
type Claims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// TokenIssuer issues and verifies HS256 session tokens. The signing secret
// comes from process configuration and must be shared by every instance that
// verifies tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates an issuer with the given signing secret. A
// non-positive ttl falls back to [DefaultTokenTTL].
func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{secret: secret, ttl: ttl}
}

// Issue produces a signed, time-bounded token embedding the user's identity
// and admin flag.
func (t *TokenIssuer) Issue(user db.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Authenticate verifies the token's signature and expiry and returns the
// embedded claims. Any verification failure resolves to [ErrInvalidToken];
// the underlying cause is wrapped for diagnostics.
func (t *TokenIssuer) Authenticate(token string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return Claims{}, errors.Join(ErrInvalidToken, err)
	}
	return claims, nil
}
