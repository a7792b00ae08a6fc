// Package auth issues and reads session tokens that carry the principal.
// It stands in for the external identity provider: whoever holds a valid
// token acts as the user named in it.
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/memorymap/internal/common"
	"github.com/dmitrijs2005/memorymap/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the registered claims plus the user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// SessionProvider signs HS256 session tokens.
type SessionProvider struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionProvider(secret []byte, ttl time.Duration) *SessionProvider {
	return &SessionProvider{secret: secret, ttl: ttl, now: time.Now}
}

// Issue returns a token for userID valid for the provider's TTL.
func (p *SessionProvider) Issue(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", fmt.Errorf("%w: user id is required", common.ErrorValidation)
	}

	now := p.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
		UserID: userID,
	})

	s, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return s, nil
}

// Principal validates token and returns its principal. Any failure,
// including expiry, is common.ErrorUnauthorized.
func (p *SessionProvider) Principal(token string) (models.Principal, error) {
	if token == "" {
		return models.Principal{}, fmt.Errorf("%w: not logged in", common.ErrorUnauthorized)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return p.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(p.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Principal{}, fmt.Errorf("%w: %v", common.ErrorUnauthorized, err)
	}
	if !parsed.Valid || claims.UserID == "" {
		return models.Principal{}, fmt.Errorf("%w: invalid session", common.ErrorUnauthorized)
	}
	return models.Principal{ID: claims.UserID}, nil
}
