// Package auth implements the signed bearer-token codec used by the HTTP
// layer. Tokens are HS256 JWTs carrying the principal's id, email, and role.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/maintrack/maintenance-system/internal/core/domain"
)

// Verification failures. The auth middleware collapses all three into a
// uniform 401, but callers and tests can tell them apart.
var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenExpired   = errors.New("token expired")
)

const defaultTTL = 24 * time.Hour

// Claims is the claim set embedded in every issued token. Subject holds the
// user id.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Codec issues and verifies tokens with a shared HMAC secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec returns a Codec. A non-positive ttl falls back to 24h.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// Issue encodes the principal into a signed token valid for the codec's TTL.
func (c *Codec) Issue(p domain.Principal) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Email: p.Email,
		Role:  p.Role,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify parses and validates a token string, returning the embedded
// principal verbatim. The principal is not re-fetched from the user store.
func (c *Codec) Verify(tokenString string) (domain.Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return domain.Principal{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return domain.Principal{}, ErrTokenSignature
		default:
			return domain.Principal{}, ErrTokenMalformed
		}
	}
	if !token.Valid {
		return domain.Principal{}, ErrTokenMalformed
	}

	return domain.Principal{
		ID:    claims.Subject,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}
