package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed payload of both access and refresh tokens: subject
// (user id), issued-at and expiry. The two token kinds are structurally
// identical and differ only in which TTL was applied at issuance.
type Claims = jwt.RegisteredClaims

type JWTUtil interface {
	Issue(userID int64, ttl time.Duration) (token string, exp time.Time, err error)
	Verify(token string) (Claims, error)
}
