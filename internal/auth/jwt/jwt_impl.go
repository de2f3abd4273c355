package jwt

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	customErrors "github.com/clipshare/clipshare/internal/auth/errors"
)

type jwtUtilImpl struct {
	secret []byte
	now    func() time.Time
}

func NewJWTUtil(secret string) *jwtUtilImpl {
	return &jwtUtilImpl{
		secret: []byte(secret),
		now:    time.Now,
	}
}

func (j *jwtUtilImpl) Issue(userID int64, ttl time.Duration) (string, time.Time, error) {
	now := j.now()

	claims := Claims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, customErrors.WrapInternal(err, "sign token")
	}

	return signed, claims.ExpiresAt.Time, nil
}

func (j *jwtUtilImpl) Verify(raw string) (Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Only the configured algorithm is acceptable; anything else is a
		// verification failure, never a fallback.
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrInvalidToken
		}
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
	)

	if err != nil || !token.Valid {
		return Claims{}, customErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Claims{}, customErrors.ErrInvalidToken
	}

	return *claims, nil
}

// Subject parses the user id out of verified claims.
func Subject(c Claims) (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, customErrors.ErrInvalidToken
	}
	return id, nil
}
