package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/riskibarqy/survivor-league/internal/domain/user"
)

const defaultTTL = 24 * time.Hour

// Claims is the token payload. Subject carries the user id; email and role
// ride along so request handling does not need a user lookup.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// JWT issues and verifies HS256 access tokens.
type JWT struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewJWT(secret, issuer string, ttl time.Duration) *JWT {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &JWT{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (j *JWT) Issue(principal user.Principal) (string, time.Time, error) {
	now := j.now().UTC()
	expiresAt := now.Add(j.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: principal.Email,
		Role:  string(principal.Role),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}

func (j *JWT) Verify(tokenString string) (user.Principal, error) {
	claims := &Claims{}
	parsed, err := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return j.now().UTC() }),
	).ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return j.secret, nil
	})
	if err != nil {
		return user.Principal{}, fmt.Errorf("parse token: %w", err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return user.Principal{}, fmt.Errorf("invalid token claims")
	}

	return user.Principal{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   user.Role(claims.Role),
	}, nil
}
