package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type AppClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type TokenCodec interface {
	Issue(username string) (string, error)
	Validate(token string) (string, error)
}

type JWTCodec struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

type JWTOption func(*JWTCodec)

func WithIssuer(issuer string) JWTOption {
	return func(c *JWTCodec) { c.issuer = issuer }
}

// WithClock replaces time.Now for both issuing and validation.
func WithClock(now func() time.Time) JWTOption {
	return func(c *JWTCodec) { c.now = now }
}

func NewJWTCodec(secret string, ttl time.Duration, opts ...JWTOption) *JWTCodec {
	c := &JWTCodec{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "file-server",
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *JWTCodec) TTL() time.Duration {
	return c.ttl
}

func (c *JWTCodec) Issue(username string) (string, error) {
	now := c.now()

	claims := &AppClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    c.issuer,
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Validate checks the signature before any claim, then expiry. The returned
// error always matches ErrUnauthorized and one of ErrMalformedToken,
// ErrBadSignature or ErrTokenExpired.
func (c *JWTCodec) Validate(tokenString string) (string, error) {
	claims := &AppClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(c.issuer),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", newTokenError(ErrMalformedToken, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return "", newTokenError(ErrBadSignature, err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", newTokenError(ErrTokenExpired, err)
		default:
			return "", newTokenError(ErrMalformedToken, err)
		}
	}

	if !token.Valid || claims.Username == "" {
		return "", newTokenError(ErrMalformedToken, nil)
	}

	return claims.Username, nil
}
