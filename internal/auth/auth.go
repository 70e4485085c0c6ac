package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenTTL is the only lifecycle control for a token: there is no
// refresh and no revocation.
const AccessTokenTTL = 5 * time.Minute

var ErrInvalidToken = errors.New("invalid token")

// Claims represents JWT token claims
type Claims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	Issue(subject string, roles []string) (string, error)
	Verify(tokenString string) (*Claims, error)
}

type Option func(*JWTTokenService)

// WithTimeFunc replaces the clock used for issuing and verifying.
func WithTimeFunc(fn func() time.Time) Option {
	return func(s *JWTTokenService) {
		s.timeFunc = fn
	}
}

// JWTTokenService signs HS256 tokens with a shared secret.
type JWTTokenService struct {
	secret   []byte
	timeFunc func() time.Time
}

func NewJWTTokenService(secret string, opts ...Option) *JWTTokenService {
	s := &JWTTokenService{
		secret:   []byte(secret),
		timeFunc: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (j *JWTTokenService) Issue(subject string, roles []string) (string, error) {
	now := j.timeFunc()

	claims := &Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks signature, structure and expiry. Every failure wraps
// ErrInvalidToken.
func (j *JWTTokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return j.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.timeFunc),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
