package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/favboard/favboard-api/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// Token verification failures. Both are Unauthorized to callers; they are
// kept apart so expiry can be handled differently later.
var (
	ErrTokenInvalid = fmt.Errorf("%w: token invalid", domain.ErrUnauthorized)
	ErrTokenExpired = fmt.Errorf("%w: token expired", domain.ErrUnauthorized)
)

// Claims is the token payload: the identity id plus issued-at and expiry.
// Subject carries the same id.
type Claims struct {
	IdentityID string `json:"id"`
	jwt.RegisteredClaims
}

// JWTTokenService signs HS256 tokens with a process-wide secret.
type JWTTokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type TokenOption func(*JWTTokenService)

// WithClock replaces the time source used for issuing and verifying.
func WithClock(now func() time.Time) TokenOption {
	return func(s *JWTTokenService) { s.now = now }
}

func NewJWTTokenService(secret string, ttl time.Duration, opts ...TokenOption) *JWTTokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	s := &JWTTokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *JWTTokenService) Issue(identityID string) (string, error) {
	now := s.now()
	claims := Claims{
		IdentityID: identityID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identityID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *JWTTokenService) Verify(token string) (string, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !parsed.Valid || claims.IdentityID == "" {
		return "", ErrTokenInvalid
	}
	return claims.IdentityID, nil
}
