package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"referral-platform/internal/model"
)

// TokenService issues and verifies the platform's stateless bearer tokens.
// There is no server-side revocation; logout is client-side token discard.
type TokenService struct {
	secret      []byte
	sessionTTL  time.Duration
	extendedTTL time.Duration
}

type tokenClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

func NewTokenService(secret string, sessionTTL time.Duration, extendedTTL time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token signing secret is required")
	}

	return &TokenService{
		secret:      []byte(secret),
		sessionTTL:  sessionTTL,
		extendedTTL: extendedTTL,
	}, nil
}

// SessionTTL returns the validity window for a session: the extended preset
// when the client opted into remember-me, the short preset otherwise.
func (s *TokenService) SessionTTL(rememberMe bool) time.Duration {
	if rememberMe {
		return s.extendedTTL
	}
	return s.sessionTTL
}

func (s *TokenService) ExtendedTTL() time.Duration {
	return s.extendedTTL
}

func (s *TokenService) Issue(userID string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) Verify(tokenString string) (*model.AuthClaims, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.ErrTokenExpired
		}
		return nil, model.ErrTokenInvalid
	}
	if !parsed.Valid || claims.UserID == "" {
		return nil, model.ErrTokenInvalid
	}

	out := &model.AuthClaims{UserID: claims.UserID}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
