package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

type Service struct {
	secret []byte
	ttl    time.Duration
}

type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	// Scope distinguishes full sessions from the short-lived token issued
	// between password check and MFA challenge.
	Scope string `json:"scope,omitempty"`
	jwtlib.RegisteredClaims
}

const (
	ScopeSession    = ""
	ScopeMFAPending = "mfa_pending"
)

func New(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (s *Service) GenerateToken(userID int64, role string) (string, error) {
	return s.generate(userID, role, ScopeSession, s.ttl)
}

// GenerateMFAPendingToken issues the intermediate token returned by login
// when MFA is enabled. It is only accepted by the challenge endpoint.
func (s *Service) GenerateMFAPendingToken(userID int64, role string) (string, error) {
	return s.generate(userID, role, ScopeMFAPending, 5*time.Minute)
}

func (s *Service) generate(userID int64, role, scope string, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: userID,
		Role:   role,
		Scope:  scope,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	return claims, nil
}
