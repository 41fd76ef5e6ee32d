package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pageza/myplate-diets/backend/internal/types"
)

const (
	tokenIssuer = "myplate-diets"
	tokenTTL    = 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

// TokenService issues and validates HS256 tokens for clients that write recipes
type TokenService struct {
	jwtSecret []byte
	ttl       time.Duration
}

func NewTokenService(jwtSecret string) *TokenService {
	return &TokenService{
		jwtSecret: []byte(jwtSecret),
		ttl:       tokenTTL,
	}
}

func (s *TokenService) GenerateToken(clientID string) (string, error) {
	if clientID == "" {
		return "", errors.New("client id is required")
	}
	now := time.Now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   clientID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		ClientID: clientID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.ClientID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
