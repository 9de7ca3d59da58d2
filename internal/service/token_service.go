package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"quiz-league/internal/config"
	"quiz-league/internal/domain"
	"quiz-league/internal/dto"
	"quiz-league/internal/logger"
)

// TokenService issues and validates the bearer tokens that carry a caller's
// identity. How users obtain a token is outside this service.
type TokenService interface {
	Issue(ctx context.Context, user *domain.User) (string, error)
	Validate(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

type tokenServiceImpl struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService returns a HS256 token service. A nil now means time.Now.
func NewTokenService(cfg config.JWTConfig, now func() time.Time) (TokenService, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("jwt secret key is required")
	}
	if now == nil {
		now = time.Now
	}
	return &tokenServiceImpl{secret: []byte(cfg.SecretKey), ttl: cfg.AccessTokenTTL, now: now}, nil
}

func (s *tokenServiceImpl) Issue(ctx context.Context, user *domain.User) (string, error) {
	issuedAt := s.now()
	claims := dto.AuthClaims{
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			Subject:   strconv.FormatInt(user.ID, 10),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", domain.NewInternalError("failed to sign token", err)
	}
	return signed, nil
}

func (s *tokenServiceImpl) Validate(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Debug("Token expired", zap.Error(err))
			return nil, domain.NewUnauthorizedError("token expired")
		}
		logger.Get().Debug("Token validation failed", zap.Error(err))
		return nil, domain.NewUnauthorizedError("invalid token")
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, domain.NewUnauthorizedError("invalid token")
	}
	return claims, nil
}
