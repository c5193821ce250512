package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"microblog/internal/config"
	"microblog/internal/model"
	"microblog/internal/repository"
)

// Identity is the subject extracted from a verified identity assertion.
type Identity struct {
	Email    string
	Nickname string
}

// AuthService verifies identity assertions from the federated identity
// provider and manages the session tokens this service issues itself:
// short-lived HS256 access tokens plus rotating refresh tokens with reuse
// detection.
type AuthService struct {
	refreshTokenRepo repository.RefreshTokenRepository
	config           *config.Config
}

func NewAuthService(refreshTokenRepo repository.RefreshTokenRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		refreshTokenRepo: refreshTokenRepo,
		config:           cfg,
	}
}

// VerifyAssertion validates the identity provider's signed assertion and
// extracts the identity claims. The provider runs the actual login handshake;
// by the time this service sees the assertion the user is already
// authenticated.
func (s *AuthService) VerifyAssertion(assertion string) (*Identity, error) {
	token, err := jwt.Parse(assertion, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.config.IdPSharedSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, model.ErrInvalidAssertion
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrInvalidAssertion
	}

	email, _ := claims["email"].(string)
	if email == "" {
		// An assertion without an email cannot be mapped to an account.
		return nil, model.ErrInvalidAssertion
	}
	nickname, _ := claims["nickname"].(string)

	return &Identity{Email: email, Nickname: nickname}, nil
}

// GenerateTokenPair issues a new access token and persists a refresh token.
// The remember flag picks between the session-length and long-lived refresh
// TTLs.
func (s *AuthService) GenerateTokenPair(ctx context.Context, userID int64, remember bool) (*model.TokenPair, error) {
	accessToken, err := s.generateAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshTokenRaw := uuid.New().String()

	maxAge := s.config.RefreshTokenMaxAge
	if remember {
		maxAge = s.config.RememberMeMaxAge
	}

	refreshToken := &model.RefreshToken{
		UserID:    userID,
		TokenHash: s.hashToken(refreshTokenRaw),
		ExpiresAt: time.Now().Add(time.Duration(maxAge) * time.Second),
	}

	if err := s.refreshTokenRepo.Create(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenRaw,
		ExpiresIn:    s.config.AccessTokenMaxAge,
	}, nil
}

// RefreshTokens validates the refresh token and rotates a new pair. Reuse of
// a revoked token means the raw value leaked somewhere, so the whole family
// is revoked.
func (s *AuthService) RefreshTokens(ctx context.Context, refreshTokenRaw string) (*model.TokenPair, int64, error) {
	token, err := s.refreshTokenRepo.FindByTokenHash(ctx, s.hashToken(refreshTokenRaw))
	if err != nil {
		return nil, 0, model.ErrRefreshTokenNotFound
	}

	if token.IsRevoked() {
		if err := s.refreshTokenRepo.RevokeAllForUser(ctx, token.UserID); err != nil {
			log.Printf("[AuthService] Failed to revoke token family: user=%d err=%v", token.UserID, err)
		}
		return nil, 0, model.ErrRefreshTokenReused
	}

	if token.IsExpired() {
		return nil, 0, model.ErrRefreshTokenExpired
	}

	newTokenPair, err := s.GenerateTokenPair(ctx, token.UserID, false)
	if err != nil {
		return nil, 0, err
	}

	var replacedByID *string
	if newToken, err := s.refreshTokenRepo.FindByTokenHash(ctx, s.hashToken(newTokenPair.RefreshToken)); err == nil && newToken != nil {
		replacedByID = &newToken.ID
	}

	if err := s.refreshTokenRepo.Revoke(ctx, token.ID, replacedByID); err != nil {
		log.Printf("[AuthService] Failed to revoke rotated token: id=%s err=%v", token.ID, err)
	}

	return newTokenPair, token.UserID, nil
}

func (s *AuthService) RevokeRefreshToken(ctx context.Context, refreshTokenRaw string) error {
	token, err := s.refreshTokenRepo.FindByTokenHash(ctx, s.hashToken(refreshTokenRaw))
	if err != nil {
		return err
	}
	return s.refreshTokenRepo.Revoke(ctx, token.ID, nil)
}

func (s *AuthService) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	return s.refreshTokenRepo.RevokeAllForUser(ctx, userID)
}

func (s *AuthService) generateAccessToken(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Duration(s.config.AccessTokenMaxAge) * time.Second).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

func (s *AuthService) hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
