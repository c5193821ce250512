package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"microblog/internal/config"
	"microblog/internal/model"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-jwt-secret",
		IdPSharedSecret:    "test-idp-secret",
		AccessTokenMaxAge:  900,
		RefreshTokenMaxAge: 86400,
		RememberMeMaxAge:   2592000,
	}
}

func signAssertion(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign assertion: %v", err)
	}
	return signed
}

// =============================================================================
// ASSERTION VERIFICATION TESTS
// =============================================================================

func TestAuthService_VerifyAssertion(t *testing.T) {
	cfg := testAuthConfig()
	svc := NewAuthService(&mockRefreshTokenRepository{}, cfg)

	t.Run("valid assertion", func(t *testing.T) {
		assertion := signAssertion(t, cfg.IdPSharedSecret, jwt.MapClaims{
			"email":    "john@example.com",
			"nickname": "john",
			"exp":      time.Now().Add(time.Minute).Unix(),
		})

		identity, err := svc.VerifyAssertion(assertion)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if identity.Email != "john@example.com" {
			t.Errorf("Email = %q, want %q", identity.Email, "john@example.com")
		}
		if identity.Nickname != "john" {
			t.Errorf("Nickname = %q, want %q", identity.Nickname, "john")
		}
	})

	t.Run("nickname claim is optional", func(t *testing.T) {
		assertion := signAssertion(t, cfg.IdPSharedSecret, jwt.MapClaims{
			"email": "susan@example.com",
			"exp":   time.Now().Add(time.Minute).Unix(),
		})

		identity, err := svc.VerifyAssertion(assertion)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if identity.Nickname != "" {
			t.Errorf("Nickname = %q, want empty", identity.Nickname)
		}
	})

	t.Run("missing email rejected", func(t *testing.T) {
		assertion := signAssertion(t, cfg.IdPSharedSecret, jwt.MapClaims{
			"nickname": "john",
			"exp":      time.Now().Add(time.Minute).Unix(),
		})

		_, err := svc.VerifyAssertion(assertion)
		if !errors.Is(err, model.ErrInvalidAssertion) {
			t.Errorf("error = %v, want %v", err, model.ErrInvalidAssertion)
		}
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		assertion := signAssertion(t, "some-other-secret", jwt.MapClaims{
			"email": "john@example.com",
			"exp":   time.Now().Add(time.Minute).Unix(),
		})

		_, err := svc.VerifyAssertion(assertion)
		if !errors.Is(err, model.ErrInvalidAssertion) {
			t.Errorf("error = %v, want %v", err, model.ErrInvalidAssertion)
		}
	})

	t.Run("expired assertion rejected", func(t *testing.T) {
		assertion := signAssertion(t, cfg.IdPSharedSecret, jwt.MapClaims{
			"email": "john@example.com",
			"exp":   time.Now().Add(-time.Minute).Unix(),
		})

		_, err := svc.VerifyAssertion(assertion)
		if !errors.Is(err, model.ErrInvalidAssertion) {
			t.Errorf("error = %v, want %v", err, model.ErrInvalidAssertion)
		}
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := svc.VerifyAssertion("not-a-jwt")
		if !errors.Is(err, model.ErrInvalidAssertion) {
			t.Errorf("error = %v, want %v", err, model.ErrInvalidAssertion)
		}
	})
}

// =============================================================================
// TOKEN PAIR TESTS
// =============================================================================

func TestAuthService_GenerateTokenPair(t *testing.T) {
	cfg := testAuthConfig()
	var stored *model.RefreshToken
	mockTokens := &mockRefreshTokenRepository{
		createFn: func(ctx context.Context, token *model.RefreshToken) error {
			token.ID = "token-id-1"
			stored = token
			return nil
		},
	}
	svc := NewAuthService(mockTokens, cfg)

	pair, err := svc.GenerateTokenPair(context.Background(), 1, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens to be set")
	}
	if pair.ExpiresIn != cfg.AccessTokenMaxAge {
		t.Errorf("ExpiresIn = %d, want %d", pair.ExpiresIn, cfg.AccessTokenMaxAge)
	}

	// Only the hash is persisted, never the raw value
	if stored.TokenHash == pair.RefreshToken {
		t.Error("refresh token stored unhashed")
	}
	if len(stored.TokenHash) != 64 {
		t.Errorf("token hash length = %d, want 64 hex chars", len(stored.TokenHash))
	}

	// Access token verifies against the service's own secret
	parsed, err := jwt.Parse(pair.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("access token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if int64(claims["user_id"].(float64)) != 1 {
		t.Errorf("user_id claim = %v, want 1", claims["user_id"])
	}
}

func TestAuthService_GenerateTokenPair_RememberExtendsTTL(t *testing.T) {
	cfg := testAuthConfig()
	var stored *model.RefreshToken
	mockTokens := &mockRefreshTokenRepository{
		createFn: func(ctx context.Context, token *model.RefreshToken) error {
			stored = token
			return nil
		},
	}
	svc := NewAuthService(mockTokens, cfg)

	if _, err := svc.GenerateTokenPair(context.Background(), 1, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	minExpiry := time.Now().Add(time.Duration(cfg.RefreshTokenMaxAge+60) * time.Second)
	if stored.ExpiresAt.Before(minExpiry) {
		t.Errorf("remember=true expiry %v not extended beyond the default TTL", stored.ExpiresAt)
	}
}

// =============================================================================
// REFRESH / ROTATION TESTS
// =============================================================================

func TestAuthService_RefreshTokens_Unknown(t *testing.T) {
	svc := NewAuthService(&mockRefreshTokenRepository{}, testAuthConfig())

	_, _, err := svc.RefreshTokens(context.Background(), "unknown-token")
	if !errors.Is(err, model.ErrRefreshTokenNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrRefreshTokenNotFound)
	}
}

func TestAuthService_RefreshTokens_ReuseRevokesFamily(t *testing.T) {
	revokedAt := time.Now().Add(-time.Hour)
	var revokedUser int64
	mockTokens := &mockRefreshTokenRepository{
		findByTokenHashFn: func(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
			return &model.RefreshToken{
				ID:        "old-token",
				UserID:    7,
				RevokedAt: &revokedAt,
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil
		},
		revokeAllForUserFn: func(ctx context.Context, userID int64) error {
			revokedUser = userID
			return nil
		},
	}
	svc := NewAuthService(mockTokens, testAuthConfig())

	_, _, err := svc.RefreshTokens(context.Background(), "leaked-token")
	if !errors.Is(err, model.ErrRefreshTokenReused) {
		t.Errorf("error = %v, want %v", err, model.ErrRefreshTokenReused)
	}
	if revokedUser != 7 {
		t.Errorf("revoked family for user %d, want 7", revokedUser)
	}
}

func TestAuthService_RefreshTokens_Expired(t *testing.T) {
	mockTokens := &mockRefreshTokenRepository{
		findByTokenHashFn: func(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
			return &model.RefreshToken{
				ID:        "old-token",
				UserID:    7,
				ExpiresAt: time.Now().Add(-time.Minute),
			}, nil
		},
	}
	svc := NewAuthService(mockTokens, testAuthConfig())

	_, _, err := svc.RefreshTokens(context.Background(), "stale-token")
	if !errors.Is(err, model.ErrRefreshTokenExpired) {
		t.Errorf("error = %v, want %v", err, model.ErrRefreshTokenExpired)
	}
}

func TestAuthService_RefreshTokens_Rotation(t *testing.T) {
	tokens := map[string]*model.RefreshToken{}
	var revokedIDs []string
	mockTokens := &mockRefreshTokenRepository{
		createFn: func(ctx context.Context, token *model.RefreshToken) error {
			token.ID = "new-token"
			tokens[token.TokenHash] = token
			return nil
		},
		findByTokenHashFn: func(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
			if tok, ok := tokens[tokenHash]; ok {
				return tok, nil
			}
			if tokenHash == hashOf("current-token") {
				return &model.RefreshToken{
					ID:        "old-token",
					UserID:    7,
					ExpiresAt: time.Now().Add(time.Hour),
				}, nil
			}
			return nil, model.ErrRefreshTokenNotFound
		},
		revokeFn: func(ctx context.Context, id string, replacedBy *string) error {
			revokedIDs = append(revokedIDs, id)
			if replacedBy == nil || *replacedBy != "new-token" {
				t.Errorf("replacedBy = %v, want new-token", replacedBy)
			}
			return nil
		},
	}
	svc := NewAuthService(mockTokens, testAuthConfig())

	pair, userID, err := svc.RefreshTokens(context.Background(), "current-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != 7 {
		t.Errorf("userID = %d, want 7", userID)
	}
	if pair.RefreshToken == "current-token" {
		t.Error("rotation must issue a fresh refresh token")
	}
	if len(revokedIDs) != 1 || revokedIDs[0] != "old-token" {
		t.Errorf("revoked %v, want [old-token]", revokedIDs)
	}
}

// hashOf mirrors the service's internal token hashing for test fixtures.
func hashOf(raw string) string {
	return (&AuthService{}).hashToken(raw)
}
