package jwt_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/karbo/karbo-api/internal/pkg/jwt"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := jwt.NewService("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "farmer", false)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("expected userID %s, got %s", userID, claims.UserID)
	}
	if claims.Role != "farmer" {
		t.Errorf("expected role farmer, got %s", claims.Role)
	}
	if claims.IsBlocked {
		t.Error("expected IsBlocked=false")
	}
}

func TestAccessTokenCarriesBlockFlag(t *testing.T) {
	svc := jwt.NewService("test-secret", time.Hour, 24*time.Hour)

	token, err := svc.GenerateAccessToken(uuid.New(), "company", true)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !claims.IsBlocked {
		t.Error("expected IsBlocked=true")
	}
}

func TestExpiredAccessToken(t *testing.T) {
	svc := jwt.NewService("test-secret", -time.Minute, 24*time.Hour)

	token, err := svc.GenerateAccessToken(uuid.New(), "farmer", false)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := svc.ValidateAccessToken(token); err != jwt.ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	svc := jwt.NewService("test-secret", time.Hour, 24*time.Hour)

	refresh, jti, _, err := svc.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("generate refresh failed: %v", err)
	}
	if jti == "" {
		t.Fatal("expected non-empty jti")
	}

	if _, err := svc.ValidateAccessToken(refresh); err == nil {
		t.Fatal("refresh token must not validate as access token")
	}

	claims, err := svc.ValidateRefreshToken(refresh)
	if err != nil {
		t.Fatalf("validate refresh failed: %v", err)
	}
	if claims.ID != jti {
		t.Errorf("expected jti %s, got %s", jti, claims.ID)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	svc := jwt.NewService("secret-a", time.Hour, 24*time.Hour)
	other := jwt.NewService("secret-b", time.Hour, 24*time.Hour)

	token, err := svc.GenerateAccessToken(uuid.New(), "farmer", false)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := other.ValidateAccessToken(token); err != jwt.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
