package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/karbo/karbo-api/internal/domain/auth"
	"github.com/karbo/karbo-api/internal/domain/user"
	"github.com/karbo/karbo-api/internal/pkg/jwt"
	"github.com/karbo/karbo-api/internal/pkg/password"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*user.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return user.ErrEmailAlreadyExists
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) SetVerification(_ context.Context, id uuid.UUID, status user.VerificationStatus, _ string) error {
	f.users[id].VerificationStatus = status
	return nil
}

func (f *fakeUserRepo) SetBlocked(_ context.Context, id uuid.UUID, blocked bool) error {
	f.users[id].IsBlocked = blocked
	return nil
}

func (f *fakeUserRepo) ListByStatus(context.Context, user.VerificationStatus) ([]*user.User, error) {
	return nil, nil
}

func newAuthService(repo user.Repository) *auth.Service {
	jwtService := jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)
	return auth.NewService(repo, jwtService, nil)
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	resp, err := svc.Register(context.Background(), &auth.RegisterRequest{
		Email:    "Farmer@Test.Com",
		Password: "password123",
		Name:     "Test Farmer",
		Role:     "farmer",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if resp.User.Email != "farmer@test.com" {
		t.Errorf("email must be normalized, got %s", resp.User.Email)
	}
	if resp.User.VerificationStatus != string(user.StatusPendingVerification) {
		t.Errorf("new accounts must start pending, got %s", resp.User.VerificationStatus)
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Error("expected a token pair")
	}

	stored, _ := repo.GetByEmail(context.Background(), "farmer@test.com")
	if stored == nil {
		t.Fatal("user not persisted")
	}
	if stored.PasswordHash == "password123" {
		t.Error("password must be hashed")
	}
	if !password.Verify("password123", stored.PasswordHash) {
		t.Error("stored hash must verify against the original password")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	req := &auth.RegisterRequest{
		Email:    "farmer@test.com",
		Password: "password123",
		Name:     "Test Farmer",
		Role:     "farmer",
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	// Same address, different casing.
	req.Email = "FARMER@test.com"
	if _, err := svc.Register(context.Background(), req); err != auth.ErrEmailAlreadyExists {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestRegisterRejectsInvalidRole(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	for _, role := range []string{"admin", "superuser", ""} {
		_, err := svc.Register(context.Background(), &auth.RegisterRequest{
			Email:    "someone@test.com",
			Password: "password123",
			Name:     "Someone",
			Role:     role,
		})
		if err != auth.ErrInvalidRole {
			t.Errorf("role %q: expected ErrInvalidRole, got %v", role, err)
		}
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	if _, err := svc.Register(context.Background(), &auth.RegisterRequest{
		Email:    "company@test.com",
		Password: "password123",
		Name:     "Test Co",
		Role:     "company",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	resp, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email:    "company@test.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.User.Role != "company" {
		t.Errorf("expected role company, got %s", resp.User.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	if _, err := svc.Register(context.Background(), &auth.RegisterRequest{
		Email:    "company@test.com",
		Password: "password123",
		Name:     "Test Co",
		Role:     "company",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email:    "company@test.com",
		Password: "wrong-password",
	}); err != auth.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	if _, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email:    "nobody@test.com",
		Password: "password123",
	}); err != auth.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginBlockedUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	resp, err := svc.Register(context.Background(), &auth.RegisterRequest{
		Email:    "blocked@test.com",
		Password: "password123",
		Name:     "Blocked",
		Role:     "farmer",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	repo.users[resp.User.ID].IsBlocked = true

	if _, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email:    "blocked@test.com",
		Password: "password123",
	}); err != auth.ErrUserBlocked {
		t.Fatalf("expected ErrUserBlocked, got %v", err)
	}
}

func TestRefreshWithoutRedis(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	resp, err := svc.Register(context.Background(), &auth.RegisterRequest{
		Email:    "farmer@test.com",
		Password: "password123",
		Name:     "Test Farmer",
		Role:     "farmer",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Without Redis there is no session store, so even a freshly issued
	// refresh token cannot be redeemed.
	if _, err := svc.Refresh(context.Background(), resp.Tokens.RefreshToken); err != auth.ErrInvalidRefreshToken {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	if _, err := svc.Refresh(context.Background(), ""); err != auth.ErrRefreshTokenRequired {
		t.Fatalf("expected ErrRefreshTokenRequired, got %v", err)
	}
	if _, err := svc.Refresh(context.Background(), "not-a-jwt"); err != auth.ErrInvalidRefreshToken {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}
