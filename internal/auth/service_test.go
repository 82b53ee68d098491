package auth

import (
	"context"
	"io"
	"testing"

	pkgauth "github.com/handloomhouse/storefront-backend/pkg/auth"
	"github.com/handloomhouse/storefront-backend/pkg/config"
	"github.com/handloomhouse/storefront-backend/pkg/errors"
	"github.com/handloomhouse/storefront-backend/pkg/kvstore"
	"github.com/handloomhouse/storefront-backend/pkg/logger"
	"github.com/handloomhouse/storefront-backend/pkg/types"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "handloomhouse",
		ExpirationMinutes: 30,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    16384,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:     NewRepo(kvstore.NewMemoryStore()),
		JWT:      testJWTConfig(),
		Password: testPasswordConfig(),
		Logger:   logger.New(logger.Options{ServiceName: "auth-test", Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestSignupOpensSessionAndMintsToken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	result, err := svc.Signup(ctx, SignupRequest{
		Name:     "Meera Rao",
		Email:    "Meera@Example.com",
		Password: "loom-and-thread",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if result.Session.Email != "meera@example.com" {
		t.Fatalf("expected lowercased email, got %s", result.Session.Email)
	}
	if result.Session.Role != types.RoleBuyer {
		t.Fatalf("expected default buyer role, got %s", result.Session.Role)
	}
	if result.Token == "" {
		t.Fatal("expected token")
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), result.Token)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.Email != "meera@example.com" || claims.Role != types.RoleBuyer {
		t.Fatalf("unexpected claims %+v", claims)
	}

	current, err := svc.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current.Email != "meera@example.com" {
		t.Fatalf("unexpected session %+v", current)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	req := SignupRequest{Name: "Meera Rao", Email: "meera@example.com", Password: "loom-and-thread"}
	if _, err := svc.Signup(ctx, req); err != nil {
		t.Fatalf("signup: %v", err)
	}

	req.Email = "MEERA@example.com"
	_, err := svc.Signup(ctx, req)
	if !errors.IsCode(err, errors.CodeEmailExists) {
		t.Fatalf("expected EMAIL_EXISTS, got %v", err)
	}
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Signup(context.Background(), SignupRequest{
		Name:     "Meera Rao",
		Email:    "meera@example.com",
		Password: "loom-and-thread",
		Role:     "owner",
	})
	if !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected VALIDATION, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupRequest{Name: "Meera Rao", Email: "meera@example.com", Password: "loom-and-thread", Role: types.RoleArtisan}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}

	result, err := svc.Login(ctx, LoginRequest{Email: "MEERA@example.com", Password: "loom-and-thread"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Session.Role != types.RoleArtisan {
		t.Fatalf("expected stored role, got %s", result.Session.Role)
	}

	// wrong password and unknown email are indistinguishable
	_, badPass := svc.Login(ctx, LoginRequest{Email: "meera@example.com", Password: "wrong"})
	_, badEmail := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "loom-and-thread"})
	for _, err := range []error{badPass, badEmail} {
		if !errors.IsCode(err, errors.CodeAuthInvalid) {
			t.Fatalf("expected AUTH_INVALID, got %v", err)
		}
	}
	if badPass.Error() != badEmail.Error() {
		t.Fatalf("auth failures must be indistinguishable: %q vs %q", badPass, badEmail)
	}
}

func TestLogoutAndCurrent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupRequest{Name: "Meera Rao", Email: "meera@example.com", Password: "loom-and-thread"}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	_, err := svc.Current(ctx)
	if !errors.IsCode(err, errors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND after logout, got %v", err)
	}
}

func TestPasswordsAreNotStoredInPlaintext(t *testing.T) {
	store := kvstore.NewMemoryStore()
	repo := NewRepo(store)
	svc, err := NewService(ServiceParams{
		Repo:     repo,
		JWT:      testJWTConfig(),
		Password: testPasswordConfig(),
		Logger:   logger.New(logger.Options{ServiceName: "auth-test", Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	ctx := context.Background()
	if _, err := svc.Signup(ctx, SignupRequest{Name: "Meera Rao", Email: "meera@example.com", Password: "loom-and-thread"}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	users, err := repo.Users(ctx)
	if err != nil {
		t.Fatalf("users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected one user, got %d", len(users))
	}
	if users[0].PasswordHash == "loom-and-thread" {
		t.Fatal("password stored in plaintext")
	}
	if users[0].PasswordHash == "" {
		t.Fatal("expected password hash")
	}
}
