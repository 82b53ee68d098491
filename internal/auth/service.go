package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/handloomhouse/storefront-backend/pkg/auth"
	"github.com/handloomhouse/storefront-backend/pkg/config"
	"github.com/handloomhouse/storefront-backend/pkg/errors"
	"github.com/handloomhouse/storefront-backend/pkg/logger"
	"github.com/handloomhouse/storefront-backend/pkg/security"
	"github.com/handloomhouse/storefront-backend/pkg/types"
)

// Service handles account registration and the current session.
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (AuthResult, error)
	Login(ctx context.Context, req LoginRequest) (AuthResult, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (Session, error)
}

// ServiceParams wires the auth service dependencies.
type ServiceParams struct {
	Repo     Repo
	JWT      config.JWTConfig
	Password config.PasswordConfig
	Logger   *logger.Logger
	Now      func() time.Time
}

type service struct {
	repo     Repo
	jwt      config.JWTConfig
	password config.PasswordConfig
	logg     *logger.Logger
	now      func() time.Time
}

// NewService validates the wiring and returns the auth service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("auth repo is required")
	}
	if params.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		repo:     params.Repo,
		jwt:      params.JWT,
		password: params.Password,
		logg:     params.Logger,
		now:      now,
	}, nil
}

// Signup registers an account. Passwords are stored only as argon2id hashes.
func (s *service) Signup(ctx context.Context, req SignupRequest) (AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	role := req.Role
	if role == "" {
		role = types.RoleBuyer
	}
	if !role.IsValid() {
		return AuthResult{}, errors.New(errors.CodeValidation, fmt.Sprintf("unknown role %q", role)).
			WithDetails(map[string]string{"role": "is invalid"})
	}

	users, err := s.repo.Users(ctx)
	if err != nil {
		return AuthResult{}, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return AuthResult{}, errors.New(errors.CodeEmailExists, "an account with this email already exists")
		}
	}

	hash, err := security.HashPassword(req.Password, s.password)
	if err != nil {
		return AuthResult{}, errors.Wrap(errors.CodeInternal, err, "hashing password")
	}

	user := StoredUser{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    s.now(),
	}
	if err := s.repo.SaveUsers(ctx, append(users, user)); err != nil {
		return AuthResult{}, err
	}

	s.logg.Info(s.logg.WithUserEmail(ctx, email), "account registered")
	return s.openSession(ctx, user)
}

// Login verifies credentials. Unknown email and wrong password yield the
// same indistinguishable error.
func (s *service) Login(ctx context.Context, req LoginRequest) (AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	users, err := s.repo.Users(ctx)
	if err != nil {
		return AuthResult{}, err
	}

	authFailed := errors.New(errors.CodeAuthInvalid, "invalid email or password")
	for _, u := range users {
		if !strings.EqualFold(u.Email, email) {
			continue
		}
		ok, err := security.VerifyPassword(req.Password, u.PasswordHash)
		if err != nil || !ok {
			return AuthResult{}, authFailed
		}
		s.logg.Info(s.logg.WithUserEmail(ctx, email), "session opened")
		return s.openSession(ctx, u)
	}
	return AuthResult{}, authFailed
}

func (s *service) Logout(ctx context.Context) error {
	return s.repo.ClearSession(ctx)
}

func (s *service) Current(ctx context.Context) (Session, error) {
	session, found, err := s.repo.Session(ctx)
	if err != nil {
		return Session{}, err
	}
	if !found {
		return Session{}, errors.New(errors.CodeNotFound, "no active session")
	}
	return session, nil
}

func (s *service) openSession(ctx context.Context, user StoredUser) (AuthResult, error) {
	session := Session{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
	if err := s.repo.SaveSession(ctx, session); err != nil {
		return AuthResult{}, err
	}

	token, err := pkgauth.MintAccessToken(s.jwt, s.now(), pkgauth.AccessTokenPayload{
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	})
	if err != nil {
		return AuthResult{}, errors.Wrap(errors.CodeInternal, err, "minting access token")
	}
	return AuthResult{Session: session, Token: token}, nil
}
