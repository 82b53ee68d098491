package auth

import (
	"time"

	"github.com/handloomhouse/storefront-backend/pkg/types"
)

// StoredUser is one registered account in the users list.
type StoredUser struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password_hash"`
	Role         types.Role `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Session is the signed-in user record kept under the user key.
type Session struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  types.Role `json:"role"`
}

// SignupRequest registers a new account.
type SignupRequest struct {
	Name     string     `json:"name" validate:"required,min=2"`
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=6"`
	Role     types.Role `json:"role,omitempty"`
}

// LoginRequest opens a session for an existing account.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is what signup and login hand back to the API layer.
type AuthResult struct {
	Session Session `json:"user"`
	Token   string  `json:"token"`
}
