package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/handloomhouse/storefront-backend/pkg/types"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	Email string
	Name  string
	Role  types.Role
	JTI   string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	Email string     `json:"email"`
	Name  string     `json:"name,omitempty"`
	Role  types.Role `json:"role"`
	jwt.RegisteredClaims
}
