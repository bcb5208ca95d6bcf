package models

import "github.com/golang-jwt/jwt/v5"

// Role identifies which account table a token refers to.
type Role string

const (
	RoleMentor  Role = "mentor"
	RoleStudent Role = "student"
)

// SignupRequest holds the fields for creating an account.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SigninRequest holds credentials for authenticating an account.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// JWTClaims is the access-token payload. ExpiresAt is omitted when the
// configured expiration is zero.
type JWTClaims struct {
	AccountID string `json:"account_id"`
	Role      Role   `json:"role"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}
