package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest carries admin credentials for token issuance. The binding
// tag covers gin's JSON binding, the validate tag the service-level check.
type LoginRequest struct {
	Username string `json:"username" binding:"required" validate:"required"`
	Password string `json:"password" binding:"required" validate:"required"`
}

// LoginResponse returns the issued bearer token.
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

// JWTClaims are the claims embedded in issued tokens.
type JWTClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
