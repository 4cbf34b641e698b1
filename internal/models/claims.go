package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims is the JWT payload attached to authenticated requests.
// Downstream services trust UserID as-is; authentication happens only at
// the middleware boundary.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	TokenVersion int    `json:"token_version"`
}
