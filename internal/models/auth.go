package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims represents the JWT payload for console access tokens.
type JWTClaims struct {
	UserID   string `json:"user_id"`
	Role     Role   `json:"role"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	jwt.RegisteredClaims
}

// RequestMeta carries caller context recorded alongside audit entries.
type RequestMeta struct {
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}
