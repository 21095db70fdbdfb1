package dto

import "github.com/golang-jwt/jwt/v5"

// SignupRequest is the body of POST /api/auth/signup.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the authenticated identity plus a bearer token.
type LoginResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// AuthClaims are the JWT claims issued at login.
type AuthClaims struct {
	UserID    int64  `json:"uid"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}
