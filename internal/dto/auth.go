package dto

import (
	"github.com/golang-jwt/jwt/v5"
)

// GoogleUserInfo holds user information obtained from Google.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// AuthClaims defines the custom claims for admin JWTs.
type AuthClaims struct {
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	TokenType string `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// TokenResponse represents the response containing access and refresh tokens.
// @Description Response body for authentication tokens
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// RefreshTokenRequest represents the request to refresh tokens.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AdminProfileResponse describes the signed-in admin.
type AdminProfileResponse struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// LoginResponse is returned by the OAuth callback
type LoginResponse struct {
	TokenResponse
	Admin AdminProfileResponse `json:"admin"`
}
