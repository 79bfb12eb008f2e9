package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"quiz-folio/internal/config"
	"quiz-folio/internal/domain"
	"quiz-folio/internal/dto"
	"quiz-folio/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	tokenTypeAccess   = "access"
	tokenTypeRefresh  = "refresh"
	tokenTypeBearer   = "Bearer"
	minSecretKeyBytes = 32
)

var (
	ErrInvalidAuthState      = errors.New("invalid oauth state")
	ErrFailedToExchangeToken = errors.New("failed to exchange oauth token")
	ErrFailedToGetUserInfo   = errors.New("failed to get user info from google")
	ErrInvalidJWTToken       = errors.New("invalid jwt token")
	ErrAdminNotAllowed       = errors.New("email is not allowed to access the admin api")
)

// AuthService signs admins in with Google and issues JWTs.
type AuthService interface {
	GetGoogleLoginURL(state string) string
	HandleGoogleCallback(ctx context.Context, code string, receivedState string, expectedState string) (*dto.TokenResponse, *dto.AdminProfileResponse, error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(ctx context.Context, admin *dto.AdminProfileResponse, ttl time.Duration, tokenType string) (string, error)
	// RefreshToken rotates the pair. The email must still be allowed.
	RefreshToken(ctx context.Context, refreshTokenString string) (*dto.TokenResponse, error)
	IsAllowed(email string) bool
}

type authServiceImpl struct {
	oauth2Config *oauth2.Config
	jwtCfg       config.JWTConfig
	allowed      map[string]struct{}
	userInfoURL  string
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(jwtCfg config.JWTConfig, oauthCfg config.GoogleOAuthConfig, adminCfg config.AdminConfig) (AuthService, error) {
	if len(jwtCfg.SecretKey) < minSecretKeyBytes {
		return nil, fmt.Errorf("jwt secret key must be at least %d bytes long", minSecretKeyBytes)
	}

	allowed := make(map[string]struct{}, len(adminCfg.AllowedEmails))
	for _, email := range adminCfg.AllowedEmails {
		if email = domain.NormalizeName(email); email != "" {
			allowed[email] = struct{}{}
		}
	}
	if len(allowed) == 0 {
		logger.Get().Warn("No admin emails are allowed, admin sign-in is disabled")
	}

	return &authServiceImpl{
		oauth2Config: &oauth2.Config{
			ClientID:     oauthCfg.ClientID,
			ClientSecret: oauthCfg.ClientSecret,
			RedirectURL:  oauthCfg.RedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
		jwtCfg:      jwtCfg,
		allowed:     allowed,
		userInfoURL: googleUserInfoURL,
	}, nil
}

func (s *authServiceImpl) GetGoogleLoginURL(state string) string {
	return s.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (s *authServiceImpl) IsAllowed(email string) bool {
	_, ok := s.allowed[domain.NormalizeName(email)]
	return ok
}

func (s *authServiceImpl) HandleGoogleCallback(ctx context.Context, code string, receivedState string, expectedState string) (*dto.TokenResponse, *dto.AdminProfileResponse, error) {
	if receivedState == "" || receivedState != expectedState {
		return nil, nil, domain.NewError(domain.CodeUnauthorized, "Invalid oauth state", ErrInvalidAuthState)
	}

	googleToken, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, nil, domain.NewError(domain.CodeUnauthorized, "Failed to exchange oauth code", fmt.Errorf("%w: %v", ErrFailedToExchangeToken, err))
	}

	userInfo, err := s.fetchUserInfo(ctx, googleToken)
	if err != nil {
		return nil, nil, domain.NewError(domain.CodeUnauthorized, "Failed to get google profile", err)
	}
	if !userInfo.VerifiedEmail || !s.IsAllowed(userInfo.Email) {
		logger.Get().Warn("Rejected admin sign-in", zap.String("email", userInfo.Email), zap.Bool("verified", userInfo.VerifiedEmail))
		return nil, nil, domain.NewError(domain.CodeUnauthorized, "Email is not allowed to sign in", ErrAdminNotAllowed)
	}

	admin := &dto.AdminProfileResponse{Email: domain.NormalizeName(userInfo.Email), Name: userInfo.Name}
	tokens, err := s.issuePair(ctx, admin)
	if err != nil {
		return nil, nil, err
	}

	logger.Get().Info("Admin signed in via Google OAuth", zap.String("email", admin.Email))
	return tokens, admin, nil
}

func (s *authServiceImpl) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*dto.GoogleUserInfo, error) {
	client := s.oauth2Config.Client(ctx, token)
	resp, err := client.Get(s.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetUserInfo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrFailedToGetUserInfo, resp.StatusCode)
	}

	var userInfo dto.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	if userInfo.Email == "" {
		return nil, errors.New("google user info is incomplete")
	}
	return &userInfo, nil
}

func (s *authServiceImpl) issuePair(ctx context.Context, admin *dto.AdminProfileResponse) (*dto.TokenResponse, error) {
	accessToken, err := s.CreateJWT(ctx, admin, s.jwtCfg.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return nil, domain.NewInternalError("Failed to create access token", err)
	}
	refreshToken, err := s.CreateJWT(ctx, admin, s.jwtCfg.RefreshTokenTTL, tokenTypeRefresh)
	if err != nil {
		return nil, domain.NewInternalError("Failed to create refresh token", err)
	}
	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    tokenTypeBearer,
		ExpiresIn:    int64(s.jwtCfg.AccessTokenTTL.Seconds()),
	}, nil
}

func (s *authServiceImpl) CreateJWT(ctx context.Context, admin *dto.AdminProfileResponse, ttl time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		Email:     admin.Email,
		Name:      admin.Name,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   admin.Email,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.SecretKey))
}

func snippet(token string) string {
	return token[:min(len(token), 20)] + "..."
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtCfg.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Warn("JWT token expired", zap.String("token_snippet", snippet(tokenString)))
		} else {
			logger.Get().Warn("JWT validation failed", zap.Error(err), zap.String("token_snippet", snippet(tokenString)))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidJWTToken
}

func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshTokenString string) (*dto.TokenResponse, error) {
	claims, err := s.ValidateJWT(ctx, refreshTokenString)
	if err != nil {
		return nil, domain.NewError(domain.CodeUnauthorized, "Invalid refresh token", err)
	}
	if claims.TokenType != tokenTypeRefresh {
		return nil, domain.NewUnauthorizedError("Not a refresh token")
	}
	if !s.IsAllowed(claims.Email) {
		return nil, domain.NewError(domain.CodeUnauthorized, "Email is no longer allowed", ErrAdminNotAllowed)
	}

	tokens, err := s.issuePair(ctx, &dto.AdminProfileResponse{Email: claims.Email, Name: claims.Name})
	if err != nil {
		return nil, err
	}
	logger.Get().Info("JWT token refreshed", zap.String("email", claims.Email))
	return tokens, nil
}

// IsAccessToken reports whether claims came from an access token.
func IsAccessToken(claims *dto.AuthClaims) bool {
	return claims != nil && strings.EqualFold(claims.TokenType, tokenTypeAccess)
}
