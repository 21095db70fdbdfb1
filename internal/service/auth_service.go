package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"coursecraft/internal/config"
	"coursecraft/internal/domain"
	"coursecraft/internal/dto"
	"coursecraft/internal/logger"
	"coursecraft/internal/repository"
	"coursecraft/internal/repository/models"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTypeAccess = "access"

// ErrInvalidJWTToken is returned for tokens that fail validation.
var ErrInvalidJWTToken = errors.New("invalid jwt token")

// AuthService handles local account signup, login, and JWT issuance.
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) error
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	ValidateJWT(tokenString string) (*dto.AuthClaims, error)
}

type authServiceImpl struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) (AuthService, error) {
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("jwt secret is not configured")
	}
	return &authServiceImpl{
		userRepo:  userRepo,
		jwtSecret: []byte(cfg.Auth.JWTSecret),
		tokenTTL:  cfg.Auth.AccessTokenTTL,
	}, nil
}

// Signup registers a new local account. Usernames are unique.
func (s *authServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) error {
	if req.Username == "" || req.Password == "" {
		return domain.NewInvalidInputError("Username and password are required.")
	}

	existing, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return domain.NewInternalError("Failed to check username", err)
	}
	if existing != nil {
		return domain.NewDuplicateUserError(req.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.NewInternalError("Failed to hash password", err)
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Email:        sql.NullString{String: req.Email, Valid: req.Email != ""},
	}
	if _, err := s.userRepo.CreateUser(ctx, user); err != nil {
		return domain.NewInternalError("Sign-up failed", err)
	}

	logger.Get().Info("User registered", zap.String("username", req.Username))
	return nil
}

// Login verifies credentials and issues an access token. Both an unknown
// username and a wrong password produce the same error.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, domain.NewInvalidInputError("Username and password are required.")
	}

	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, domain.NewInternalError("Login failed", err)
	}
	if user == nil {
		return nil, domain.NewUnauthorizedError("Invalid username or password.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.NewUnauthorizedError("Invalid username or password.")
	}

	token, err := s.createJWT(user.ID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to issue token", err)
	}

	return &dto.LoginResponse{
		Status:   "success",
		Message:  "Logged in successfully!",
		UserID:   user.ID,
		Username: user.Username,
		Token:    token,
	}, nil
}

func (s *authServiceImpl) createJWT(userID int64) (string, error) {
	now := time.Now()
	claims := &dto.AuthClaims{
		UserID:    userID,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateJWT parses and verifies an access token, returning its claims.
func (s *authServiceImpl) ValidateJWT(tokenString string) (*dto.AuthClaims, error) {
	claims := &dto.AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidJWTToken
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidJWTToken
	}
	if claims.TokenType != tokenTypeAccess {
		return nil, ErrInvalidJWTToken
	}
	return claims, nil
}
