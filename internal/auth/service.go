package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/cortexsupport/cortex-backend/internal/crypto"
	"github.com/cortexsupport/cortex-backend/internal/logging"
	"github.com/cortexsupport/cortex-backend/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserDisabled       = errors.New("user account is disabled")
)

// AuthTokens is the token pair returned by login and refresh
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// RegisterParams carries the fields accepted at registration
type RegisterParams struct {
	Email    string
	Username string
	Password string
	FullName *string
}

// Service handles authentication business logic
type Service struct {
	userRepo             UserStore
	authRepo             RefreshTokenRepository
	tokenService         TokenService
	logger               *logging.Logger
	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration
}

func NewService(
	userRepo UserStore,
	authRepo RefreshTokenRepository,
	tokenService TokenService,
	logger *logging.Logger,
	accessTokenDuration time.Duration,
	refreshTokenDuration time.Duration,
) *Service {
	return &Service{
		userRepo:             userRepo,
		authRepo:             authRepo,
		tokenService:         tokenService,
		logger:               logger,
		accessTokenDuration:  accessTokenDuration,
		refreshTokenDuration: refreshTokenDuration,
	}
}

// Register creates a new user account
func (s *Service) Register(ctx context.Context, params RegisterParams) (*user.User, error) {
	// Validate input
	if err := user.ValidateEmail(params.Email); err != nil {
		return nil, err
	}
	if err := user.ValidateUsername(params.Username); err != nil {
		return nil, err
	}
	if err := user.ValidatePassword(params.Password); err != nil {
		return nil, err
	}
	if err := user.ValidateFullName(params.FullName); err != nil {
		return nil, err
	}

	// Hash password using argon2id
	passwordHash, err := crypto.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	newUser := &user.User{
		ID:             uuid.New(),
		Email:          params.Email,
		Username:       params.Username,
		FullName:       params.FullName,
		HashedPassword: passwordHash,
		Role:           user.RoleUser,
		Disabled:       false,
		IsSuperuser:    false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) || errors.Is(err, user.ErrDuplicateUsername) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", newUser.ID, "username", newUser.Username)

	return newUser, nil
}

// Login authenticates a user and returns a token pair.
// The login identifier may be a username or an email address.
func (s *Service) Login(ctx context.Context, login, password string) (*AuthTokens, error) {
	// Validate input
	if login == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	existingUser, err := s.userRepo.GetByUsername(ctx, login)
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		if _, mailErr := mail.ParseAddress(login); mailErr != nil {
			return nil, ErrInvalidCredentials
		}
		existingUser, err = s.userRepo.GetByEmail(ctx, login)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return nil, ErrInvalidCredentials
			}
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
	}

	// Verify password
	if !crypto.VerifyPassword(existingUser.HashedPassword, password) {
		return nil, ErrInvalidCredentials
	}

	// Disabled accounts authenticate but may not log in
	if existingUser.Disabled {
		return nil, ErrUserDisabled
	}

	// Don't fail the login if the stamp can't be written
	if err := s.userRepo.UpdateLastLogin(ctx, existingUser.ID, time.Now().UTC()); err != nil {
		s.logger.Warn("failed to update last login", "user_id", existingUser.ID, "error", err)
	}

	tokens, err := s.generateTokens(ctx, existingUser.ID, existingUser.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return tokens, nil
}

// RefreshAccessToken rotates a refresh token into a new token pair
func (s *Service) RefreshAccessToken(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	rt, err := s.authRepo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrRefreshTokenNotFound):
			return nil, ErrInvalidToken
		case errors.Is(err, ErrRefreshTokenRevoked),
			errors.Is(err, ErrRefreshTokenExpired),
			errors.Is(err, ErrInvalidToken):
			return nil, err
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	if !rt.IsValid() {
		if rt.IsRevoked() {
			return nil, ErrRefreshTokenRevoked
		}
		return nil, ErrRefreshTokenExpired
	}

	// Revoke the old token before issuing new ones to prevent reuse
	if err := s.authRepo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old refresh token: %w", err)
	}

	existingUser, err := s.userRepo.GetByID(ctx, rt.UserID)
	if err != nil {
		// The account may have been deleted since the token was issued
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if existingUser.Disabled {
		return nil, ErrUserDisabled
	}

	tokens, err := s.generateTokens(ctx, existingUser.ID, existingUser.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return tokens, nil
}

// Logout revokes the presented refresh token. Unknown tokens are treated as
// already logged out.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if err := s.authRepo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		if errors.Is(err, ErrRefreshTokenNotFound) {
			return nil
		}
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

// generateTokens creates both access and refresh tokens
func (s *Service) generateTokens(ctx context.Context, userID uuid.UUID, email string) (*AuthTokens, error) {
	// Generate access token (short-lived)
	accessToken, err := s.tokenService.CreateToken(userID, email, s.accessTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	// Generate refresh token (long-lived, opaque random string)
	refreshToken, err := generateRandomToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiresAt := time.Now().Add(s.refreshTokenDuration)
	if err := s.authRepo.StoreRefreshToken(ctx, userID, refreshToken, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.accessTokenDuration.Seconds()),
	}, nil
}

// generateRandomToken creates a cryptographically secure random token
func generateRandomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
