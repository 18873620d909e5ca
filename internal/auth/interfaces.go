package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cortexsupport/cortex-backend/internal/user"
)

// TokenService defines the interface for token creation and validation.
// The production implementation is JWTService (HS256).
type TokenService interface {
	CreateToken(userID uuid.UUID, email string, duration time.Duration) (string, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// UserStore is the slice of user persistence the auth flows need
type UserStore interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, when time.Time) error
}
