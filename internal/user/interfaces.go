package user

import (
	"context"

	"github.com/google/uuid"
)

// Store is the persistence surface the profile service needs
type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	List(ctx context.Context, skip, limit int64) ([]*User, int64, error)
	Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TokenRevoker revokes every refresh token a user holds
type TokenRevoker interface {
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}
