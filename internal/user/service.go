package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cortexsupport/cortex-backend/internal/crypto"
	"github.com/cortexsupport/cortex-backend/internal/logging"
)

// ErrForbidden marks operations the requester is not allowed to perform
var ErrForbidden = errors.New("insufficient permissions")

// UpdateParams carries the optional profile fields a user may change
type UpdateParams struct {
	Email    *string
	Username *string
	FullName *string
	Password *string
}

// Service handles user profile business logic
type Service struct {
	repo   Store
	tokens TokenRevoker
	logger *logging.Logger
}

func NewService(repo Store, tokens TokenRevoker, logger *logging.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		logger: logger,
	}
}

// List returns a page of users. Superusers see everyone; everyone else
// sees only themselves.
func (s *Service) List(ctx context.Context, requester *User, skip, limit int64) (*List, error) {
	if requester.IsSuperuser {
		items, total, err := s.repo.List(ctx, skip, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}
		return newList(items, total, skip, limit), nil
	}

	items := []*User{}
	if skip == 0 {
		items = []*User{requester}
	}
	return newList(items, 1, skip, limit), nil
}

// Get returns a user by ID. Non-superusers may only fetch themselves.
func (s *Service) Get(ctx context.Context, requester *User, id uuid.UUID) (*User, error) {
	if id == requester.ID {
		return requester, nil
	}
	if !requester.IsSuperuser {
		return nil, ErrForbidden
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// UpdateMe applies a partial profile update for the current user
func (s *Service) UpdateMe(ctx context.Context, userID uuid.UUID, params UpdateParams) (*User, error) {
	fields := UpdateFields{}

	if params.Email != nil {
		if err := ValidateEmail(*params.Email); err != nil {
			return nil, err
		}
		fields.Email = params.Email
	}
	if params.Username != nil {
		if err := ValidateUsername(*params.Username); err != nil {
			return nil, err
		}
		fields.Username = params.Username
	}
	if params.FullName != nil {
		if err := ValidateFullName(params.FullName); err != nil {
			return nil, err
		}
		fields.FullName = params.FullName
	}
	if params.Password != nil {
		if err := ValidatePassword(*params.Password); err != nil {
			return nil, err
		}
		hash, err := crypto.HashPassword(*params.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		fields.HashedPassword = &hash
	}

	updated, err := s.repo.Update(ctx, userID, fields)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicateEmail) || errors.Is(err, ErrDuplicateUsername) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("user profile updated", "user_id", userID)

	return updated, nil
}

// DeleteMe removes the current user's account and revokes all their
// refresh tokens
func (s *Service) DeleteMe(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	// The account is already gone; log and continue
	if err := s.tokens.RevokeAllUserTokens(ctx, userID); err != nil {
		s.logger.Error("failed to revoke tokens for deleted user", "user_id", userID, "error", err)
	}

	s.logger.Info("user account deleted", "user_id", userID)

	return nil
}

func newList(items []*User, total, skip, limit int64) *List {
	if items == nil {
		items = []*User{}
	}

	totalPages := int64(0)
	if total > 0 && limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	page := int64(1)
	if limit > 0 {
		page = skip/limit + 1
	}

	return &List{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   limit,
		TotalPages: totalPages,
	}
}
