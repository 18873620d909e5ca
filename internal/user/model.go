package user

import (
	"time"

	"github.com/google/uuid"
)

// Roles a user document can carry. Registration always assigns RoleUser;
// RoleAdmin is granted out of band.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	Username       string     `json:"username"`
	FullName       *string    `json:"full_name,omitempty"`
	HashedPassword string     `json:"-"` // Never expose password hash in JSON
	Role           string     `json:"role"`
	Disabled       bool       `json:"disabled"`
	IsSuperuser    bool       `json:"is_superuser"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// List is a page of users with pagination metadata
type List struct {
	Items      []*User `json:"items"`
	Total      int64   `json:"total"`
	Page       int64   `json:"page"`
	PageSize   int64   `json:"pageSize"`
	TotalPages int64   `json:"totalPages"`
}
