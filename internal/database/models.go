package database

import "time"

// User is the persistence shape of a user document.
// The _id is the user's UUID stored as a string.
type User struct {
	ID             string     `bson:"_id"`
	Email          string     `bson:"email"`
	Username       string     `bson:"username"`
	FullName       *string    `bson:"full_name,omitempty"`
	HashedPassword string     `bson:"hashed_password"`
	Role           string     `bson:"role"`
	Disabled       bool       `bson:"disabled"`
	IsSuperuser    bool       `bson:"is_superuser"`
	LastLogin      *time.Time `bson:"last_login,omitempty"`
	CreatedAt      time.Time  `bson:"created_at"`
	UpdatedAt      time.Time  `bson:"updated_at"`
}
