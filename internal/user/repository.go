package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/cortexsupport/cortex-backend/internal/database"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
)

// UpdateFields carries a partial profile update; nil fields are left unchanged
type UpdateFields struct {
	Email          *string
	Username       *string
	FullName       *string
	HashedPassword *string
}

// Repository handles user data persistence
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection(database.UsersCollection)}
}

// Create inserts a new user document
func (r *Repository) Create(ctx context.Context, u *User) error {
	_, err := r.collection.InsertOne(ctx, mapModelToDBUser(u))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return mapDuplicateKeyError(err)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	dbUser := new(database.User)
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(dbUser)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByEmail retrieves a user by email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	dbUser := new(database.User)
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(dbUser)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByUsername retrieves a user by username
func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	dbUser := new(database.User)
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(dbUser)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// List returns a page of users ordered by creation time, plus the total count
func (r *Repository) List(ctx context.Context, skip, limit int64) ([]*User, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	var dbUsers []*database.User
	if err := cursor.All(ctx, &dbUsers); err != nil {
		return nil, 0, fmt.Errorf("failed to decode users: %w", err)
	}

	users := make([]*User, 0, len(dbUsers))
	for _, dbu := range dbUsers {
		users = append(users, mapDBUserToModel(dbu))
	}

	return users, total, nil
}

// Update applies a partial update and returns the updated user
func (r *Repository) Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if fields.Email != nil {
		set["email"] = *fields.Email
	}
	if fields.Username != nil {
		set["username"] = *fields.Username
	}
	if fields.FullName != nil {
		set["full_name"] = *fields.FullName
	}
	if fields.HashedPassword != nil {
		set["hashed_password"] = *fields.HashedPassword
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	dbUser := new(database.User)
	err := r.collection.
		FindOneAndUpdate(ctx, bson.M{"_id": id.String()}, bson.M{"$set": set}, opts).
		Decode(dbUser)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, mapDuplicateKeyError(err)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// UpdateLastLogin stamps a successful login on the user document
func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, when time.Time) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$set": bson.M{"last_login": when}},
	)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a user document
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// mapDuplicateKeyError translates a unique index violation into the matching
// sentinel; the server names the violated index in the error message
func mapDuplicateKeyError(err error) error {
	if strings.Contains(err.Error(), "username_1") {
		return ErrDuplicateUsername
	}
	return ErrDuplicateEmail
}

// mapModelToDBUser converts domain model to database model
func mapModelToDBUser(u *User) *database.User {
	return &database.User{
		ID:             u.ID.String(),
		Email:          u.Email,
		Username:       u.Username,
		FullName:       u.FullName,
		HashedPassword: u.HashedPassword,
		Role:           u.Role,
		Disabled:       u.Disabled,
		IsSuperuser:    u.IsSuperuser,
		LastLogin:      u.LastLogin,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// mapDBUserToModel converts database model to domain model
func mapDBUserToModel(dbu *database.User) *User {
	id, _ := uuid.Parse(dbu.ID)
	return &User{
		ID:             id,
		Email:          dbu.Email,
		Username:       dbu.Username,
		FullName:       dbu.FullName,
		HashedPassword: dbu.HashedPassword,
		Role:           dbu.Role,
		Disabled:       dbu.Disabled,
		IsSuperuser:    dbu.IsSuperuser,
		LastLogin:      dbu.LastLogin,
		CreatedAt:      dbu.CreatedAt,
		UpdatedAt:      dbu.UpdatedAt,
	}
}
