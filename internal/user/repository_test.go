package user

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func TestUserMappingRoundTrip(t *testing.T) {
	t.Parallel()

	fullName := "Alice Smith"
	lastLogin := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	u := &User{
		ID:             uuid.New(),
		Email:          "alice@example.com",
		Username:       "alice",
		FullName:       &fullName,
		HashedPassword: "$argon2id$...",
		Role:           RoleAdmin,
		Disabled:       true,
		IsSuperuser:    true,
		LastLogin:      &lastLogin,
		CreatedAt:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:      time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}

	dbu := mapModelToDBUser(u)
	assert.Equal(t, u.ID.String(), dbu.ID, "documents key on the UUID string")

	back := mapDBUserToModel(dbu)
	assert.Equal(t, u, back)
}

func TestMapDBUserToModel_OptionalFieldsAbsent(t *testing.T) {
	t.Parallel()

	u := &User{
		ID:        uuid.New(),
		Email:     "bob@example.com",
		Username:  "bob",
		Role:      RoleUser,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	back := mapDBUserToModel(mapModelToDBUser(u))
	assert.Nil(t, back.FullName)
	assert.Nil(t, back.LastLogin)
}

func TestMapDuplicateKeyError(t *testing.T) {
	t.Parallel()

	emailErr := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{
			Code:    11000,
			Message: "E11000 duplicate key error collection: cortexsupport.users index: email_1 dup key",
		}},
	}
	usernameErr := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{
			Code:    11000,
			Message: "E11000 duplicate key error collection: cortexsupport.users index: username_1 dup key",
		}},
	}

	require.True(t, mongo.IsDuplicateKeyError(emailErr))
	require.True(t, mongo.IsDuplicateKeyError(usernameErr))

	assert.ErrorIs(t, mapDuplicateKeyError(emailErr), ErrDuplicateEmail)
	assert.ErrorIs(t, mapDuplicateKeyError(usernameErr), ErrDuplicateUsername)
}
