package store

import (
	"context"

	"github.com/mediamz/accounts/models"
)

// UserRepository is the data-access contract for user account records.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByName(ctx context.Context, name string) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)

	// ListUsers returns users ordered by ID. A page value of zero or less
	// disables pagination and returns the full collection.
	ListUsers(ctx context.Context, page, pageSize int) ([]models.User, error)
	CountUsers(ctx context.Context) (int64, error)

	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (models.User, error)
}
