package service

import (
	"context"

	"github.com/mediamz/accounts/models"
)

// AuthService owns credential verification and the JWT token lifecycle,
// including the development skip-auth bypass check.
type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// VerifySkipAuth reports whether the given "skip-auth-token" header
	// value grants access: the bypass must be configured and the values
	// must match exactly.
	VerifySkipAuth(headerValue string) bool
}

// UserService owns user account lifecycle operations and their
// validation rules.
type UserService interface {
	CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error)
	ListUsers(ctx context.Context, page, pageSize int) (models.UserPage, error)
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (models.User, error)
}
