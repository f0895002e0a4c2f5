package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mediamz/accounts/internal/logger"
	"github.com/mediamz/accounts/internal/store"
	"github.com/mediamz/accounts/internal/utils"
	"github.com/mediamz/accounts/models"
)

// Validation limits for user attributes.
const (
	minNameLen     = 3
	minPasswordLen = 6
)

// defaultPageSize is the page size used when a caller requests a page but
// supplies a non-positive page_size.
const defaultPageSize = 10

// userService is the concrete implementation of UserService.
type userService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

// NewUserService constructs a UserService wired to the given UserRepository.
func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// CreateUser validates req, hashes the optional password, and persists a
// new user account.
//
// Validation rules:
//   - Name is required and must be at least 3 characters after trimming.
//   - Email is required and must contain "@".
//   - Password, when provided, must be at least 6 characters.
//
// Returns the persisted user (with server-assigned ID and CreatedAt) or:
//   - ErrInvalidDataProvided on any validation failure.
//   - A wrapped storage error if persistence fails (e.g. name already
//     taken — see store.ErrUserAlreadyExists).
func (s *userService) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)

	if len(name) < minNameLen || email == "" || !strings.Contains(email, "@") {
		log.Error().Str("name", name).Str("email", email).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}
	if req.Password != "" && len(req.Password) < minPasswordLen {
		log.Error().Str("name", name).Msg("password is too short")
		return models.User{}, ErrInvalidDataProvided
	}

	user := models.User{
		Name:  name,
		Email: email,
		Phone: strings.TrimSpace(req.Phone),
	}

	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			log.Err(err).Msg("password hashing failed")
			return models.User{}, fmt.Errorf("password hashing failed: %w", err)
		}
		user.PasswordHash = hash
	}

	createdUser, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("name", name).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return createdUser, nil
}

// ListUsers returns a page of users together with the total record count.
// A page value of zero or less returns the full collection as page 1.
// A positive page with a non-positive page size falls back to
// defaultPageSize, so pagination is never silently disabled.
func (s *userService) ListUsers(ctx context.Context, page, pageSize int) (models.UserPage, error) {
	log := logger.FromContext(ctx)

	if page > 0 && pageSize <= 0 {
		pageSize = defaultPageSize
	}

	users, err := s.userRepository.ListUsers(ctx, page, pageSize)
	if err != nil {
		log.Err(err).Msg("listing users failed")
		return models.UserPage{}, fmt.Errorf("listing users failed: %w", err)
	}

	total, err := s.userRepository.CountUsers(ctx)
	if err != nil {
		log.Err(err).Msg("counting users failed")
		return models.UserPage{}, fmt.Errorf("counting users failed: %w", err)
	}

	if page < 1 {
		page = 1
	}

	return models.UserPage{
		List:       users,
		Page:       page,
		TotalCount: total,
	}, nil
}

// UpdateUser applies a partial update to an existing user.
//
// Only the non-nil fields of patch change; a new password is validated
// (at least 6 characters) and re-hashed before it reaches the store.
//
// Returns the updated user or:
//   - ErrInvalidDataProvided if the patch is empty or the password is too
//     short.
//   - A wrapped storage error for unknown IDs (store.ErrUserNotFound).
func (s *userService) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (models.User, error) {
	log := logger.FromContext(ctx)

	if patch.IsEmpty() {
		log.Error().Int64("id", id).Msg("empty user patch provided")
		return models.User{}, ErrInvalidDataProvided
	}

	if patch.Password != nil {
		if len(*patch.Password) < minPasswordLen {
			log.Error().Int64("id", id).Msg("password is too short")
			return models.User{}, ErrInvalidDataProvided
		}

		hash, err := utils.HashPassword(*patch.Password)
		if err != nil {
			log.Err(err).Msg("password hashing failed")
			return models.User{}, fmt.Errorf("password hashing failed: %w", err)
		}
		patch.Password = &hash
	}

	updatedUser, err := s.userRepository.UpdateUser(ctx, id, patch)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("user update ended with error")
		return models.User{}, fmt.Errorf("user update ended with error: %w", err)
	}

	return updatedUser, nil
}
