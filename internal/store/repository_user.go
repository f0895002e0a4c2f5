package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mediamz/accounts/internal/logger"
	"github.com/mediamz/accounts/models"
)

// userRepository is the SQL-backed implementation of [UserRepository].
// It handles user account creation, lookup, listing, and partial updates
// against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (ID, CreatedAt).
//
// The INSERT uses the [createUser] query which returns all columns via a
// RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - unique-constraint violation on name → [ErrUserAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Name, user.Email, user.Phone, user.Locked, user.PasswordHash)

	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.Locked, &user.PasswordHash, &user.CreatedAt); err != nil {
		if r.db.isUniqueViolation(err) {
			return models.User{}, ErrUserAlreadyExists
		}

		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// FindUserByName retrieves the user record whose Name matches name.
// Returns [ErrUserNotFound] when no such record exists.
func (r *userRepository) FindUserByName(ctx context.Context, name string) (models.User, error) {
	return r.findOne(ctx, findUserByName, name)
}

// FindUserByID retrieves the user record with the given ID.
// Returns [ErrUserNotFound] when no such record exists.
func (r *userRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	return r.findOne(ctx, findUserByID, id)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	row := r.db.QueryRowContext(ctx, query, arg)

	if err := row.Scan(&foundUser.ID, &foundUser.Name, &foundUser.Email, &foundUser.Phone, &foundUser.Locked, &foundUser.PasswordHash, &foundUser.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", "*userRepository.findOne").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return foundUser, nil
}

// ListUsers returns users ordered by ID. A page value of zero or less
// returns the full collection; otherwise LIMIT/OFFSET pagination is
// applied with the given page size.
func (r *userRepository) ListUsers(ctx context.Context, page, pageSize int) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersQuery(page, pageSize)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error building list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error executing list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.Locked, &user.PasswordHash, &user.CreatedAt); err != nil {
			log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// CountUsers returns the total number of user records in the store.
func (r *userRepository) CountUsers(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	var count int64
	if err := r.db.QueryRowContext(ctx, countUsers).Scan(&count); err != nil {
		log.Err(err).Str("func", "*userRepository.CountUsers").Msg("error counting users")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// UpdateUser applies the non-nil fields of patch to the user with the
// given ID and returns the updated record.
//
// Error handling:
//   - empty patch → [ErrEmptyUpdate].
//   - no matching row → [ErrUserNotFound].
//   - unique-constraint violation → [ErrUserAlreadyExists].
func (r *userRepository) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(id, patch)
	if err != nil {
		if errors.Is(err, ErrEmptyUpdate) {
			return models.User{}, err
		}

		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error building update query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.User
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&updated.ID, &updated.Name, &updated.Email, &updated.Phone, &updated.Locked, &updated.PasswordHash, &updated.CreatedAt); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return models.User{}, ErrUserNotFound
		case r.db.isUniqueViolation(err):
			return models.User{}, ErrUserAlreadyExists
		default:
			log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error: scanning error")
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return updated, nil
}
