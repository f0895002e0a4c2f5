package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/mediamz/accounts/models"
)

const (
	createUser = `INSERT INTO users (name, email, phone, locked, password_hash)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING user_id, name, email, phone, locked, password_hash, created_at;`

	findUserByName = `SELECT user_id, name, email, phone, locked, password_hash, created_at
    FROM users
    WHERE name = $1;`

	findUserByID = `SELECT user_id, name, email, phone, locked, password_hash, created_at
    FROM users
    WHERE user_id = $1;`

	countUsers = `SELECT COUNT(*) FROM users;`
)

// userColumns is the canonical column order used by every SELECT and
// RETURNING clause in this repository. Scan destinations must match it.
var userColumns = []string{"user_id", "name", "email", "phone", "locked", "password_hash", "created_at"}

// psq builds queries with PostgreSQL-style $N placeholders, which both the
// pgx and the mattn/go-sqlite3 drivers accept.
var psq = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListUsersQuery builds the paginated user listing query. A page value
// of zero or less disables LIMIT/OFFSET and selects the whole table.
func buildListUsersQuery(page, pageSize int) (string, []any, error) {
	builder := psq.
		Select(userColumns...).
		From(models.User{}.TableName()).
		OrderBy("user_id")

	if page > 0 && pageSize > 0 {
		builder = builder.
			Limit(uint64(pageSize)).
			Offset(uint64((page - 1) * pageSize))
	}

	return builder.ToSql()
}

// buildUpdateUserQuery dynamically builds the UPDATE statement for a user
// patch. Only non-nil patch fields produce SET clauses. Returns
// [ErrEmptyUpdate] when the patch carries no changes.
//
// The patch's Password field is expected to already hold the hashed
// encoding; plain-text passwords never reach this layer.
func buildUpdateUserQuery(id int64, patch models.UserPatch) (string, []any, error) {
	if patch.IsEmpty() {
		return "", nil, ErrEmptyUpdate
	}

	builder := psq.Update(models.User{}.TableName())

	if patch.Email != nil {
		builder = builder.Set("email", *patch.Email)
	}
	if patch.Phone != nil {
		builder = builder.Set("phone", *patch.Phone)
	}
	if patch.Password != nil {
		builder = builder.Set("password_hash", *patch.Password)
	}
	if patch.Locked != nil {
		builder = builder.Set("locked", *patch.Locked)
	}

	builder = builder.
		Where(sq.Eq{"user_id": id}).
		Suffix("RETURNING user_id, name, email, phone, locked, password_hash, created_at")

	return builder.ToSql()
}
