package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mediamz/accounts/internal/logger"
	"github.com/mediamz/accounts/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db:     &DB{DB: db, dialect: "pgx", logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRows(users ...models.User) *sqlmock.Rows {
	rows := sqlmock.NewRows(userColumns)
	for _, u := range users {
		rows.AddRow(u.ID, u.Name, u.Email, u.Phone, u.Locked, u.PasswordHash, u.CreatedAt)
	}
	return rows
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Name:  "john",
		Email: "john@example.com",
		Phone: "555-0100",
	}

	stored := user
	stored.ID = 1
	stored.CreatedAt = time.Now()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Name, user.Email, user.Phone, user.Locked, user.PasswordHash).
		WillReturnRows(userRows(stored))

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected ID=1, got %d", created.ID)
	}
	if created.Name != user.Name {
		t.Errorf("expected name %s, got %s", user.Name, created.Name)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be populated")
	}
}

func TestCreateUser_UniqueViolation_Postgres(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Name: "john"})
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UniqueViolation_SQLite(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("UNIQUE constraint failed: users.name"))

	_, err := repo.CreateUser(context.Background(), models.User{Name: "john"})
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{Name: "john"})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindUserByName_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	want := models.User{ID: 7, Name: "alice", Email: "alice@example.com", CreatedAt: time.Now()}

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("alice").
		WillReturnRows(userRows(want))

	got, err := repo.FindUserByName(context.Background(), "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != want.ID || got.Name != want.Name {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestFindUserByName_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByName(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFindUserByName_ScanError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("alice").
		WillReturnError(errors.New("db network error"))

	_, err := repo.FindUserByName(context.Background(), "alice")
	if !errors.Is(err, ErrScanningRow) {
		t.Fatalf("expected ErrScanningRow, got %v", err)
	}
}

func TestFindUserByID_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByID(context.Background(), 404)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestListUsers_All(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	users := []models.User{
		{ID: 1, Name: "alice", Email: "alice@example.com", CreatedAt: time.Now()},
		{ID: 2, Name: "bob", Email: "bob@example.com", CreatedAt: time.Now()},
	}

	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY user_id").
		WillReturnRows(userRows(users...))

	got, err := repo.ListUsers(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 users, got %d", len(got))
	}
	if got[0].Name != "alice" || got[1].Name != "bob" {
		t.Errorf("unexpected order: %+v", got)
	}
}

func TestListUsers_Empty(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY user_id").
		WillReturnRows(userRows())

	got, err := repo.ListUsers(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected empty non-nil slice")
	}
	if len(got) != 0 {
		t.Fatalf("expected no users, got %d", len(got))
	}
}

func TestListUsers_Paginated(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY user_id LIMIT 10 OFFSET 10").
		WillReturnRows(userRows(models.User{ID: 11, Name: "kate", CreatedAt: time.Now()}))

	got, err := repo.ListUsers(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != 11 {
		t.Fatalf("unexpected page contents: %+v", got)
	}
}

func TestCountUsers(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.CountUsers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 42 {
		t.Errorf("expected count=42, got %d", count)
	}
}

func TestUpdateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	newEmail := "new@example.com"
	updated := models.User{ID: 3, Name: "carol", Email: newEmail, CreatedAt: time.Now()}

	mock.ExpectQuery("UPDATE users SET email").
		WithArgs(newEmail, int64(3)).
		WillReturnRows(userRows(updated))

	got, err := repo.UpdateUser(context.Background(), 3, models.UserPatch{Email: &newEmail})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != newEmail {
		t.Errorf("expected email %s, got %s", newEmail, got.Email)
	}
}

func TestUpdateUser_EmptyPatch(t *testing.T) {
	repo, _, db := newTestUserRepo(t)
	defer db.Close()

	_, err := repo.UpdateUser(context.Background(), 3, models.UserPatch{})
	if !errors.Is(err, ErrEmptyUpdate) {
		t.Fatalf("expected ErrEmptyUpdate, got %v", err)
	}
}

func TestUpdateUser_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	newEmail := "new@example.com"

	mock.ExpectQuery("UPDATE users SET email").
		WithArgs(newEmail, int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateUser(context.Background(), 404, models.UserPatch{Email: &newEmail})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
