package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"

	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, conn := newMockDB(t)
	repo := &userRepository{db: db, logger: logger.Nop()}
	return repo, mock, func() { conn.Close() }
}

func userRows(user models.User) *sqlmock.Rows {
	return sqlmock.
		NewRows([]string{"user_id", "login", "password_hash", "name", "used_storage", "assigned_storage", "created_at"}).
		AddRow(user.UserID, user.Login, user.PasswordHash, user.Name, user.UsedStorage, user.AssignedStorage, user.CreatedAt)
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, closeDB := newTestUserRepo(t)
	defer closeDB()

	want := models.User{
		UserID:          "user-1",
		Login:           "john",
		PasswordHash:    "hash",
		Name:            "John",
		AssignedStorage: models.DefaultAssignedStorage,
		CreatedAt:       time.Now(),
	}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(want.Login, want.PasswordHash, want.Name, want.AssignedStorage).
		WillReturnRows(userRows(want))

	created, err := repo.CreateUser(context.Background(), want)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != want.UserID {
		t.Errorf("expected UserID=%s, got %s", want.UserID, created.UserID)
	}
	if created.AssignedStorage != models.DefaultAssignedStorage {
		t.Errorf("expected assigned storage %d, got %d", models.DefaultAssignedStorage, created.AssignedStorage)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, closeDB := newTestUserRepo(t)
	defer closeDB()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Login: "john"})
	if !errors.Is(err, ErrLoginAlreadyExists) {
		t.Fatalf("expected ErrLoginAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, closeDB := newTestUserRepo(t)
	defer closeDB()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{Login: "john"})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindUserByLogin_NotFound(t *testing.T) {
	repo, mock, closeDB := newTestUserRepo(t)
	defer closeDB()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "login", "password_hash", "name", "used_storage", "assigned_storage", "created_at"}))

	_, err := repo.FindUserByLogin(context.Background(), "ghost")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestGetUser_Success(t *testing.T) {
	repo, mock, closeDB := newTestUserRepo(t)
	defer closeDB()

	want := models.User{UserID: "user-1", Login: "john", UsedStorage: 512, AssignedStorage: 1024}

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(want.UserID).
		WillReturnRows(userRows(want))

	found, err := repo.GetUser(context.Background(), want.UserID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UsedStorage != 512 || found.AssignedStorage != 1024 {
		t.Errorf("unexpected quota counters: used=%d assigned=%d", found.UsedStorage, found.AssignedStorage)
	}
}

func TestDebitStorage(t *testing.T) {
	repo, mock, closeDB := newTestUserRepo(t)
	defer closeDB()

	after := models.User{UserID: "user-1", UsedStorage: 1500, AssignedStorage: 2000}

	mock.ExpectQuery("UPDATE users").
		WithArgs("user-1", int64(500)).
		WillReturnRows(userRows(after))

	updated, err := repo.DebitStorage(context.Background(), "user-1", 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.UsedStorage != 1500 {
		t.Errorf("expected used storage 1500, got %d", updated.UsedStorage)
	}
}

func TestRefundStorage_UnknownUser(t *testing.T) {
	repo, mock, closeDB := newTestUserRepo(t)
	defer closeDB()

	mock.ExpectQuery("UPDATE users").
		WithArgs("ghost", int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "login", "password_hash", "name", "used_storage", "assigned_storage", "created_at"}))

	_, err := repo.RefundStorage(context.Background(), "ghost", 100)
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}
