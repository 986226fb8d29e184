package store

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nvoronin/inkwell/internal/logger"
)

// newMockDB wraps a sqlmock connection in the store's DB handle.
func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	return &DB{DB: conn, logger: logger.Nop()}, mock, conn
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}
