package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, and the atomic quota counter.
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

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.UserID, &u.Login, &u.PasswordHash, &u.Name, &u.UsedStorage, &u.AssignedStorage, &u.CreatedAt)
	return u, err
}

// CreateUser persists a new account and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrLoginAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Login, user.PasswordHash, user.Name, user.AssignedStorage)

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("login", user.Login).Msg("error creating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrLoginAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindUserByLogin retrieves the account whose login matches. An empty result
// set maps to [ErrNoUserWasFound].
func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	log := logger.FromContext(ctx)

	found, err := scanUser(r.db.QueryRowContext(ctx, findUserByLogin, login))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByLogin").Str("login", login).Msg("error finding user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// GetUser retrieves the account by id.
func (r *userRepository) GetUser(ctx context.Context, userID string) (models.User, error) {
	log := logger.FromContext(ctx)

	found, err := scanUser(r.db.QueryRowContext(ctx, getUser, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.GetUser").Str("user_id", userID).Msg("error getting user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// DebitStorage adds n verified bytes to the user's counter. The increment is
// evaluated by the database (used_storage = used_storage + n), so two
// concurrent confirms cannot lose an update.
func (r *userRepository) DebitStorage(ctx context.Context, userID string, n int64) (models.User, error) {
	return r.adjustStorage(ctx, debitStorage, userID, n, "DebitStorage")
}

// RefundStorage subtracts n bytes from the user's counter, clamped to zero
// by GREATEST so the invariant used_storage >= 0 holds even if the store
// and the counter have drifted.
func (r *userRepository) RefundStorage(ctx context.Context, userID string, n int64) (models.User, error) {
	return r.adjustStorage(ctx, refundStorage, userID, n, "RefundStorage")
}

func (r *userRepository) adjustStorage(ctx context.Context, query, userID string, n int64, op string) (models.User, error) {
	log := logger.FromContext(ctx)

	updated, err := scanUser(r.db.QueryRowContext(ctx, query, userID, n))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).
			Str("func", "*userRepository."+op).
			Str("user_id", userID).
			Int64("bytes", n).
			Msg("error adjusting used storage")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}
