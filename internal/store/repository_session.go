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

// sessionRepository is the PostgreSQL-backed implementation of
// [SessionRepository]. Sessions make stateless access tokens revocable: the
// auth middleware looks the session row up on every private request.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

func scanSession(row *sql.Row) (models.Session, error) {
	var s models.Session
	err := row.Scan(&s.SessionID, &s.UserID, &s.RefreshToken, &s.Revoked, &s.ExpiresAt, &s.CreatedAt)
	return s, err
}

func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) (models.Session, error) {
	log := logger.FromContext(ctx)

	created, err := scanSession(r.db.QueryRowContext(ctx, createSession, session.UserID, session.RefreshToken, session.ExpiresAt))
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Str("user_id", session.UserID).Msg("error creating session")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.Session{}, ErrNoUserWasFound
		default:
			return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

func (r *sessionRepository) FindSessionByRefreshToken(ctx context.Context, refreshToken string) (models.Session, error) {
	log := logger.FromContext(ctx)

	found, err := scanSession(r.db.QueryRowContext(ctx, findSessionByRefreshToken, refreshToken))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}
		log.Err(err).Str("func", "*sessionRepository.FindSessionByRefreshToken").Msg("error finding session")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

func (r *sessionRepository) GetSession(ctx context.Context, sessionID string) (models.Session, error) {
	log := logger.FromContext(ctx)

	found, err := scanSession(r.db.QueryRowContext(ctx, getSession, sessionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}
		log.Err(err).Str("func", "*sessionRepository.GetSession").Str("session_id", sessionID).Msg("error getting session")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// RotateSession swaps the refresh token in place. The WHERE clause excludes
// revoked and expired sessions, so a stale or stolen refresh token cannot
// resurrect a session; expiresAt is a Unix timestamp in seconds.
func (r *sessionRepository) RotateSession(ctx context.Context, sessionID, newRefreshToken string, expiresAt int64) (models.Session, error) {
	log := logger.FromContext(ctx)

	rotated, err := scanSession(r.db.QueryRowContext(ctx, rotateSession, sessionID, newRefreshToken, expiresAt))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}
		log.Err(err).Str("func", "*sessionRepository.RotateSession").Str("session_id", sessionID).Msg("error rotating session")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return rotated, nil
}

func (r *sessionRepository) RevokeSession(ctx context.Context, sessionID string) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, revokeSession, sessionID)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.RevokeSession").Str("session_id", sessionID).Msg("error revoking session")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}

	return nil
}
