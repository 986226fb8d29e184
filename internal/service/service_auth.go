package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nvoronin/inkwell/internal/config"
	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/internal/store"
	"github.com/nvoronin/inkwell/internal/utils"
	"github.com/nvoronin/inkwell/models"
)

// authService implements AuthService. Access tokens are stateless JWTs; the
// matching session row is what makes them revocable, so every validation
// path ends with a session lookup.
type authService struct {
	userRepository    store.UserRepository
	sessionRepository store.SessionRepository

	tokenSignKey    string
	tokenIssuer     string
	accessDuration  time.Duration
	refreshDuration time.Duration

	logger *logger.Logger
}

func NewAuthService(users store.UserRepository, sessions store.SessionRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:    users,
		sessionRepository: sessions,
		tokenSignKey:      cfg.TokenSignKey,
		tokenIssuer:       cfg.TokenIssuer,
		accessDuration:    cfg.AccessTokenDuration,
		refreshDuration:   cfg.RefreshTokenDuration,
		logger:            logger,
	}
}

// Register creates a new account with the default assigned quota and opens
// its first session.
//
// Returns ErrInvalidDataProvided on empty login or password, or a wrapped
// storage error (see store.ErrLoginAlreadyExists) from the repository.
func (a *authService) Register(ctx context.Context, user models.User) (models.User, models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		log.Error().Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, models.TokenPair{}, ErrInvalidDataProvided
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, models.TokenPair{}, fmt.Errorf("password hashing failed: %w", err)
	}
	user.Password = ""
	user.PasswordHash = string(hash)
	if user.AssignedStorage == 0 {
		user.AssignedStorage = models.DefaultAssignedStorage
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user creation ended with error")
		return models.User{}, models.TokenPair{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	pair, err := a.openSession(ctx, registeredUser.UserID)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}

	return registeredUser, pair, nil
}

// Login authenticates by login and password and opens a new session.
//
// Returns ErrInvalidDataProvided on empty credentials, a wrapped storage
// error when the account does not exist, or ErrWrongPassword when the
// password does not match.
func (a *authService) Login(ctx context.Context, login, password string) (models.User, models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if login == "" || password == "" {
		log.Error().Str("login", login).Msg("invalid credentials provided")
		return models.User{}, models.TokenPair{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByLogin(ctx, login)
	if err != nil {
		log.Err(err).Str("login", login).Msg("user search by login failed")
		return models.User{}, models.TokenPair{}, fmt.Errorf("user search by login failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(password)); err != nil {
		log.Error().Str("login", login).Msg("wrong password")
		return models.User{}, models.TokenPair{}, ErrWrongPassword
	}

	pair, err := a.openSession(ctx, foundUser.UserID)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}

	return foundUser, pair, nil
}

// Refresh rotates the presented refresh token. Rotation happens in one
// statement on the session row, so a stale token loses the race and gets
// ErrTokenIsExpiredOrInvalid rather than a second valid pair.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if refreshToken == "" {
		return models.TokenPair{}, ErrInvalidDataProvided
	}

	session, err := a.sessionRepository.FindSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		log.Err(err).Msg("refresh token lookup failed")
		return models.TokenPair{}, ErrTokenIsExpiredOrInvalid
	}
	if session.Revoked || session.ExpiresAt.Before(time.Now()) {
		log.Error().Str("sessionID", session.SessionID).Msg("refresh on revoked or expired session")
		return models.TokenPair{}, ErrTokenIsExpiredOrInvalid
	}

	newRefreshToken := newRefreshToken()
	expiresAt := time.Now().Add(a.refreshDuration).Unix()
	rotated, err := a.sessionRepository.RotateSession(ctx, session.SessionID, newRefreshToken, expiresAt)
	if err != nil {
		log.Err(err).Str("sessionID", session.SessionID).Msg("session rotation failed")
		return models.TokenPair{}, ErrTokenIsExpiredOrInvalid
	}

	access, err := utils.GenerateAccessToken(a.tokenIssuer, rotated.UserID, rotated.SessionID, a.accessDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Msg("access token generation failed")
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.TokenPair{AccessToken: access.SignedString, RefreshToken: rotated.RefreshToken}, nil
}

// Logout revokes the session behind the presented access token.
func (a *authService) Logout(ctx context.Context, sessionID string) error {
	log := logger.FromContext(ctx)

	if err := a.sessionRepository.RevokeSession(ctx, sessionID); err != nil {
		log.Err(err).Str("sessionID", sessionID).Msg("session revocation failed")
		return fmt.Errorf("session revocation failed: %w", err)
	}

	return nil
}

// ParseToken validates the JWT and then checks the session row. A valid
// signature is not enough: a revoked or expired session rejects the token.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	if token.SessionID == "" {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}
	session, err := a.sessionRepository.GetSession(ctx, token.SessionID)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}
	if session.Revoked || session.ExpiresAt.Before(time.Now()) {
		return models.Token{}, ErrSessionRevoked
	}

	return token, nil
}

func (a *authService) openSession(ctx context.Context, userID string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	session, err := a.sessionRepository.CreateSession(ctx, models.Session{
		UserID:       userID,
		RefreshToken: newRefreshToken(),
		ExpiresAt:    time.Now().Add(a.refreshDuration),
	})
	if err != nil {
		log.Err(err).Str("userID", userID).Msg("session creation failed")
		return models.TokenPair{}, fmt.Errorf("session creation failed: %w", err)
	}

	access, err := utils.GenerateAccessToken(a.tokenIssuer, userID, session.SessionID, a.accessDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Str("userID", userID).Msg("access token generation failed")
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.TokenPair{AccessToken: access.SignedString, RefreshToken: session.RefreshToken}, nil
}

// newRefreshToken returns an opaque single-use token. Two concatenated v4
// uuids give 244 bits of randomness, plenty for a bearer secret that is
// also unique-indexed in the database.
func newRefreshToken() string {
	return uuid.NewString() + uuid.NewString()
}
