package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrSessionRevoked          = errors.New("session revoked")

	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrForeignStorageKey is returned when a storage key's embedded user
	// id does not match the acting user.
	ErrForeignStorageKey = errors.New("storage key belongs to another user")

	// Client-side fetch layer.
	ErrNotSignedIn            = errors.New("not signed in")
	ErrRecordNotFetched       = errors.New("record not fetched")
	ErrNoHistoryForCloudNotes = errors.New("cloud notes have no client-side history")
)

// QuotaError carries the quota snapshot that accompanies a rejected upload
// authorization. It unwraps to ErrQuotaExceeded so callers can keep matching
// with errors.Is.
type QuotaError struct {
	Used     int64
	Assigned int64
	Required int64
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("storage quota exceeded: used %d + required %d > assigned %d",
		e.Used, e.Required, e.Assigned)
}

func (e *QuotaError) Unwrap() error {
	return ErrQuotaExceeded
}
