package models

import "time"

// Session binds a user to an issued refresh token. The access token is
// stateless (JWT); the session row is what makes it revocable: the auth
// middleware rejects tokens whose session has been revoked even if the JWT
// itself is still within its lifetime.
type Session struct {
	SessionID    string    `json:"sessionId" db:"session_id"`
	UserID       string    `json:"userId" db:"user_id"`
	RefreshToken string    `json:"-" db:"refresh_token"`
	Revoked      bool      `json:"revoked" db:"revoked"`
	ExpiresAt    time.Time `json:"expiresAt" db:"expires_at"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// TokenPair is what the auth endpoints hand back to the client.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
