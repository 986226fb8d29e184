package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a parsed or freshly signed JWT together with the fields the
// application actually consumes: the subject user id and the session id
// carried in the "sid" claim.
type Token struct {
	*jwt.Token `json:"-"`

	SignedString string `json:"-"`
	UserID       string `json:"-"`
	SessionID    string `json:"-"`
}

// AccessClaims are the registered claims plus the session id. Keeping the
// session id inside the access token lets the auth middleware check the
// revocation flag with a single indexed lookup.
type AccessClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid,omitempty"`
}
