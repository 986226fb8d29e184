package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer  = "inkwell"
	testSignKey = "test-sign-key"
)

func TestGenerateAndValidateAccessToken(t *testing.T) {
	token, err := GenerateAccessToken(testIssuer, "user-1", "session-1", time.Minute, testSignKey)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := ValidateAndParseJWTToken(token.SignedString, testSignKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, "user-1", parsed.UserID)
	assert.Equal(t, "session-1", parsed.SessionID)
}

func TestValidateAccessToken_WrongKey(t *testing.T) {
	token, err := GenerateAccessToken(testIssuer, "user-1", "session-1", time.Minute, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token.SignedString, "another-key", testIssuer)
	assert.Error(t, err)
}

func TestValidateAccessToken_WrongIssuer(t *testing.T) {
	token, err := GenerateAccessToken("someone-else", "user-1", "session-1", time.Minute, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token.SignedString, testSignKey, testIssuer)
	assert.Error(t, err)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	token, err := GenerateAccessToken(testIssuer, "user-1", "session-1", -time.Minute, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token.SignedString, testSignKey, testIssuer)
	assert.Error(t, err)
}

func TestGenerateAccessToken_InvalidParams(t *testing.T) {
	_, err := GenerateAccessToken("", "user-1", "session-1", time.Minute, testSignKey)
	assert.Error(t, err)

	_, err = GenerateAccessToken(testIssuer, "", "session-1", time.Minute, testSignKey)
	assert.Error(t, err)

	_, err = GenerateAccessToken(testIssuer, "user-1", "session-1", 0, testSignKey)
	assert.Error(t, err)

	_, err = GenerateAccessToken(testIssuer, "user-1", "session-1", time.Minute, "")
	assert.Error(t, err)
}

func TestParseUserIDFromJWT(t *testing.T) {
	token, err := GenerateAccessToken(testIssuer, "user-42", "session-1", time.Minute, testSignKey)
	require.NoError(t, err)

	// Parsed without the key: the client only learns its own id this way.
	userID, err := ParseUserIDFromJWT(token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)

	_, err = ParseUserIDFromJWT("not-a-jwt")
	assert.Error(t, err)
}
