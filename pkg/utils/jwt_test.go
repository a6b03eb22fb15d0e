package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	token, err := CreateSessionToken(Session{UserID: 42, CredentialVersion: "v1"}, "secret", time.Hour)
	require.NoError(t, err)

	session, err := ParseSessionToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, Session{UserID: 42, CredentialVersion: "v1"}, session)
}

func TestSessionToken_WrongSecret(t *testing.T) {
	token, err := CreateSessionToken(Session{UserID: 42}, "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseSessionToken(token, "other")
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestSessionToken_Expired(t *testing.T) {
	token, err := CreateSessionToken(Session{UserID: 42}, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseSessionToken(token, "secret")
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestSessionToken_MissingUser(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = ParseSessionToken(token, "secret")
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestSessionToken_Garbage(t *testing.T) {
	_, err := ParseSessionToken("not-a-token", "secret")
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestSessionToken_EmptySecret(t *testing.T) {
	_, err := CreateSessionToken(Session{UserID: 1}, "", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySessionSecret)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userID": 1,
		"exp":    time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(""))
	require.NoError(t, err)

	session, err := ParseSessionToken(forged, "")
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
	assert.Zero(t, session.UserID)
}
