package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	ErrInvalidSessionToken = errors.New("invalid session token")
	ErrEmptySessionSecret  = errors.New("empty session secret")
)

// Session is the content of a session token. CredentialVersion changes
// whenever the password of the user does, which invalidates older tokens.
type Session struct {
	UserID            int64
	CredentialVersion string
}

// CreateSessionToken signs a token carrying the session of a logged in user.
func CreateSessionToken(session Session, jwtSecretKey string, ttl time.Duration) (string, error) {
	if jwtSecretKey == "" {
		return "", ErrEmptySessionSecret
	}

	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["userID"] = session.UserID
	claims["cv"] = session.CredentialVersion
	claims["iat"] = time.Now().Unix()
	claims["exp"] = time.Now().Add(ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(jwtSecretKey))
}

// ParseSessionToken validates the signature and expiry of tokenString and
// returns the session it carries. Tokens are never accepted under an empty
// secret.
func ParseSessionToken(tokenString string, jwtSecretKey string) (Session, error) {
	if jwtSecretKey == "" {
		return Session{}, ErrInvalidSessionToken
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSessionToken
		}
		return []byte(jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return Session{}, ErrInvalidSessionToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, ErrInvalidSessionToken
	}

	userID, ok := claims["userID"].(float64)
	if !ok || userID <= 0 {
		return Session{}, ErrInvalidSessionToken
	}

	version, _ := claims["cv"].(string)

	return Session{UserID: int64(userID), CredentialVersion: version}, nil
}
