package auth

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	DefaultIterations = 4096
	DefaultKeyLength  = 64 // bytes, 128 hex characters
	SaltLength        = 32 // bytes, 64 hex characters
)

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Credential is the stored form of a password. It is either a
// SaltedCredential or a LegacyCredential.
type Credential interface {
	credential()
}

// SaltedCredential is a PBKDF2-HMAC-SHA256 key together with the salt it was
// derived with. Both values are hex encoded.
type SaltedCredential struct {
	Salt string
	Key  string
}

// LegacyCredential is an unsalted hex SHA-1 digest. Only accounts created
// before salts were introduced still carry one.
type LegacyCredential struct {
	Hash string
}

func (SaltedCredential) credential() {}
func (LegacyCredential) credential() {}

// CredentialFromStorage rebuilds a credential from the persisted password hash
// and the optional salt row. A missing or malformed salt falls back to the
// legacy scheme.
func CredentialFromStorage(hash string, salt *string) Credential {
	if salt == nil || !isHexSalt(*salt) {
		return LegacyCredential{Hash: hash}
	}

	return SaltedCredential{Salt: *salt, Key: hash}
}

func isHexSalt(salt string) bool {
	if len(salt) != SaltLength*2 {
		return false
	}
	_, err := hex.DecodeString(salt)
	return err == nil
}

// Hasher derives and checks password credentials. The zero value is not
// usable, construct it with NewHasher.
type Hasher struct {
	iterations int
	keyLength  int
	random     io.Reader
}

type HasherOption func(*Hasher)

func WithIterations(n int) HasherOption {
	return func(h *Hasher) {
		if n > 0 {
			h.iterations = n
		}
	}
}

func WithKeyLength(n int) HasherOption {
	return func(h *Hasher) {
		if n > 0 {
			h.keyLength = n
		}
	}
}

// WithRandom replaces the salt source. It must be cryptographically secure
// outside of tests.
func WithRandom(r io.Reader) HasherOption {
	return func(h *Hasher) {
		if r != nil {
			h.random = r
		}
	}
}

func NewHasher(opts ...HasherOption) *Hasher {
	h := &Hasher{
		iterations: DefaultIterations,
		keyLength:  DefaultKeyLength,
		random:     rand.Reader,
	}
	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Derive returns the hex encoded PBKDF2-HMAC-SHA256 key of password. The salt
// is used as text, exactly as it is stored.
func (h *Hasher) Derive(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), h.iterations, h.keyLength, sha256.New)
	return hex.EncodeToString(key)
}

// Generate draws a fresh salt and derives the key for password.
func (h *Hasher) Generate(password string) (SaltedCredential, error) {
	raw := make([]byte, SaltLength)
	if _, err := io.ReadFull(h.random, raw); err != nil {
		return SaltedCredential{}, fmt.Errorf("generating salt: %w", err)
	}

	salt := hex.EncodeToString(raw)

	return SaltedCredential{Salt: salt, Key: h.Derive(password, salt)}, nil
}

// Verify reports whether candidate matches the credential.
func (h *Hasher) Verify(c Credential, candidate string) bool {
	switch cred := c.(type) {
	case SaltedCredential:
		return equalHex(cred.Key, h.Derive(candidate, cred.Salt))
	case LegacyCredential:
		return equalHex(cred.Hash, LegacyDigest(candidate))
	default:
		return false
	}
}

// GeneratePassword returns a random alphanumeric password of length n.
func (h *Hasher) GeneratePassword(n int) (string, error) {
	// 248 is the largest multiple of len(passwordAlphabet) below 256.
	const limit = 256 - 256%len(passwordAlphabet)

	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := io.ReadFull(h.random, buf); err != nil {
			return "", fmt.Errorf("generating password: %w", err)
		}
		for _, b := range buf {
			if int(b) < limit && len(out) < n {
				out = append(out, passwordAlphabet[int(b)%len(passwordAlphabet)])
			}
		}
	}

	return string(out), nil
}

// LegacyDigest is the hex SHA-1 digest used by pre-salt accounts.
func LegacyDigest(password string) string {
	sum := sha1.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}

func equalHex(stored, computed string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(computed)) == 1
}
