package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/alimikegami/marketplace-service/internal/auth"
)

type User struct {
	ID                 int64   `db:"id"`
	ExternalID         string  `db:"external_id"`
	Email              string  `db:"email"`
	PasswordHash       string  `db:"password_hash"`
	FirstName          string  `db:"first_name"`
	LastName           string  `db:"last_name"`
	BirthDate          *string `db:"birth_date"`
	Phone              *string `db:"phone"`
	Photo              *string `db:"photo"`
	Locale             string  `db:"locale"`
	IsAdmin            bool    `db:"is_admin"`
	IsSuspended        bool    `db:"is_suspended"`
	CreatedAt          int64   `db:"created_at"`
	UpdatedAt          int64   `db:"updated_at"`
	MembershipExpireAt *int64  `db:"membership_expire_at"`
}

type Salt struct {
	ID        int64  `db:"id"`
	UserID    int64  `db:"user_id"`
	Salt      string `db:"salt"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
}

// Identity is the view of u the role resolver works on.
func (u User) Identity() *auth.Identity {
	identity := &auth.Identity{
		ID:          u.ID,
		Email:       u.Email,
		IsAdmin:     u.IsAdmin,
		IsSuspended: u.IsSuspended,
	}
	if u.MembershipExpireAt != nil {
		expireAt := time.UnixMilli(*u.MembershipExpireAt)
		identity.MembershipExpireAt = &expireAt
	}

	return identity
}

// Credential returns the stored password material of u. salt is nil for
// accounts that never had a salt row.
func (u User) Credential(salt *Salt) auth.Credential {
	if salt == nil {
		return auth.CredentialFromStorage(u.PasswordHash, nil)
	}

	return auth.CredentialFromStorage(u.PasswordHash, &salt.Salt)
}

// CredentialVersion fingerprints the stored password hash. It changes with
// every password change or reset.
func (u User) CredentialVersion() string {
	sum := sha256.Sum256([]byte(u.PasswordHash))
	return hex.EncodeToString(sum[:8])
}
