package auth

import (
	"slices"
	"time"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
	RoleOther  Role = "other"
)

// Identity is the authenticated user of a request.
type Identity struct {
	ID                 int64
	Email              string
	IsAdmin            bool
	IsSuspended        bool
	MembershipExpireAt *time.Time
}

// HasActiveMembership reports whether the membership expires strictly after now.
func (i *Identity) HasActiveMembership(now time.Time) bool {
	return i.MembershipExpireAt != nil && i.MembershipExpireAt.After(now)
}

// ResolveRole computes the role of identity for a resource owned by ownerIDs.
// A nil identity is anonymous. The checks are ordered: admin, owner, member.
func ResolveRole(identity *Identity, now time.Time, ownerIDs ...int64) Role {
	switch {
	case identity == nil:
		return RoleOther
	case identity.IsAdmin:
		return RoleAdmin
	case slices.Contains(ownerIDs, identity.ID):
		return RoleOwner
	case identity.HasActiveMembership(now):
		return RoleMember
	default:
		return RoleOther
	}
}

// Resolver binds ResolveRole to a clock.
type Resolver struct {
	Now func() time.Time
}

func NewResolver() *Resolver {
	return &Resolver{Now: time.Now}
}

func (r *Resolver) Resolve(identity *Identity, ownerIDs ...int64) Role {
	return ResolveRole(identity, r.Now(), ownerIDs...)
}

// CanWrite reports whether the role may modify the resource.
func (r Role) CanWrite() bool {
	return r == RoleAdmin || r == RoleOwner
}

// Access tells which roles may read an attribute. Roles missing from the map
// are allowed.
type Access map[Role]bool

func (a Access) Allows(role Role) bool {
	allowed, ok := a[role]
	return !ok || allowed
}
