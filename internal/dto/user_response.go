package dto

import (
	"github.com/alimikegami/marketplace-service/internal/auth"
	"github.com/alimikegami/marketplace-service/internal/domain"
	"github.com/alimikegami/marketplace-service/pkg/response"
)

var (
	userEmailAccess   = auth.Access{auth.RoleOther: false, auth.RoleMember: false}
	userProfileAccess = auth.Access{auth.RoleOther: false}
)

type UserResponse struct {
	ID          int64   `json:"id"`
	ExternalID  string  `json:"externalId"`
	Email       *string `json:"email,omitempty"`
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	BirthDate   *string `json:"birthDate,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Photo       *string `json:"photo,omitempty"`
	Locale      string  `json:"locale"`
	IsAdmin     bool    `json:"isAdmin"`
	IsSuspended bool    `json:"isSuspended"`
	CreatedAt   int64   `json:"createdAt"`
	UpdatedAt   int64   `json:"updatedAt"`
}

// NewUserResponse serializes u as seen by role. The password hash is never
// part of the response.
func NewUserResponse(u domain.User, role auth.Role) UserResponse {
	return UserResponse{
		ID:          u.ID,
		ExternalID:  u.ExternalID,
		Email:       mask(u.Email, userEmailAccess, role),
		FirstName:   mask(u.FirstName, userProfileAccess, role),
		LastName:    mask(u.LastName, userProfileAccess, role),
		BirthDate:   maskPtr(u.BirthDate, userProfileAccess, role),
		Phone:       maskPtr(u.Phone, userProfileAccess, role),
		Photo:       maskPtr(u.Photo, userProfileAccess, role),
		Locale:      u.Locale,
		IsAdmin:     u.IsAdmin,
		IsSuspended: u.IsSuspended,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

type UsersResponse struct {
	Users []UserResponse              `json:"users"`
	Meta  response.PaginationMetadata `json:"meta"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserPhotoResponse holds the stored file name of a user photo, nil when the
// user has none or the caller may not see it.
type UserPhotoResponse struct {
	Photo *string `json:"photo"`
}

func mask[T any](v T, access auth.Access, role auth.Role) *T {
	if !access.Allows(role) {
		return nil
	}
	return &v
}

func maskPtr[T any](v *T, access auth.Access, role auth.Role) *T {
	if v == nil || !access.Allows(role) {
		return nil
	}
	return v
}
