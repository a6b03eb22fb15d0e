package dto

import (
	"strings"

	"github.com/alimikegami/marketplace-service/internal/auth"
	"github.com/alimikegami/marketplace-service/internal/domain"
	"github.com/alimikegami/marketplace-service/pkg/response"
)

var artistProfileAccess = auth.Access{auth.RoleOther: false}

type ArtistRequest struct {
	UserID    int64   `json:"userId"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	BirthDate *string `json:"birthDate"`
	Type      *string `json:"type"`
}

func (r ArtistRequest) Validate() []response.ValidationError {
	var v validator
	v.optionalLength("firstName", r.FirstName, 0, 255)
	v.optionalLength("lastName", r.LastName, 0, 255)
	v.date("birthDate", r.BirthDate)
	v.optionalLength("type", r.Type, 0, 255)
	return v.errors
}

type ArtistResponse struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"userId"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	BirthDate *string `json:"birthDate,omitempty"`
	Type      *string `json:"type,omitempty"`
	CreatedAt int64   `json:"createdAt"`
	UpdatedAt int64   `json:"updatedAt"`
}

func NewArtistResponse(a domain.Artist, role auth.Role) ArtistResponse {
	return ArtistResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		FirstName: maskPtr(a.FirstName, artistProfileAccess, role),
		LastName:  maskPtr(a.LastName, artistProfileAccess, role),
		BirthDate: maskPtr(a.BirthDate, artistProfileAccess, role),
		Type:      maskPtr(a.Type, artistProfileAccess, role),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type ArtistsResponse struct {
	Artists []ArtistResponse            `json:"artists"`
	Meta    response.PaginationMetadata `json:"meta"`
}

const MaxContactMessageLength = 2000

// ContactRequest is the body of the artist contact route.
type ContactRequest struct {
	Message string `json:"message"`
}

func (r *ContactRequest) Validate() []response.ValidationError {
	r.Message = strings.TrimSpace(r.Message)

	var v validator
	if v.required("message", r.Message) {
		v.length("message", r.Message, 1, MaxContactMessageLength)
	}
	return v.errors
}
