package dto

import (
	"strings"

	"github.com/alimikegami/marketplace-service/internal/domain"
	"github.com/alimikegami/marketplace-service/pkg/response"
)

type ClientRequest struct {
	UserID      int64   `json:"userId"`
	CompanyName *string `json:"companyName"`
	Description string  `json:"description"`
	WebSite     *string `json:"webSite"`
	IsHidden    *bool   `json:"isHidden"`
	IsPending   *bool   `json:"isPending"`
	IsApproved  *bool   `json:"isApproved"`
}

func (r *ClientRequest) Validate() []response.ValidationError {
	if r.CompanyName != nil {
		name := strings.TrimSpace(*r.CompanyName)
		r.CompanyName = &name
	}

	var v validator
	v.optionalLength("companyName", r.CompanyName, 5, 50)
	if v.required("description", r.Description) {
		v.length("description", r.Description, 300, 5000)
	}
	v.url("webSite", r.WebSite)
	return v.errors
}

type ClientResponse struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	CompanyName *string         `json:"companyName"`
	Description string          `json:"description"`
	WebSite     *string         `json:"webSite"`
	IsHidden    bool            `json:"isHidden"`
	IsPending   bool            `json:"isPending"`
	IsApproved  bool            `json:"isApproved"`
	CreatedAt   int64           `json:"createdAt"`
	UpdatedAt   int64           `json:"updatedAt"`
	Photos      []PhotoResponse `json:"photos,omitempty"`
}

func NewClientResponse(c domain.Client) ClientResponse {
	res := ClientResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		CompanyName: c.CompanyName,
		Description: c.Description,
		WebSite:     c.WebSite,
		IsHidden:    c.IsHidden,
		IsPending:   c.IsPending,
		IsApproved:  c.IsApproved,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	for _, p := range c.Photos {
		res.Photos = append(res.Photos, NewPhotoResponse(p))
	}

	return res
}

type ClientsResponse struct {
	Clients []ClientResponse            `json:"clients"`
	Meta    response.PaginationMetadata `json:"meta"`
}
