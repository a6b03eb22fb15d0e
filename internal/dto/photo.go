package dto

import (
	"io"

	"github.com/alimikegami/marketplace-service/internal/domain"
	"github.com/alimikegami/marketplace-service/pkg/response"
)

// Upload is an image file received from a multipart form.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type PhotoRequest struct {
	Caption *string `json:"caption"`
}

func (r PhotoRequest) Validate() []response.ValidationError {
	var v validator
	v.optionalLength("caption", r.Caption, 0, 255)
	return v.errors
}

type PhotoResponse struct {
	ID        int64   `json:"id"`
	ClientID  int64   `json:"clientId"`
	FileName  string  `json:"fileName"`
	Caption   *string `json:"caption"`
	CreatedAt int64   `json:"createdAt"`
	UpdatedAt int64   `json:"updatedAt"`
}

func NewPhotoResponse(p domain.Photo) PhotoResponse {
	return PhotoResponse{
		ID:        p.ID,
		ClientID:  p.ClientID,
		FileName:  p.FileName,
		Caption:   p.Caption,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
