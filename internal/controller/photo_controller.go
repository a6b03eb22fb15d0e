package controller

import (
	"strconv"
	"strings"

	"github.com/alimikegami/marketplace-service/internal/dto"
	"github.com/alimikegami/marketplace-service/internal/middleware"
	"github.com/alimikegami/marketplace-service/internal/service"
	"github.com/alimikegami/marketplace-service/pkg/response"
	"github.com/labstack/echo/v4"
)

type PhotoController struct {
	service service.PhotoService
}

func CreatePhotoController(e *echo.Group, svc service.PhotoService) {
	pc := PhotoController{service: svc}

	e.GET("/photos/:id", pc.GetPhoto)
	e.POST("/photos", pc.UploadPhoto, middleware.EnsureAuthenticated)
	e.PUT("/photos/:id", pc.UpdatePhoto, middleware.EnsureAuthenticated)
	e.DELETE("/photos/:id", pc.DeletePhoto, middleware.EnsureAuthenticated)
}

func (c *PhotoController) GetPhoto(e echo.Context) error {
	id, err := paramID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	res, err := c.service.GetPhoto(e.Request().Context(), id)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", res)
}

// UploadPhoto adds an image to a client gallery. The multipart form carries
// the file, the clientId and an optional caption.
func (c *PhotoController) UploadPhoto(e echo.Context) error {
	var verrs []response.ValidationError

	clientID, err := strconv.ParseInt(e.FormValue("clientId"), 10, 64)
	if err != nil || clientID <= 0 {
		verrs = append(verrs, response.ValidationError{Field: "clientId", Tag: "required"})
	}

	var caption *string
	if v := strings.TrimSpace(e.FormValue("caption")); v != "" {
		caption = &v
	}
	verrs = append(verrs, dto.PhotoRequest{Caption: caption}.Validate()...)

	upload, closeUpload, uploadErrs := readUpload(e)
	if closeUpload != nil {
		defer closeUpload()
	}
	verrs = append(verrs, uploadErrs...)

	if len(verrs) > 0 {
		return writeValidationErrors(e, verrs)
	}

	res, err := c.service.UploadClientPhoto(e.Request().Context(), middleware.Identity(e), clientID, caption, upload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", res)
}

func (c *PhotoController) UpdatePhoto(e echo.Context) error {
	id, err := paramID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.PhotoRequest{}
	if verrs := bind(e, &payload, "UpdatePhoto"); len(verrs) > 0 {
		return writeValidationErrors(e, verrs)
	}

	res, err := c.service.UpdatePhoto(e.Request().Context(), middleware.Identity(e), id, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", res)
}

func (c *PhotoController) DeletePhoto(e echo.Context) error {
	id, err := paramID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	if err = c.service.DeletePhoto(e.Request().Context(), middleware.Identity(e), id); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteNoContentResponse(e)
}
