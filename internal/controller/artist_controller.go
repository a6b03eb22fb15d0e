package controller

import (
	"github.com/alimikegami/marketplace-service/internal/dto"
	"github.com/alimikegami/marketplace-service/internal/middleware"
	"github.com/alimikegami/marketplace-service/internal/service"
	"github.com/alimikegami/marketplace-service/pkg/response"
	"github.com/labstack/echo/v4"
)

const defaultArtistsLimit = 20

type ArtistController struct {
	service service.ArtistService
}

// CreateArtistController registers the artist routes. All of them require a
// session.
func CreateArtistController(e *echo.Group, svc service.ArtistService) {
	ac := ArtistController{service: svc}

	g := e.Group("/artists", middleware.EnsureAuthenticated)
	g.GET("", ac.GetArtists)
	g.GET("/:id", ac.GetArtist)
	g.POST("", ac.CreateArtist)
	g.PUT("/:id", ac.UpdateArtist)
	g.POST("/:id/contact", ac.ContactArtist)
}

func (c *ArtistController) GetArtists(e echo.Context) error {
	filter, verrs := bindFilter(e, defaultArtistsLimit)
	if len(verrs) > 0 {
		return writeValidationErrors(e, verrs)
	}

	res, err := c.service.GetArtists(e.Request().Context(), middleware.Identity(e), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", res)
}

func (c *ArtistController) GetArtist(e echo.Context) error {
	id, err := paramID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	res, err := c.service.GetArtist(e.Request().Context(), middleware.Identity(e), id)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", res)
}

func (c *ArtistController) CreateArtist(e echo.Context) error {
	payload := dto.ArtistRequest{}
	if verrs := bind(e, &payload, "CreateArtist"); len(verrs) > 0 {
		return writeValidationErrors(e, verrs)
	}

	res, err := c.service.CreateArtist(e.Request().Context(), middleware.Identity(e), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", res)
}

func (c *ArtistController) UpdateArtist(e echo.Context) error {
	id, err := paramID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.ArtistRequest{}
	if verrs := bind(e, &payload, "UpdateArtist"); len(verrs) > 0 {
		return writeValidationErrors(e, verrs)
	}

	res, err := c.service.UpdateArtist(e.Request().Context(), middleware.Identity(e), id, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", res)
}

func (c *ArtistController) ContactArtist(e echo.Context) error {
	id, err := paramID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.ContactRequest{}
	if verrs := bind(e, &payload, "ContactArtist"); len(verrs) > 0 {
		return writeValidationErrors(e, verrs)
	}

	if err = c.service.ContactArtist(e.Request().Context(), middleware.Identity(e), id, payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "OK", nil)
}
