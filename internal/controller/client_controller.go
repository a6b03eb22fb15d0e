package controller

import (
	"github.com/alimikegami/marketplace-service/internal/dto"
	"github.com/alimikegami/marketplace-service/internal/middleware"
	"github.com/alimikegami/marketplace-service/internal/service"
	"github.com/alimikegami/marketplace-service/pkg/response"
	"github.com/labstack/echo/v4"
)

const defaultClientsLimit = 10

type ClientController struct {
	service service.ClientService
}

func CreateClientController(e *echo.Group, svc service.ClientService) {
	cc := ClientController{service: svc}

	e.GET("/clients", cc.GetClients, middleware.EnsureAdmin)
	e.GET("/clients/:id", cc.GetClient)
	e.POST("/clients", cc.CreateClient, middleware.EnsureAuthenticated)
	e.PUT("/clients/:id", cc.UpdateClient, middleware.EnsureAuthenticated)
}

func (c *ClientController) GetClients(e echo.Context) error {
	filter, verrs := bindFilter(e, defaultClientsLimit)
	if len(verrs) > 0 {
		return writeValidationErrors(e, verrs)
	}

	res, err := c.service.GetClients(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", res)
}

func (c *ClientController) GetClient(e echo.Context) error {
	id, err := paramID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	res, err := c.service.GetClient(e.Request().Context(), middleware.Identity(e), id)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", res)
}

func (c *ClientController) CreateClient(e echo.Context) error {
	payload := dto.ClientRequest{}
	if verrs := bind(e, &payload, "CreateClient"); len(verrs) > 0 {
		return writeValidationErrors(e, verrs)
	}

	res, err := c.service.CreateClient(e.Request().Context(), middleware.Identity(e), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", res)
}

func (c *ClientController) UpdateClient(e echo.Context) error {
	id, err := paramID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.ClientRequest{}
	if verrs := bind(e, &payload, "UpdateClient"); len(verrs) > 0 {
		return writeValidationErrors(e, verrs)
	}

	res, err := c.service.UpdateClient(e.Request().Context(), middleware.Identity(e), id, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", res)
}
