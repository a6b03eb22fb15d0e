package controller

import (
	"github.com/alimikegami/marketplace-service/internal/dto"
	"github.com/alimikegami/marketplace-service/internal/middleware"
	"github.com/alimikegami/marketplace-service/internal/service"
	"github.com/alimikegami/marketplace-service/pkg/response"
	"github.com/labstack/echo/v4"
)

type MembershipController struct {
	service service.MembershipService
}

func CreateMembershipController(e *echo.Group, svc service.MembershipService) {
	mc := MembershipController{service: svc}

	e.POST("/memberships", mc.CreateMembership, middleware.EnsureAdmin)
}

func (c *MembershipController) CreateMembership(e echo.Context) error {
	payload := dto.MembershipRequest{}
	if verrs := bind(e, &payload, "CreateMembership"); len(verrs) > 0 {
		return writeValidationErrors(e, verrs)
	}

	res, err := c.service.CreateMembership(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", res)
}
