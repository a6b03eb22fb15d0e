package controller

import (
	"net/http"

	"github.com/alimikegami/marketplace-service/config"
	"github.com/alimikegami/marketplace-service/internal/dto"
	"github.com/alimikegami/marketplace-service/internal/middleware"
	"github.com/alimikegami/marketplace-service/internal/service"
	"github.com/alimikegami/marketplace-service/pkg/response"
	"github.com/labstack/echo/v4"
)

const defaultUsersLimit = 20

type UserController struct {
	service      service.UserService
	photoService service.PhotoService
	session      config.SessionConfig
	secureCookie bool
}

func CreateUserController(e *echo.Group, svc service.UserService, photoService service.PhotoService, conf config.Config) {
	uc := UserController{
		service:      svc,
		photoService: photoService,
		session:      conf.SessionConfig,
		secureCookie: conf.Environment == "production",
	}

	e.POST("/users", uc.Register)
	e.POST("/users/login", uc.Login)
	e.POST("/users/logout", uc.Logout)
	e.GET("/users/is-authenticated", uc.IsAuthenticated, middleware.EnsureAuthenticated)
	e.POST("/users/reset-password", uc.ResetPassword)
	e.POST("/users/impersonate", uc.Impersonate, middleware.EnsureAdmin)
	e.GET("/users", uc.GetUsers, middleware.EnsureAdmin)
	e.GET("/users/:id", uc.GetUser)
	e.PUT("/users/:id", uc.UpdateUser, middleware.EnsureAuthenticated)
	e.POST("/users/:id/change-password", uc.ChangePassword, middleware.EnsureAuthenticated)
	e.GET("/users/:id/photo", uc.GetPhoto, middleware.EnsureAuthenticated)
	e.POST("/users/:id/photo", uc.UploadPhoto, middleware.EnsureAuthenticated)
	e.DELETE("/users/:id/photo", uc.DeletePhoto, middleware.EnsureAuthenticated)
}

func (c *UserController) Register(e echo.Context) error {
	payload := dto.RegisterRequest{}
	if verrs := bind(e, &payload, "Register"); len(verrs) > 0 {
		return writeValidationErrors(e, verrs)
	}

	res, err := c.service.Register(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", res)
}

func (c *UserController) Login(e echo.Context) error {
	payload := dto.LoginRequest{}
	if verrs := bind(e, &payload, "Login"); len(verrs) > 0 {
		return writeValidationErrors(e, verrs)
	}

	res, err := c.service.Login(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	c.setSessionCookie(e, res.Token)

	return response.WriteSuccessResponse(e, "", res)
}

func (c *UserController) Logout(e echo.Context) error {
	e.SetCookie(&http.Cookie{
		Name:     c.session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secureCookie,
	})

	return response.WriteSuccessResponse(e, "OK", nil)
}

func (c *UserController) IsAuthenticated(e echo.Context) error {
	return response.WriteSuccessResponse(e, "", true)
}

func (c *UserController) ResetPassword(e echo.Context) error {
	payload := dto.EmailRequest{}
	if verrs := bind(e, &payload, "ResetPassword"); len(verrs) > 0 {
		return writeValidationErrors(e, verrs)
	}

	if err := c.service.ResetPassword(e.Request().Context(), payload.Email); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "OK", nil)
}

func (c *UserController) Impersonate(e echo.Context) error {
	payload := dto.EmailRequest{}
	if verrs := bind(e, &payload, "Impersonate"); len(verrs) > 0 {
		return writeValidationErrors(e, verrs)
	}

	res, err := c.service.Impersonate(e.Request().Context(), payload.Email)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	c.setSessionCookie(e, res.Token)

	return response.WriteSuccessResponse(e, "", res)
}

func (c *UserController) GetUsers(e echo.Context) error {
	filter, verrs := bindFilter(e, defaultUsersLimit)
	if len(verrs) > 0 {
		return writeValidationErrors(e, verrs)
	}

	res, err := c.service.GetUsers(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", res)
}

func (c *UserController) GetUser(e echo.Context) error {
	id, err := paramID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	res, err := c.service.GetUser(e.Request().Context(), middleware.Identity(e), id)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", res)
}

func (c *UserController) UpdateUser(e echo.Context) error {
	id, err := paramID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.UpdateUserRequest{}
	if verrs := bind(e, &payload, "UpdateUser"); len(verrs) > 0 {
		return writeValidationErrors(e, verrs)
	}

	res, err := c.service.UpdateUser(e.Request().Context(), middleware.Identity(e), id, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", res)
}

func (c *UserController) ChangePassword(e echo.Context) error {
	id, err := paramID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.ChangePasswordRequest{}
	if verrs := bind(e, &payload, "ChangePassword"); len(verrs) > 0 {
		return writeValidationErrors(e, verrs)
	}

	res, err := c.service.ChangePassword(e.Request().Context(), middleware.Identity(e), id, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	c.setSessionCookie(e, res.Token)

	return response.WriteSuccessResponse(e, "OK", nil)
}

func (c *UserController) GetPhoto(e echo.Context) error {
	id, err := paramID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	photo, err := c.photoService.GetUserPhoto(e.Request().Context(), middleware.Identity(e), id)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", dto.UserPhotoResponse{Photo: photo})
}

func (c *UserController) UploadPhoto(e echo.Context) error {
	id, err := paramID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	upload, closeUpload, verrs := readUpload(e)
	if len(verrs) > 0 {
		return writeValidationErrors(e, verrs)
	}
	defer closeUpload()

	photo, err := c.photoService.UploadUserPhoto(e.Request().Context(), middleware.Identity(e), id, upload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", dto.UserPhotoResponse{Photo: &photo})
}

func (c *UserController) DeletePhoto(e echo.Context) error {
	id, err := paramID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	if err = c.photoService.DeleteUserPhoto(e.Request().Context(), middleware.Identity(e), id); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteNoContentResponse(e)
}

func (c *UserController) setSessionCookie(e echo.Context, token string) {
	e.SetCookie(&http.Cookie{
		Name:     c.session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.session.TTL.Seconds()),
		HttpOnly: true,
		Secure:   c.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
