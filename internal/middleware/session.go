package middleware

import (
	"context"
	"strings"

	"github.com/alimikegami/marketplace-service/config"
	"github.com/alimikegami/marketplace-service/internal/auth"
	"github.com/alimikegami/marketplace-service/pkg/errs"
	"github.com/alimikegami/marketplace-service/pkg/response"
	"github.com/alimikegami/marketplace-service/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const identityKey = "identity"

type IdentityLoader interface {
	GetIdentity(ctx context.Context, session utils.Session) (*auth.Identity, error)
}

// Session resolves the caller from the session cookie or a bearer token.
// Requests without a valid session continue anonymously.
func Session(conf config.SessionConfig, loader IdentityLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := sessionToken(c, conf.CookieName)
			if token == "" {
				return next(c)
			}

			session, err := utils.ParseSessionToken(token, conf.Secret)
			if err != nil {
				log.Ctx(c.Request().Context()).Debug().Err(err).Str("component", "Session").Msg("ignoring session token")
				return next(c)
			}

			identity, err := loader.GetIdentity(c.Request().Context(), session)
			if err != nil {
				return response.WriteErrorResponse(c, err, nil)
			}

			if identity != nil {
				c.Set(identityKey, identity)
			}

			return next(c)
		}
	}
}

func sessionToken(c echo.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	return ""
}

// Identity returns the authenticated caller, or nil for anonymous requests.
func Identity(c echo.Context) *auth.Identity {
	identity, _ := c.Get(identityKey).(*auth.Identity)
	return identity
}

func EnsureAuthenticated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if Identity(c) == nil {
			return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
		}

		return next(c)
	}
}

func EnsureAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity := Identity(c)
		if identity == nil {
			return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
		}

		if !identity.IsAdmin {
			return response.WriteErrorResponse(c, errs.ErrUnauthorized, nil)
		}

		return next(c)
	}
}
