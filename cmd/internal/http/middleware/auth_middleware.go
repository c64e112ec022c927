package middleware

import (
	"net/http"

	"rfqengine/cmd/internal/domain/entity"
	"rfqengine/cmd/internal/utils"
	"rfqengine/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type TokenValidator interface {
	ParseTokenDataCtx(ctx echo.Context) (*utils.TokenData, error)
}

type AuthMiddlewareConfig struct {
	Validator TokenValidator
}

// NewAuthMiddleware resolves the bearer token into an actor for the routes behind it.
func NewAuthMiddleware(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenData, err := cfg.Validator.ParseTokenDataCtx(c)
			if err != nil {
				log.Debugf("rejected token on %s: %v", c.Path(), err)
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			if tokenData.Permissions == 0 {
				return c.JSON(http.StatusForbidden, apierror.NewForbiddenError("Missing access"))
			}

			c.Set(utils.ActorContextKey, &entity.Actor{
				Subject:     tokenData.Sub,
				Permissions: tokenData.Permissions,
			})
			return next(c)
		}
	}
}
