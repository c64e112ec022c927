package utils

import (
	"rfqengine/cmd/internal/domain/entity"
	"rfqengine/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const ActorContextKey = "actor"

func GetActorFromContext(c echo.Context) (*entity.Actor, apierror.ErrorResponse) {
	val := c.Get(ActorContextKey)
	if val == nil {
		log.Warnf("route %s attempted to read nil actor from context", c.Request().URL)
		return nil, apierror.UnauthorizedError
	}

	actor, ok := val.(*entity.Actor)
	if !ok {
		log.Warnf("expected actor type at '%s' context key, got %T", ActorContextKey, val)
		return nil, apierror.InternalServerError
	}
	return actor, nil
}
