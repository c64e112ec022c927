package handler

import (
	"net/http"

	"rfqengine/cmd/internal/domain/entity"
	"rfqengine/cmd/internal/utils"
	"rfqengine/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

// actorAndID reads the authenticated actor and the :id path parameter.
func actorAndID(c echo.Context) (*entity.Actor, int64, apierror.ErrorResponse) {
	actor, cerr := utils.GetActorFromContext(c)
	if cerr != nil {
		return nil, 0, cerr
	}

	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		return nil, 0, apierror.InvalidIDError
	}
	return actor, id, nil
}

// HealthCheck is polled by the container healthcheck.
func HealthCheck(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
