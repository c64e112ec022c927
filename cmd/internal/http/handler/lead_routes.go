package handler

import (
	"context"
	"net/http"

	"rfqengine/cmd/internal/contract"
	"rfqengine/cmd/internal/domain/entity"
	"rfqengine/cmd/internal/utils"
	"rfqengine/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type LeadService interface {
	ListLeads(ctx context.Context, actor *entity.Actor, query *contract.ListLeadsQuery) ([]*contract.LeadResponse, apierror.ErrorResponse)
	GetLead(ctx context.Context, actor *entity.Actor, id int64) (*contract.LeadResponse, apierror.ErrorResponse)
	CreateLead(ctx context.Context, actor *entity.Actor, req *contract.CreateLeadRequest) (*contract.LeadResponse, apierror.ErrorResponse)
	UpdateLead(ctx context.Context, actor *entity.Actor, id int64, req *contract.UpdateLeadRequest) (*contract.LeadResponse, apierror.ErrorResponse)
	DeleteLead(ctx context.Context, actor *entity.Actor, id int64) apierror.ErrorResponse
}

type DefaultLeadRoute struct {
	LeadService LeadService
}

func NewLeadDefault(leadService LeadService) *DefaultLeadRoute {
	return &DefaultLeadRoute{LeadService: leadService}
}

func (l *DefaultLeadRoute) GetLeads(c echo.Context) error {
	actor, cerr := utils.GetActorFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	query := contract.ListLeadsQuery{Stage: c.QueryParam("stage")}
	leads, apierr := l.LeadService.ListLeads(c.Request().Context(), actor, &query)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"leads": leads}
	return c.JSON(http.StatusOK, &resp)
}

func (l *DefaultLeadRoute) GetLead(c echo.Context) error {
	actor, id, apierr := actorAndID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	lead, apierr := l.LeadService.GetLead(c.Request().Context(), actor, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, lead)
}

func (l *DefaultLeadRoute) CreateLead(c echo.Context) error {
	actor, cerr := utils.GetActorFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.CreateLeadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	lead, apierr := l.LeadService.CreateLead(c.Request().Context(), actor, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, lead)
}

func (l *DefaultLeadRoute) UpdateLead(c echo.Context) error {
	actor, id, apierr := actorAndID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req contract.UpdateLeadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	lead, apierr := l.LeadService.UpdateLead(c.Request().Context(), actor, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, lead)
}

func (l *DefaultLeadRoute) DeleteLead(c echo.Context) error {
	actor, id, apierr := actorAndID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	if apierr = l.LeadService.DeleteLead(c.Request().Context(), actor, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}
