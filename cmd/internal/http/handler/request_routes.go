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

type RequestService interface {
	CreateRequest(ctx context.Context, req *contract.CreateRequestRequest) (*contract.RequestResponse, apierror.ErrorResponse)
	GetRequest(ctx context.Context, id int64) (*contract.RequestResponse, apierror.ErrorResponse)
	ListRequests(ctx context.Context, actor *entity.Actor, query *contract.ListRequestsQuery) ([]*contract.RequestResponse, apierror.ErrorResponse)
	UpdateRequest(ctx context.Context, actor *entity.Actor, id int64, req *contract.UpdateRequestRequest) (*contract.RequestResponse, apierror.ErrorResponse)
	DeleteRequest(ctx context.Context, actor *entity.Actor, id int64) apierror.ErrorResponse
	AddLine(ctx context.Context, actor *entity.Actor, id int64, req *contract.LineRequest) (*contract.RequestResponse, apierror.ErrorResponse)
	RefreshPrices(ctx context.Context, actor *entity.Actor, id int64) (*contract.RequestResponse, apierror.ErrorResponse)
	ListQuoteLog(ctx context.Context, actor *entity.Actor, id int64) ([]*contract.QuoteLogEntryResponse, apierror.ErrorResponse)
}

type QuoteService interface {
	SubmitQuote(ctx context.Context, actor *entity.Actor, requestID int64, req *contract.SubmitQuoteRequest) (*contract.RequestResponse, apierror.ErrorResponse)
}

type DefaultRequestRoute struct {
	RequestService RequestService
	QuoteService   QuoteService
}

func NewRequestDefault(requestService RequestService, quoteService QuoteService) *DefaultRequestRoute {
	return &DefaultRequestRoute{
		RequestService: requestService,
		QuoteService:   quoteService,
	}
}

// CreateRequest is public, it backs the client RFQ form.
func (r *DefaultRequestRoute) CreateRequest(c echo.Context) error {
	var req contract.CreateRequestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	created, apierr := r.RequestService.CreateRequest(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, created)
}

func (r *DefaultRequestRoute) GetRequest(c echo.Context) error {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, apierror.InvalidIDError)
	}

	req, apierr := r.RequestService.GetRequest(c.Request().Context(), id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, req)
}

func (r *DefaultRequestRoute) GetRequests(c echo.Context) error {
	actor, cerr := utils.GetActorFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var query contract.ListRequestsQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("client_id", "int"))
	}

	requests, apierr := r.RequestService.ListRequests(c.Request().Context(), actor, &query)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"requests": requests}
	return c.JSON(http.StatusOK, &resp)
}

func (r *DefaultRequestRoute) UpdateRequest(c echo.Context) error {
	actor, id, apierr := actorAndID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req contract.UpdateRequestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	updated, apierr := r.RequestService.UpdateRequest(c.Request().Context(), actor, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, updated)
}

func (r *DefaultRequestRoute) DeleteRequest(c echo.Context) error {
	actor, id, apierr := actorAndID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	if apierr = r.RequestService.DeleteRequest(c.Request().Context(), actor, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}

func (r *DefaultRequestRoute) AddLine(c echo.Context) error {
	actor, id, apierr := actorAndID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req contract.LineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	updated, apierr := r.RequestService.AddLine(c.Request().Context(), actor, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, updated)
}

func (r *DefaultRequestRoute) RefreshPrices(c echo.Context) error {
	actor, id, apierr := actorAndID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	refreshed, apierr := r.RequestService.RefreshPrices(c.Request().Context(), actor, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, refreshed)
}

func (r *DefaultRequestRoute) SubmitQuote(c echo.Context) error {
	actor, id, apierr := actorAndID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req contract.SubmitQuoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	quoted, apierr := r.QuoteService.SubmitQuote(c.Request().Context(), actor, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, quoted)
}

func (r *DefaultRequestRoute) GetQuoteLog(c echo.Context) error {
	actor, id, apierr := actorAndID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	entries, apierr := r.RequestService.ListQuoteLog(c.Request().Context(), actor, id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"entries": entries}
	return c.JSON(http.StatusOK, &resp)
}
