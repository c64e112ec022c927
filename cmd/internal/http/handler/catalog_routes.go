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

type CatalogService interface {
	RankSuppliers(ctx context.Context, actor *entity.Actor, materialID int64, query *contract.RankSuppliersQuery) (*contract.RankedSuppliersResponse, apierror.ErrorResponse)
	Estimate(ctx context.Context, actor *entity.Actor, materialID int64, query *contract.EstimateQuery) (*contract.EstimateResponse, apierror.ErrorResponse)
	Markup(ctx context.Context, actor *entity.Actor, req *contract.MarkupRequest) (*contract.MarkupResponse, apierror.ErrorResponse)
}

type DefaultCatalogRoute struct {
	CatalogService CatalogService
}

func NewCatalogDefault(catalogService CatalogService) *DefaultCatalogRoute {
	return &DefaultCatalogRoute{CatalogService: catalogService}
}

func (r *DefaultCatalogRoute) RankSuppliers(c echo.Context) error {
	actor, id, apierr := actorAndID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var query contract.RankSuppliersQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("client_id", "int"))
	}

	ranked, apierr := r.CatalogService.RankSuppliers(c.Request().Context(), actor, id, &query)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, ranked)
}

func (r *DefaultCatalogRoute) Estimate(c echo.Context) error {
	actor, id, apierr := actorAndID(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	query := contract.EstimateQuery{
		SupplierPrice: c.QueryParam("supplier_price"),
		Commission:    c.QueryParam("commission"),
	}
	estimate, apierr := r.CatalogService.Estimate(c.Request().Context(), actor, id, &query)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, estimate)
}

func (r *DefaultCatalogRoute) Markup(c echo.Context) error {
	actor, cerr := utils.GetActorFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.MarkupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	resp, apierr := r.CatalogService.Markup(c.Request().Context(), actor, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}
