package service

import (
	"context"

	"rfqengine/cmd/internal/contract"
	"rfqengine/cmd/internal/domain/entity"
	"rfqengine/cmd/internal/domain/matching"
	"rfqengine/cmd/internal/domain/policy"
	"rfqengine/cmd/internal/domain/pricing"
	"rfqengine/cmd/internal/utils"
	"rfqengine/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// DefaultCatalogService backs the admin's quoting helpers: supplier ranking
// and price estimates. It never writes.
type DefaultCatalogService struct {
	Store    Store
	Validate *validator.Validate
	Policy   *policy.RequestPolicy
}

func NewCatalogService(store Store, validate *validator.Validate) *DefaultCatalogService {
	return &DefaultCatalogService{
		Store:    store,
		Validate: validate,
		Policy:   policy.NewRequestPolicy(),
	}
}

// RankSuppliers orders the active suppliers offering a material by proximity
// to the client, then by price. The client district comes from client_id when
// given, else from the district parameter.
func (s *DefaultCatalogService) RankSuppliers(ctx context.Context, actor *entity.Actor, materialID int64, query *contract.RankSuppliersQuery) (*contract.RankedSuppliersResponse, apierror.ErrorResponse) {
	if perr := s.Policy.CanView(actor); perr != nil {
		return nil, perr
	}

	utils.Sanitize(query)
	if valerr := s.Validate.Struct(query); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	store := s.Store.WithContext(ctx)
	material, err := store.Catalog().FindMaterial(materialID)
	if err != nil {
		return nil, storageError("fetch material", err)
	}

	if material == nil {
		return nil, apierror.MaterialNotFoundError
	}

	district := entity.District(query.District)
	if query.ClientID > 0 {
		client, err := store.Catalog().FindClient(query.ClientID)
		if err != nil {
			return nil, storageError("fetch client", err)
		}

		if client == nil {
			return nil, apierror.ClientNotFoundError
		}
		district = client.District
	}

	offers, err := store.Catalog().FindOffers(material.ID)
	if err != nil {
		return nil, storageError("fetch supplier offers", err)
	}

	candidates := make([]matching.Candidate, 0, len(offers))
	for _, offer := range offers {
		if !offer.Supplier.IsActive() {
			continue
		}
		supplier := offer.Supplier
		candidates = append(candidates, matching.Candidate{Supplier: &supplier, Price: offer.SupplierPrice})
	}

	ranked := matching.Rank(candidates, district)
	resp := &contract.RankedSuppliersResponse{
		MaterialID:     material.ID,
		ClientDistrict: string(district),
		Suppliers:      make([]*contract.RankedSupplierResponse, len(ranked)),
	}
	for i, c := range ranked {
		resp.Suppliers[i] = &contract.RankedSupplierResponse{
			Rank:       i + 1,
			SupplierID: c.Supplier.ID,
			Name:       c.Supplier.Name,
			Company:    c.Supplier.Company,
			District:   string(c.Supplier.District),
			Price:      c.Price,
			Distance:   c.Distance,
		}
	}
	return resp, nil
}

// Estimate prices a supplier offer against the material's market band.
// Without a complete band there is nothing to estimate against.
func (s *DefaultCatalogService) Estimate(ctx context.Context, actor *entity.Actor, materialID int64, query *contract.EstimateQuery) (*contract.EstimateResponse, apierror.ErrorResponse) {
	if perr := s.Policy.CanView(actor); perr != nil {
		return nil, perr
	}

	utils.Sanitize(query)
	if valerr := s.Validate.Struct(query); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	supplierPrice, ok := parseAmount(query.SupplierPrice)
	if !ok {
		return nil, apierror.NewInvalidParamTypeError("supplier_price", "non-negative number")
	}

	commission := decimal.Zero
	if query.Commission != "" {
		if commission, ok = parseAmount(query.Commission); !ok {
			return nil, apierror.NewInvalidParamTypeError("commission", "non-negative number")
		}
	}

	material, err := s.Store.WithContext(ctx).Catalog().FindMaterial(materialID)
	if err != nil {
		return nil, storageError("fetch material", err)
	}

	if material == nil {
		return nil, apierror.MaterialNotFoundError
	}

	resp := &contract.EstimateResponse{
		MaterialID:    material.ID,
		SupplierPrice: supplierPrice,
		Commission:    commission,
	}

	if market, ok := pricing.MarketPrice(material.MinPrice, material.MaxPrice); ok {
		est := pricing.PlatformPrice(market, supplierPrice, commission)
		resp.MarketPrice = entity.NewNullDecimal(market)
		resp.PlatformPrice = entity.NewNullDecimal(est.PlatformPrice)
		resp.Profit = entity.NewNullDecimal(est.Profit)
	}
	return resp, nil
}

// Markup converts a supplier price into the client price, using the stored
// settings for whatever the caller leaves out.
func (s *DefaultCatalogService) Markup(ctx context.Context, actor *entity.Actor, req *contract.MarkupRequest) (*contract.MarkupResponse, apierror.ErrorResponse) {
	if perr := s.Policy.CanView(actor); perr != nil {
		return nil, perr
	}

	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	settings, err := s.Store.WithContext(ctx).Catalog().FindSettings()
	if err != nil {
		return nil, storageError("fetch settings", err)
	}

	markup := valueOr(req.Markup, settings.DefaultMarkup)
	markupType := settings.MarkupType
	if req.MarkupType != nil {
		markupType = entity.MarkupType(*req.MarkupType)
	}

	res := pricing.ApplyMarkup(req.SupplierPrice, markup, markupType)
	return &contract.MarkupResponse{
		SupplierPrice: req.SupplierPrice,
		Markup:        markup,
		MarkupType:    string(markupType),
		ClientPrice:   res.ClientPrice,
		Commission:    res.Commission,
		Profit:        res.Profit,
	}, nil
}

func parseAmount(raw string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}
