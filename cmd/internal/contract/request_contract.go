package contract

import (
	"rfqengine/cmd/internal/domain/entity"

	"github.com/shopspring/decimal"
)

type RequestResponse struct {
	ID             int64                  `json:"id"`
	Number         string                 `json:"number"`
	ClientID       int64                  `json:"client_id"`
	ProjectName    string                 `json:"project_name"`
	ProjectDetails string                 `json:"project_details"`
	Notes          string                 `json:"notes"`
	Status         string                 `json:"status"`
	Subtotal       decimal.NullDecimal    `json:"subtotal"`
	DeliveryFee    decimal.NullDecimal    `json:"delivery_fee"`
	TaxAmount      decimal.NullDecimal    `json:"tax_amount"`
	Profit         decimal.NullDecimal    `json:"profit"`
	TotalAmount    decimal.NullDecimal    `json:"total_amount"`
	Version        int                    `json:"version"`
	LastEditedAt   *string                `json:"last_edited_at"`
	CreatedAt      string                 `json:"created_at"`
	UpdatedAt      string                 `json:"updated_at"`
	Lines          []*RequestLineResponse `json:"lines,omitempty"`
}

type RequestLineResponse struct {
	ID             int64                  `json:"id"`
	MaterialID     *int64                 `json:"material_id"`
	MaterialName   string                 `json:"material_name"`
	Quantity       int64                  `json:"quantity"`
	Unit           string                 `json:"unit"`
	SupplierPrices *entity.SupplierPrices `json:"supplier_prices"`
	MarketPrice    decimal.NullDecimal    `json:"market_price"`
	PriceVersion   int                    `json:"price_version"`
}

type CreateRequestRequest struct {
	ClientID       int64          `json:"client_id" validate:"required,gt=0"`
	ProjectName    string         `json:"project_name" validate:"required,min=2,max=200"`
	ProjectDetails string         `json:"project_details" validate:"max=5000"`
	Notes          string         `json:"notes" validate:"max=5000"`
	Lines          []*LineRequest `json:"lines" validate:"required,min=1,max=200,dive,required"`
}

// LineRequest names either a catalog material or a free-text one.
type LineRequest struct {
	MaterialID   *int64 `json:"material_id" validate:"omitempty,gt=0"`
	MaterialName string `json:"material_name" validate:"required_without=MaterialID,max=200"`
	Quantity     int64  `json:"quantity" validate:"required,gt=0,max=1000000"`
	Unit         string `json:"unit" validate:"max=30"`
}

type UpdateRequestRequest struct {
	Status         *string `json:"status" validate:"omitempty,min=1,max=30"`
	ProjectName    *string `json:"project_name" validate:"omitempty,min=2,max=200"`
	ProjectDetails *string `json:"project_details" validate:"omitempty,max=5000"`
	Notes          *string `json:"notes" validate:"omitempty,max=5000"`
}

type ListRequestsQuery struct {
	Status   string `query:"status" validate:"max=30"`
	ClientID int64  `query:"client_id" validate:"gte=0"`
}
