package contract

import "github.com/shopspring/decimal"

type RankedSupplierResponse struct {
	Rank       int             `json:"rank"`
	SupplierID int64           `json:"supplier_id"`
	Name       string          `json:"name"`
	Company    string          `json:"company"`
	District   string          `json:"district"`
	Price      decimal.Decimal `json:"price"`
	Distance   int             `json:"distance"`
}

type RankedSuppliersResponse struct {
	MaterialID     int64                     `json:"material_id"`
	ClientDistrict string                    `json:"client_district"`
	Suppliers      []*RankedSupplierResponse `json:"suppliers"`
}

type RankSuppliersQuery struct {
	ClientID int64  `query:"client_id" validate:"gte=0"`
	District string `query:"district" validate:"omitempty,district"`
}

// EstimateQuery keeps amounts as text, they are parsed into decimals by the service.
type EstimateQuery struct {
	SupplierPrice string `query:"supplier_price" validate:"required,numeric"`
	Commission    string `query:"commission" validate:"omitempty,numeric"`
}

type EstimateResponse struct {
	MaterialID    int64               `json:"material_id"`
	MarketPrice   decimal.NullDecimal `json:"market_price"`
	SupplierPrice decimal.Decimal     `json:"supplier_price"`
	Commission    decimal.Decimal     `json:"commission"`
	PlatformPrice decimal.NullDecimal `json:"platform_price"`
	Profit        decimal.NullDecimal `json:"profit"`
}

type MarkupRequest struct {
	SupplierPrice decimal.Decimal  `json:"supplier_price" validate:"gte=0"`
	Markup        *decimal.Decimal `json:"markup" validate:"omitempty,gte=0"`
	MarkupType    *string          `json:"markup_type" validate:"omitempty,oneof=flat percentage"`
}

type MarkupResponse struct {
	SupplierPrice decimal.Decimal `json:"supplier_price"`
	Markup        decimal.Decimal `json:"markup"`
	MarkupType    string          `json:"markup_type"`
	ClientPrice   decimal.Decimal `json:"client_price"`
	Commission    decimal.Decimal `json:"commission"`
	Profit        decimal.Decimal `json:"profit"`
}
