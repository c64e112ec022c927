package contract

import "github.com/shopspring/decimal"

// SubmitQuoteRequest carries a full quotation: every line of the request with
// its supplier slots. Totals left out are derived from the lines and settings.
type SubmitQuoteRequest struct {
	Lines       []*QuoteLineRequest `json:"lines" validate:"required,min=1,dive,required"`
	DeliveryFee *decimal.Decimal    `json:"delivery_fee" validate:"omitempty,gte=0"`
	TaxRate     *decimal.Decimal    `json:"tax_rate" validate:"omitempty,gte=0,lte=100"`
	TaxAmount   *decimal.Decimal    `json:"tax_amount" validate:"omitempty,gte=0"`
	Profit      *decimal.Decimal    `json:"profit" validate:"omitempty,gte=0"`
	TotalAmount *decimal.Decimal    `json:"total_amount" validate:"omitempty,gte=0"`
}

type QuoteLineRequest struct {
	LineID int64 `json:"line_id" validate:"required,gt=0"`

	// Slots is keyed by slot position, "1" through "5".
	Slots           map[string]*QuoteSlotRequest `json:"slots" validate:"required"`
	SuppliersToShow *int                         `json:"suppliers_to_show"`
}

type QuoteSlotRequest struct {
	SupplierID int64           `json:"supplier_id"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

type QuoteLogEntryResponse struct {
	ID         int64           `json:"id"`
	RequestID  int64           `json:"request_id"`
	LineID     int64           `json:"line_id"`
	Slot       int             `json:"slot"`
	SupplierID int64           `json:"supplier_id"`
	Price      decimal.Decimal `json:"price"`
	Notes      string          `json:"notes"`
	CreatedAt  string          `json:"created_at"`
}
