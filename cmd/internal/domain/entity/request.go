package entity

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// RequestStatus is free text at the storage level, only the constants
// below drive lead synchronization.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusQuoted    RequestStatus = "quoted"
	StatusCompleted RequestStatus = "completed"
)

// Request is a client's request for quotation (RFQ).
type Request struct {
	ID             int64               `gorm:"primaryKey"`
	Number         string              `gorm:"not null;uniqueIndex"`
	ClientID       int64               `gorm:"not null;index"` // References: clients(id)
	ProjectName    string              `gorm:"not null"`
	ProjectDetails string              `gorm:"not null;default:''"`
	Notes          string              `gorm:"not null;default:''"`
	Status         RequestStatus       `gorm:"not null;default:'pending';index"`
	Subtotal       decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	TotalAmount    decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	DeliveryFee    decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	TaxAmount      decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	Profit         decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	Version        int                 `gorm:"not null;default:1"`
	LastEditedAt   *int64
	CreatedAt      int64 `gorm:"not null;autoCreateTime:false"`
	UpdatedAt      int64 `gorm:"not null;autoUpdateTime:false"`

	// Relations
	Lines []*RequestLine `gorm:"foreignKey:RequestID;references:ID"`
}

// Quotable reports whether every line carries a valid first supplier offer,
// the precondition for the quoted status.
func (r *Request) Quotable() bool {
	if len(r.Lines) == 0 {
		return false
	}

	for _, line := range r.Lines {
		prices, err := line.Prices()
		if err != nil || prices == nil || !prices.Supplier1.Valid() {
			return false
		}
	}
	return true
}

// RequestLine is one material of a request. SupplierPrices is kept as raw JSON
// and only decoded through Prices/SetPrices.
type RequestLine struct {
	ID             int64               `gorm:"primaryKey"`
	RequestID      int64               `gorm:"not null;index"` // References: requests(id)
	MaterialID     *int64              `gorm:"index"`          // References: materials(id)
	MaterialName   string              `gorm:"not null"`
	Quantity       int64               `gorm:"not null"`
	Unit           string              `gorm:"not null;default:''"`
	SupplierPrices datatypes.JSON      `gorm:"not null"`
	MarketPrice    decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	PriceVersion   int                 `gorm:"not null;default:1"`
	CreatedAt      int64               `gorm:"not null;autoCreateTime:false"`
}

var nullJSON = datatypes.JSON("null")

// NewRequestLine builds an unquoted line stamped with the given price version.
func NewRequestLine(materialID *int64, name, unit string, quantity int64, version int, now int64) *RequestLine {
	return &RequestLine{
		MaterialID:     materialID,
		MaterialName:   name,
		Quantity:       quantity,
		Unit:           unit,
		SupplierPrices: nullJSON,
		PriceVersion:   version,
		CreatedAt:      now,
	}
}

// Prices decodes the multi-supplier record. It returns nil when the line was never quoted.
func (l *RequestLine) Prices() (*SupplierPrices, error) {
	if len(l.SupplierPrices) == 0 || string(l.SupplierPrices) == "null" {
		return nil, nil
	}

	var prices SupplierPrices
	if err := json.Unmarshal(l.SupplierPrices, &prices); err != nil {
		return nil, err
	}
	return &prices, nil
}

func (l *RequestLine) SetPrices(prices *SupplierPrices) error {
	if prices == nil {
		l.SupplierPrices = nullJSON
		return nil
	}

	raw, err := json.Marshal(prices)
	if err != nil {
		return err
	}
	l.SupplierPrices = raw
	return nil
}
