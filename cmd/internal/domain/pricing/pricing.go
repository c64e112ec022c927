// Package pricing turns supplier prices into client-facing prices.
//
// Two formulas live here and they are not interchangeable: ApplyMarkup converts
// a chosen supplier price into the quoted client price, PlatformPrice produces
// catalog-level estimates from the market price band.
package pricing

import (
	"rfqengine/cmd/internal/domain/entity"

	"github.com/shopspring/decimal"
)

type MarkupType = entity.MarkupType

var (
	// PlatformDiscountRate is how far below market the platform prices its estimates.
	PlatformDiscountRate = decimal.RequireFromString("0.05")

	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

type MarkupResult struct {
	ClientPrice decimal.Decimal `json:"clientPrice"`
	Commission  decimal.Decimal `json:"commission"`
	Profit      decimal.Decimal `json:"profit"`
}

type PlatformResult struct {
	PlatformPrice decimal.Decimal `json:"platformPrice"`
	Profit        decimal.Decimal `json:"profit"`
}

// ApplyMarkup adds the configured markup on top of a supplier price.
// Any markup type other than percentage is applied as a flat amount.
func ApplyMarkup(supplierPrice, markup decimal.Decimal, t MarkupType) MarkupResult {
	commission := markup
	if t == entity.MarkupPercentage {
		commission = markup.Div(hundred).Mul(supplierPrice)
	}

	clientPrice := supplierPrice.Add(commission)
	return MarkupResult{
		ClientPrice: floor(clientPrice),
		Commission:  floor(commission),
		Profit:      floor(clientPrice.Sub(supplierPrice)),
	}
}

// PlatformPrice estimates the platform price and margin for a supplier offer
// against the material's market price.
func PlatformPrice(marketPrice, supplierPrice, supplierCommission decimal.Decimal) PlatformResult {
	platform := marketPrice.Mul(decimal.NewFromInt(1).Sub(PlatformDiscountRate))
	return PlatformResult{
		PlatformPrice: floor(platform),
		Profit:        floor(platform.Sub(supplierPrice).Add(supplierCommission)),
	}
}

// MarketPrice is the midpoint of a material's price band. It reports false
// unless both bounds are set.
func MarketPrice(minPrice, maxPrice decimal.NullDecimal) (decimal.Decimal, bool) {
	if !minPrice.Valid || !maxPrice.Valid {
		return decimal.Zero, false
	}
	return minPrice.Decimal.Add(maxPrice.Decimal).Div(two), true
}

func floor(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
